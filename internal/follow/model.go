package follow

import (
	"time"
)

type Follow struct {
	ID         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	FollowerID string `gorm:"type:uuid;uniqueIndex:idx_follows_pair"`
	FolloweeID string `gorm:"type:uuid;uniqueIndex:idx_follows_pair"`
}

func (Follow) TableName() string {
	return "follows"
}
