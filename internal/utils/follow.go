package utils

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sofuetakuma112/bb-hono/internal/database"
)

type Follow struct {
	ID         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	FollowerID string
	FolloweeID string
}

func (Follow) TableName() string {
	return "follows"
}

func IsFollowing(followerID, followeeID string) (bool, error) {
	var follow Follow
	err := database.DB.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&follow).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // L'utilisateur ne suit pas
		}
		return false, err // Une erreur s'est produite
	}

	return true, nil // L'utilisateur suit
}
