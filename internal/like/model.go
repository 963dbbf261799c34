package like

import (
	"time"
)

// Types de réaction. "unlike" est un état stocké (rétractation explicite),
// pas une suppression de ligne.
const (
	TypeLike      = "like"
	TypeSuperLike = "super_like"
	TypeUnlike    = "unlike"
)

type Like struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_likes_user_post"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_likes_user_post"`
	LikeType  string    `json:"like_type"`
}

func (Like) TableName() string {
	return "likes"
}

func ValidType(t string) bool {
	return t == TypeLike || t == TypeSuperLike || t == TypeUnlike
}
