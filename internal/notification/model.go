package notification

import (
	"time"

	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// Types de notification générés par les réactions et les follows.
const (
	TypeLike      = "like"
	TypeSuperLike = "super_like"
	TypeFollow    = "follow"
)

type Notification struct {
	ID               string `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	UserID           string    `gorm:"index"` // destinataire
	NotifierUserID   string    // acteur à l'origine de la notification
	NotifierUser     user.User `gorm:"foreignKey:NotifierUserID"`
	PostID           *string
	NotificationType string
	Read             bool
}

func (Notification) TableName() string {
	return "notifications"
}
