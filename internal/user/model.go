package user

import "time"

type User struct {
	ID          string `gorm:"primaryKey"` // UUID venant de auth.users
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Email       string
	AvatarURL   string
	AvatarS3Key string
	IsAdmin     bool
}

func (User) TableName() string {
	return "users"
}

// Serialized est la forme publique d'un utilisateur renvoyée par l'API.
type Serialized struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func Serialize(u User) Serialized {
	return Serialized{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
