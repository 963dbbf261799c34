package post

import (
	"encoding/json"
	"time"

	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// États de modération : seuls les posts approuvés sont éligibles au feed.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

type Post struct {
	ID              string `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          string    `gorm:"index"`
	User            user.User `gorm:"foreignKey:UserID"`
	Prompt          string
	ImageS3Key      string
	ImageName       string
	ImageAge        string
	ImageBirthplace string
	HashTags        string // tableau JSON ordonné, ex: ["#mer","#été"]
	ModerationState string `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

func ValidModerationState(s string) bool {
	return s == ModerationPending || s == ModerationApproved || s == ModerationRejected
}

// HashTagList décode la colonne JSON en liste ordonnée.
func (p Post) HashTagList() []string {
	if p.HashTags == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(p.HashTags), &tags); err != nil {
		return nil
	}
	return tags
}

// EncodeHashTags encode une liste de hashtags pour la colonne JSON.
func EncodeHashTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

// HasHashTag teste l'appartenance d'un hashtag. O(n) sur une liste déjà bornée.
func (p Post) HasHashTag(tag string) bool {
	for _, t := range p.HashTagList() {
		if t == tag {
			return true
		}
	}
	return false
}
