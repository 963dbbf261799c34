package like

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/notification"
	"github.com/sofuetakuma112/bb-hono/internal/post"
)

// React applique une réaction (like, super_like ou unlike) de l'acteur sur un
// post. Au plus une ligne par (user, post) : la première réaction insère, les
// suivantes mutent like_type en place. Un like ou super like sur le post d'un
// autre utilisateur génère une notification ; un unlike jamais. Re-liker après
// un unlike notifie à nouveau (pas de déduplication dans le temps).
func React(actorID, postID, kind string) error {
	if actorID == "" {
		return apperr.ErrUnauthorized
	}
	if !ValidType(kind) {
		return apperr.ErrInvalid
	}

	// Le post doit exister avant l'upsert : on remonte NotFound plutôt que de
	// laisser la contrainte FK échouer à l'écriture.
	var target post.Post
	if err := database.DB.Select("id, user_id").Where("id = ?", postID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("vérification du post : %w", err)
	}

	var existing Like
	err := database.DB.Where("user_id = ? AND post_id = ?", actorID, postID).First(&existing).Error
	switch {
	case err == nil:
		// Changement d'avis : la ligne est mutée, jamais dupliquée.
		if err := database.DB.Model(&existing).Update("like_type", kind).Error; err != nil {
			return fmt.Errorf("mise à jour du like : %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		newLike := Like{
			ID:        uuid.New().String(),
			CreatedAt: time.Now(),
			UserID:    actorID,
			PostID:    postID,
			LikeType:  kind,
		}
		if err := database.DB.Create(&newLike).Error; err != nil {
			return fmt.Errorf("ajout du like : %w", err)
		}
	default:
		return fmt.Errorf("recherche du like existant : %w", err)
	}

	if kind == TypeUnlike || target.UserID == actorID {
		return nil
	}

	pid := postID
	notif := notification.Notification{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now(),
		UserID:           target.UserID,
		NotifierUserID:   actorID,
		PostID:           &pid,
		NotificationType: kind,
	}
	if err := database.DB.Create(&notif).Error; err != nil {
		return fmt.Errorf("ajout de la notification : %w", err)
	}
	return nil
}
