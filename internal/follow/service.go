package follow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/notification"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// Create ajoute l'arête follower → followee. Échoue en Conflict si elle
// existe déjà, et notifie le followee en cas de succès.
func Create(actorID, targetID string) error {
	if actorID == "" {
		return apperr.ErrUnauthorized
	}
	if actorID == targetID {
		return apperr.ErrInvalid
	}
	if !user.ExistsByID(targetID) {
		return apperr.ErrNotFound
	}

	var existing Follow
	err := database.DB.
		Where("follower_id = ? AND followee_id = ?", actorID, targetID).
		First(&existing).Error
	if err == nil {
		return apperr.ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("recherche du follow existant : %w", err)
	}

	newFollow := Follow{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		FollowerID: actorID,
		FolloweeID: targetID,
	}
	if err := database.DB.Create(&newFollow).Error; err != nil {
		return fmt.Errorf("ajout du follow : %w", err)
	}

	notif := notification.Notification{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now(),
		UserID:           targetID,
		NotifierUserID:   actorID,
		NotificationType: notification.TypeFollow,
	}
	if err := database.DB.Create(&notif).Error; err != nil {
		return fmt.Errorf("ajout de la notification : %w", err)
	}
	return nil
}

// Remove supprime l'arête. Échoue en NotFound si elle n'existe pas.
func Remove(actorID, targetID string) error {
	if actorID == "" {
		return apperr.ErrUnauthorized
	}

	var existing Follow
	err := database.DB.
		Where("follower_id = ? AND followee_id = ?", actorID, targetID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("recherche du follow : %w", err)
	}

	if err := database.DB.Delete(&existing).Error; err != nil {
		return fmt.Errorf("suppression du follow : %w", err)
	}
	return nil
}
