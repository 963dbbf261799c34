package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// GetNotifications GET /api/notifications
// Liste les notifications du viewer, les plus récentes d'abord, et marque
// au passage toutes les non lues comme lues.
func GetNotifications(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var notifications []Notification
	if err := database.DB.
		Preload("NotifierUser").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des notifications"})
		logs.LogJSON("ERROR", "Error retrieving notifications", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	var unreadIDs []string
	for _, n := range notifications {
		if !n.Read {
			unreadIDs = append(unreadIDs, n.ID)
		}
	}
	if len(unreadIDs) > 0 {
		if err := database.DB.Model(&Notification{}).
			Where("id IN ?", unreadIDs).
			Update("read", true).Error; err != nil {
			logs.LogJSON("ERROR", "Error marking notifications as read", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
		}
	}

	serialized := make([]gin.H, 0, len(notifications))
	for _, n := range notifications {
		s := gin.H{
			"id":                n.ID,
			"notification_type": n.NotificationType,
			"read":              n.Read,
			"created_at":        n.CreatedAt,
			"notifier_user":     user.Serialize(n.NotifierUser),
		}
		if n.PostID != nil {
			s["post_id"] = *n.PostID
		}
		serialized = append(serialized, s)
	}

	c.JSON(http.StatusOK, gin.H{"notifications": serialized})
	logs.LogJSON("INFO", "Notifications retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"count":  len(notifications),
	})
}
