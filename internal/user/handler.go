package user

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/utils"
)

// GetUser GET /api/users/:id
// Profil public d'un utilisateur, avec ses compteurs et le flag is_following
// relatif au viewer.
func GetUser(c *gin.Context) {
	route := c.FullPath()
	currentUserID := c.GetString("user_id")
	targetUserID := c.Param("id")

	var u User
	if err := database.DB.First(&u, "id = ?", targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		logs.LogJSON("WARN", "User not found", map[string]interface{}{
			"route":  route,
			"userID": currentUserID,
			"extra":  targetUserID,
		})
		return
	}

	response := gin.H{
		"user":  Serialize(u),
		"stats": profileStats(u.ID, u.ID == currentUserID),
	}

	if currentUserID != "" && currentUserID != u.ID {
		ok, err := utils.IsFollowing(currentUserID, u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la vérification du suivi"})
			logs.LogJSON("ERROR", "Error during follow-up verification", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": currentUserID,
			})
			return
		}
		response["is_following"] = ok
	}

	c.JSON(http.StatusOK, response)
	logs.LogJSON("INFO", "User fetched successfully", map[string]interface{}{
		"route":  route,
		"userID": currentUserID,
		"extra":  targetUserID,
	})
}

// DeleteUser DELETE /api/users/me
// Supprime le compte côté provider d'auth puis la ligne locale.
func DeleteUser(c *gin.Context) {
	route := c.FullPath()
	currentUserID := c.GetString("user_id")

	client := resty.New()
	supabaseURL := os.Getenv("NEXT_PUBLIC_SUPABASE_URL")
	supabaseServiceKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")

	resp, err := client.R().
		SetHeader("apikey", supabaseServiceKey).
		SetHeader("Authorization", "Bearer "+supabaseServiceKey).
		Delete(supabaseURL + "/auth/v1/admin/users/" + currentUserID)

	if err != nil || resp.IsError() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur provider de suppression d'utilisateur"})
		logs.LogJSON("ERROR", "Auth provider user deletion error", map[string]interface{}{
			"route":  route,
			"userID": currentUserID,
		})
		return
	}

	if err := database.DB.Delete(&User{}, "id = ?", currentUserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression utilisateur"})
		logs.LogJSON("ERROR", "Error deleting local user row", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
	logs.LogJSON("INFO", "User deleted successfully", map[string]interface{}{
		"route":  route,
		"userID": currentUserID,
	})
}

func profileStats(userID string, isSelf bool) gin.H {
	var followersCount, followeesCount, postsCount int64

	database.DB.Table("follows").Where("followee_id = ?", userID).Count(&followersCount)
	database.DB.Table("follows").Where("follower_id = ?", userID).Count(&followeesCount)
	database.DB.Table("posts").Where("user_id = ?", userID).Count(&postsCount)

	stats := gin.H{
		"followers_count": followersCount,
		"followees_count": followeesCount,
		"posts_count":     postsCount,
	}

	if isSelf {
		var likesCount int64
		database.DB.Table("likes").Where("user_id = ? AND like_type <> ?", userID, "unlike").Count(&likesCount)
		stats["likes_count"] = likesCount
	}

	return stats
}
