package follow

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// FollowUser POST /api/follows
func FollowUser(c *gin.Context) {
	route := c.FullPath()
	followerID := c.GetString("user_id")

	var input struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if err := Create(followerID, input.UserID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Follow rejected", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %s", input.UserID),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Utilisateur suivi"})
	logs.LogJSON("INFO", "Followed user", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("followeeID : %s", input.UserID),
	})
}

// UnfollowUser DELETE /api/follows/:userId
func UnfollowUser(c *gin.Context) {
	route := c.FullPath()
	followerID := c.GetString("user_id")
	followeeID := c.Param("userId")

	if err := Remove(followerID, followeeID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Unfollow rejected", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %s", followeeID),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur unfollow"})
	logs.LogJSON("INFO", "User unfollowed", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("followeeID : %s", followeeID),
	})
}

// GetFollowers GET /api/follows/followers/:userId
func GetFollowers(c *gin.Context) {
	listFollowGraph(c, true)
}

// GetFollowings GET /api/follows/followings/:userId
func GetFollowings(c *gin.Context) {
	listFollowGraph(c, false)
}

// listFollowGraph liste les followers ou les followees d'un utilisateur, en
// annotant chaque entrée des flags is_follower/is_followee relatifs au viewer.
func listFollowGraph(c *gin.Context, followers bool) {
	route := c.FullPath()
	viewerID := c.GetString("user_id")
	targetUserID := c.Param("userId")

	if !user.ExistsByID(targetUserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var ids []string
	var err error
	if followers {
		err = database.DB.Model(&Follow{}).
			Where("followee_id = ?", targetUserID).
			Pluck("follower_id", &ids).Error
	} else {
		err = database.DB.Model(&Follow{}).
			Where("follower_id = ?", targetUserID).
			Pluck("followee_id", &ids).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération du graphe de follows"})
		logs.LogJSON("ERROR", "Error retrieving follow graph", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"users": []gin.H{}})
		return
	}

	var users []user.User
	if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des utilisateurs"})
		logs.LogJSON("ERROR", "Error retrieving users", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	// Arêtes du viewer pour calculer les flags.
	var viewerFollowees, viewerFollowers []string
	database.DB.Model(&Follow{}).Where("follower_id = ?", viewerID).Pluck("followee_id", &viewerFollowees)
	database.DB.Model(&Follow{}).Where("followee_id = ?", viewerID).Pluck("follower_id", &viewerFollowers)

	followeeSet := make(map[string]bool, len(viewerFollowees))
	for _, id := range viewerFollowees {
		followeeSet[id] = true
	}
	followerSet := make(map[string]bool, len(viewerFollowers))
	for _, id := range viewerFollowers {
		followerSet[id] = true
	}

	serialized := make([]gin.H, 0, len(users))
	for _, u := range users {
		s := user.Serialize(u)
		serialized = append(serialized, gin.H{
			"id":          s.ID,
			"name":        s.Name,
			"avatar_url":  s.AvatarURL,
			"is_followee": followeeSet[u.ID],
			"is_follower": followerSet[u.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": serialized})
	logs.LogJSON("INFO", "Follow graph retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": viewerID,
	})
}
