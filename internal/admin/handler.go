package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/post"
	"github.com/sofuetakuma112/bb-hono/internal/storage"
)

// GetDashboardStats GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var totalUsers, totalPosts, pendingPosts, totalLikes, totalReports int64

	database.DB.Table("users").Count(&totalUsers)
	database.DB.Table("posts").Count(&totalPosts)
	database.DB.Table("posts").Where("moderation_state = ?", post.ModerationPending).Count(&pendingPosts)
	database.DB.Table("likes").Count(&totalLikes)
	database.DB.Table("reports").Count(&totalReports)

	stats := gin.H{
		"total_users":   totalUsers,
		"total_posts":   totalPosts,
		"pending_posts": pendingPosts,
		"total_likes":   totalLikes,
		"total_reports": totalReports,
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
	logs.LogJSON("INFO", "Admin stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// GetPostsForModeration GET /api/admin/posts
// File de modération : par défaut les posts en attente.
func GetPostsForModeration(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	state := c.DefaultQuery("state", post.ModerationPending)
	if !post.ValidModerationState(state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "État de modération invalide"})
		return
	}

	var posts []post.Post
	if err := database.DB.
		Preload("User").
		Where("moderation_state = ?", state).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des posts"})
		logs.LogJSON("ERROR", "Error retrieving moderation queue", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	serialized := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		serialized = append(serialized, gin.H{
			"id":               p.ID,
			"created_at":       p.CreatedAt,
			"user_id":          p.UserID,
			"prompt":           p.Prompt,
			"image_url":        storage.URLFromKey(p.ImageS3Key),
			"hash_tags":        p.HashTagList(),
			"moderation_state": p.ModerationState,
		})
	}

	c.JSON(http.StatusOK, gin.H{"posts": serialized})
}

// ModeratePost PUT /api/admin/posts/:id/moderation
// Tranche l'état de modération d'un post : approved ou rejected.
func ModeratePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var input struct {
		State string `json:"state"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.State != post.ModerationApproved && input.State != post.ModerationRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "État de modération invalide"})
		return
	}

	var p post.Post
	if err := database.DB.First(&p, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	if err := database.DB.Model(&p).Update("moderation_state", input.State).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour de la modération"})
		logs.LogJSON("ERROR", "Error updating moderation state", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Modération mise à jour", "state": input.State})
	logs.LogJSON("INFO", "Post moderated", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
		"state":  input.State,
	})
}
