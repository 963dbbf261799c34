package like

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/post"
	"github.com/sofuetakuma112/bb-hono/internal/storage"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// ReactToPost POST /api/likes
func ReactToPost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input struct {
		PostID   string `json:"post_id"`
		LikeType string `json:"like_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if err := React(userID, input.PostID, input.LikeType); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Reaction rejected", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"userID":   userID,
			"postID":   input.PostID,
			"likeType": input.LikeType,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like mis à jour"})
	logs.LogJSON("INFO", "Reaction recorded", map[string]interface{}{
		"route":    route,
		"userID":   userID,
		"postID":   input.PostID,
		"likeType": input.LikeType,
	})
}

// GetLikedPosts GET /api/likes/posts
// Posts approuvés auxquels un utilisateur a réagi avec le type demandé,
// avec recherche optionnelle par hashtag.
func GetLikedPosts(c *gin.Context) {
	route := c.FullPath()
	currentUserID := c.GetString("user_id")

	targetUserID := c.Query("user_id")
	likeType := c.Query("like_type")
	searchString := c.Query("search")

	if !ValidType(likeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de like invalide"})
		return
	}
	if !user.ExistsByID(targetUserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var likes []Like
	if err := database.DB.
		Where("user_id = ? AND like_type = ?", targetUserID, likeType).
		Order("created_at DESC").
		Find(&likes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des likes"})
		logs.LogJSON("ERROR", "Error retrieving likes", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
		})
		return
	}

	postIDs := make([]string, 0, len(likes))
	for _, l := range likes {
		postIDs = append(postIDs, l.PostID)
	}

	var posts []post.Post
	if len(postIDs) > 0 {
		if err := database.DB.
			Preload("User").
			Where("id IN ? AND moderation_state = ?", postIDs, post.ModerationApproved).
			Order("id DESC").
			Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des posts"})
			logs.LogJSON("ERROR", "Error retrieving liked posts", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": currentUserID,
			})
			return
		}
	}

	// Filtre hashtag après requête : O(n) sur un résultat déjà borné.
	serialized := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		if searchString != "" && !p.HasHashTag(searchString) {
			continue
		}
		serialized = append(serialized, gin.H{
			"id":               p.ID,
			"prompt":           p.Prompt,
			"image_url":        storage.URLFromKey(p.ImageS3Key),
			"image_name":       p.ImageName,
			"image_age":        p.ImageAge,
			"image_birthplace": p.ImageBirthplace,
			"hash_tags":        p.HashTagList(),
			"user_id":          p.UserID,
			"user":             user.Serialize(p.User),
		})
	}

	c.JSON(http.StatusOK, gin.H{"posts": serialized})
	logs.LogJSON("INFO", "Liked posts retrieved successfully", map[string]interface{}{
		"route":    route,
		"userID":   currentUserID,
		"likeType": likeType,
	})
}

// GetLikeUsers GET /api/likes/users
// Utilisateurs ayant réagi à un post avec le type demandé (like ou super_like).
func GetLikeUsers(c *gin.Context) {
	route := c.FullPath()
	currentUserID := c.GetString("user_id")

	postID := c.Query("post_id")
	likeType := c.Query("like_type")

	if likeType != TypeLike && likeType != TypeSuperLike {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de like invalide"})
		return
	}

	var userIDs []string
	if err := database.DB.Model(&Like{}).
		Where("post_id = ? AND like_type = ?", postID, likeType).
		Pluck("user_id", &userIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des likes"})
		logs.LogJSON("ERROR", "Error retrieving like users", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
			"postID": postID,
		})
		return
	}

	if len(userIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"users": []user.Serialized{}})
		return
	}

	var users []user.User
	if err := database.DB.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des utilisateurs"})
		logs.LogJSON("ERROR", "Error retrieving users", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
			"postID": postID,
		})
		return
	}

	serialized := make([]user.Serialized, 0, len(users))
	for _, u := range users {
		serialized = append(serialized, user.Serialize(u))
	}

	c.JSON(http.StatusOK, gin.H{"users": serialized})
}

// DeleteLike DELETE /api/likes/:id
func DeleteLike(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	likeID := c.Param("id")

	var existing Like
	if err := database.DB.Where("id = ?", likeID).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like non trouvé"})
		return
	}

	if existing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Suppression réservée à l'auteur du like"})
		logs.LogJSON("WARN", "User tried to delete someone else's like", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"likeID": likeID,
		})
		return
	}

	if err := database.DB.Delete(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression du like"})
		logs.LogJSON("ERROR", "Error deleting like", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"likeID": likeID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like supprimé"})
}
