package post

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/storage"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// CreatePost gère la création d'un nouveau post avec image.
// Le post démarre en modération "pending" : il n'apparaît dans aucun feed
// tant qu'un admin ne l'a pas approuvé.
func CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	prompt := c.PostForm("prompt")
	imageName := c.PostForm("image_name")
	imageAge := c.PostForm("image_age")
	imageBirthplace := c.PostForm("image_birthplace")
	hashTags := c.PostFormArray("hash_tags")

	if prompt == "" || imageName == "" || imageAge == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	var author user.User
	if err := database.DB.First(&author, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie", "details": err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	validExtensions := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".gif": true, ".webp": true, ".heic": true,
	}
	if !validExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Extension de fichier invalide"})
		return
	}

	postID := uuid.New().String()
	filename := fmt.Sprintf("post_%s%s", postID, ext)
	contentType := header.Header.Get("Content-Type")

	url, err := storage.UploadToS3(file, filename, contentType, "posts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload", "details": err.Error()})
		return
	}

	newPost := Post{
		ID:              postID,
		CreatedAt:       time.Now(),
		UserID:          userID,
		Prompt:          prompt,
		ImageS3Key:      fmt.Sprintf("posts/%s", filename),
		ImageName:       imageName,
		ImageAge:        imageAge,
		ImageBirthplace: imageBirthplace,
		HashTags:        EncodeHashTags(hashTags),
		ModerationState: ModerationPending,
	}

	if err := database.DB.Create(&newPost).Error; err != nil {
		// Si l'insertion échoue, on tente de supprimer l'image déjà uploadée
		_ = storage.DeleteFromS3(newPost.ImageS3Key)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du post"})
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{
			"error":  err.Error(),
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post créé, en attente de modération",
		"post":    serializePost(newPost, url),
	})
	logs.LogJSON("INFO", "Post created successfully", map[string]interface{}{
		"userID": userID,
		"postID": postID,
	})
}

// GetUserPosts GET /api/users/:id/posts
// Posts approuvés d'un utilisateur ; l'auteur voit aussi les siens en attente.
func GetUserPosts(c *gin.Context) {
	viewerID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if !user.ExistsByID(targetUserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	q := database.DB.Where("user_id = ?", targetUserID)
	if viewerID != targetUserID {
		q = q.Where("moderation_state = ?", ModerationApproved)
	}

	var posts []Post
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		return
	}

	serialized := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		serialized = append(serialized, serializePost(p, storage.URLFromKey(p.ImageS3Key)))
	}

	c.JSON(http.StatusOK, gin.H{"posts": serialized})
}

// GetPostByID GET /api/posts/:id
func GetPostByID(c *gin.Context) {
	viewerID := c.GetString("user_id")
	postID := c.Param("id")

	var p Post
	if err := database.DB.Preload("User").First(&p, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	// Un post non approuvé n'est visible que par son auteur.
	if p.ModerationState != ModerationApproved && p.UserID != viewerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	s := serializePost(p, storage.URLFromKey(p.ImageS3Key))
	s["user"] = user.Serialize(p.User)
	c.JSON(http.StatusOK, s)
}

// DeletePost DELETE /api/posts/:id
// Seul l'auteur peut supprimer son post ; l'image S3 part avec.
func DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var p Post
	if err := database.DB.
		Where("id = ? AND user_id = ?", postID, userID).
		First(&p).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	if err := database.DB.Delete(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression du post"})
		logs.LogJSON("ERROR", "Error deleting post", map[string]interface{}{
			"error":  err.Error(),
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if p.ImageS3Key != "" {
		if err := storage.DeleteFromS3(p.ImageS3Key); err != nil {
			logs.LogJSON("WARN", "Error deleting post image from S3", map[string]interface{}{
				"error":  err.Error(),
				"postID": postID,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post supprimé"})
	logs.LogJSON("INFO", "Post deleted successfully", map[string]interface{}{
		"userID": userID,
		"postID": postID,
	})
}

func serializePost(p Post, imageURL string) gin.H {
	return gin.H{
		"id":               p.ID,
		"created_at":       p.CreatedAt,
		"user_id":          p.UserID,
		"prompt":           p.Prompt,
		"image_url":        imageURL,
		"image_name":       p.ImageName,
		"image_age":        p.ImageAge,
		"image_birthplace": p.ImageBirthplace,
		"hash_tags":        p.HashTagList(),
		"moderation_state": p.ModerationState,
	}
}
