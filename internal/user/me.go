package user

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/storage"
)

// GetMe GET /api/users/me
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	response := gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
	}
	if u.IsAdmin {
		response["is_admin"] = true
	}

	c.JSON(http.StatusOK, gin.H{"user": response, "stats": profileStats(u.ID, true)})
}

// UpdateMe PUT /api/users/me
func UpdateMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		u.Name = name
	}

	// Vérification et remplacement de l'avatar
	file, header, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		validExtensions := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true}
		if !validExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Extension fichier invalide"})
			return
		}

		filename := fmt.Sprintf("avatar_%s%s", uuid.New().String(), ext)
		url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), "avatars")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload", "details": err.Error()})
			return
		}

		// L'ancien avatar ne sert plus à rien
		if u.AvatarS3Key != "" {
			_ = storage.DeleteFromS3(u.AvatarS3Key)
		}
		u.AvatarS3Key = fmt.Sprintf("avatars/%s", filename)
		u.AvatarURL = url
	}

	if err := database.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour utilisateur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
	}})
}
