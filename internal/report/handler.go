package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
)

// CreateReport POST /api/reports
func CreateReport(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input struct {
		PostID      string `json:"post_id"`
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if !ValidReason(input.Reason) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Raison de signalement invalide"})
		return
	}

	// Vérifier que la cible existe
	var postCount int64
	if err := database.DB.Table("posts").Where("id = ?", input.PostID).Count(&postCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if postCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post à signaler non trouvé"})
		logs.LogJSON("WARN", "Report target not found", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": input.PostID,
		})
		return
	}

	// Un seul signalement par (reporter, post)
	var existing Report
	err := database.DB.
		Where("reporter_id = ? AND post_id = ?", userID, input.PostID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà signalé ce post"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Error checking existing report", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": input.PostID,
		})
		return
	}

	newReport := Report{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		ReporterID:  userID,
		PostID:      input.PostID,
		Reason:      input.Reason,
		Description: input.Description,
	}
	if err := database.DB.Create(&newReport).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du signalement"})
		logs.LogJSON("ERROR", "Error creating report", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": input.PostID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Signalement enregistré"})
	logs.LogJSON("INFO", "Report created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": input.PostID,
		"reason": input.Reason,
	})
}

// GetReports GET /api/admin/reports
func GetReports(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var reports []Report
	if err := database.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des signalements"})
		logs.LogJSON("ERROR", "Error retrieving reports", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
