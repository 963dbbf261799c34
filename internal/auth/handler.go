package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// Signup : Inscription
func Signup(c *gin.Context) {
	supabaseBaseURL := os.Getenv("NEXT_PUBLIC_SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	if user.ExistsByEmail(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email déjà utilisé"})
		return
	}

	// Étape 1 – Appel au provider d'auth
	authPayload := map[string]string{
		"email":    input.Email,
		"password": input.Password,
	}
	jsonBody, _ := json.Marshal(authPayload)
	req, _ := http.NewRequest("POST", supabaseBaseURL+"/auth/v1/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("apikey", supabaseAnonKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur provider d'auth"})
		return
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		c.JSON(resp.StatusCode, gin.H{"error": "Erreur Auth", "details": string(respBytes)})
		return
	}

	// Étape 2 – Extraire le user.id
	var authResp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(respBytes, &authResp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur parsing user.id"})
		return
	}

	userID := authResp.User.ID
	if userID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aucun ID utilisateur renvoyé par le provider"})
		return
	}

	// Étape 3 – Créer l'utilisateur dans la table locale
	newUser := user.User{
		ID:        userID,
		CreatedAt: time.Now(),
		Name:      input.Name,
		Email:     input.Email,
		AvatarURL: input.AvatarURL,
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur insertion base utilisateurs"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur inscrit",
		"user":    user.Serialize(newUser),
	})
}

// Login : Connexion, la réponse du provider (tokens) est relayée telle quelle.
func Login(c *gin.Context) {
	supabaseBaseURL := os.Getenv("NEXT_PUBLIC_SUPABASE_URL")
	var body map[string]string
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(
		"POST",
		supabaseBaseURL+"/auth/v1/token?grant_type=password",
		bytes.NewBuffer(jsonBody),
	)
	req.Header.Set("apikey", os.Getenv("SUPABASE_ANON_KEY"))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion au provider d'auth"})
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	c.Data(resp.StatusCode, "application/json", respBody)
}
