package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sofuetakuma112/bb-hono/internal/admin"
	"github.com/sofuetakuma112/bb-hono/internal/auth"
	"github.com/sofuetakuma112/bb-hono/internal/config"
	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/feed"
	"github.com/sofuetakuma112/bb-hono/internal/follow"
	"github.com/sofuetakuma112/bb-hono/internal/like"
	"github.com/sofuetakuma112/bb-hono/internal/middleware"
	"github.com/sofuetakuma112/bb-hono/internal/notification"
	"github.com/sofuetakuma112/bb-hono/internal/post"
	"github.com/sofuetakuma112/bb-hono/internal/report"
	"github.com/sofuetakuma112/bb-hono/internal/storage"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("SUPABASE_DB_URL manquant")
	}

	database.Connect(cfg.DBUrl)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&post.Post{},
		&like.Like{},
		&follow.Follow{},
		&notification.Notification{},
		&report.Report{},
	); err != nil {
		log.Fatalf("Erreur migration : %v", err)
	}

	if err := storage.InitS3(); err != nil {
		log.Fatalf("Erreur init S3 : %v", err)
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/signup", auth.Signup)
	api.POST("/login", auth.Login)

	// Lecture publique (auth optionnelle)
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/posts/:id", post.GetPostByID)
		public.GET("/users/:id", user.GetUser)
		public.GET("/users/:id/posts", post.GetUserPosts)
	}

	// Routes authentifiées
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/users/me", user.GetMe)
		authed.PUT("/users/me", user.UpdateMe)
		authed.DELETE("/users/me", user.DeleteUser)

		authed.POST("/posts", post.CreatePost)
		authed.DELETE("/posts/:id", post.DeletePost)

		// Feed de swipe
		authed.GET("/posts/recommended", feed.GetRecommended)
		authed.GET("/posts/followings", feed.GetFollowings)

		authed.POST("/likes", like.ReactToPost)
		authed.GET("/likes/posts", like.GetLikedPosts)
		authed.GET("/likes/users", like.GetLikeUsers)
		authed.DELETE("/likes/:id", like.DeleteLike)

		authed.POST("/follows", follow.FollowUser)
		authed.DELETE("/follows/:userId", follow.UnfollowUser)
		authed.GET("/follows/followers/:userId", follow.GetFollowers)
		authed.GET("/follows/followings/:userId", follow.GetFollowings)

		authed.GET("/notifications", notification.GetNotifications)

		authed.POST("/reports", report.CreateReport)
	}

	// Routes admin
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
	{
		adminGroup.GET("/stats", admin.GetDashboardStats)
		adminGroup.GET("/posts", admin.GetPostsForModeration)
		adminGroup.PUT("/posts/:id/moderation", admin.ModeratePost)
		adminGroup.GET("/reports", report.GetReports)
	}

	err := r.Run(":8080")
	if err != nil {
		return
	}
}
