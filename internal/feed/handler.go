package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/logs"
	"github.com/sofuetakuma112/bb-hono/internal/storage"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

// GetRecommended GET /api/posts/recommended
func GetRecommended(c *gin.Context) {
	serveFeed(c, KindRecommended)
}

// GetFollowings GET /api/posts/followings
func GetFollowings(c *gin.Context) {
	serveFeed(c, KindFollowings)
}

func serveFeed(c *gin.Context, kind Kind) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		logs.LogJSON("WARN", "Unauthenticated user requested feed", map[string]interface{}{
			"route": route,
			"kind":  string(kind),
		})
		return
	}

	posts, err := SelectFeed(userID, kind)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		logs.LogJSON("ERROR", "Feed selection failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"kind":   string(kind),
		})
		return
	}

	serialized := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		serialized = append(serialized, serializePost(p))
	}

	c.JSON(http.StatusOK, gin.H{"posts": serialized})
	logs.LogJSON("INFO", "Feed retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"kind":   string(kind),
		"count":  len(posts),
	})
}

func serializePost(p Post) gin.H {
	h := gin.H{
		"id":               p.ID,
		"prompt":           p.Prompt,
		"image_url":        storage.URLFromKey(p.ImageS3Key),
		"image_name":       p.ImageName,
		"image_age":        p.ImageAge,
		"image_birthplace": p.ImageBirthplace,
		"hash_tags":        p.HashTagList(),
		"like_count":       p.LikeCount,
		"super_like_count": p.SuperLikeCount,
		"user_id":          p.UserID,
		"user":             user.Serialize(p.User),
	}
	if p.SuperLikeUser != nil {
		h["super_like_user"] = *p.SuperLikeUser
	}
	return h
}
