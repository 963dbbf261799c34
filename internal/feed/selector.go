package feed

import (
	"fmt"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/database"
	"github.com/sofuetakuma112/bb-hono/internal/like"
	"github.com/sofuetakuma112/bb-hono/internal/post"
	"github.com/sofuetakuma112/bb-hono/internal/user"
)

type Kind string

const (
	KindRecommended Kind = "recommended"
	KindFollowings  Kind = "followings"
)

const (
	recommendedLimit = 50
	followingsLimit  = 25
)

// Post est un candidat du feed, annoté pour l'affichage.
type Post struct {
	post.Post
	LikeCount      int64
	SuperLikeCount int64
	// Acteur du super like le plus récent, pour le badge. Nil si aucun.
	SuperLikeUser *user.Serialized
}

// SelectFeed calcule la liste ordonnée de candidats à montrer au viewer.
func SelectFeed(viewerID string, kind Kind) ([]Post, error) {
	if viewerID == "" {
		return nil, apperr.ErrUnauthorized
	}
	if !user.ExistsByID(viewerID) {
		return nil, apperr.ErrNotFound
	}

	switch kind {
	case KindRecommended:
		return selectRecommended(viewerID)
	case KindFollowings:
		return selectFollowings(viewerID)
	default:
		return nil, apperr.ErrInvalid
	}
}

// selectRecommended : tous les posts approuvés, du plus récent au plus ancien.
// Un post n'est écarté que s'il est au viewer ET déjà réagi (hors unlike) :
// exclusion conjonctive, pas deux filtres indépendants.
func selectRecommended(viewerID string) ([]Post, error) {
	likedIDs, err := activeLikedPostIDs(viewerID)
	if err != nil {
		return nil, err
	}

	q := database.DB.
		Preload("User").
		Where("moderation_state = ?", post.ModerationApproved)
	if len(likedIDs) > 0 {
		q = q.Where("NOT (user_id = ? AND id IN ?)", viewerID, likedIDs)
	}

	var posts []post.Post
	if err := q.Order("id DESC").Limit(recommendedLimit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("sélection recommended : %w", err)
	}

	return annotate(posts)
}

// selectFollowings : deux univers concaténés, les posts super-likés par un
// followee d'abord (preuve sociale avant la simple récence), puis les posts
// publiés par les followees. Chaque univers est plafonné indépendamment.
func selectFollowings(viewerID string) ([]Post, error) {
	var followeeIDs []string
	if err := database.DB.Table("follows").
		Where("follower_id = ?", viewerID).
		Pluck("followee_id", &followeeIDs).Error; err != nil {
		return nil, fmt.Errorf("récupération followees : %w", err)
	}
	if len(followeeIDs) == 0 {
		return []Post{}, nil
	}

	var superIDs []string
	if err := database.DB.Model(&like.Like{}).
		Distinct("post_id").
		Where("user_id IN ? AND like_type = ?", followeeIDs, like.TypeSuperLike).
		Pluck("post_id", &superIDs).Error; err != nil {
		return nil, fmt.Errorf("récupération super likes followees : %w", err)
	}

	likedIDs, err := activeLikedPostIDs(viewerID)
	if err != nil {
		return nil, err
	}

	// Univers B : posts super-likés par un followee, sauf ceux du viewer ou déjà likés.
	var superPosts []post.Post
	if len(superIDs) > 0 {
		q := database.DB.
			Preload("User").
			Where("moderation_state = ?", post.ModerationApproved).
			Where("id IN ?", superIDs).
			Where("user_id <> ?", viewerID)
		if len(likedIDs) > 0 {
			q = q.Where("id NOT IN ?", likedIDs)
		}
		if err := q.Order("id DESC").Limit(followingsLimit).Find(&superPosts).Error; err != nil {
			return nil, fmt.Errorf("sélection posts super-likés : %w", err)
		}
	}

	// Univers A : posts publiés par les followees. Un post n'est écarté que
	// s'il est super-liké ET (au viewer OU déjà liké).
	qa := database.DB.
		Preload("User").
		Where("moderation_state = ?", post.ModerationApproved).
		Where("user_id IN ?", followeeIDs)
	if len(superIDs) > 0 {
		if len(likedIDs) > 0 {
			qa = qa.Where("NOT (id IN ? AND (user_id = ? OR id IN ?))", superIDs, viewerID, likedIDs)
		} else {
			qa = qa.Where("NOT (id IN ? AND user_id = ?)", superIDs, viewerID)
		}
	}
	var authoredPosts []post.Post
	if err := qa.Order("id DESC").Limit(followingsLimit).Find(&authoredPosts).Error; err != nil {
		return nil, fmt.Errorf("sélection posts followees : %w", err)
	}

	// B avant A, sans doublon entre les deux univers.
	seen := make(map[string]bool, len(superPosts))
	combined := make([]post.Post, 0, len(superPosts)+len(authoredPosts))
	for _, p := range superPosts {
		seen[p.ID] = true
		combined = append(combined, p)
	}
	for _, p := range authoredPosts {
		if !seen[p.ID] {
			combined = append(combined, p)
		}
	}

	return annotate(combined)
}

// activeLikedPostIDs : posts auxquels l'utilisateur a réagi autrement que par
// "unlike". Un unlike est une rétractation : il ne compte pas comme réaction.
func activeLikedPostIDs(userID string) ([]string, error) {
	var ids []string
	if err := database.DB.Model(&like.Like{}).
		Where("user_id = ? AND like_type <> ?", userID, like.TypeUnlike).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("récupération likes du viewer : %w", err)
	}
	return ids, nil
}

type reactionCountRow struct {
	PostID   string
	LikeType string
	Total    int64
}

type superLikeActorRow struct {
	PostID    string
	UserID    string
	Name      string
	AvatarURL string
}

// annotate ajoute les compteurs de réactions et l'acteur du super like le
// plus récent. Agrégation en mémoire sur un résultat déjà borné (≤ 50 posts).
func annotate(posts []post.Post) ([]Post, error) {
	if len(posts) == 0 {
		return []Post{}, nil
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var counts []reactionCountRow
	if err := database.DB.Model(&like.Like{}).
		Select("post_id, like_type, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id, like_type").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("comptage réactions : %w", err)
	}

	likeCounts := make(map[string]int64)
	superCounts := make(map[string]int64)
	for _, row := range counts {
		switch row.LikeType {
		case like.TypeLike:
			likeCounts[row.PostID] = row.Total
		case like.TypeSuperLike:
			superCounts[row.PostID] = row.Total
		}
	}

	var actors []superLikeActorRow
	if err := database.DB.Table("likes").
		Select("likes.post_id AS post_id, users.id AS user_id, users.name AS name, users.avatar_url AS avatar_url").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id IN ? AND likes.like_type = ?", ids, like.TypeSuperLike).
		Order("likes.created_at DESC").
		Scan(&actors).Error; err != nil {
		return nil, fmt.Errorf("récupération acteurs super like : %w", err)
	}

	// Premier rencontré = plus récent (tri DESC sur created_at).
	superActors := make(map[string]*user.Serialized)
	for _, row := range actors {
		if _, ok := superActors[row.PostID]; ok {
			continue
		}
		superActors[row.PostID] = &user.Serialized{
			ID:        row.UserID,
			Name:      row.Name,
			AvatarURL: row.AvatarURL,
		}
	}

	annotated := make([]Post, 0, len(posts))
	for _, p := range posts {
		annotated = append(annotated, Post{
			Post:           p,
			LikeCount:      likeCounts[p.ID],
			SuperLikeCount: superCounts[p.ID],
			SuperLikeUser:  superActors[p.ID],
		})
	}
	return annotated, nil
}
