package feed

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sofuetakuma112/bb-hono/internal/apperr"
	"github.com/sofuetakuma112/bb-hono/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func postColumns() []string {
	return []string{"id", "user_id", "prompt", "hash_tags", "moderation_state"}
}

func TestSelectFeedUnauthorized(t *testing.T) {
	_, err := SelectFeed("", KindRecommended)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestSelectFeedViewerNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := SelectFeed("ghost", KindRecommended)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSelectFeedInvalidKind(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := SelectFeed("viewer-1", Kind("trending"))
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestSelectFeedRecommended(t *testing.T) {
	mock := setupMockDB(t)

	// Le viewer existe
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// Réactions actives du viewer
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("post-3"))

	// Posts approuvés, exclusion conjonctive (à soi ET déjà liké), tri
	// décroissant par id, plafond à 50. La clause est épinglée telle quelle :
	// un filtre devenu disjonctif ou un LIMIT/ORDER BY perdu ferait échouer
	// l'attente.
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE moderation_state = \$1 AND NOT \(user_id = \$2 AND id IN \(\$3\)\) ORDER BY id DESC LIMIT \$4`).
		WithArgs("approved", "viewer-1", "post-3", 50).
		WillReturnRows(sqlmock.NewRows(postColumns()).
			AddRow("post-9", "author-2", "un prompt", `["#mer"]`, "approved").
			AddRow("post-5", "author-3", "un autre", `[]`, "approved"))

	// Preload des auteurs
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("author-2", "Alice").
			AddRow("author-3", "Bob"))

	// Compteurs de réactions
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "like_type", "total"}).
			AddRow("post-9", "like", 3).
			AddRow("post-9", "super_like", 1))

	// Acteurs des super likes, le plus récent d'abord
	mock.ExpectQuery(`JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id", "name", "avatar_url"}).
			AddRow("post-9", "actor-1", "Chloé", "").
			AddRow("post-9", "actor-7", "Marc", ""))

	posts, err := SelectFeed("viewer-1", KindRecommended)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)

	// Ordre décroissant par id
	assert.Equal(t, "post-9", posts[0].ID)
	assert.Equal(t, "post-5", posts[1].ID)

	// Tous approuvés
	for _, p := range posts {
		assert.Equal(t, "approved", p.ModerationState)
	}

	// Annotations
	assert.Equal(t, int64(3), posts[0].LikeCount)
	assert.Equal(t, int64(1), posts[0].SuperLikeCount)
	if assert.NotNil(t, posts[0].SuperLikeUser) {
		assert.Equal(t, "actor-1", posts[0].SuperLikeUser.ID)
	}
	assert.Nil(t, posts[1].SuperLikeUser)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectFeedRecommendedEmpty(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}))

	// Sans réaction du viewer, pas de clause d'exclusion, mais le tri et le
	// plafond restent.
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE moderation_state = \$1 ORDER BY id DESC LIMIT \$2`).
		WithArgs("approved", 50).
		WillReturnRows(sqlmock.NewRows(postColumns()))

	posts, err := SelectFeed("viewer-1", KindRecommended)

	// Aucun candidat : séquence vide, pas une erreur
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSelectFeedFollowings(t *testing.T) {
	mock := setupMockDB(t)

	// Le viewer existe
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// Followees du viewer : A et B
	mock.ExpectQuery(`FROM "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}).
			AddRow("user-a").
			AddRow("user-b"))

	// Posts super-likés par un followee
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("post-9"))

	// Réactions actives du viewer : aucune
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}))

	// Univers B : posts super-likés par un followee, sauf ceux du viewer, tri
	// décroissant par id, plafond à 25.
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE moderation_state = \$1 AND id IN \(\$2\) AND user_id <> \$3 ORDER BY id DESC LIMIT \$4`).
		WithArgs("approved", "post-9", "viewer-1", 25).
		WillReturnRows(sqlmock.NewRows(postColumns()).
			AddRow("post-9", "user-b", "vu par A", `[]`, "approved"))
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("user-b", "B"))

	// Univers A : posts des followees, exclusion conjonctive (super-liké ET à
	// soi), même tri et même plafond à 25. post-9 y réapparaît.
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE moderation_state = \$1 AND user_id IN \(\$2,\$3\) AND NOT \(id IN \(\$4\) AND user_id = \$5\) ORDER BY id DESC LIMIT \$6`).
		WithArgs("approved", "user-a", "user-b", "post-9", "viewer-1", 25).
		WillReturnRows(sqlmock.NewRows(postColumns()).
			AddRow("post-9", "user-b", "vu par A", `[]`, "approved").
			AddRow("post-5", "user-a", "par A", `[]`, "approved"))
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("user-a", "A").
			AddRow("user-b", "B"))

	// Compteurs et acteur du super like (A a super-liké post-9)
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "like_type", "total"}).
			AddRow("post-9", "super_like", 1))
	mock.ExpectQuery(`JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id", "name", "avatar_url"}).
			AddRow("post-9", "user-a", "A", ""))

	posts, err := SelectFeed("viewer-1", KindFollowings)

	assert.NoError(t, err)

	// Le post super-liké passe devant, sans doublon entre les deux univers
	assert.Len(t, posts, 2)
	assert.Equal(t, "post-9", posts[0].ID)
	assert.Equal(t, "post-5", posts[1].ID)

	// Tous les auteurs font partie des followees
	followees := map[string]bool{"user-a": true, "user-b": true}
	for _, p := range posts {
		assert.True(t, followees[p.UserID])
	}

	// Badge : l'acteur du super like est le followee A
	if assert.NotNil(t, posts[0].SuperLikeUser) {
		assert.Equal(t, "user-a", posts[0].SuperLikeUser.ID)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectFeedFollowingsWithoutFollowees(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}))

	posts, err := SelectFeed("viewer-1", KindFollowings)

	assert.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
