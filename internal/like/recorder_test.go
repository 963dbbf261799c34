package like

import (
	"testing"
	"time"

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

func likeColumns() []string {
	return []string{"id", "created_at", "updated_at", "user_id", "post_id", "like_type"}
}

func TestReactUnauthorized(t *testing.T) {
	err := React("", "post-1", TypeLike)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestReactInvalidKind(t *testing.T) {
	err := React("user-1", "post-1", "love")
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestReactPostNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	err := React("user-1", "ghost-post", TypeLike)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReactFirstReactionInsertsAndNotifies(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("post-1", "author-1"))

	// Aucune réaction existante pour (user, post)
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows(likeColumns()))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "likes"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := React("user-1", "post-1", TypeLike)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactExistingReactionUpdatedInPlace(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("post-1", "author-1"))

	// Une ligne existe déjà : elle est mutée, jamais dupliquée
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows(likeColumns()).
			AddRow("like-1", time.Now(), time.Now(), "user-1", "post-1", TypeUnlike))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Re-liker après un unlike génère une nouvelle notification
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := React("user-1", "post-1", TypeLike)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactUnlikeNeverNotifies(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("post-1", "author-1"))
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows(likeColumns()).
			AddRow("like-1", time.Now(), time.Now(), "user-1", "post-1", TypeLike))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := React("user-1", "post-1", TypeUnlike)

	// Pas d'insertion de notification attendue
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactOwnPostDoesNotNotify(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("post-1", "user-1"))
	mock.ExpectQuery(`FROM "likes"`).
		WillReturnRows(sqlmock.NewRows(likeColumns()))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "likes"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := React("user-1", "post-1", TypeSuperLike)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
