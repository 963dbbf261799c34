package user

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

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

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		isAdmin  bool
		expected bool
	}{
		{name: "Admin user", isAdmin: true, expected: true},
		{name: "Regular user", isAdmin: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)

			mock.ExpectQuery(`FROM "users"`).
				WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(tt.isAdmin))

			admin, err := IsAdmin("user-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, admin)
		})
	}
}

func TestIsAdminUnknownUser(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}))

	admin, err := IsAdmin("ghost")

	assert.Error(t, err)
	assert.False(t, admin)
}

func TestExistsByID(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{name: "User exists", count: 1, expected: true},
		{name: "User missing", count: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)

			mock.ExpectQuery(`SELECT count`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			assert.Equal(t, tt.expected, ExistsByID("user-1"))
		})
	}
}
