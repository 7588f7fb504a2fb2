package repository

import (
	"context"
	"errors"
	"testing"

	"traveltales/internal/cache"
	"traveltales/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "active"}).
					AddRow(1, "testuser", "test@example.com", true)
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 AND active = \$2`).
					WithArgs(1, true, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 AND active = \$2`).
					WithArgs(99, true, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
		{
			name:   "Database Error",
			userID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 AND active = \$2`).
					WithArgs(1, true, 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "active"}).
		AddRow(7, "kate", "kate@example.com", true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 AND active = \$2`).
		WithArgs("kate@example.com", true, 1).
		WillReturnRows(rows)

	user, err := repo.GetByEmail(ctx, "kate@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "kate", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_AbsenceIsNotAnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 AND active = \$2`).
		WithArgs("nobody@example.com", true, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_AbsenceIsNotAnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1 AND active = \$2`).
		WithArgs("nobody", true, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByUsername(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user := &models.User{Username: "newbie", Email: "newbie@example.com", Password: "hash", Active: true}
	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateMapsToSentinel(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.User{Username: "dupe", Email: "dupe@example.com", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Nil", nil, false},
		{"Postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"Postgres other violation", &pgconn.PgError{Code: "23503"}, false},
		{"SQLite message", errors.New("UNIQUE constraint failed: users.email"), true},
		{"Generic duplicate key message", errors.New(`duplicate key value violates unique constraint "users_email_key"`), true},
		{"Unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueConstraintError(tt.err))
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "leaver")
	require.NoError(t, repo.Delete(ctx, user.ID))

	// Soft delete keeps the row but hides it from reads.
	var raw models.User
	require.NoError(t, db.First(&raw, user.ID).Error)
	assert.False(t, raw.Active)

	fetched, err := repo.GetByUsername(ctx, "leaver")
	require.NoError(t, err)
	assert.Nil(t, fetched)

	err = repo.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Runs serially: it swaps the package-level cache client and restores it in
// cleanup before any parallel test resumes.
func TestUserRepository_UpdateAfterCacheHitKeepsCredentials(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(c)
	t.Cleanup(func() {
		_ = c.Close()
		cache.SetClient(nil)
	})

	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "wanderer")
	originalHash := user.Password

	// First read fills the cache, second read is served from it. The cached
	// copy must carry the fields the JSON API hides.
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, fetched.Password)
	assert.True(t, fetched.Active)

	fetched.FirstName = "Wanda"
	require.NoError(t, repo.Update(ctx, fetched))

	var raw models.User
	require.NoError(t, db.First(&raw, user.ID).Error)
	assert.Equal(t, "Wanda", raw.FirstName)
	assert.Equal(t, originalHash, raw.Password, "password hash must survive a cache-served update")
	assert.True(t, raw.Active, "account must stay active after a profile update")

	byEmail, err := repo.GetByEmail(ctx, raw.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail, "login lookup must still find the account")
}

func TestUserRepository_CreateAndUpdateRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "rover", Email: "rover@example.com", Password: "hash", Active: true}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	// Second create with the same email collides on the real constraint.
	err := repo.Create(ctx, &models.User{Username: "rover2", Email: "rover@example.com", Password: "hash", Active: true})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	user.FirstName = "Rover"
	require.NoError(t, repo.Update(ctx, user))

	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rover", fetched.FirstName)
}
