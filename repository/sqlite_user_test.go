package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(username, email string) *models.User {
	return &models.User{
		Name:         "Test User",
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$12$fakehash",
	}
}

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	user := newUser("eralpk", "eralp@example.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "eralpk", got.Username)
	assert.False(t, got.Verified)

	_, err = repo.GetByID(ctx, "no-such-id")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

// Unique index ihlalleri repo katmanında 409 AppError'a çevrilir —
// service'in ön kontrolünü yarışta kaçan INSERT'ler için son savunma.
func TestUserCreateMapsUniqueViolations(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("eralpk", "eralp@example.com")))

	err := repo.Create(ctx, newUser("eralpk", "other@example.com"))
	require.Error(t, err)
	var appErr *pkg.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Status)

	err = repo.Create(ctx, newUser("otheruser", "eralp@example.com"))
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

// COLLATE NOCASE: username ve email aramaları büyük/küçük harf duyarsız.
func TestUserLookupsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("eralpk", "eralp@example.com")))

	got, err := repo.GetByUsername(ctx, "ERALPK")
	require.NoError(t, err)
	assert.Equal(t, "eralpk", got.Username)

	got, err = repo.GetByEmail(ctx, "Eralp@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "eralp@example.com", got.Email)

	got, err = repo.GetByUsernameOrEmail(ctx, "ERALPK")
	require.NoError(t, err)
	assert.Equal(t, "eralpk", got.Username)

	got, err = repo.GetByUsernameOrEmail(ctx, "eralp@example.com")
	require.NoError(t, err)
	assert.Equal(t, "eralpk", got.Username)
}

func TestUserSetVerifiedAndUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	user := newUser("eralpk", "eralp@example.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.SetVerified(ctx, user.ID))
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "$2a$12$newhash"))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$newhash", got.PasswordHash)

	// Olmayan kullanıcıya yazmak ErrNotFound.
	assert.True(t, errors.Is(repo.SetVerified(ctx, "no-such-id"), pkg.ErrNotFound))
	assert.True(t, errors.Is(repo.UpdatePassword(ctx, "no-such-id", "x"), pkg.ErrNotFound))
}
