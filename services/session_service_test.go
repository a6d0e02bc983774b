package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/eralpk/chirp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// login, mevcut kullanıcı için ek bir session açar.
func (e *testEnv) login(t *testing.T, usernameOrEmail string) *AuthResult {
	t.Helper()
	result, err := e.auth.Login(context.Background(), &models.LoginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        "sekret1",
		UserAgent:       "other-device/2.0",
	})
	require.NoError(t, err)
	return result
}

func sessionIDOf(t *testing.T, env *testEnv, result *AuthResult) string {
	t.Helper()
	claims, _ := env.codec.VerifyAccess(result.AccessToken)
	require.NotNil(t, claims)
	return claims.SessionID
}

func TestListSessionsMarksCurrent(t *testing.T) {
	env := newTestEnv(t)
	first := env.signup(t, "eralpk", "eralp@example.com")
	second := env.login(t, "eralpk")

	userID := first.User.ID
	currentID := sessionIDOf(t, env, second)

	infos, err := env.sessions.List(context.Background(), userID, currentID)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Yeniden eskiye sıralı — ilk eleman en yeni session.
	assert.Equal(t, currentID, infos[0].ID)
	assert.True(t, infos[0].IsCurrent)
	assert.False(t, infos[1].IsCurrent)

	require.NotNil(t, infos[0].UserAgent)
	assert.Equal(t, "other-device/2.0", *infos[0].UserAgent)
}

func TestDeleteCurrentSessionForbidden(t *testing.T) {
	env := newTestEnv(t)
	result := env.signup(t, "eralpk", "eralp@example.com")
	current := sessionIDOf(t, env, result)

	err := env.sessions.Delete(context.Background(), result.User.ID, current, current)
	assert.Equal(t, http.StatusForbidden, appStatus(t, err))
	assert.Equal(t, "You cannot delete your current session", appMessage(t, err))
}

func TestDeleteOtherSessionRevokesIt(t *testing.T) {
	env := newTestEnv(t)
	first := env.signup(t, "eralpk", "eralp@example.com")
	second := env.login(t, "eralpk")

	firstID := sessionIDOf(t, env, first)
	currentID := sessionIDOf(t, env, second)

	require.NoError(t, env.sessions.Delete(context.Background(), first.User.ID, currentID, firstID))

	// Silinen session'ın refresh token'ı artık işe yaramaz.
	_, err := env.auth.Refresh(context.Background(), first.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, appStatus(t, err))

	infos, err := env.sessions.List(context.Background(), first.User.ID, currentID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, currentID, infos[0].ID)
}

// Başka kullanıcının session id'si bilinse bile silinemez — Not Found.
func TestDeleteSessionScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	victim := env.signup(t, "victim", "victim@example.com")
	attacker := env.signup(t, "attacker", "attacker@example.com")

	victimSession := sessionIDOf(t, env, victim)
	attackerSession := sessionIDOf(t, env, attacker)

	err := env.sessions.Delete(context.Background(), attacker.User.ID, attackerSession, victimSession)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))

	// Kurbanın session'ı yerli yerinde.
	_, err = env.auth.Refresh(context.Background(), victim.RefreshToken)
	require.NoError(t, err)
}

func TestListExcludesExpiredSessions(t *testing.T) {
	env := newTestEnv(t)
	first := env.signup(t, "eralpk", "eralp@example.com")
	second := env.login(t, "eralpk")

	firstID := sessionIDOf(t, env, first)
	currentID := sessionIDOf(t, env, second)

	// İlk session'ın süresini geçmişe çek.
	require.NoError(t, env.sessionRepo.UpdateExpiresAt(
		context.Background(), firstID, expiredTime()))

	infos, err := env.sessions.List(context.Background(), first.User.ID, currentID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, currentID, infos[0].ID)
}
