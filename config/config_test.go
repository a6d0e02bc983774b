package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", "test-access")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 30, cfg.JWT.SessionExpiryDays)
	assert.Equal(t, "./data/chirp.db", cfg.Database.Path)
	assert.Equal(t, "noreply@chirp.app", cfg.Mail.FromEmail)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("JWT_ACCESS_EXPIRY_MINUTES", "5")
	t.Setenv("SESSION_EXPIRY_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 5, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7, cfg.JWT.SessionExpiryDays)
}

// Secret'sız ayağa kalkmak yasak — sessizce varsayılan secret'a düşmek yok.
func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "x")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_ACCESS_SECRET", "x")
	t.Setenv("JWT_REFRESH_SECRET", "")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}
