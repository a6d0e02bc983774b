package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return NewCodec("access-secret", "refresh-secret", 15, 30)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := newTestCodec()

	signed, err := codec.SignAccess("user-1", "session-1")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, reason := codec.VerifyAccess(signed)
	require.NotNil(t, claims, "reason: %s", reason)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	codec := newTestCodec()

	signed, err := codec.SignRefresh("session-1")
	require.NoError(t, err)

	claims, _ := codec.VerifyRefresh(signed)
	require.NotNil(t, claims)
	assert.Equal(t, "session-1", claims.SessionID)
	// Refresh token userId taşımaz.
	assert.Empty(t, claims.UserID)
}

func TestExpiredTokenReportsExpired(t *testing.T) {
	// Negatif TTL ile token doğduğu anda süresi dolmuş olur.
	codec := newTestCodec()
	codec.accessTTL = -time.Minute

	signed, err := codec.SignAccess("user-1", "session-1")
	require.NoError(t, err)

	claims, reason := codec.VerifyAccess(signed)
	assert.Nil(t, claims)
	assert.Equal(t, ReasonExpired, reason)
}

func TestWrongSecretIsInvalid(t *testing.T) {
	codec := newTestCodec()
	other := NewCodec("different-access", "different-refresh", 15, 30)

	signed, err := codec.SignAccess("user-1", "session-1")
	require.NoError(t, err)

	claims, reason := other.VerifyAccess(signed)
	assert.Nil(t, claims)
	assert.Equal(t, ReasonInvalid, reason)
}

// Access ve refresh secret'ları ayrıdır — bir access token refresh
// endpoint'inde geçmemeli (ve tersi).
func TestTokensDoNotCrossVerify(t *testing.T) {
	codec := newTestCodec()

	access, err := codec.SignAccess("user-1", "session-1")
	require.NoError(t, err)
	refresh, err := codec.SignRefresh("session-1")
	require.NoError(t, err)

	claims, reason := codec.VerifyRefresh(access)
	assert.Nil(t, claims)
	assert.Equal(t, ReasonInvalid, reason)

	claims, reason = codec.VerifyAccess(refresh)
	assert.Nil(t, claims)
	assert.Equal(t, ReasonInvalid, reason)
}

func TestTamperedTokenIsInvalid(t *testing.T) {
	codec := newTestCodec()

	signed, err := codec.SignAccess("user-1", "session-1")
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	claims, reason := codec.VerifyAccess(tampered)
	assert.Nil(t, claims)
	assert.Equal(t, ReasonInvalid, reason)
}
