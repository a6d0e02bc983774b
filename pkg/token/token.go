// Package token — access ve refresh token'ları imzalayan/doğrulayan codec.
//
// İki token türü, iki ayrı secret ve iki ayrı ömürle imzalanır:
//   - Access: {userId, sessionId}, kısa ömür (15dk) — her istekte kimlik kanıtı
//   - Refresh: {sessionId}, uzun ömür (30 gün, session ömrüyle aynı) —
//     SADECE yeni access token basmak için kullanılır
//
// Doğrulama hatası bu katmanda beklenen ve SIK bir sonuçtur: süresi dolmuş
// cookie'ler, forge edilmiş token'lar her gün gelir. Bu yüzden Verify error
// DEĞİL, (claims, reason) döner — caller lineer akışla "expired" ve "invalid"
// için farklı kullanıcı mesajı üretir, error-handling dallanması olmaz.
package token

import (
	"errors"
	"time"

	"github.com/eralpk/chirp/models"
	"github.com/golang-jwt/jwt/v5"
)

// Verify'ın dönebileceği reason değerleri.
// Boş string → token geçerli, claims dolu.
const (
	ReasonExpired = "expired"
	ReasonInvalid = "invalid"
)

const issuer = "chirp"

// Codec, token imzalama/doğrulama işlemlerini yapan struct.
// Secret'lar ve ömürler constructor'da sabitlenir — sonradan değişmez.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec, constructor.
//
// accessExpMinutes: access token ömrü dakika cinsinden (ör: 15).
// sessionExpDays: refresh token ömrü gün cinsinden — session ömrüyle
// aynıdır (ör: 30), refresh token session'dan uzun yaşayamaz.
func NewCodec(accessSecret, refreshSecret string, accessExpMinutes, sessionExpDays int) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessExpMinutes) * time.Minute,
		refreshTTL:    time.Duration(sessionExpDays) * 24 * time.Hour,
	}
}

// AccessTTL, access token ömrünü döner — cookie MaxAge için.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL, refresh token ömrünü döner — cookie MaxAge için.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// SignAccess, {userId, sessionId} taşıyan kısa ömürlü access token imzalar.
func (c *Codec) SignAccess(userID, sessionID string) (string, error) {
	return c.sign(&models.TokenClaims{UserID: userID, SessionID: sessionID}, c.accessSecret, c.accessTTL)
}

// SignRefresh, sadece {sessionId} taşıyan uzun ömürlü refresh token imzalar.
func (c *Codec) SignRefresh(sessionID string) (string, error) {
	return c.sign(&models.TokenClaims{SessionID: sessionID}, c.refreshSecret, c.refreshTTL)
}

// VerifyAccess, access token'ı doğrular.
// Dönüş: (claims, "") geçerliyse; (nil, reason) değilse.
func (c *Codec) VerifyAccess(tokenString string) (*models.TokenClaims, string) {
	return c.verify(tokenString, c.accessSecret)
}

// VerifyRefresh, refresh token'ı doğrular.
func (c *Codec) VerifyRefresh(tokenString string) (*models.TokenClaims, string) {
	return c.verify(tokenString, c.refreshSecret)
}

// sign, claims'e standart metadata (issued-at, expiry, issuer) ekleyip
// HS256 ile imzalar. İmzalama hatası beklenmedik bir durumdur — error döner.
func (c *Codec) sign(claims *models.TokenClaims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify, imzayı ve expiry'yi kontrol eder.
//
// "expired" ve "invalid" ayrımı önemli: süresi dolmuş access token normal
// akıştır (client refresh'e gider), geçersiz imza ise ya bug ya saldırıdır.
// jwt.WithValidMethods ile algoritma sabitlenir — "alg":"none" veya
// RS256/HS256 karıştırma saldırıları imkansız hale gelir.
func (c *Codec) verify(tokenString string, secret []byte) (*models.TokenClaims, string) {
	claims := &models.TokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ReasonExpired
		}
		return nil, ReasonInvalid
	}

	return claims, ""
}
