// Package handlers, HTTP endpoint'lerini barındırır.
//
// Handler'lar ince tutulur: request parse et, service çağır, response yaz.
// İş kuralı handler'da yaşamaz.
package handlers

import (
	"net/http"
	"time"

	"github.com/eralpk/chirp/pkg/token"
)

// Cookie isimleri ve path'leri.
//
// refreshToken cookie'si SADECE /auth/refresh path'ine scope'ludur:
// tarayıcı bu cookie'yi başka hiçbir endpoint'e göndermez, böylece
// uzun ömürlü token'ın maruziyeti tek endpoint'e sıkışır.
const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
	refreshPath        = "/auth/refresh"
)

// setAuthCookies, access + refresh token çiftini HttpOnly cookie olarak yazar.
// HttpOnly: JavaScript cookie'yi okuyamaz, XSS token çalamaz.
func setAuthCookies(w http.ResponseWriter, codec *token.Codec, accessToken, refreshToken string) {
	setAccessCookie(w, codec, accessToken)

	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     refreshPath,
		MaxAge:   int(codec.RefreshTTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func setAccessCookie(w http.ResponseWriter, codec *token.Codec, accessToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(codec.AccessTTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies, iki cookie'yi de geçersizleştirir.
// Path'ler set edilenlerle birebir aynı olmak ZORUNDA — tarayıcı
// cookie'yi (name, path) çifti üzerinden eşler.
func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     refreshPath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieValue, ilgili cookie'nin değerini döner; yoksa boş string.
func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
