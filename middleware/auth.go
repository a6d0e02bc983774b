// Package middleware, HTTP middleware'lerini barındırır.
package middleware

import (
	"context"
	"net/http"

	"github.com/eralpk/chirp/pkg"
	"github.com/eralpk/chirp/pkg/token"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	sessionIDKey contextKey = "sessionID"
)

// Authenticate, accessToken cookie'sini doğrular ve claim'leri context'e koyar.
//
// DB'ye GİTMEZ — access token 15 dakikalık olduğu için imza + süre kontrolü
// yeterlidir; session'ın hâlâ var olup olmadığını refresh akışı denetler.
// errorCode alanı client'a "refresh dene" ile "login'e dön" ayrımını yaptırır.
func Authenticate(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("accessToken")
			if err != nil || cookie.Value == "" {
				pkg.Error(w, pkg.Assert(false, http.StatusUnauthorized,
					"Not authorized", pkg.CodeInvalidAccessToken))
				return
			}

			claims, reason := codec.VerifyAccess(cookie.Value)
			if claims == nil {
				message := "Invalid token"
				if reason == token.ReasonExpired {
					message = "Token expired"
				}
				pkg.Error(w, pkg.Assert(false, http.StatusUnauthorized,
					message, pkg.CodeInvalidAccessToken))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, sessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext, Authenticate'in koyduğu userID'yi döner.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// SessionIDFromContext, Authenticate'in koyduğu sessionID'yi döner.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
