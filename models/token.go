package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, imzalı token'ın payload'ı.
//
// İki token türü aynı claims struct'ını paylaşır:
//   - Access token: UserID + SessionID — korumalı endpoint'ler için kimlik kanıtı
//   - Refresh token: sadece SessionID — yeni access token basmak için
//
// Refresh token'a UserID konulmaz: refresh akışı user'ı zaten session
// kaydından okur. Token'daki fazla her alan, sızarsa fazla bilgidir.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (pkg/token, services, middleware) tarafından kullanılır —
// her katman models'e bağımlı olabilir, circular dependency oluşmaz.
type TokenClaims struct {
	UserID    string `json:"userId,omitempty"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}
