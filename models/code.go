package models

import "time"

// CodeType, bir verification code'un hangi amaçla oluşturulduğunu belirtir.
// Go'da enum yoktur — typed constant kullanılır. Tip kontrolü sayesinde
// bir email doğrulama kodu şifre sıfırlamada kullanılamaz.
type CodeType string

const (
	CodeEmailVerification CodeType = "email_verification"
	CodePasswordReset     CodeType = "password_reset"
)

// VerificationCode, tek kullanımlık, tipli, süreli bir kod kaydıdır.
// ID aynı zamanda kodun kendisidir (UUID) — email linkine gömülür.
//
// Tüketim YIKICIDIR: kod geçerliyse etkisi uygulanır ve kayıt AYNI
// transaction içinde silinir. At-most-once garantisi buradan gelir —
// aynı link ikinci kez tıklandığında kayıt artık yoktur.
//
// Süreler: email doğrulama ~1 yıl (acelesi yok), şifre sıfırlama ~1 saat
// (email'de bekleyen bir reset linki saldırı yüzeyidir, kısa tutulur).
type VerificationCode struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      CodeType  `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
