package models

import "time"

// Session, bir tarayıcı/cihaz oturumunu temsil eden server-side kayıttır.
//
// Token'lar stateless olduğu halde session neden DB'de?
// İmzası hâlâ geçerli bir token'ı geri çağırmanın (revoke) tek yolu,
// referans verdiği session kaydını silmektir. Session, geçerliliğin
// asıl kaynağıdır (source of truth) — token sadece ona işaret eder.
//
// Geçerlilik kuralı: now < ExpiresAt. Süresi dolan session'lar arka planda
// taranmaz — kullanım anında lazy kontrol edilir.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserAgent *string   `json:"userAgent"` // *string = nullable — client göndermemiş olabilir
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionInfo, GET /session listesinde dönen sadeleştirilmiş görünüm.
// ExpiresAt ve UserID client'ı ilgilendirmez; IsCurrent sadece
// istekte kullanılan oturum için true olur ve JSON'da o zaman görünür.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent *string   `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
	IsCurrent bool      `json:"isCurrent,omitempty"`
}
