package repository

import (
	"context"
	"time"

	"github.com/eralpk/chirp/models"
)

// SessionRepository, session kayıtları için interface.
//
// Süresi dolan session'lar arka planda TARANMAZ — geçerlilik kullanım
// anında lazy kontrol edilir. DeleteExpired fırsat temizliğidir,
// doğruluk için gerekli değildir.
type SessionRepository interface {
	// Create, yeni session oluşturur. ID ve CreatedAt doldurulur.
	Create(ctx context.Context, session *models.Session) error

	GetByID(ctx context.Context, id string) (*models.Session, error)

	// UpdateExpiresAt, session ömrünü ileri kaydırır (sliding renewal).
	UpdateExpiresAt(ctx context.Context, id string, expiresAt time.Time) error

	// DeleteByID, tek session siler (logout).
	DeleteByID(ctx context.Context, id string) error

	// DeleteByIDForUser, sadece verilen kullanıcıya aitse siler.
	// Kayıt yok veya başkasına aitse pkg.ErrNotFound — başka kullanıcının
	// session'ı silinEMEZ ve varlığı da belli edilmez.
	DeleteByIDForUser(ctx context.Context, id, userID string) error

	// DeleteByUserID, kullanıcının TÜM session'larını siler —
	// şifre sıfırlamada her yerden logout için.
	DeleteByUserID(ctx context.Context, userID string) error

	// ListActiveByUserID, süresi dolmamış session'ları yeniden eskiye döner.
	ListActiveByUserID(ctx context.Context, userID string) ([]models.Session, error)

	// DeleteExpired, süresi dolmuş tüm session'ları temizler.
	DeleteExpired(ctx context.Context) error
}
