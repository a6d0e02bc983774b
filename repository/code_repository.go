// Package repository — CodeRepository interface tanımı.
//
// Verification code'lar tek kullanımlık, tipli, süreli kayıtlardır.
// Tüketim (etki + silme) service katmanında database.WithTx içinde yapılır —
// repository sadece CRUD sağlar, transaction sınırlarını bilmez.
package repository

import (
	"context"
	"time"

	"github.com/eralpk/chirp/models"
)

// CodeRepository, verification code veritabanı işlemleri için interface.
type CodeRepository interface {
	// Create, yeni kod oluşturur. ID (UUID — kodun kendisi) ve CreatedAt doldurulur.
	Create(ctx context.Context, code *models.VerificationCode) error

	// GetByID, kodu bulur. Tip ve expiry kontrolü CALLER'ın işidir.
	GetByID(ctx context.Context, id string) (*models.VerificationCode, error)

	// DeleteByID, kodu siler (başarılı tüketim sonrası).
	DeleteByID(ctx context.Context, id string) error

	// CountByTypeCreatedAfter, kullanıcının verilen tipte ve verilen andan
	// sonra oluşturulmuş kod sayısını döner — rate limit kontrolü için.
	CountByTypeCreatedAfter(ctx context.Context, userID string, codeType models.CodeType, since time.Time) (int, error)

	// DeleteExpired, süresi dolmuş tüm kodları temizler.
	// Forgot-password akışında fırsat temizliği olarak çağrılır —
	// ayrı bir cron job'a gerek kalmaz.
	DeleteExpired(ctx context.Context) error
}
