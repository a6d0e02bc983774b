// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan katman.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface sayesinde:
// 1. Test: in-memory SQLite ile veya mock ile DB'siz test
// 2. Esneklik: SQLite'tan PostgreSQL'e geçiş = yeni implementasyon
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
//
// Kayıt bulunamadığında her Get* method'u pkg.ErrNotFound döner —
// service katmanı bunu bağlama uygun AppError'a çevirir.
package repository

import (
	"context"

	"github.com/eralpk/chirp/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// Username ve email sütunları COLLATE NOCASE'dir: tüm lookup'lar ve
// uniqueness kontrolü case-insensitive çalışır. "Ali" kayıtlıysa
// "ali" ile login olunur ama "ALİ" diye ikinci hesap açılamaz.
type UserRepository interface {
	// Create, yeni kullanıcı kaydı oluşturur. ID ve CreatedAt doldurulur.
	// Username veya email çakışırsa 409 Conflict AppError döner —
	// eşzamanlı signup yarışında store-level uniqueness son sözü söyler.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsernameOrEmail, login için tek sorguda iki alanı da dener.
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error)

	// SetVerified, email doğrulama kodu tüketildiğinde verified=true yazar.
	SetVerified(ctx context.Context, userID string) error

	// UpdatePassword, şifre hash'ini değiştirir — sadece reset akışından çağrılır.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
