package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eralpk/chirp/database"
	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/google/uuid"
)

// sqliteCodeRepo, CodeRepository interface'inin SQLite implementasyonu.
type sqliteCodeRepo struct {
	db database.TxQuerier
}

// NewSQLiteCodeRepo, constructor.
func NewSQLiteCodeRepo(db database.TxQuerier) CodeRepository {
	return &sqliteCodeRepo{db: db}
}

func (r *sqliteCodeRepo) Create(ctx context.Context, code *models.VerificationCode) error {
	// ID aynı zamanda kodun kendisidir — UUID v4, 122 bit random.
	// Email linkine gömülür; tahmin edilemezliği buradan gelir.
	code.ID = uuid.NewString()
	code.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO verification_codes (id, user_id, type, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		code.ID,
		code.UserID,
		code.Type,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	return nil
}

func (r *sqliteCodeRepo) GetByID(ctx context.Context, id string) (*models.VerificationCode, error) {
	query := `
		SELECT id, user_id, type, expires_at, created_at
		FROM verification_codes WHERE id = ?`

	code := &models.VerificationCode{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&code.ID, &code.UserID, &code.Type, &code.ExpiresAt, &code.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return code, nil
}

func (r *sqliteCodeRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	if affected == 0 {
		// Tüketim yarışında ikinci silen buraya düşer — at-most-once garantisi.
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqliteCodeRepo) CountByTypeCreatedAfter(ctx context.Context, userID string, codeType models.CodeType, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM verification_codes
		WHERE user_id = ? AND type = ? AND created_at > ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, codeType, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count verification codes: %w", err)
	}

	return count, nil
}

func (r *sqliteCodeRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to delete expired verification codes: %w", err)
	}
	return nil
}
