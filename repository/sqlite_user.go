package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eralpk/chirp/database"
	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/google/uuid"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
// db field'ı TxQuerier — normal akışta *sql.DB, transaction içinde *sql.Tx.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, constructor. Interface döner, concrete struct değil.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

const userColumns = `id, name, username, email, password_hash, verified, created_at`

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, name, username, email, password_hash, verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Verified,
		user.CreatedAt,
	)

	if err != nil {
		// UNIQUE constraint violation — service katmanı zaten ön kontrol yapar,
		// burası eşzamanlı signup yarışının backstop'ıdır.
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "idx_users_email") {
				return &pkg.AppError{Status: http.StatusConflict, Message: "Email already in use"}
			}
			return &pkg.AppError{Status: http.StatusConflict, Message: "Username already in use"}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *sqliteUserRepo) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ?`
	return r.getOne(ctx, query, usernameOrEmail, usernameOrEmail)
}

func (r *sqliteUserRepo) SetVerified(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET verified = 1 WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to set user verified: %w", err)
	}
	return requireAffected(result, "set user verified")
}

func (r *sqliteUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(result, "update password")
}

func (r *sqliteUserRepo) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email,
		&user.PasswordHash, &user.Verified, &user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını tanır.
// modernc.org/sqlite typed error vermez — mesaj kontrolü gerekir.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

// requireAffected, UPDATE'in bir satıra dokunduğunu doğrular —
// dokunmadıysa hedef kayıt yok demektir.
func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
