package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	migrationsFS, err := fs.Sub(EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func countUsers(t *testing.T, db *DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func insertUser(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, name, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, "Tx User", "u_"+id, id+"@example.com", "hash", time.Now().UTC())
	return err
}

func TestWithTxCommits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		return insertUser(ctx, tx, "a1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, db))
}

// fn hata dönerse transaction'daki HİÇBİR yazma kalıcı olmamalı.
func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if err := insertUser(ctx, tx, "a1"); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 0, countUsers(t, db))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
			if err := insertUser(ctx, tx, "a1"); err != nil {
				return err
			}
			panic("boom")
		})
	})
	assert.Equal(t, 0, countUsers(t, db))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	migrationsFS, err := fs.Sub(EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := New(path, migrationsFS)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// İkinci açılış aynı migration'ları tekrar uygulamaz.
	db, err = New(path, migrationsFS)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
