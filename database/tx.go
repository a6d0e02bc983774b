// Package database — transaction yönetimi.
//
// Verification code tüketimi yıkıcıdır: kodun etkisi (verified=true yazmak,
// şifreyi değiştirmek) ve kodun silinmesi TEK birim olarak çalışmalıdır.
// Etki başarısız olursa kod silinmemiş olmalı; kod silinemezse etki
// uygulanmamış olmalı. WithTx bunu sağlar.
//
// Repository'ler ile kullanım: repository constructor'ları TxQuerier kabul
// eder — normal akışta *sql.DB, WithTx içinde *sql.Tx geçirilir. İkisi de
// aynı interface'i karşılar, repository kodu farkı bilmez.
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TxQuerier, hem *sql.DB hem *sql.Tx tarafından karşılanan interface.
// database/sql bu interface'i tanımlamaz — biz tanımlarız,
// Go'nun implicit interface'leri sayesinde her ikisi de otomatik karşılar.
type TxQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx, verilen fonksiyonu bir SQL transaction içinde çalıştırır.
//
// fn nil dönerse COMMIT, error dönerse ROLLBACK. fn panic atarsa
// ROLLBACK yapılır ve panic tekrar fırlatılır — rollback yapılmadan
// açık kalan transaction DB lock'a neden olur.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(tx)
	return
}
