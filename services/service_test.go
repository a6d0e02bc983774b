package services

// Test altyapısı: service testleri mock repository yerine GERÇEK SQLite
// üzerinde çalışır (temp dosya + embedded migration'lar). Transaction'lı
// akışlar (code tüketimi) ancak gerçek DB ile anlamlı test edilir.

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eralpk/chirp/database"
	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/eralpk/chirp/pkg/token"
	"github.com/eralpk/chirp/repository"
	"github.com/stretchr/testify/require"
)

// fakeMailer, gönderilen email'leri kaydeder — dışarı hiçbir şey gitmez.
type fakeMailer struct {
	mu          sync.Mutex
	verifyCodes []string
	resetCodes  []string
	failReset   bool
}

func (f *fakeMailer) SendEmailVerification(_ context.Context, _, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCodes = append(f.verifyCodes, code)
	return nil
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, _, code string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReset {
		return context.DeadlineExceeded
	}
	f.resetCodes = append(f.resetCodes, code)
	return nil
}

func (f *fakeMailer) lastResetCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.resetCodes)
	return f.resetCodes[len(f.resetCodes)-1]
}

// testEnv, bir testin ihtiyaç duyduğu her şeyi bir arada tutar.
type testEnv struct {
	db          *database.DB
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	codeRepo    repository.CodeRepository
	codec       *token.Codec
	mailer      *fakeMailer
	auth        AuthService
	sessions    SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	codeRepo := repository.NewSQLiteCodeRepo(db.Conn)
	codec := token.NewCodec("test-access-secret", "test-refresh-secret", 15, 30)
	mailer := &fakeMailer{}

	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		codeRepo:    codeRepo,
		codec:       codec,
		mailer:      mailer,
		auth:        NewAuthService(userRepo, sessionRepo, codeRepo, codec, mailer, db.Conn, 30),
		sessions:    NewSessionService(sessionRepo),
	}
}

// signup, testler için hazır kullanıcı oluşturur.
func (e *testEnv) signup(t *testing.T, username, email string) *AuthResult {
	t.Helper()
	result, err := e.auth.Signup(context.Background(), &models.SignupRequest{
		Name:      "Test User",
		Username:  username,
		Email:     email,
		Password:  "sekret1",
		UserAgent: "go-test/1.0",
	})
	require.NoError(t, err)
	return result
}

// codeFor, kullanıcının verilen tipteki kodunu doğrudan DB'den okur.
// Signup'ın doğrulama email'i goroutine'de gittiği için mailer'ı
// poll etmek yerine kaynağından bakıyoruz.
func (e *testEnv) codeFor(t *testing.T, userID string, codeType models.CodeType) string {
	t.Helper()
	var id string
	err := e.db.Conn.QueryRow(
		`SELECT id FROM verification_codes WHERE user_id = ? AND type = ?`,
		userID, string(codeType),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func expiredTime() time.Time {
	return time.Now().UTC().Add(-time.Minute)
}

// appStatus, hatanın *pkg.AppError status'unu döner.
func appStatus(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*pkg.AppError)
	require.True(t, ok, "expected *pkg.AppError, got %T: %v", err, err)
	return appErr.Status
}

func appMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*pkg.AppError)
	require.True(t, ok, "expected *pkg.AppError, got %T: %v", err, err)
	return appErr.Message
}
