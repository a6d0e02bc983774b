package handlers

// Handler testleri gerçek HTTP üzerinden çalışır: httptest.Server + cookie jar.
// Cookie set/clear davranışı ancak gerçek Set-Cookie header'larıyla test edilir.

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eralpk/chirp/database"
	"github.com/eralpk/chirp/middleware"
	"github.com/eralpk/chirp/pkg/ratelimit"
	"github.com/eralpk/chirp/pkg/token"
	"github.com/eralpk/chirp/repository"
	"github.com/eralpk/chirp/services"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu         sync.Mutex
	resetCodes []string
}

func (m *captureMailer) SendEmailVerification(context.Context, string, string) error { return nil }

func (m *captureMailer) SendPasswordReset(_ context.Context, _, code string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCodes = append(m.resetCodes, code)
	return nil
}

type testServer struct {
	srv    *httptest.Server
	client *http.Client
	mailer *captureMailer
	codec  *token.Codec
}

// newTestServer, tam uygulama stack'ini ayağa kaldırır.
// Route tablosu init_routes.go ile aynı tutulmalıdır.
func newTestServer(t *testing.T) *testServer {
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
	mailer := &captureMailer{}
	limiter := ratelimit.NewIPRateLimiter(100, time.Minute)
	t.Cleanup(limiter.Close)

	authService := services.NewAuthService(userRepo, sessionRepo, codeRepo, codec, mailer, db.Conn, 30)
	sessionService := services.NewSessionService(sessionRepo)

	authHandler := NewAuthHandler(authService, codec, limiter)
	sessionHandler := NewSessionHandler(sessionService)
	authMw := middleware.Authenticate(codec)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/refresh", authHandler.Refresh)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/verify/{code}", authHandler.VerifyEmail)
	mux.HandleFunc("POST /auth/password/forgot", authHandler.ForgotPassword)
	mux.HandleFunc("POST /auth/password/reset", authHandler.ResetPassword)
	mux.Handle("GET /auth/user", authMw(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /session", authMw(http.HandlerFunc(sessionHandler.List)))
	mux.Handle("DELETE /session/{id}", authMw(http.HandlerFunc(sessionHandler.Delete)))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testServer{
		srv:    srv,
		client: &http.Client{Jar: jar},
		mailer: mailer,
		codec:  codec,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "go-test/1.0")

	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (ts *testServer) signup(t *testing.T, username, email string) *http.Response {
	t.Helper()
	return ts.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name":     "Test User",
		"username": username,
		"email":    email,
		"password": "sekret1",
	})
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// cookieByName, response'un Set-Cookie header'larından ilgili cookie'yi bulur.
func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
