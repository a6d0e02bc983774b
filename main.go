// Package main, chirp auth backend'inin giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'larla)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Token codec, email sender ve rate limiter'ı oluştur
//  5. Service'leri oluştur (repository'ler ile)
//  6. Handler'ları oluştur (service'ler ile)
//  7. HTTP router'ı kur, route'ları bağla
//  8. CORS yapılandır
//  9. HTTP Server'ı başlat
// 10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eralpk/chirp/config"
	"github.com/eralpk/chirp/database"
	"github.com/eralpk/chirp/handlers"
	"github.com/eralpk/chirp/pkg/email"
	"github.com/eralpk/chirp/pkg/ratelimit"
	"github.com/eralpk/chirp/pkg/token"
	"github.com/eralpk/chirp/repository"
	"github.com/eralpk/chirp/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] chirp server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	codeRepo := repository.NewSQLiteCodeRepo(db.Conn)

	// ─── 4. Token Codec + Email + Rate Limiter ───
	codec := token.NewCodec(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.SessionExpiryDays,
	)

	// Resend API key yoksa (lokal geliştirme) email'ler log'a yazılır —
	// doğrulama linki terminalden kopyalanabilir.
	var mailer email.EmailSender
	if cfg.Mail.ResendAPIKey != "" {
		mailer = email.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.FromEmail, cfg.App.Origin)
	} else {
		log.Println("[main] RESEND_API_KEY not set, emails will be logged instead")
		mailer = email.NewLogSender()
	}

	// Login ve forgot-password için IP başına 10 deneme / 5 dakika.
	limiter := ratelimit.NewIPRateLimiter(10, 5*time.Minute)
	defer limiter.Close()

	// ─── 5. Service Layer ───
	authService := services.NewAuthService(
		userRepo,
		sessionRepo,
		codeRepo,
		codec,
		mailer,
		db.Conn,
		cfg.JWT.SessionExpiryDays,
	)
	sessionService := services.NewSessionService(sessionRepo)

	// ─── 6. Handler Layer ───
	authHandler := handlers.NewAuthHandler(authService, codec, limiter)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	// ─── 7. HTTP Router ───
	mux := http.NewServeMux()
	initRoutes(mux, authHandler, sessionHandler, codec)

	// ─── 8. CORS ───
	//
	// AllowCredentials: true şart — auth tamamen cookie üzerinden dönüyor,
	// tarayıcı credentials olmadan cookie göndermez.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.App.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
