// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config tek bir immutable struct olarak main.go'da yüklenir ve ihtiyaç duyan
// katmanlara (token codec, service'ler, email sender) parametre olarak geçirilir.
// Ambient global config YOK — her bağımlılık constructor üzerinden gelir.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	App      AppConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/chirp.db)
}

// JWTConfig, access/refresh token imzalama ayarları.
//
// İki AYRI secret kullanılır: access token'la refresh endpoint'i,
// refresh token'la korumalı endpoint'ler çağrılamaz — secret'lar
// birbirinin imzasını doğrulamaz.
type JWTConfig struct {
	AccessSecret      string // Access token imzalama anahtarı — GİZLİ TUTULMALI
	RefreshSecret     string // Refresh token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry int    // Dakika cinsinden (varsayılan: 15)
	SessionExpiryDays int    // Gün cinsinden — hem session hem refresh token ömrü (varsayılan: 30)
}

// MailConfig, Resend email gönderim ayarları.
type MailConfig struct {
	ResendAPIKey string // Resend API key (re_xxxxxxxx) — boşsa email gönderimi devre dışı
	FromEmail    string // Gönderici adresi (ör: noreply@chirp.app)
}

// AppConfig, uygulama genel ayarları.
type AppConfig struct {
	Origin string // Frontend public URL'i — email linkleri ve CORS için
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	sessionExpiry, err := strconv.Atoi(getEnv("SESSION_EXPIRY_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRY_DAYS: %w", err)
	}

	// Secret'lar zorunlu — varsayılan değer YOK. Varsayılan secret ile
	// ayağa kalkan bir auth server, herkesin token imzalayabildiği bir server'dır.
	accessSecret := getEnv("JWT_ACCESS_SECRET", "")
	if accessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET environment variable is required")
	}

	refreshSecret := getEnv("JWT_REFRESH_SECRET", "")
	if refreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/chirp.db"),
		},
		JWT: JWTConfig{
			AccessSecret:      accessSecret,
			RefreshSecret:     refreshSecret,
			AccessTokenExpiry: accessExpiry,
			SessionExpiryDays: sessionExpiry,
		},
		Mail: MailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("MAIL_FROM", "noreply@chirp.app"),
		},
		App: AppConfig{
			Origin: getEnv("APP_ORIGIN", "http://localhost:5173"),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
