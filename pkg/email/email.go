// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile gönderim detayları soyutlanır — service katmanı
// Resend'e değil interface'e bağımlıdır. Farklı bir sağlayıcıya geçmek için
// sadece yeni bir implementasyon yazıp main.go'da değiştirmek yeterli.
//
// Bu paket dışarıya üç şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender — production implementasyonu
// 3. NewLogSender — API key yokken (local development) email'i log'a yazar
package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendEmailVerification, hesap doğrulama linki içeren email gönderir.
	// code: verification code id'si — linke gömülür.
	SendEmailVerification(ctx context.Context, toEmail, code string) error

	// SendPasswordReset, şifre sıfırlama linki içeren email gönderir.
	// expiresAt linke query param olarak eklenir — frontend geri sayım gösterir.
	SendPasswordReset(ctx context.Context, toEmail, code string, expiresAt time.Time) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi — Resend'de doğrulanmış domain altında olmalı
	appOrigin string // Frontend public URL'i — linkler buraya işaret eder
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
func NewResendSender(apiKey, fromEmail, appOrigin string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appOrigin: appOrigin,
	}
}

func (s *resendSender) SendEmailVerification(ctx context.Context, toEmail, code string) error {
	url := fmt.Sprintf("%s/email/verify/%s", s.appOrigin, code)

	html := fmt.Sprintf(verifyEmailTemplate, url, url, url)
	return s.send(ctx, toEmail, "Verify your email — chirp", html)
}

func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, code string, expiresAt time.Time) error {
	// exp milisaniye cinsinden — frontend Date(exp) ile kalan süreyi gösterir
	url := fmt.Sprintf("%s/password/reset?code=%s&exp=%d", s.appOrigin, code, expiresAt.UnixMilli())

	html := fmt.Sprintf(resetPasswordTemplate, url, url, url)
	return s.send(ctx, toEmail, "Reset your password — chirp", html)
}

func (s *resendSender) send(ctx context.Context, toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("chirp <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// logSender, email göndermek yerine linki log'a yazar.
// RESEND_API_KEY tanımlı değilse main.go bunu wire'lar —
// local development'ta gerçek email altyapısı gerekmez.
type logSender struct{}

// NewLogSender, constructor.
func NewLogSender() EmailSender {
	return &logSender{}
}

func (s *logSender) SendEmailVerification(ctx context.Context, toEmail, code string) error {
	log.Printf("[email] (dev) verification for %s: code=%s", toEmail, code)
	return nil
}

func (s *logSender) SendPasswordReset(ctx context.Context, toEmail, code string, expiresAt time.Time) error {
	log.Printf("[email] (dev) password reset for %s: code=%s exp=%s", toEmail, code, expiresAt.Format(time.RFC3339))
	return nil
}
