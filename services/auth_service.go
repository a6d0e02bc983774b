// Package services, business logic katmanını barındırır.
//
// Service Layer: handler (HTTP) ile repository (DB) arasında oturan katman.
// Tüm iş kuralları burada yaşar — şifre hash'leme, token üretimi, session
// ömür yönetimi, verification code tüketimi.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — repository interface'lerini kullanır.
// Beklenen her precondition ihlali pkg.Assert ile sinyallenir ve handler'a
// aynen taşınır — iş mantığında hata yolu için iç içe dallanma yoktur.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/eralpk/chirp/database"
	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/eralpk/chirp/pkg/email"
	"github.com/eralpk/chirp/pkg/token"
	"github.com/eralpk/chirp/repository"
	"golang.org/x/crypto/bcrypt"
)

// Sabit süre ve eşikler.
const (
	// sessionRefreshThreshold — session'ın kalan ömrü bu eşiğin altına
	// inmeden expiry İLERİ KAYDIRILMAZ. Her refresh'te DB'ye yazmak yerine
	// sadece sona yaklaşınca yazılır: write yükü sınırlı kalır ama aktif
	// kullanıcının oturumu yine de sonsuza kadar kayar (sliding window).
	sessionRefreshThreshold = 24 * time.Hour

	// emailVerifyTTL — doğrulama linkinin acelesi yok, 1 yıl geçerli.
	emailVerifyTTL = 365 * 24 * time.Hour

	// passwordResetTTL — email'de bekleyen reset linki saldırı yüzeyidir, kısa.
	passwordResetTTL = time.Hour

	// forgotPasswordWindow — aynı kullanıcıya bu pencere içinde en fazla
	// 1 reset kodu üretilir.
	forgotPasswordWindow = 5 * time.Minute

	bcryptCost = 12
)

// invalidCredentialsMsg — kullanıcı bulunamadı ve şifre yanlış durumlarında
// AYNI mesaj döner. Farklı mesajlar hangi username'lerin kayıtlı olduğunu
// sızdırır (user enumeration).
const invalidCredentialsMsg = "Invalid username or password"

const codeInvalidMsg = "Invalid or expired verification code"

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)
	// Refresh, refresh token ile yeni bir access token basar.
	// Session sona yaklaşmışsa session ömrü uzatılır ve yeni refresh token döner.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	// Logout idempotent'tir — token yok/geçersiz olsa da hata dönmez.
	Logout(ctx context.Context, accessToken string) error
	VerifyEmail(ctx context.Context, code string) (*models.User, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// AuthResult, signup/login sonrası dönen kullanıcı + token çifti.
type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// RefreshResult, refresh sonrası dönen token'lar.
// RefreshToken boş string ise rotasyon olmamıştır — handler cookie'ye dokunmaz.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	codeRepo    repository.CodeRepository
	codec       *token.Codec
	mailer      email.EmailSender
	db          *sql.DB // Transaction desteği (WithTx) için — code tüketimi atomik çalışır
	sessionTTL  time.Duration
}

// NewAuthService, constructor.
//
// db: verification code tüketimi (etki + silme) WithTx ile atomik
// çalıştığı için doğrudan *sql.DB gerekir.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	codeRepo repository.CodeRepository,
	codec *token.Codec,
	mailer email.EmailSender,
	db *sql.DB,
	sessionExpDays int,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		codeRepo:    codeRepo,
		codec:       codec,
		mailer:      mailer,
		db:          db,
		sessionTTL:  time.Duration(sessionExpDays) * 24 * time.Hour,
	}
}

// Signup, yeni hesap oluşturur.
//
// Akış: validation → uniqueness ön kontrolü → bcrypt hash → user INSERT →
// doğrulama kodu → doğrulama email'i (fire-and-forget) → session + token çifti.
//
// Email gönderimi signup'ı BLOKLAMAZ ve başarısızlığı signup'ı bozmaz —
// kullanıcı hesabını aldı, doğrulamayı sonra da yapabilir. Hata sadece log'lanır.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Uniqueness ön kontrolü — yarış durumunda son söz DB unique index'inde
	// (userRepo.Create aynı Conflict'i döner), burada erken ve net mesaj veriyoruz.
	if err := s.assertAvailable(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Verified:     false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	code := &models.VerificationCode{
		UserID:    user.ID,
		Type:      models.CodeEmailVerification,
		ExpiresAt: time.Now().UTC().Add(emailVerifyTTL),
	}
	if err := s.codeRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	// Fire-and-forget: request context'i response yazılınca ölür,
	// email kendi context'iyle arka planda gider.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.mailer.SendEmailVerification(sendCtx, user.Email, code.ID); err != nil {
			log.Printf("[auth] failed to send verification email to %s: %v", user.Email, err)
		}
	}()

	return s.openSession(ctx, user, req.UserAgent)
}

// Login, kullanıcı girişi yapar.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, pkg.Assert(false, http.StatusUnauthorized, invalidCredentialsMsg)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, pkg.Assert(false, http.StatusUnauthorized, invalidCredentialsMsg)
	}

	return s.openSession(ctx, user, req.UserAgent)
}

// Refresh, refresh token'ı doğrulayıp yeni access token basar.
//
// Session'ın kalan ömrü sessionRefreshThreshold'un altındaysa expiry
// now+30d'ye kaydırılır ve YENİ bir refresh token imzalanır. Değilse
// session'a dokunulmaz ve refresh token aynen kalır — her refresh'te
// DB yazmak gereksiz yük olurdu.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if err := pkg.Assert(refreshToken != "", http.StatusUnauthorized, "Missing refresh token"); err != nil {
		return nil, err
	}

	claims, _ := s.codec.VerifyRefresh(refreshToken)
	if err := pkg.Assert(claims != nil, http.StatusUnauthorized, "Invalid refresh token"); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.SessionID)
	if errors.Is(err, pkg.ErrNotFound) {
		// Session silinmiş (logout, reset, revoke) — token imzası geçerli
		// olsa da artık bir şey ifade etmiyor.
		return nil, pkg.Assert(false, http.StatusUnauthorized, "Session expired")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := pkg.Assert(session.ExpiresAt.After(now), http.StatusUnauthorized, "Session expired"); err != nil {
		return nil, err
	}

	result := &RefreshResult{}

	if session.ExpiresAt.Sub(now) <= sessionRefreshThreshold {
		if err := s.sessionRepo.UpdateExpiresAt(ctx, session.ID, now.Add(s.sessionTTL)); err != nil {
			return nil, err
		}

		result.RefreshToken, err = s.codec.SignRefresh(session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sign refresh token: %w", err)
		}
	}

	result.AccessToken, err = s.codec.SignAccess(session.UserID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return result, nil
}

// Logout, access token'ın işaret ettiği session'ı siler.
//
// Idempotent: token yoksa, imzası bozuksa veya session zaten silinmişse
// sessizce başarılı sayılır — "çıkış yap" butonuna iki kez basmak hata değildir.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	claims, _ := s.codec.VerifyAccess(accessToken)
	if claims == nil {
		return nil
	}

	return s.sessionRepo.DeleteByID(ctx, claims.SessionID)
}

// VerifyEmail, email doğrulama kodunu tüketir: verified=true + kodu sil.
//
// İki adım database.WithTx içinde atomiktir — verified yazılamazsa kod
// silinmez (tekrar denenebilir), kod silinemezse verified yazılmaz
// (kod iki kez etki edemez).
func (s *authService) VerifyEmail(ctx context.Context, codeID string) (*models.User, error) {
	if err := models.ValidateCodeID(codeID); err != nil {
		return nil, err
	}

	code, err := s.codeRepo.GetByID(ctx, codeID)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, pkg.Assert(false, http.StatusUnauthorized, codeInvalidMsg)
	}
	if err != nil {
		return nil, err
	}

	valid := code.Type == models.CodeEmailVerification && code.ExpiresAt.After(time.Now().UTC())
	if err := pkg.Assert(valid, http.StatusUnauthorized, codeInvalidMsg); err != nil {
		return nil, err
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txUserRepo := repository.NewSQLiteUserRepo(tx)
		txCodeRepo := repository.NewSQLiteCodeRepo(tx)

		if err := txUserRepo.SetVerified(ctx, code.UserID); err != nil {
			return fmt.Errorf("failed to verify email: %w", err)
		}
		return txCodeRepo.DeleteByID(ctx, code.ID)
	})
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, code.UserID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ForgotPassword, şifre sıfırlama kodu üretip email'ler.
//
// Rate limit: aynı kullanıcıya forgotPasswordWindow içinde en fazla 1 kod.
// Email gönderimi burada SENKRON ve zorunludur — signup'taki doğrulama
// email'inin aksine, reset email'i gitmezse akışın tamamı anlamsızdır.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	req := &models.ForgotPasswordRequest{Email: emailAddr}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, pkg.ErrNotFound) {
		return pkg.Assert(false, http.StatusUnauthorized, "User not found")
	}
	if err != nil {
		return err
	}

	// Fırsat temizliği — süresi dolmuş kod ve session'lar için
	// ayrı bir cron job tutmuyoruz.
	if err := s.codeRepo.DeleteExpired(ctx); err != nil {
		log.Printf("[auth] failed to sweep expired codes: %v", err)
	}
	if err := s.sessionRepo.DeleteExpired(ctx); err != nil {
		log.Printf("[auth] failed to sweep expired sessions: %v", err)
	}

	since := time.Now().UTC().Add(-forgotPasswordWindow)
	count, err := s.codeRepo.CountByTypeCreatedAfter(ctx, user.ID, models.CodePasswordReset, since)
	if err != nil {
		return err
	}
	if err := pkg.Assert(count < 1, http.StatusTooManyRequests,
		"Too many requests, please try again later"); err != nil {
		return err
	}

	code := &models.VerificationCode{
		UserID:    user.ID,
		Type:      models.CodePasswordReset,
		ExpiresAt: time.Now().UTC().Add(passwordResetTTL),
	}
	if err := s.codeRepo.Create(ctx, code); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, code.ID, code.ExpiresAt); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// ResetPassword, reset kodunu tüketir: şifreyi değiştir + kodu sil +
// kullanıcının TÜM session'larını sil.
//
// Tüm session'lar silinir çünkü "şifremi sıfırlıyorum" çoğunlukla
// "hesabım ele geçirildi" demektir — saldırganın elindeki oturumlar
// da dahil her cihaz yeniden giriş yapmak zorunda kalır.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	code, err := s.codeRepo.GetByID(ctx, req.Code)
	if errors.Is(err, pkg.ErrNotFound) {
		return pkg.Assert(false, http.StatusNotFound, codeInvalidMsg)
	}
	if err != nil {
		return err
	}

	valid := code.Type == models.CodePasswordReset && code.ExpiresAt.After(time.Now().UTC())
	if err := pkg.Assert(valid, http.StatusNotFound, codeInvalidMsg); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txUserRepo := repository.NewSQLiteUserRepo(tx)
		txCodeRepo := repository.NewSQLiteCodeRepo(tx)
		txSessionRepo := repository.NewSQLiteSessionRepo(tx)

		if err := txUserRepo.UpdatePassword(ctx, code.UserID, string(hash)); err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}
		if err := txCodeRepo.DeleteByID(ctx, code.ID); err != nil {
			return err
		}
		return txSessionRepo.DeleteByUserID(ctx, code.UserID)
	})
}

// CurrentUser, access token'daki userId ile kullanıcıyı getirir.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, pkg.Assert(false, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ─── Private Helpers ───

// assertAvailable, username ve email'in boşta olduğunu kontrol eder.
func (s *authService) assertAvailable(ctx context.Context, username, emailAddr string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return pkg.Assert(false, http.StatusConflict, "Username already in use")
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	_, err = s.userRepo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return pkg.Assert(false, http.StatusConflict, "Email already in use")
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	return nil
}

// openSession, kullanıcı için yeni session açar ve token çiftini imzalar.
// Signup ve Login'in ortak son adımı.
func (s *authService) openSession(ctx context.Context, user *models.User, userAgent string) (*AuthResult, error) {
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	refreshToken, err := s.codec.SignRefresh(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	accessToken, err := s.codec.SignAccess(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	user.PasswordHash = ""

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
