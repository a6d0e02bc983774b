package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eralpk/chirp/middleware"
	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/eralpk/chirp/pkg/ratelimit"
	"github.com/eralpk/chirp/pkg/token"
	"github.com/eralpk/chirp/services"
)

// AuthHandler, authentication endpoint'lerini yönetir.
type AuthHandler struct {
	authService services.AuthService
	codec       *token.Codec
	limiter     *ratelimit.IPRateLimiter
}

// NewAuthHandler, constructor.
// limiter, login ve forgot-password gibi brute-force hedefi endpoint'leri
// IP bazında sınırlar.
func NewAuthHandler(authService services.AuthService, codec *token.Codec, limiter *ratelimit.IPRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
		limiter:     limiter,
	}
}

// Signup - POST /auth/signup
//
// Başarıda 201 + kullanıcı JSON'u döner ve token çifti cookie olarak yazılır:
// kullanıcı kayıt olur olmaz giriş yapmış sayılır.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserAgent = r.UserAgent()

	result, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	setAuthCookies(w, h.codec, result.AccessToken, result.RefreshToken)
	pkg.JSON(w, http.StatusCreated, result.User)
}

// Login - POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if !h.limiter.Allow(ip) {
		w.Header().Set("Retry-After", strconv.Itoa(h.limiter.RetryAfterSeconds(ip)))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserAgent = r.UserAgent()

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Başarılı giriş IP sayacını sıfırlar — meşru kullanıcı arada bir
	// şifresini yanlış yazdı diye kilitlenmez.
	h.limiter.Reset(ip)

	setAuthCookies(w, h.codec, result.AccessToken, result.RefreshToken)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

// Refresh - GET /auth/refresh
//
// HERHANGİ bir hatada iki cookie de temizlenir: geçersiz token çiftiyle
// dönen client sonsuz refresh döngüsüne girer, cookie'leri silmek
// döngüyü login ekranında bitirir.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.authService.Refresh(r.Context(), cookieValue(r, refreshTokenCookie))
	if err != nil {
		clearAuthCookies(w)
		pkg.Error(w, err)
		return
	}

	if result.RefreshToken != "" {
		setAuthCookies(w, h.codec, result.AccessToken, result.RefreshToken)
	} else {
		setAccessCookie(w, h.codec, result.AccessToken)
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Access token refreshed"})
}

// Logout - GET /auth/logout
//
// Cookie'ler her durumda temizlenir; session silme best-effort'tur.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.authService.Logout(r.Context(), cookieValue(r, accessTokenCookie))

	clearAuthCookies(w)

	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// VerifyEmail - GET /auth/verify/{code}
//
// Email'deki link doğrudan tarayıcıda açılır, o yüzden GET.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authService.VerifyEmail(r.Context(), r.PathValue("code")); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Email was successfully verified"})
}

// ForgotPassword - POST /auth/password/forgot
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if !h.limiter.Allow(ip) {
		w.Header().Set("Retry-After", strconv.Itoa(h.limiter.RetryAfterSeconds(ip)))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		return
	}

	var req models.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Password reset email sent"})
}

// ResetPassword - POST /auth/password/reset
//
// Başarıda cookie'ler temizlenir — tüm session'lar zaten silindi,
// eldeki token'lar çöp.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	clearAuthCookies(w)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Password was reset successfully"})
}

// Me - GET /auth/user (auth middleware arkasında)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, user)
}

// decodeJSON, request body'sini parse eder; hatada 400 yazar ve false döner.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
