// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini de belirler. Request struct'ları HTTP body'den
// parse edilen verilerdir — Validate() method'ları ile geçerlilik kontrolü yapılır.
// Validation hataları alan bazlı detay taşır (pkg.ValidationError), frontend
// her input'un yanında kendi mesajını gösterir.
package models

import (
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eralpk/chirp/pkg"
)

// User, bir kullanıcıyı temsil eder.
// PasswordHash json:"-" ile işaretli — hiçbir API response'una DAHİL EDİLMEZ.
// Verified, email doğrulama kodu tüketildiğinde bir kez true'ya döner.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// usernameRegex — kullanıcı adı harf veya alt çizgi ile başlamalı,
// sadece harf/rakam/alt çizgi içerebilir.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// emailRegex, basit email format kontrolü.
// Tam RFC 5322 validation'a girmiyoruz — gerçek doğrulama zaten
// email verification kodu ile yapılıyor.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// whitespaceRegex, isimlerdeki ardışık boşlukları tek boşluğa indirger.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// restrictedUsernames — frontend route'ları ile çakışan kullanıcı adları.
// "/search" hem bir sayfa hem de bir profil URL'i olamaz.
var restrictedUsernames = map[string]bool{
	"search":        true,
	"notifications": true,
	"messages":      true,
	"bookmarks":     true,
	"settings":      true,
	"login":         true,
	"signup":        true,
	"profile":       true,
}

// SignupRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
// UserAgent body'den değil, handler tarafından User-Agent header'ından doldurulur.
type SignupRequest struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
}

// Validate, SignupRequest'in geçerli olup olmadığını kontrol eder.
// Tüm alanlar kontrol edilir ve ihlaller TEK seferde döner —
// kullanıcı formu her submit'te bir hata daha görmek zorunda kalmaz.
//
// Kurallar:
//   - Name: trim sonrası 1-50 karakter, içteki ardışık boşluklar teke iner
//   - Username: 4-15 karakter, harf/alt çizgi ile başlar, [a-zA-Z0-9_], yasaklı listede değil
//   - Email: geçerli format, max 255
//   - Password: trim sonrası 6-255 karakter
func (r *SignupRequest) Validate() error {
	var fields []pkg.FieldError

	r.Name = whitespaceRegex.ReplaceAllString(strings.TrimSpace(r.Name), " ")
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 {
		fields = append(fields, pkg.Field("name", "What's your name?"))
	} else if nameLen > 50 {
		fields = append(fields, pkg.Field("name", "Your name must be shorter than 50 characters."))
	}

	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	switch {
	case usernameLen < 4:
		fields = append(fields, pkg.Field("username", "Your username must be longer than 4 characters."))
	case usernameLen > 15:
		fields = append(fields, pkg.Field("username", "Your username must be shorter than 15 characters."))
	case !usernameRegex.MatchString(r.Username):
		fields = append(fields, pkg.Field("username",
			"Username must start with a letter or underscore and can only contain letters, numbers, and underscores."))
	case restrictedUsernames[strings.ToLower(r.Username)]:
		fields = append(fields, pkg.Field("username", "This username is not allowed."))
	}

	r.Email = strings.TrimSpace(r.Email)
	if utf8.RuneCountInString(r.Email) > 255 || !emailRegex.MatchString(r.Email) {
		fields = append(fields, pkg.Field("email", "Please enter a valid email address."))
	}

	r.Password = strings.TrimSpace(r.Password)
	passwordLen := utf8.RuneCountInString(r.Password)
	if passwordLen < 6 {
		fields = append(fields, pkg.Field("password", "Your password must be at least 6 characters."))
	} else if passwordLen > 255 {
		fields = append(fields, pkg.Field("password", "Your password must be shorter than 255 characters."))
	}

	if len(fields) > 0 {
		return pkg.ValidationError(fields...)
	}
	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
// Kullanıcı adı VEYA email ile giriş yapılabilir.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
	UserAgent       string `json:"-"`
}

// Validate, LoginRequest geçerlilik kontrolü.
// Login'de format kontrolü YAPILMAZ — sadece varlık ve uzunluk.
// "Geçersiz formatta username" gibi bir mesaj, hangi username'lerin
// kayıtlı olabileceği hakkında bilgi sızdırır.
func (r *LoginRequest) Validate() error {
	var fields []pkg.FieldError

	r.UsernameOrEmail = strings.TrimSpace(r.UsernameOrEmail)
	if r.UsernameOrEmail == "" {
		fields = append(fields, pkg.Field("usernameOrEmail", "Username or email is required."))
	} else if utf8.RuneCountInString(r.UsernameOrEmail) > 255 {
		fields = append(fields, pkg.Field("usernameOrEmail", "Must be shorter than 255 characters."))
	}

	r.Password = strings.TrimSpace(r.Password)
	if r.Password == "" {
		fields = append(fields, pkg.Field("password", "Password is required."))
	} else if utf8.RuneCountInString(r.Password) > 255 {
		fields = append(fields, pkg.Field("password", "Must be shorter than 255 characters."))
	}

	if len(fields) > 0 {
		return pkg.ValidationError(fields...)
	}
	return nil
}

// ValidateCodeID, URL'den veya body'den gelen verification code id'sini kontrol eder.
// Code id'ler UUID'dir (36 karakter) — bariz bozuk input'u DB'ye gitmeden eler.
func ValidateCodeID(code string) error {
	return pkg.Assert(len(code) >= 1 && len(code) <= 36,
		http.StatusBadRequest, "Invalid verification code")
}
