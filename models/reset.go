// Package models — şifre sıfırlama request struct'ları.
package models

import (
	"strings"
	"unicode/utf8"

	"github.com/eralpk/chirp/pkg"
)

// ForgotPasswordRequest, "şifremi unuttum" isteği.
// Kullanıcı email adresini gönderir, backend reset linki emailler.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate, ForgotPasswordRequest geçerlilik kontrolü.
func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if utf8.RuneCountInString(r.Email) > 255 || !emailRegex.MatchString(r.Email) {
		return pkg.ValidationError(pkg.Field("email", "Please enter a valid email address."))
	}
	return nil
}

// ResetPasswordRequest, email'deki linkten gelen kod + yeni şifre.
type ResetPasswordRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// Validate, ResetPasswordRequest geçerlilik kontrolü.
// Yeni şifre, signup'taki şifre kurallarına tabidir.
func (r *ResetPasswordRequest) Validate() error {
	var fields []pkg.FieldError

	if r.Code == "" || len(r.Code) > 36 {
		fields = append(fields, pkg.Field("code", "Invalid verification code"))
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
