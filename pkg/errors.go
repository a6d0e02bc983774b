// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya AppError tipini ve Assert primitive'ini içerir.
//
// Tasarım: beklenen tüm precondition ihlalleri (not-found, unauthorized,
// conflict, rate-limited) TEK bir mekanizma ile sinyallenir — Assert.
// Service katmanı hata durumunda iç içe if/else dallanması yerine:
//
//	if err := pkg.Assert(user != nil, http.StatusUnauthorized, "Invalid username or password"); err != nil {
//		return nil, err
//	}
//
// yazar. AppError, HTTP status + mesaj + opsiyonel machine-readable kod taşır;
// handler katmanı pkg.Error ile bunu aynen JSON'a map'ler.
// AppError OLMAYAN her error beklenmeyen hatadır → 500, detay sızdırılmaz.
package pkg

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound, repository katmanının "kayıt yok" sinyalidir.
// Service katmanı bunu yakalar ve bağlama uygun AppError'a çevirir —
// login'de 401 (enumeration koruması), session silmede 404 gibi.
// Yakalanmadan boundary'ye ulaşırsa pkg.Error 404'e map'ler.
var ErrNotFound = errors.New("not found")

// ErrorCode, frontend'in programatik olarak ayırt etmesi gereken hata türleri.
// Çoğu hata için sadece mesaj yeterli — kod yalnızca client'ın davranış
// değiştirdiği durumlarda tanımlanır (ör: access token geçersizse refresh dene).
type ErrorCode string

const (
	// CodeInvalidAccessToken — client bu kodu görünce /auth/refresh denemelidir.
	CodeInvalidAccessToken ErrorCode = "InvalidAccessToken"
)

// FieldError, validation hatasının tek bir alana ait detayı.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// AppError, beklenen (expected) bir hatayı temsil eder.
// Status: HTTP status code, Message: kullanıcıya gösterilecek mesaj,
// ErrorCode: opsiyonel machine-readable kod, Fields: validation detayları.
type AppError struct {
	Status    int
	Message   string
	ErrorCode ErrorCode
	Fields    []FieldError
}

// Error, error interface implementasyonu.
func (e *AppError) Error() string {
	return e.Message
}

// Assert, condition false ise AppError döner, true ise nil.
// Beklenen precondition ihlallerini sinyallemenin TEK yolu budur.
//
// code parametresi variadic — çoğu çağrıda verilmez:
//
//	pkg.Assert(count < 1, http.StatusTooManyRequests, "Too many requests, please try again later")
//	pkg.Assert(payload != nil, http.StatusUnauthorized, "Invalid token", pkg.CodeInvalidAccessToken)
func Assert(condition bool, status int, message string, code ...ErrorCode) error {
	if condition {
		return nil
	}

	appErr := &AppError{
		Status:  status,
		Message: message,
	}
	if len(code) > 0 {
		appErr.ErrorCode = code[0]
	}
	return appErr
}

// ValidationError, alan bazlı detaylar taşıyan 400 hatası oluşturur.
// Request struct'larının Validate() method'ları bununla döner —
// frontend her alanın yanında kendi hata mesajını gösterebilir.
func ValidationError(fields ...FieldError) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "Invalid request",
		Fields:  fields,
	}
}

// Field, FieldError için kısa constructor.
func Field(path, format string, args ...any) FieldError {
	return FieldError{Path: path, Message: fmt.Sprintf(format, args...)}
}
