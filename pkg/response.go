package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// errorBody, tüm hata yanıtlarının JSON şekli.
// Frontend her zaman aynı yapıyı bekler — tutarlılık önemli:
//
//	{ "message": "...", "errorCode": "...", "errors": [{"path": "...", "message": "..."}] }
//
// errorCode ve errors opsiyoneldir, boşsa JSON'a dahil edilmez.
type errorBody struct {
	Message   string       `json:"message"`
	ErrorCode ErrorCode    `json:"errorCode,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// JSON, başarılı bir yanıt gönderir.
// Body, verilen data'nın doğrudan JSON hali — ekstra zarf (envelope) yok.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[response] failed to encode response: %v", err)
	}
}

// Error, hata yanıtı gönderir.
//
// AppError ise status + mesaj + kod aynen client'a gider.
// Değilse beklenmeyen bir hatadır: log'lanır, client'a opak
// "Internal Server Error" döner — iç detay SIZDIRILMAZ.
func Error(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr.Status, errorBody{
			Message:   appErr.Message,
			ErrorCode: appErr.ErrorCode,
			Errors:    appErr.Fields,
		})
		return
	}

	// Repo katmanından yakalanmadan gelen not-found — 404.
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, errorBody{Message: "Not Found"})
		return
	}

	log.Printf("[response] unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, errorBody{Message: "Internal Server Error"})
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
// Handler'ların service'e inmeden döndüğü hatalar için (ör: bozuk JSON body).
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeError(w, status, errorBody{Message: message})
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}
