package handlers

import (
	"net/http"

	"github.com/eralpk/chirp/middleware"
	"github.com/eralpk/chirp/pkg"
	"github.com/eralpk/chirp/services"
)

// SessionHandler, oturum yönetimi endpoint'leri (hepsi auth middleware arkasında).
type SessionHandler struct {
	sessionService services.SessionService
}

// NewSessionHandler, constructor.
func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// List - GET /session
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.List(
		r.Context(),
		middleware.UserIDFromContext(r.Context()),
		middleware.SessionIDFromContext(r.Context()),
	)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, sessions)
}

// Delete - DELETE /session/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.sessionService.Delete(
		r.Context(),
		middleware.UserIDFromContext(r.Context()),
		middleware.SessionIDFromContext(r.Context()),
		r.PathValue("id"),
	)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "Session removed"})
}
