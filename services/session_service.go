package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/eralpk/chirp/models"
	"github.com/eralpk/chirp/pkg"
	"github.com/eralpk/chirp/repository"
)

// SessionService, kullanıcının aktif oturumlarının yönetimi.
// "Hesabıma hangi cihazlardan giriş yapılmış?" ekranının arkasındaki servis.
type SessionService interface {
	// List, kullanıcının süresi dolmamış session'larını yeniden eskiye
	// sıralı döner. currentSessionID işaretlenir ki UI "bu cihaz"
	// satırını ayırt edebilsin.
	List(ctx context.Context, userID, currentSessionID string) ([]models.SessionInfo, error)
	// Delete, kullanıcının BAŞKA bir session'ını iptal eder.
	// Aktif session kendini silemez — onun yolu logout'tur.
	Delete(ctx context.Context, userID, currentSessionID, sessionID string) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionService, constructor.
func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) List(ctx context.Context, userID, currentSessionID string) ([]models.SessionInfo, error) {
	sessions, err := s.sessionRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]models.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, models.SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			CreatedAt: session.CreatedAt,
			IsCurrent: session.ID == currentSessionID,
		})
	}

	return infos, nil
}

func (s *sessionService) Delete(ctx context.Context, userID, currentSessionID, sessionID string) error {
	if err := pkg.Assert(sessionID != currentSessionID, http.StatusForbidden,
		"You cannot delete your current session"); err != nil {
		return err
	}

	// userID filtresi sorgunun içinde — başkasının session id'sini tahmin
	// eden kullanıcı onu silemez, sadece Not Found görür.
	err := s.sessionRepo.DeleteByIDForUser(ctx, sessionID, userID)
	if errors.Is(err, pkg.ErrNotFound) {
		return pkg.Assert(false, http.StatusNotFound, "Session not found")
	}
	return err
}
