package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/models"
	"github.com/example/perikanan/internal/utils"
)

// SessionService issues and validates the opaque bearer tokens stored
// in admin_sessions. An admin may hold any number of concurrent
// sessions; nothing ever deletes expired rows.
type SessionService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSessionService creates a SessionService with the given token
// lifetime.
func NewSessionService(db *gorm.DB, ttl time.Duration) *SessionService {
	return &SessionService{db: db, ttl: ttl}
}

// Create inserts a new active session for the admin and returns it.
func (s *SessionService) Create(adminID uuid.UUID) (*models.AdminSession, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := models.AdminSession{
		AdminID:   adminID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.ttl),
		Active:    true,
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// Validate resolves a token to its owning admin. Unknown or inactive
// tokens and expired sessions all fail as authentication errors; the
// expiry check happens at lookup time only.
func (s *SessionService) Validate(token string) (*models.Admin, error) {
	var session models.AdminSession
	err := s.db.Where("token = ? AND active = ?", token, true).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("invalid session token")
		}
		return nil, err
	}

	if !time.Now().Before(session.ExpiresAt) {
		return nil, apperr.Unauthenticated("session expired")
	}

	var admin models.Admin
	if err := s.db.First(&admin, "id = ?", session.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("invalid session token")
		}
		return nil, err
	}

	return &admin, nil
}

// Revoke marks the session inactive. Revoking an unknown token is a
// no-op.
func (s *SessionService) Revoke(token string) error {
	return s.db.Model(&models.AdminSession{}).
		Where("token = ?", token).
		Update("active", false).Error
}
