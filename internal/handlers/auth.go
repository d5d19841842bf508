package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/middleware"
	"github.com/example/perikanan/internal/models"
	"github.com/example/perikanan/internal/services"
	"github.com/example/perikanan/internal/utils"
)

// AuthHandler bundles dependencies for the admin authentication
// endpoints: OTP account claim, login and logout.
type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	sessions *services.SessionService
	sms      *services.SMSService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *services.SessionService, sms *services.SMSService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, sessions: sessions, sms: sms}
}

type requestOTPRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// RequestOTP issues a verification code for a username+phone pair.
// Unknown usernames get a fresh unverified account with an unusable
// placeholder password; a repeated request overwrites any pending
// code. The code is echoed in the response because delivery is
// simulated only.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req requestOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Username == "" || req.Phone == "" {
		return apperr.Validation("username and phone are required")
	}

	var admin models.Admin
	err := h.db.Where("username = ?", req.Username).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Nobody knows the preimage of this hash, so the account
		// cannot log in until VerifyOTP sets a real password.
		placeholder, err := utils.GenerateSessionToken()
		if err != nil {
			return err
		}
		hash, err := utils.HashPassword(placeholder)
		if err != nil {
			return err
		}
		admin = models.Admin{
			Username:     req.Username,
			Phone:        req.Phone,
			PasswordHash: hash,
			IsVerified:   false,
		}
		if err := h.db.Create(&admin).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if admin.Phone != "" && admin.Phone != req.Phone {
			return apperr.Conflict("phone number does not match our records")
		}
		if admin.Phone == "" {
			admin.Phone = req.Phone
		}
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(h.cfg.OTPTTL)

	admin.OTPCode = &code
	admin.OTPExpiresAt = &expiresAt
	if err := h.db.Save(&admin).Error; err != nil {
		return err
	}

	h.sms.SendOTP(req.Phone, code)

	return c.JSON(fiber.Map{
		"success":    true,
		"otp":        code,
		"expires_at": expiresAt,
	})
}

type verifyOTPRequest struct {
	Username string `json:"username"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// VerifyOTP checks a pending code, marks the account verified, stores
// the new password and opens a session in a single step.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.OTP = strings.TrimSpace(req.OTP)
	if req.Username == "" || req.OTP == "" || req.Password == "" {
		return apperr.Validation("username, otp and password are required")
	}

	var admin models.Admin
	err := h.db.Where("username = ?", req.Username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && admin.OTPCode == nil) {
		return apperr.NotFound("no pending verification code")
	}
	if err != nil {
		return err
	}

	if *admin.OTPCode != req.OTP {
		return apperr.Validation("invalid verification code")
	}

	if admin.OTPExpiresAt == nil || !time.Now().Before(*admin.OTPExpiresAt) {
		return apperr.Validation("verification code expired")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	admin.IsVerified = true
	admin.PasswordHash = hash
	admin.OTPCode = nil
	admin.OTPExpiresAt = nil
	if err := h.db.Save(&admin).Error; err != nil {
		return err
	}

	session, err := h.sessions.Create(admin.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"username":   admin.Username,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a verified admin and opens a new session. The
// response never carries the password digest.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return apperr.Validation("username and password are required")
	}

	var admin models.Admin
	err := h.db.Where("username = ?", req.Username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Unauthenticated("invalid username or password")
	}
	if err != nil {
		return err
	}

	// An unclaimed account only holds a placeholder digest, so the
	// verified check comes first: login fails the same way for it no
	// matter what password was supplied.
	if !admin.IsVerified {
		return apperr.Forbidden("account is not verified")
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return apperr.Unauthenticated("invalid username or password")
	}

	session, err := h.sessions.Create(admin.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"admin": fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

// Logout revokes the presented session token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := middleware.CurrentToken(c)
	if !ok {
		return apperr.Unauthenticated("missing session token")
	}

	if err := h.sessions.Revoke(token); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "session revoked",
	})
}
