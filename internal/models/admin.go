package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office account. One is seeded at bootstrap; any
// other account is claimed through the OTP flow and stays unusable
// until verified.
type Admin struct {
	BaseModel
	Username     string     `gorm:"uniqueIndex" json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	IsVerified   bool       `json:"is_verified"`
}

// AdminSession is an opaque bearer credential bound to an admin.
// Several sessions may reference the same admin; expiry is checked at
// validation time and expired rows are left in place.
type AdminSession struct {
	BaseModel
	AdminID   uuid.UUID `gorm:"type:uuid;index" json:"admin_id"`
	Admin     *Admin    `json:"-"`
	Token     string    `gorm:"uniqueIndex" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}
