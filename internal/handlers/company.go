package handlers

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/models"
	"github.com/example/perikanan/internal/utils"
)

// CompanyHandler manages the singleton company profile.
type CompanyHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewCompanyHandler constructs a CompanyHandler.
func NewCompanyHandler(db *gorm.DB, cfg *config.Config) *CompanyHandler {
	return &CompanyHandler{db: db, cfg: cfg}
}

// GetCompany returns the company profile (public endpoint).
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	var company models.Company
	if err := h.db.First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("company profile not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": company})
}

// UpdateCompany replaces profile fields from a multipart form; a new
// logo, when present, replaces the stored one. The row is created on
// first update if seeding was skipped.
func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return apperr.Validation("invalid email format")
		}
	}

	var company models.Company
	err := h.db.First(&company).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	created := errors.Is(err, gorm.ErrRecordNotFound)

	company.Name = strings.TrimSpace(c.FormValue("name"))
	company.Description = strings.TrimSpace(c.FormValue("description"))
	company.Phone = strings.TrimSpace(c.FormValue("phone"))
	company.Whatsapp = strings.TrimSpace(c.FormValue("whatsapp"))
	company.Email = email
	company.Address = strings.TrimSpace(c.FormValue("address"))
	company.OperatingHours = strings.TrimSpace(c.FormValue("operating_hours"))

	if file, err := c.FormFile("logo"); err == nil && file != nil {
		path, err := utils.SaveImage(c, file, h.cfg.UploadDir, "logo")
		if err != nil {
			return err
		}
		company.LogoPath = path
	}

	if created {
		if err := h.db.Create(&company).Error; err != nil {
			return err
		}
	} else if err := h.db.Save(&company).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": company})
}
