package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/models"
	"github.com/example/perikanan/internal/utils"
)

const defaultProductImage = "/images/default.jpg"

// ProductHandler manages product CRUD. Create and update accept
// multipart forms so the admin panel can attach an image in the same
// request.
type ProductHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{db: db, cfg: cfg}
}

// ListProducts returns all products, newest first.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Order("created_at desc").Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"count":   len(products),
	})
}

// GetProduct loads a single product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct adds a product from a multipart form with an optional
// image upload.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return apperr.Validation("product name is required")
	}

	product := models.Product{
		Name:        name,
		Description: strings.TrimSpace(c.FormValue("description")),
		ImagePath:   defaultProductImage,
		Price:       parseFloat(c.FormValue("price"), 0),
		Stock:       parseInt(c.FormValue("stock"), 0),
		Available:   c.FormValue("available", "true") == "true",
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := utils.SaveImage(c, file, h.cfg.UploadDir, "product")
		if err != nil {
			return err
		}
		product.ImagePath = path
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct replaces product fields from a multipart form; a new
// image, when present, replaces the stored one.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return apperr.Validation("product name is required")
	}

	product.Name = name
	product.Description = strings.TrimSpace(c.FormValue("description"))
	product.Price = parseFloat(c.FormValue("price"), product.Price)
	product.Stock = parseInt(c.FormValue("stock"), product.Stock)
	product.Available = c.FormValue("available", "true") == "true"

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := utils.SaveImage(c, file, h.cfg.UploadDir, "product")
		if err != nil {
			return err
		}
		product.ImagePath = path
	}

	if err := h.db.Save(product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	if err := h.db.Delete(product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deleted",
	})
}

// ToggleAvailability flips the availability flag; toggling twice
// restores the original value.
func (h *ProductHandler) ToggleAvailability(c *fiber.Ctx) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	product.Available = !product.Available
	if err := h.db.Save(product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"available": product.Available,
	})
}

type updateStockRequest struct {
	Stock *int `json:"stock"`
}

// UpdateStock sets the stock level from a JSON body.
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var req updateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if req.Stock == nil || *req.Stock < 0 {
		return apperr.Validation("stock must be a non-negative number")
	}

	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	if err := h.db.Model(product).Update("stock", *req.Stock).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stock":   *req.Stock,
	})
}

func (h *ProductHandler) findProduct(c *fiber.Ctx) (*models.Product, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, apperr.Validation("invalid product id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	return &product, nil
}

func parseFloat(value string, fallback float64) float64 {
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return parsed
	}
	return fallback
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
