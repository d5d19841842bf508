package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/models"
)

// OrderHandler manages customer orders. Creation is public (the
// website order form); everything else is admin-only.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type createOrderRequest struct {
	CustomerName string `json:"customer_name"`
	Whatsapp     string `json:"whatsapp"`
	Email        string `json:"email"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
	Address      string `json:"address"`
	Note         string `json:"note"`
}

// CreateOrder stores a new order with status "pending". Nothing is
// persisted when validation fails.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Whatsapp = strings.TrimSpace(req.Whatsapp)
	req.Product = strings.TrimSpace(req.Product)
	req.Address = strings.TrimSpace(req.Address)

	if req.CustomerName == "" || req.Whatsapp == "" || req.Product == "" || req.Address == "" {
		return apperr.Validation("customer_name, whatsapp, product and address are required")
	}
	if req.Quantity <= 0 {
		return apperr.Validation("quantity must be a positive number")
	}

	order := models.Order{
		CustomerName: req.CustomerName,
		Whatsapp:     req.Whatsapp,
		Email:        strings.TrimSpace(req.Email),
		Product:      req.Product,
		Quantity:     req.Quantity,
		Address:      req.Address,
		Note:         strings.TrimSpace(req.Note),
		Status:       models.OrderStatusPending,
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// ListOrders returns orders newest first, optionally filtered by
// status.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	query := h.db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}

// GetOrder loads a single order.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.findOrder(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order to another status from the
// allow-list.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if !models.IsValidOrderStatus(req.Status) {
		return apperr.Validation("invalid status, must be one of: " + strings.Join(models.OrderStatuses, ", "))
	}

	order, err := h.findOrder(c)
	if err != nil {
		return err
	}

	if err := h.db.Model(order).Update("status", req.Status).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// DeleteOrder removes an order.
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	order, err := h.findOrder(c)
	if err != nil {
		return err
	}

	if err := h.db.Delete(order).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "order deleted",
	})
}

func (h *OrderHandler) findOrder(c *fiber.Ctx) (*models.Order, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, apperr.Validation("invalid order id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	return &order, nil
}
