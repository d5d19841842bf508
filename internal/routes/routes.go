package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/handlers"
	"github.com/example/perikanan/internal/middleware"
	"github.com/example/perikanan/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	sessions := services.NewSessionService(db, cfg.SessionTTL)
	sms := services.NewSMSService()

	authHandler := handlers.NewAuthHandler(db, cfg, sessions, sms)
	productHandler := handlers.NewProductHandler(db, cfg)
	companyHandler := handlers.NewCompanyHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db)
	imageHandler := handlers.NewImageHandler(cfg.UploadDir)

	requireSession := middleware.RequireSession(sessions)

	api := app.Group("/api")
	api.Get("/health", handlers.Health)

	// Auth routes
	admin := api.Group("/admin")
	admin.Post("/request-otp", authHandler.RequestOTP)
	admin.Post("/verify-otp", authHandler.VerifyOTP)
	admin.Post("/login", authHandler.Login)
	admin.Post("/logout", requireSession, authHandler.Logout)

	// Products: public reads, protected writes
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", requireSession, productHandler.CreateProduct)
	products.Put("/:id", requireSession, productHandler.UpdateProduct)
	products.Delete("/:id", requireSession, productHandler.DeleteProduct)
	products.Patch("/:id/availability", requireSession, productHandler.ToggleAvailability)
	products.Patch("/:id/stock", requireSession, productHandler.UpdateStock)

	// Company profile
	api.Get("/company", companyHandler.GetCompany)
	api.Put("/company", requireSession, companyHandler.UpdateCompany)

	// Orders: public creation from the website form, admin management
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", requireSession, orderHandler.ListOrders)
	orders.Get("/:id", requireSession, orderHandler.GetOrder)
	orders.Patch("/:id/status", requireSession, orderHandler.UpdateOrderStatus)
	orders.Delete("/:id", requireSession, orderHandler.DeleteOrder)

	// Uploaded images
	app.Get("/images/:filename", imageHandler.GetImage)
}
