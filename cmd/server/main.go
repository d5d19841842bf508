package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/database"
	"github.com/example/perikanan/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	app := fiber.New(fiber.Config{
		AppName:      "Karya Perikanan Admin API",
		BodyLimit:    cfg.MaxUploadBytes,
		ErrorHandler: apperr.Handler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, db, cfg)

	logrus.Infof("starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("fiber.Listen error: %v", err)
	}
}
