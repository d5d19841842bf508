package database

import (
	"database/sql"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/models"
	"github.com/example/perikanan/internal/utils"
)

// Connect opens the database, runs migrations and seeds default
// records. The returned handle is injected into handlers; there is no
// package-level cached connection.
func Connect(cfg *config.Config) *gorm.DB {
	if err := ensureDatabase(cfg.DatabaseURL); err != nil {
		logrus.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(conn); err != nil {
		logrus.Fatalf("database migration failed: %v", err)
	}

	if err := Seed(conn, cfg); err != nil {
		logrus.Fatalf("database seeding failed: %v", err)
	}

	return conn
}

// Migrate creates or updates the schema for all models.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.Admin{},
		&models.AdminSession{},
		&models.Product{},
		&models.Company{},
		&models.Order{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// Seed inserts the bootstrap admin, the company profile and sample
// products when their tables are empty. Safe to run repeatedly.
func Seed(conn *gorm.DB, cfg *config.Config) error {
	var adminCount int64
	if err := conn.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
		admin := models.Admin{
			Username:     cfg.AdminUsername,
			PasswordHash: hash,
			Email:        cfg.AdminEmail,
			IsVerified:   true,
		}
		if err := conn.Create(&admin).Error; err != nil {
			return err
		}
		logrus.WithField("username", cfg.AdminUsername).Info("default admin created")
	}

	var companyCount int64
	if err := conn.Model(&models.Company{}).Count(&companyCount).Error; err != nil {
		return err
	}
	if companyCount == 0 {
		company := models.Company{
			Name:           "CV Karya Perikanan Indonesia",
			LogoPath:       "/images/logo.png",
			Description:    "Perusahaan pengolahan limbah perikanan berkualitas tinggi",
			Phone:          "0878-0822-8699",
			Whatsapp:       "6287808228699",
			Email:          "info@karyaperikanan.com",
			Address:        "Blk. D No.14, Pengasinan, Kec. Tj. Priok, Jakarta Utara 14450",
			OperatingHours: "Buka 24 Jam",
		}
		if err := conn.Create(&company).Error; err != nil {
			return err
		}
		logrus.Info("default company profile created")
	}

	var productCount int64
	if err := conn.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		products := []models.Product{
			{
				Name:        "Sisik Ikan Kakap Merah",
				Description: "Sisik ikan kakap merah kering berkualitas premium untuk industri kosmetik dan farmasi",
				ImagePath:   "/images/sisik-kakap.jpg",
				Price:       50000,
				Stock:       100,
				Available:   true,
			},
			{
				Name:        "Sisik Ikan Nila",
				Description: "Sisik ikan nila kering berkualitas tinggi dengan kandungan kolagen alami",
				ImagePath:   "/images/sisik-nila.jpg",
				Price:       45000,
				Stock:       150,
				Available:   true,
			},
			{
				Name:        "Kulit Ikan",
				Description: "Kulit ikan kering berkualitas premium untuk industri pakan dan kerajinan",
				ImagePath:   "/images/kulit-ikan.jpg",
				Price:       35000,
				Stock:       200,
				Available:   true,
			},
		}
		if err := conn.Create(&products).Error; err != nil {
			return err
		}
		logrus.WithField("count", len(products)).Info("sample products created")
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
