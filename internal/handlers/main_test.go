package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/config"
	"github.com/example/perikanan/internal/database"
	"github.com/example/perikanan/internal/routes"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin123"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 5 * 1024 * 1024,
		SessionTTL:     30 * 24 * time.Hour,
		OTPTTL:         10 * time.Minute,
		AdminUsername:  testAdminUsername,
		AdminPassword:  testAdminPassword,
		AdminEmail:     "admin@karyaperikanan.com",
	}
}

// newTestApp builds the full HTTP app against a fresh in-memory
// database, migrated and seeded the same way the server boots.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := newTestConfig(t)
	require.NoError(t, database.Seed(db, cfg))

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadBytes,
		ErrorHandler: apperr.Handler,
	})
	routes.Register(app, db, cfg)

	return app, db, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func doMultipart(t *testing.T, app *fiber.App, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return nil
	}

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/login", fiber.Map{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
