package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/perikanan/internal/apperr"
	"github.com/example/perikanan/internal/models"
)

func seedProduct(t *testing.T, db *gorm.DB, available bool) models.Product {
	t.Helper()

	product := models.Product{
		Name:        "Sisik Ikan Uji",
		Description: "produk untuk pengujian",
		ImagePath:   "/images/default.jpg",
		Price:       10000,
		Stock:       5,
		Available:   available,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestListProducts_Public(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	// Three sample products come from seeding.
	assert.EqualValues(t, 3, body["count"])
}

func TestToggleAvailability_DoubleToggleRestoresValue(t *testing.T) {
	app, db, _ := newTestApp(t)
	token := loginAdmin(t, app)

	product := seedProduct(t, db, true)
	path := "/api/products/" + product.ID.String() + "/availability"

	resp, body := doJSON(t, app, http.MethodPatch, path, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["available"])

	resp, body = doJSON(t, app, http.MethodPatch, path, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["available"])

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.True(t, reloaded.Available)
}

func TestCreateProduct_RequiresName(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := loginAdmin(t, app)

	resp, body := doMultipart(t, app, http.MethodPost, "/api/products", map[string]string{
		"description": "tanpa nama",
	}, "", "", nil, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperr.KindValidation, body["code"])
}

func TestCreateProduct_WithImageUpload(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := loginAdmin(t, app)

	resp, body := doMultipart(t, app, http.MethodPost, "/api/products", map[string]string{
		"name":        "Tepung Ikan",
		"description": "tepung ikan protein tinggi",
		"price":       "25000",
		"stock":       "40",
		"available":   "true",
	}, "image", "tepung.png", []byte("fake-png-bytes"), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	imagePath, _ := data["image_path"].(string)
	require.True(t, strings.HasPrefix(imagePath, "/images/product_"), "got %q", imagePath)
	assert.True(t, strings.HasSuffix(imagePath, ".png"))

	// The stored file is served back by name.
	resp, _ = doJSON(t, app, http.MethodGet, imagePath, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateProduct_RejectsUnknownExtension(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := loginAdmin(t, app)

	resp, body := doMultipart(t, app, http.MethodPost, "/api/products", map[string]string{
		"name": "Produk Aneh",
	}, "image", "payload.exe", []byte("nope"), token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperr.KindValidation, body["code"])
}

func TestProductLifecycle(t *testing.T) {
	app, db, _ := newTestApp(t)
	token := loginAdmin(t, app)

	resp, body := doMultipart(t, app, http.MethodPost, "/api/products", map[string]string{
		"name":      "Minyak Ikan",
		"price":     "80000",
		"stock":     "10",
		"available": "true",
	}, "", "", nil, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "/images/default.jpg", data["image_path"])

	// Public read.
	resp, body = doJSON(t, app, http.MethodGet, "/api/products/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Minyak Ikan", body["data"].(map[string]interface{})["name"])

	// Rename.
	resp, _ = doMultipart(t, app, http.MethodPut, "/api/products/"+id, map[string]string{
		"name":      "Minyak Ikan Premium",
		"price":     "95000",
		"stock":     "8",
		"available": "true",
	}, "", "", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Stock update.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/products/"+id+"/stock", fiber.Map{"stock": 99}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 99, body["stock"])

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", id).Error)
	assert.Equal(t, "Minyak Ikan Premium", reloaded.Name)
	assert.Equal(t, 99, reloaded.Stock)

	// Delete, then the product is gone.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+id, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/products/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apperr.KindNotFound, body["code"])
}

func TestUpdateStock_RejectsNegativeAndMissing(t *testing.T) {
	app, db, _ := newTestApp(t)
	token := loginAdmin(t, app)
	product := seedProduct(t, db, true)

	path := "/api/products/" + product.ID.String() + "/stock"

	resp, body := doJSON(t, app, http.MethodPatch, path, fiber.Map{"stock": -3}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperr.KindValidation, body["code"])

	resp, body = doJSON(t, app, http.MethodPatch, path, fiber.Map{}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperr.KindValidation, body["code"])

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, product.Stock, reloaded.Stock)
}

func TestProductWrites_RequireSession(t *testing.T) {
	app, db, _ := newTestApp(t)
	product := seedProduct(t, db, true)

	paths := map[string]string{
		http.MethodPost:   "/api/products",
		http.MethodPut:    "/api/products/" + product.ID.String(),
		http.MethodDelete: "/api/products/" + product.ID.String(),
		http.MethodPatch:  "/api/products/" + product.ID.String() + "/availability",
	}
	for method, path := range paths {
		resp, body := doJSON(t, app, method, path, nil, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", method, path)
		assert.Equal(t, apperr.KindAuthentication, body["code"])
	}
}

func TestGetProduct_InvalidID(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/not-a-uuid", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperr.KindValidation, body["code"])
}
