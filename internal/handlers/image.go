package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/example/perikanan/internal/apperr"
)

// ImageHandler serves uploaded files by name.
type ImageHandler struct {
	dir string
}

// NewImageHandler constructs an ImageHandler rooted at dir.
func NewImageHandler(dir string) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// GetImage streams a stored image. The filename is reduced to its
// base name so the route cannot escape the upload directory.
func (h *ImageHandler) GetImage(c *fiber.Ctx) error {
	filename := filepath.Base(c.Params("filename"))
	path := filepath.Join(h.dir, filename)

	if _, err := os.Stat(path); err != nil {
		return apperr.NotFound("file not found")
	}

	return c.SendFile(path)
}
