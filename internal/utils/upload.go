package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/perikanan/internal/apperr"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// SaveImage stores an uploaded image under dir with a generated
// collision-free name and returns its public /images path. The file
// extension must be on the allow-list.
func SaveImage(c *fiber.Ctx, file *multipart.FileHeader, dir, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", apperr.Validation("unsupported image type")
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().Unix(), hex.EncodeToString(suffix), ext)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return "/images/" + filename, nil
}
