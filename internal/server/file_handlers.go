package server

import (
	"os"
	"path/filepath"
	"strings"

	"fieldbook/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadFile handles POST /api/files/upload. Accepts a single multipart image
// and stores it under the configured upload directory with a generated name.
func (s *Server) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required"))
	}

	maxSize := int64(s.config.UploadMaxSizeMB) * 1024 * 1024
	if fileHeader.Size > maxSize {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File too large"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Only image uploads are allowed"))
	}

	userID := c.Locals("userID").(uint)
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	case ".webp":
		// WebP acceptance is rolled out via feature flag.
		if !s.flags.Enabled("webp_uploads", userID) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unsupported image format"))
		}
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported image format"))
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// A generated name prevents collisions and path traversal via the
	// client-supplied filename.
	name := uuid.New().String() + ext
	if err := c.SaveFile(fileHeader, filepath.Join(s.config.UploadDir, name)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"filename": name,
		"url":      "/uploads/" + name,
	})
}
