package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meridian/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSizeBytes = 10 << 20 // 10 MiB

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// MediaUploadResponse is the API response after uploading a post image.
type MediaUploadResponse struct {
	URL string `json:"url"`
}

// UploadPostImage handles POST /api/media/posts/images.
//
// The file is stored under the configured media directory with a random
// UUID filename; the original name is only used for its extension so
// uploads can never collide or traverse paths.
func (s *Server) UploadPostImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	if file.Size > maxUploadSizeBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File too large (max 10 MiB)"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported file type (jpg, jpeg, png)"))
	}

	if err := os.MkdirAll(s.config.MediaDir, 0o755); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	name := uuid.NewString() + ext
	dest := filepath.Join(s.config.MediaDir, name)
	if err := c.SaveFile(file, dest); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(MediaUploadResponse{
		URL: fmt.Sprintf("/media/%s", name),
	})
}
