package server

import (
	"meridian/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleReaction handles POST /api/posts/:id/reactions
//
// The body carries the kind the user pressed: {"reaction": "like"} or
// {"reaction": "dislike"}. The response reports what the press did:
//
//	{"status": "created", "reaction": {...}}
//	{"status": "changed", "reaction": {...}}
//	{"status": "removed", "reaction": null}
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reaction string `json:"reaction"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.reactionService.Toggle(ctx, userID, postID, req.Reaction)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GetPostStats handles GET /api/posts/:id/stats
func (s *Server) GetPostStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.reactionService.Stats(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}
