package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUser returns a user profile (public). The path segment is a numeric ID
// or, failing that, a username.
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ref := c.Params("id")

	if id, convErr := strconv.ParseUint(ref, 10, 32); convErr == nil && id > 0 {
		user, err := s.userService.GetUser(ctx, uint(id))
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(user)
	}

	user, err := s.userService.GetUserByUsername(ctx, ref)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUsers returns a paginated user listing (public)
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}
