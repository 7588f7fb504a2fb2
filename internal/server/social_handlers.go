package server

import (
	"traveltales/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
// @Summary Follow a user
// @Description Idempotent. Returns the refreshed social state for the pair.
// @Tags social
// @Produce json
// @Param id path int true "Target user ID"
// @Success 200 {object} models.SocialState
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, svcErr := s.socialService.FollowUser(c.Context(), userID, targetID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(state)
}

// UnfollowUser handles DELETE /api/users/:id/follow
// @Summary Unfollow a user
// @Description 404 when there is no active follow to remove.
// @Tags social
// @Produce json
// @Param id path int true "Target user ID"
// @Success 200 {object} models.SocialState
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/follow [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, svcErr := s.socialService.UnfollowUser(c.Context(), userID, targetID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(state)
}

// GetMyFollowers handles GET /api/users/me/followers
// @Summary List accounts following the authenticated user
// @Tags social
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Row offset" default(0)
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users/me/followers [get]
func (s *Server) GetMyFollowers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	users, err := s.socialService.ListFollowers(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(users)
}

// GetMyFollowing handles GET /api/users/me/following
// @Summary List accounts the authenticated user follows
// @Tags social
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Row offset" default(0)
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users/me/following [get]
func (s *Server) GetMyFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	users, err := s.socialService.ListFollowing(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(users)
}
