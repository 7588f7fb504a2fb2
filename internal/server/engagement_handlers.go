package server

import (
	"traveltales/internal/models"
	"traveltales/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:id/like
// @Summary Like a post
// @Description Idempotent: liking an already-liked post succeeds without a second count.
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.LikeResult
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.engagementService.LikePost(c.Context(), postID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(result)
}

// UnlikePost handles DELETE /api/posts/:id/like
// @Summary Remove a like
// @Description 404 when there is no active like to remove.
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.LikeResult
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/like [delete]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, svcErr := s.engagementService.UnlikePost(c.Context(), postID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(result)
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Comment on a post
// @Tags engagement
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{content=string} true "Comment payload"
// @Success 201 {object} service.CommentResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, svcErr := s.engagementService.AddComment(c.Context(), service.AddCommentInput{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetComments handles GET /api/posts/:id/comments
// @Summary List a post's comments
// @Description Newest first, active comments only.
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Row offset" default(0)
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	comments, svcErr := s.engagementService.ListComments(c.Context(), postID, page.Limit, page.Offset)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}
