package server

import (
	"traveltales/internal/service"

	"github.com/gofiber/fiber/v2"

	"traveltales/internal/models"
)

// GetFeed handles GET /api/posts
// @Summary Browse the public feed
// @Description List published posts with filtering and ranking. All supplied filters combine with AND semantics.
// @Tags posts
// @Produce json
// @Param country query string false "Exact country name"
// @Param author query string false "Author name substring (username, first or last name)"
// @Param search query string false "Substring over title and content"
// @Param tag query string false "Tag name"
// @Param sort query string false "newest | popular | most_liked | most_commented" default(popular)
// @Param page query int false "1-indexed page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.postService.ListFeed(c.Context(), service.ListFeedInput{
		Country:  c.Query("country"),
		Author:   c.Query("author"),
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
		Sort:     c.Query("sort"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
		ViewerID: currentUserID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetPostBySlug handles GET /api/posts/:slug
// @Summary Get post detail
// @Description Full post view: author with social state, counts, viewer flags and the complete comment list.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{slug} [get]
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := s.postService.GetPostBySlug(c.Context(), slug, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,content=string,country_name=string,image_url=string,tags=[]string} true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string   `json:"title"`
		Content     string   `json:"content"`
		CountryName string   `json:"country_name"`
		ImageURL    string   `json:"image_url,omitempty"`
		Tags        []string `json:"tags,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:    userID,
		Title:       req.Title,
		Content:     req.Content,
		CountryName: req.CountryName,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update a post
// @Description Owner-only. Changing the title regenerates the slug.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string,country_name=string,image_url=string,tags=[]string} true "Fields to update"
// @Success 200 {object} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string   `json:"title"`
		Content     string   `json:"content"`
		CountryName string   `json:"country_name"`
		ImageURL    string   `json:"image_url,omitempty"`
		Tags        []string `json:"tags,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, svcErr := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:      userID,
		PostID:      postID,
		Title:       req.Title,
		Content:     req.Content,
		CountryName: req.CountryName,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Owner-only soft delete. The post disappears from every read.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(c.Context(), userID, postID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(models.SuccessResponse{
		Success: true,
		Message: "Post deleted",
	})
}

// GetUserPosts handles GET /api/users/:id/posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Row offset" default(0)
// @Success 200 {array} models.Post
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 10)

	posts, svcErr := s.postService.GetUserPosts(c.Context(), authorID, page.Limit, page.Offset, currentUserID(c))
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetTags handles GET /api/tags
// @Summary List the tag vocabulary
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.postService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return c.JSON(tags)
}
