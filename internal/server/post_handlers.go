package server

import (
	"plaza/internal/models"
	"plaza/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?page=&size= with offset pagination.
// Pages past the end return an empty list, not an error.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	defaultSize := s.config.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = 10
	}

	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", defaultSize)

	posts, err := s.postService.List(c.UserContext(), page, size)
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, "Posts retrieved", fiber.Map{
		"posts": posts,
		"page":  page,
		"size":  size,
	})
}

// CreatePost handles POST /api/posts. The writer is always the authenticated
// user's nickname; the client cannot author posts as someone else.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Writer:   currentNickname(c),
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Post created", post)
}

// GetPost handles GET /api/posts/:id. Every successful view increments the
// post's view count by exactly one.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.Detail(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, "Post retrieved", detail)
}

// UpdatePost handles PATCH /api/posts/:id. Title and content apply only when
// non-empty; image_url applies whenever the field is present, including as
// the empty string to clear the image.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string  `json:"title"`
		Content  string  `json:"content"`
		ImageURL *string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		PostID:    id,
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Requester: currentNickname(c),
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, "Post updated", post)
}

// DeletePost handles DELETE /api/posts/:id. Only the writer may delete, and
// the post's comments and likes go with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), id, currentNickname(c)); err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, "Post deleted", nil)
}

// ToggleLike handles POST /api/posts/:id/like. A first like creates the
// relation, a second removes it; the response reports which happened and the
// post's current like count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	outcome, count, err := s.commentService.ToggleLike(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, string(outcome), fiber.Map{
		"is_liked":           outcome == models.Liked,
		"current_like_count": count,
	})
}
