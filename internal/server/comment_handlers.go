package server

import (
	"plaza/internal/models"
	"plaza/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments in creation order.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.List(c.UserContext(), postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, "Comments retrieved", comments)
}

// CreateComment handles POST /api/posts/:id/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
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

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		PostID:  postID,
		UserID:  currentUserID(c),
		Content: req.Content,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Comment created", comment)
}

// DeleteComment handles DELETE /api/comments/:id. Only the comment's author
// may delete it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.commentService.Delete(c.UserContext(), service.DeleteCommentInput{
		CommentID: commentID,
		UserID:    currentUserID(c),
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusOK, "Comment deleted", nil)
}
