package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me for the authenticated user.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userService.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return respond(c, fiber.StatusOK, "User retrieved", profile)
}

// GetUserProfile handles GET /api/users/:id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.Get(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return respond(c, fiber.StatusOK, "User retrieved", profile)
}

// DeleteMyAccount handles DELETE /api/users/me. Deleting an account removes
// the user's posts (with their comments and likes), the user's comments on
// other posts, and the user's likes, then expires the session cookie.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respondAppError(c, err)
	}

	s.setSessionCookie(c, "", -time.Hour)
	return respond(c, fiber.StatusOK, "Account deleted", nil)
}

// DeleteUser handles DELETE /api/users/:id with the same cascade as
// DeleteMyAccount. The session cookie is expired only when the caller
// deletes their own account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteAccount(c.UserContext(), id); err != nil {
		return respondAppError(c, err)
	}

	if id == currentUserID(c) {
		s.setSessionCookie(c, "", -time.Hour)
	}
	return respond(c, fiber.StatusOK, "Account deleted", nil)
}
