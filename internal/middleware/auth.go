// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the HTTP layer.
package middleware

import (
	"strconv"

	"plaza/internal/config"
	"plaza/internal/models"
	"plaza/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	cfg   *config.Config
	users store.UserStore
)

// InitMiddleware wires the auth middleware with the application config and
// the user table it resolves sessions against.
func InitMiddleware(c *config.Config, u store.UserStore) {
	cfg = c
	users = u
}

// AuthRequired enforces authentication for protected routes. The session
// token is a JWT carried in an HTTP-only cookie; the "sub" claim holds the
// user ID. On success the resolved user's ID and nickname are stored in
// c.Locals("userID") / c.Locals("nickname") for downstream handlers.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := c.Cookies(cfg.CookieName)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token structure - missing subject",
		})
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token subject type",
		})
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token subject",
		})
	}
	userID := uint(userIDVal)

	// A valid token for a deleted account is a dead session.
	profile, err := users.GetByID(c.UserContext(), userID)
	if err != nil {
		if models.IsNotFound(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve session",
		})
	}

	c.Locals("userID", userID)
	c.Locals("nickname", profile.Nickname)
	return c.Next()
}
