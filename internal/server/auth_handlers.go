package server

import (
	"fmt"
	"strconv"
	"time"

	"plaza/internal/models"
	"plaza/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTTL = 24 * time.Hour

// Signup handles POST /api/users/signup. The request is multipart form data
// so an optional profile image can ride along with the account fields.
func (s *Server) Signup(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	nickname := c.FormValue("nickname")

	if email == "" || password == "" || nickname == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email, password, and nickname are required"))
	}

	profileImage := ""
	if fh, err := c.FormFile("profile_image"); err == nil && fh != nil {
		path, saveErr := s.uploads.Save(fh)
		if saveErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(saveErr))
		}
		profileImage = path
	}

	user, err := s.userService.Signup(c.UserContext(), service.SignupInput{
		Email:        email,
		Password:     password,
		Nickname:     nickname,
		ProfileImage: profileImage,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Signup successful", user)
}

// Login handles POST /api/users/login. On success the session token is set
// as an HTTP-only cookie; the body echoes the public profile.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Nickname)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	s.setSessionCookie(c, token, sessionTTL)

	return respond(c, fiber.StatusOK, "Login successful", user.Public())
}

// Logout handles POST /api/users/logout by expiring the session cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.setSessionCookie(c, "", -time.Hour)
	return respond(c, fiber.StatusOK, "Logout successful", nil)
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.CookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
		Path:     "/",
	})
}

func (s *Server) generateToken(userID uint, nickname string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"nickname": nickname,                               // Display name (cached in token)
		"iss":      "plaza-api",                            // Issuer
		"aud":      "plaza-client",                         // Audience
		"exp":      now.Add(sessionTTL).Unix(),             // Expiration
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      uuid.NewString(),                       // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
