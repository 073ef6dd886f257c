package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"plaza/internal/config"
	"plaza/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"
	cookieName := "session_token"

	db := store.New()
	userStore := store.NewUserStore(db)
	account, err := userStore.Create(context.Background(), store.CreateUserInput{
		Email:    "auth@example.com",
		Password: "password123",
		Nickname: "authuser",
	})
	require.NoError(t, err)

	InitMiddleware(&config.Config{JWTSecret: secret, CookieName: cookieName}, userStore)

	app := fiber.New()
	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"userID":   c.Locals("userID"),
			"nickname": c.Locals("nickname"),
		})
	})

	generateToken := func(userID uint, exp time.Duration) string {
		claims := jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(userID), 10),
			"exp": time.Now().Add(exp).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}

	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
		expectedUserID uint
	}{
		{
			name:           "Happy Path",
			cookie:         generateToken(account.ID, time.Hour),
			expectedStatus: http.StatusOK,
			expectedUserID: account.ID,
		},
		{
			name:           "Missing Cookie",
			cookie:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage Token",
			cookie:         "not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			cookie:         generateToken(account.ID, -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token For Deleted Account",
			cookie:         generateToken(99999, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, float64(tt.expectedUserID), body["userID"])
				assert.Equal(t, "authuser", body["nickname"])
			}
		})
	}
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"
	cookieName := "session_token"

	db := store.New()
	userStore := store.NewUserStore(db)
	account, err := userStore.Create(context.Background(), store.CreateUserInput{
		Email:    "forged@example.com",
		Password: "password123",
		Nickname: "forged",
	})
	require.NoError(t, err)

	InitMiddleware(&config.Config{JWTSecret: secret, CookieName: cookieName}, userStore)

	app := fiber.New()
	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(account.ID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("attacker-controlled-secret-value"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: forged})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
