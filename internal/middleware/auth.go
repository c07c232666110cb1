package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/terralens/terralens-backend/internal/auth"
	"github.com/terralens/terralens-backend/internal/repository"
)

// AuthMiddleware resolves a Bearer token to an account email. In jwt
// mode it verifies tokens issued by our own login endpoint; in firebase
// mode it verifies Firebase ID tokens and provisions an account for the
// token's email on first sight.
type AuthMiddleware struct {
	mode       string
	jwtSecret  []byte
	authClient *fbauth.Client
	users      repository.UserRepository
}

func NewAuthMiddleware(ctx context.Context, mode string, jwtSecret []byte, users repository.UserRepository) (*AuthMiddleware, error) {
	m := &AuthMiddleware{mode: mode, jwtSecret: jwtSecret, users: users}
	if mode != "firebase" {
		return m, nil
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	m.authClient = client
	return m, nil
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")

		var email string
		if m.mode == "firebase" {
			token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			}
			email, _ = token.Claims["email"].(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token has no email"})
			}
			email = strings.ToLower(email)
			if err := m.users.EnsureAccount(c.Request().Context(), email); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "store unavailable"})
			}
		} else {
			verified, err := auth.VerifyToken(tokenStr, m.jwtSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			}
			email = verified
		}

		c.Set("email", email)
		return next(c)
	}
}
