// Package auth resolves the session token issued by the external auth
// provider into an account. The provider itself (sign-in, OAuth callbacks)
// lives outside this service; only token verification happens here.
package auth

import (
	"strings"

	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/chirper-app/chirper/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// ContextMiddleware attaches the session account to the request when a valid
// token is present. Guests pass through untouched; handlers that require a
// session call EnsureAuthenticated.
func ContextMiddleware(c *fiber.Ctx) error {
	token := readToken(c)
	if len(token) == 0 {
		return c.Next()
	}

	claims, err := verifyToken(token)
	if err != nil {
		return c.Next()
	}

	userId, err := claims.GetSubject()
	if err != nil || len(userId) == 0 {
		return c.Next()
	}

	user, err := services.GetAccount(userId)
	if err != nil {
		return c.Next()
	}

	c.Locals("user", user)
	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return nil
}

func GetUser(c *fiber.Ctx) *models.Account {
	if user, ok := c.Locals("user").(models.Account); ok {
		return &user
	}
	return nil
}

func readToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("session")
}

func verifyToken(token string) (jwt.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(viper.GetString("secret")), nil
	})
	if err != nil || !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return parsed.Claims, nil
}
