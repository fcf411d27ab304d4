package exts

import (
	"strings"

	"github.com/Eliott67/TwINSA/pkg/internal/auth"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer token, if any, and stashes the
// caller's account in the request locals. Anonymous requests pass
// through untouched.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Next()
	}

	username, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Next()
	}

	account, err := store.Accounts.Get(username)
	if err != nil {
		return c.Next()
	}

	c.Locals("user", account)
	return c.Next()
}

// EnsureAuthenticated rejects anonymous requests.
func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return nil
}
