package api

import (
	"github.com/Eliott67/TwINSA/pkg/internal/http/exts"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/gofiber/fiber/v2"
)

func followUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.FollowUser(user.Username, c.Params("username")); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func unfollowUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.UnfollowUser(user.Username, c.Params("username")); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func blockUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.BlockUser(user.Username, c.Params("username")); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func unblockUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.UnblockUser(user.Username, c.Params("username")); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func listFollowRequests(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	// The middleware snapshot may predate a just-sent request.
	account, err := store.Accounts.Get(user.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(account.PendingRequests)
}

func resolveFollowRequest(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Accept bool `json:"accept"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.ResolveFollowRequest(user.Username, c.Params("username"), data.Accept); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func listNotifications(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	account, err := store.Accounts.Get(user.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	recent := services.RecentNotifications(account, c.QueryInt("limit", services.DefaultNotificationLimit))
	return c.JSON(fiber.Map{
		"count":    len(recent),
		"data":     recent,
		"messages": services.RenderNotifications(recent),
	})
}
