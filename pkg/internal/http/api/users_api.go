package api

import (
	"github.com/Eliott67/TwINSA/pkg/internal/http/exts"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// renderProfile strips credentials and the inbox from an account before
// it goes over the wire. Relationship lists are only exposed on the
// owner's own profile or an unlocked one.
func renderProfile(account models.Account, unlocked bool) fiber.Map {
	profile := fiber.Map{
		"username":        account.Username,
		"is_public":       account.IsPublic,
		"followers_count": len(account.Followers),
		"following_count": len(account.Following),
	}

	if unlocked {
		profile["name"] = account.Name
		profile["age"] = account.Age
		profile["country"] = account.Country
		profile["profile_picture"] = account.ProfilePicture
		profile["followers"] = account.Followers
		profile["following"] = account.Following
		profile["created_at"] = account.CreatedAt
	}

	return profile
}

// renderOwnProfile is the self view; only the owner ever sees the email.
func renderOwnProfile(account models.Account) fiber.Map {
	profile := renderProfile(account, true)
	profile["email"] = account.Email
	return profile
}

func getMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(renderOwnProfile(user))
}

func editMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Name           *string `json:"name"`
		Age            *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
		Country        *string `json:"country"`
		IsPublic       *bool   `json:"is_public"`
		ProfilePicture *string `json:"profile_picture"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.UpdateProfile(user.Username, services.ProfileUpdate{
		Name:           data.Name,
		Age:            data.Age,
		Country:        data.Country,
		IsPublic:       data.IsPublic,
		ProfilePicture: data.ProfilePicture,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(renderOwnProfile(account))
}

func deleteMyAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.DeleteAccount(user.Username); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func getUserProfile(c *fiber.Ctx) error {
	owner, err := store.Accounts.Get(c.Params("username"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	var viewer models.Account
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		viewer = user
	}

	unlocked := services.CanView(viewer, owner)
	return c.JSON(fiber.Map{
		"can_view": unlocked,
		"profile":  renderProfile(owner, unlocked),
	})
}

func listUserPosts(c *fiber.Ctx) error {
	owner, err := store.Accounts.Get(c.Params("username"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	var viewer models.Account
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		viewer = user
	}

	posts, unlocked := services.PostsByAuthor(viewer, owner)
	return c.JSON(fiber.Map{
		"can_view": unlocked,
		"count":    len(posts),
		"data":     posts,
	})
}

func searchUsers(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	query := c.Query("q")
	if len(query) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "q is required")
	}

	matches := services.SearchAccounts(user, query)
	return c.JSON(lo.Map(matches, func(account models.Account, _ int) fiber.Map {
		return fiber.Map{
			"username":  account.Username,
			"is_public": account.IsPublic,
			"followed":  user.Follows(account.Username),
		}
	}))
}

func listCommonFollowing(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	other, err := store.Accounts.Get(c.Params("username"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(services.CommonFollowing(user, other))
}
