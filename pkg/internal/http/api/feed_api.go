package api

import (
	"strings"
	"time"

	"github.com/Eliott67/TwINSA/pkg/internal/http/exts"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getFeed(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	mode := c.Query("mode", services.FeedModeFollowing)

	var filter services.FeedFilter
	if tags := c.Query("hashtags"); len(tags) > 0 {
		filter.Hashtags = strings.Split(tags, ",")
	}
	if flags := c.Query("types"); len(flags) > 0 {
		filter.Types = strings.Split(flags, ",")
	}
	if raw := c.Query("since"); len(raw) > 0 {
		since, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "since must be YYYY-MM-DD")
		}
		filter.Since = &since
	}
	if raw := c.Query("until"); len(raw) > 0 {
		until, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "until must be YYYY-MM-DD")
		}
		filter.Until = &until
	}

	posts, err := services.BuildFeed(user, mode, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	take := c.QueryInt("take", 50)
	if take > 0 && take < len(posts) {
		posts = posts[:take]
	}

	return c.JSON(fiber.Map{
		"count": len(posts),
		"data":  posts,
	})
}
