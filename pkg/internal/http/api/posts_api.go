package api

import (
	"strconv"

	"github.com/Eliott67/TwINSA/pkg/internal/http/exts"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/gofiber/fiber/v2"
)

func parsePostKey(c *fiber.Ctx) (string, uint, error) {
	author := c.Params("author")
	id, err := strconv.Atoi(c.Params("postId"))
	if err != nil || id <= 0 {
		return "", 0, fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}
	return author, uint(id), nil
}

func createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Content string `json:"content"`
		Image   string `json:"image"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	post, err := services.NewPost(user.Username, data.Content, data.Image)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(post)
}

func getPost(c *fiber.Ctx) error {
	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	ownerAccount, err := store.Accounts.Get(author)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	var viewer models.Account
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		viewer = user
	}
	if !services.CanView(viewer, ownerAccount) {
		return fiber.NewError(fiber.StatusForbidden, "this account is private")
	}

	return c.JSON(post)
}

func editPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	post, err := services.EditPost(author, id, user.Username, data.Content)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(post)
}

func deletePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}

	if err := services.DeletePost(author, id, user.Username); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func togglePostLike(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}

	liked, err := services.ToggleLike(author, id, user.Username)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}

	var data struct {
		Text string `json:"text" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.AddComment(author, id, user.Username, data.Text)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(comment)
}

func editComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil || commentID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid comment id")
	}

	var data struct {
		Text string `json:"text" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.EditComment(author, id, uint(commentID), user.Username, data.Text)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(comment)
}

func deleteComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	author, id, err := parsePostKey(c)
	if err != nil {
		return err
	}
	commentID, err := strconv.Atoi(c.Params("commentId"))
	if err != nil || commentID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid comment id")
	}

	if err := services.DeleteComment(author, id, uint(commentID), user.Username); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func listPostsByHashtag(c *fiber.Ctx) error {
	posts := services.PostsByHashtag(c.Params("tag"))
	return c.JSON(fiber.Map{
		"count": len(posts),
		"data":  posts,
	})
}

func listTrendingHashtags(c *fiber.Ctx) error {
	counts, err := services.TrendingHashtags(c.QueryInt("take", 10))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(counts)
}
