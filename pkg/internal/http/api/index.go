package api

import (
	"errors"

	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/register", doRegister)
			auth.Post("/login", doLogin)
			auth.Post("/password/forgot", forgotPassword)
			auth.Post("/password/reset", resetPassword)
			auth.Post("/password/change", changePassword)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/me", getMyProfile)
			users.Put("/me", editMyProfile)
			users.Delete("/me", deleteMyAccount)
			users.Get("/me/notifications", listNotifications)
			users.Get("/me/requests", listFollowRequests)
			users.Post("/me/requests/:username", resolveFollowRequest)
			users.Get("/search", searchUsers)

			users.Get("/:username", getUserProfile)
			users.Get("/:username/posts", listUserPosts)
			users.Get("/:username/common", listCommonFollowing)
			users.Post("/:username/follow", followUser)
			users.Delete("/:username/follow", unfollowUser)
			users.Post("/:username/block", blockUser)
			users.Delete("/:username/block", unblockUser)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Post("/", createPost)
			posts.Get("/trending", listTrendingHashtags)
			posts.Get("/hashtag/:tag", listPostsByHashtag)
			posts.Get("/:author/:postId", getPost)
			posts.Put("/:author/:postId", editPost)
			posts.Delete("/:author/:postId", deletePost)
			posts.Post("/:author/:postId/like", togglePostLike)
			posts.Post("/:author/:postId/comments", createComment)
			posts.Put("/:author/:postId/comments/:commentId", editComment)
			posts.Delete("/:author/:postId/comments/:commentId", deleteComment)
		}

		api.Get("/feed", getFeed)
	}
}

// mapServiceError translates the core error taxonomy to HTTP statuses.
func mapServiceError(err error) error {
	var hashtagErr *services.HashtagError

	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrNoSuchAccount),
		errors.Is(err, services.ErrNoSuchPost),
		errors.Is(err, services.ErrNoSuchComment),
		errors.Is(err, services.ErrNoSuchRequest):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrBlocked):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrBadCredential):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.As(err, &hashtagErr),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrEmptyPost),
		errors.Is(err, services.ErrEmptyComment):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
