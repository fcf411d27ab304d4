package api

import (
	"github.com/Eliott67/TwINSA/pkg/internal/auth"
	"github.com/Eliott67/TwINSA/pkg/internal/http/exts"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func doRegister(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" validate:"required,alphanum,min=3,max=24"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name"`
		Age      *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
		Country  string `json:"country"`
		IsPublic *bool  `json:"is_public"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	isPublic := true
	if data.IsPublic != nil {
		isPublic = *data.IsPublic
	}

	account, err := services.CreateAccount(
		data.Username,
		data.Email,
		data.Password,
		data.Name,
		data.Age,
		data.Country,
		isPublic,
	)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(renderOwnProfile(account))
}

func doLogin(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.Authenticate(data.Username, data.Password)
	if err != nil {
		return mapServiceError(err)
	}

	token, err := auth.NewToken(account.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  renderOwnProfile(account),
	})
}

func forgotPassword(c *fiber.Ctx) error {
	var data struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.IssueResetToken(data.Email); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func resetPassword(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.ResetPassword(data.Email, data.Token, data.Password); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func changePassword(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.ChangePassword(user.Username, data.OldPassword, data.NewPassword); err != nil {
		return mapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
