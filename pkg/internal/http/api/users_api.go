package api

import (
	"errors"

	"github.com/chirper-app/chirper/pkg/internal/http/auth"
	"github.com/chirper-app/chirper/pkg/internal/http/exts"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/chirper-app/chirper/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func getUserinfo(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(user)
}

func getOtherUserinfo(c *fiber.Ctx) error {
	account, err := services.GetAccountByUsername(c.Params("username"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(fiber.Map{
		"profile": account,
		"metric":  services.CompleteAccountMetric(account, auth.GetUser(c)),
	})
}

func listUserReplies(c *fiber.Ctx) error {
	page := max(1, c.QueryInt("page", 1))

	account, err := services.GetAccountByUsername(c.Params("username"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	replies, totalPages, err := services.ListUserReplies(account, page)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":        replies,
		"total_pages": totalPages,
	})
}

func listUserLikes(c *fiber.Ctx) error {
	page := max(1, c.QueryInt("page", 1))

	account, err := services.GetAccountByUsername(c.Params("username"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	entries, totalPages, err := services.ListLikedContent(account, page)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":        entries,
		"total_pages": totalPages,
	})
}

func searchUsers(c *fiber.Ctx) error {
	page := max(1, c.QueryInt("page", 1))

	probe := c.Query("probe")
	if len(probe) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "probe is required")
	}

	accounts, totalPages, err := services.SearchAccounts(probe, page)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":        accounts,
		"total_pages": totalPages,
	})
}

func updateUserinfo(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
		Username *string `json:"username" validate:"omitempty,min=3,max=15"`
		Avatar   *string `json:"avatar" validate:"omitempty,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if data.Name == nil && data.Username == nil && data.Avatar == nil {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	account, err := services.UpdateAccountSettings(user, data.Name, data.Username, data.Avatar)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
				"input": data,
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(account)
}

func toggleFollow(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	target, err := services.GetAccount(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	positive, err := services.ToggleFollow(user, target)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	following, followers := services.CountFollows(target.ID)

	return c.Status(lo.Ternary(positive, fiber.StatusCreated, fiber.StatusNoContent)).JSON(fiber.Map{
		"is_followed":     positive,
		"total_following": following,
		"total_followers": followers,
	})
}
