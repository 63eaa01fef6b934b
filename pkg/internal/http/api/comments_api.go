package api

import (
	"fmt"

	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/http/auth"
	"github.com/chirper-app/chirper/pkg/internal/http/exts"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/chirper-app/chirper/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func listPostComments(c *fiber.Ctx) error {
	user := auth.GetUser(c)

	var post models.Post
	if err := database.C.Where("id = ?", c.Params("postId")).First(&post).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unable to find post: %v", err))
	}

	forest, err := services.ListPostComments(post.ID, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": countForestNodes(forest),
		"data":  forest,
	})
}

func countForestNodes(forest []*models.Comment) int {
	total := 0
	for _, node := range forest {
		total += 1 + countForestNodes(node.Children)
	}
	return total
}

func createComment(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Text     string  `json:"text" validate:"required,max=150"`
		ParentID *string `json:"parent_id"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var post models.Post
	if err := database.C.Where("id = ?", c.Params("postId")).First(&post).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unable to find post: %v", err))
	}

	item, err := services.NewComment(user, post, data.ParentID, data.Text)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func deleteComment(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var item models.Comment
	if err := database.C.
		Where("id = ? AND author_id = ?", c.Params("commentId"), user.ID).
		First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteComment(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func getCommentReaction(c *fiber.Ctx) error {
	commentId := c.Params("commentId")

	liked := false
	if user := auth.GetUser(c); user != nil {
		liked = services.HasLikedComment(user.ID, commentId)
	}

	return c.JSON(fiber.Map{
		"is_liked":   liked,
		"like_count": services.CountCommentLikes(commentId),
	})
}

func reactComment(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	item, err := services.GetComment(c.Params("commentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unable to find comment to react: %v", err))
	}

	positive, err := services.ToggleCommentLike(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(lo.Ternary(positive, fiber.StatusCreated, fiber.StatusNoContent)).JSON(fiber.Map{
		"is_liked":   positive,
		"like_count": services.CountCommentLikes(item.ID),
	})
}
