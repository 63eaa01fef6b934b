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
	"gorm.io/gorm"
)

// universalPostFilter narrows the feed query by the optional author and
// media switches shared across listings. An unknown author is a 404, matching
// the profile page boundary.
func universalPostFilter(c *fiber.Ctx, tx *gorm.DB) (*gorm.DB, error) {
	if len(c.Query("author")) > 0 {
		author, err := services.GetAccountByUsername(c.Query("author"))
		if err != nil {
			return tx, fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		tx = services.FilterPostWithAuthor(tx, author.ID)
	}

	if c.QueryBool("media", false) {
		tx = services.FilterPostWithMedia(tx)
	}

	return tx, nil
}

func listPost(c *fiber.Ctx) error {
	page := max(1, c.QueryInt("page", 1))
	user := auth.GetUser(c)

	tx, err := universalPostFilter(c, database.C)
	if err != nil {
		return err
	}

	var items []models.Post
	var totalPages int
	if len(c.Query("author")) == 0 && !c.QueryBool("media", false) {
		items, totalPages, err = services.ListRootFeedPage(page, user)
	} else {
		items, totalPages, err = services.ListPostPage(tx, page, user)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":        items,
		"total_pages": totalPages,
	})
}

func searchPost(c *fiber.Ctx) error {
	page := max(1, c.QueryInt("page", 1))
	user := auth.GetUser(c)

	probe := c.Query("probe")
	if len(probe) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "probe is required")
	}

	tx := services.FilterPostWithFuzzySearch(database.C, probe)

	var err error
	if tx, err = universalPostFilter(c, tx); err != nil {
		return err
	}

	items, totalPages, err := services.ListPostPage(tx, page, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":        items,
		"total_pages": totalPages,
	})
}

func getPost(c *fiber.Ctx) error {
	id := c.Params("postId")
	user := auth.GetUser(c)

	item, err := services.GetPost(database.C, id, user)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(item)
}

func createPost(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Text  *string `json:"text" validate:"omitempty,max=280"`
		Image *string `json:"image" validate:"omitempty,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(user, data.Text, data.Image)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id := c.Params("postId")

	var item models.Post
	if err := database.C.
		Where("id = ? AND author_id = ?", id, user.ID).
		First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeletePost(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

// getPostReaction hands optimistic clients the authoritative state to
// reconcile against after a toggle.
func getPostReaction(c *fiber.Ctx) error {
	postId := c.Params("postId")

	liked := false
	if user := auth.GetUser(c); user != nil {
		liked = services.HasLikedPost(user.ID, postId)
	}

	return c.JSON(fiber.Map{
		"is_liked":   liked,
		"like_count": services.CountPostLikes(postId),
	})
}

func reactPost(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var item models.Post
	if err := database.C.Where("id = ?", c.Params("postId")).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unable to find post to react: %v", err))
	}

	positive, err := services.TogglePostLike(user, item)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(lo.Ternary(positive, fiber.StatusCreated, fiber.StatusNoContent)).JSON(fiber.Map{
		"is_liked":   positive,
		"like_count": services.CountPostLikes(item.ID),
	})
}
