package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPost)
			posts.Get("/search", searchPost)
			posts.Get("/:postId", getPost)
			posts.Post("/", createPost)
			posts.Delete("/:postId", deletePost)
			posts.Get("/:postId/react", getPostReaction)
			posts.Post("/:postId/react", reactPost)

			posts.Get("/:postId/comments", listPostComments)
			posts.Post("/:postId/comments", createComment)
		}

		comments := api.Group("/comments").Name("Comments API")
		{
			comments.Delete("/:commentId", deleteComment)
			comments.Get("/:commentId/react", getCommentReaction)
			comments.Post("/:commentId/react", reactComment)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/me", getUserinfo)
			users.Put("/me", updateUserinfo)
			users.Get("/search", searchUsers)
			users.Get("/:username", getOtherUserinfo)
			users.Get("/:username/replies", listUserReplies)
			users.Get("/:username/likes", listUserLikes)
			users.Post("/:userId/follow", toggleFollow)
		}
	}
}
