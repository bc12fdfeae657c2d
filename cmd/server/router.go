package server

import (
	"github.com/gin-gonic/gin"

	"github.com/thereayou/blog-lite/internal/handlers"
	"github.com/thereayou/blog-lite/internal/middleware"
	"github.com/thereayou/blog-lite/internal/services"
)

// NewRouter builds the gin engine with middleware and all endpoints.
func NewRouter(db services.DatabaseService) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())

	APIEndpoints(router, handlers.NewUserHandler(db), handlers.NewPostHandler(db))
	return router
}

func APIEndpoints(r *gin.Engine, userH *handlers.UserHandler, postH *handlers.PostHandler) {
	r.GET("/", handlers.Health)

	users := r.Group("/users")
	{
		users.GET("", userH.ListUsers)
		users.POST("", userH.CreateUser)
		users.GET("/:id", userH.GetUser)
		users.PUT("/:id", userH.UpdateUser)
		users.DELETE("/:id", userH.DeleteUser)
		users.POST("/:id/posts", postH.CreatePostForUser)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", postH.ListPosts)
		posts.GET("/:id", postH.GetPost)
		posts.PUT("/:id", postH.UpdatePost)
		posts.DELETE("/:id", postH.DeletePost)
	}
}
