package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/blog-lite/internal/handlers/dto"
	"github.com/thereayou/blog-lite/internal/services"
)

type UserHandler struct {
	db services.DatabaseService
}

func NewUserHandler(db services.DatabaseService) *UserHandler {
	return &UserHandler{db: db}
}

// ListUsers GET /users?skip=0&limit=100
func (h *UserHandler) ListUsers(c *gin.Context) {
	q, err := dto.ParseListUsersQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	users, err := h.db.ListUsers(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

// CreateUser POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user := req.ToEntity()
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetUser GET /users/:id, posts included
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserWithPosts(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserWithPostsResponse(user))
}

// UpdateUser PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.db.UpdateUser(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser DELETE /users/:id, posts go with it
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
