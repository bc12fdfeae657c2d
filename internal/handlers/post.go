package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/blog-lite/internal/handlers/dto"
	"github.com/thereayou/blog-lite/internal/services"
)

const TotalCountHeader = "X-Total-Count"

type PostHandler struct {
	db services.DatabaseService
}

func NewPostHandler(db services.DatabaseService) *PostHandler {
	return &PostHandler{db: db}
}

// ListPosts GET /posts?skip&limit&author_id&search&is_published&order_by&order_dir
func (h *PostHandler) ListPosts(c *gin.Context) {
	q, err := dto.ParseListPostsQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	posts, total, err := h.db.ListPosts(c.Request.Context(), q.ToFilter())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.NewPostResponses(posts))
}

// CreatePostForUser POST /users/:id/posts
func (h *PostHandler) CreatePostForUser(c *gin.Context) {
	authorID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post := req.ToEntity()
	if err := h.db.CreatePostForUser(c.Request.Context(), authorID, post); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPostResponse(post))
}

// GetPost GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.db.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// UpdatePost PUT /posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.db.UpdatePost(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// DeletePost DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.db.DeletePost(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
