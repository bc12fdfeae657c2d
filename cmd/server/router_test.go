package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/blog-lite/internal/config"
	"github.com/thereayou/blog-lite/internal/database"
	"github.com/thereayou/blog-lite/internal/handlers/dto"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(config.DatabaseConfig{
		URL:          "sqlite:///" + filepath.Join(t.TempDir(), "api.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRouter(db)
}

func do(t *testing.T, r http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUserAndPostFlow(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users", gin.H{
		"email":      "new.user@example.com",
		"username":   "newuser",
		"first_name": "New",
		"last_name":  "User",
		"is_active":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[dto.UserResponse](t, w)
	require.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	w = do(t, r, http.MethodPost, fmt.Sprintf("/users/%d/posts", user.ID), gin.H{
		"title": "Hello", "content": "World", "is_published": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := decode[dto.PostResponse](t, w)
	assert.Equal(t, user.ID, post.AuthorID)

	query := url.Values{"authorId": {fmt.Sprint(user.ID)}, "search": {"Hell"}}
	w = do(t, r, http.MethodGet, "/posts?"+query.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[[]dto.PostResponse](t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, post.ID, listed[0].ID)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	w = do(t, r, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), gin.H{"title": "Hello 2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.PostResponse](t, w)
	assert.Equal(t, "Hello 2", updated.Title)
	assert.Equal(t, "World", updated.Content)
	assert.True(t, updated.IsPublished)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	withPosts := decode[dto.UserWithPostsResponse](t, w)
	require.Len(t, withPosts.Posts, 1)
	assert.Equal(t, "Hello 2", withPosts.Posts[0].Title)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUser_EmptyPostsIsArray(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users", gin.H{"email": "solo@example.com", "username": "solo"})
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode[dto.UserResponse](t, w)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.FirstName)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, []interface{}{}, body["posts"])
	assert.Nil(t, body["first_name"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r := setupRouter(t)
	payload := gin.H{"email": "dup@example.com", "username": "dup"}

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/users", payload).Code)

	w := do(t, r, http.MethodPost, "/users", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered.")
}

func TestUpdateUser(t *testing.T) {
	r := setupRouter(t)
	first := decode[dto.UserResponse](t, do(t, r, http.MethodPost, "/users", gin.H{"email": "a@example.com", "username": "a"}))
	second := decode[dto.UserResponse](t, do(t, r, http.MethodPost, "/users", gin.H{"email": "b@example.com", "username": "b"}))

	w := do(t, r, http.MethodPut, fmt.Sprintf("/users/%d", second.ID), gin.H{"email": first.Email})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/users/%d", second.ID), gin.H{"username": "bee", "is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.UserResponse](t, w)
	assert.Equal(t, "bee", updated.Username)
	assert.Equal(t, "b@example.com", updated.Email)
	assert.False(t, updated.IsActive)

	w = do(t, r, http.MethodPut, "/users/999", gin.H{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_NullClearsFirstName(t *testing.T) {
	r := setupRouter(t)
	w := do(t, r, http.MethodPost, "/users", gin.H{"email": "ada@example.com", "username": "ada", "first_name": "Ada", "last_name": "Lovelace"})
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode[dto.UserResponse](t, w)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), gin.H{"first_name": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]interface{}](t, w)
	assert.Nil(t, body["first_name"])
	assert.Equal(t, "Lovelace", body["last_name"])

	w = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode[map[string]interface{}](t, w)
	assert.Contains(t, body, "first_name")
	assert.Nil(t, body["first_name"])
}

func TestListUsers(t *testing.T) {
	r := setupRouter(t)
	for i := 0; i < 3; i++ {
		w := do(t, r, http.MethodPost, "/users", gin.H{"email": fmt.Sprintf("u%d@example.com", i), "username": "u"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, r, http.MethodGet, "/users?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]dto.UserResponse](t, w)
	require.Len(t, users, 1)
	assert.Equal(t, "u1@example.com", users[0].Email)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/users?limit=1001", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/users?skip=-1", nil).Code)
}

func TestListPosts_Paging(t *testing.T) {
	r := setupRouter(t)
	user := decode[dto.UserResponse](t, do(t, r, http.MethodPost, "/users", gin.H{"email": "p@example.com", "username": "p"}))
	for i := 0; i < 12; i++ {
		w := do(t, r, http.MethodPost, fmt.Sprintf("/users/%d/posts", user.ID), gin.H{"title": fmt.Sprintf("Post %02d", i), "content": "body"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, r, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.PostResponse](t, w), 10)
	assert.Equal(t, "12", w.Header().Get("X-Total-Count"))

	w = do(t, r, http.MethodGet, "/posts?skip=10&order_by=title&order_dir=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[[]dto.PostResponse](t, w)
	require.Len(t, page, 2)
	assert.Equal(t, "Post 10", page[0].Title)
	assert.Equal(t, "12", w.Header().Get("X-Total-Count"))

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/posts?limit=101", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/posts?orderBy=content", nil).Code)
}

func TestPostErrors(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/42/posts", gin.H{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found.")

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/posts/42", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/posts/42", gin.H{"title": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/posts/42", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/posts/abc", nil).Code)
}

func TestValidationErrors(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users", gin.H{"email": "nope", "username": ""})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[map[string]map[string]interface{}](t, w)
	details, ok := body["error"]["details"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "username")

	user := decode[dto.UserResponse](t, do(t, r, http.MethodPost, "/users", gin.H{"email": "v@example.com", "username": "v"}))
	w = do(t, r, http.MethodPost, fmt.Sprintf("/users/%d/posts", user.ID), gin.H{"title": "", "content": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
