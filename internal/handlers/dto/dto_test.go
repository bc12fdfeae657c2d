package dto

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/blog-lite/internal/models"
)

func strPtr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := CreateUserRequest{Email: "ada@example.com", Username: "ada"}
	require.NoError(t, valid.Validate())

	errs := fieldErrors(t, CreateUserRequest{Email: "not-an-email", Username: ""}.Validate())
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "username")

	long := strings.Repeat("x", MaxNameLength+1)
	errs = fieldErrors(t, CreateUserRequest{Email: "ada@example.com", Username: long, FirstName: &long}.Validate())
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "first_name")
	assert.NotContains(t, errs, "email")
}

func TestCreateUserRequest_ToEntityDefaults(t *testing.T) {
	req := CreateUserRequest{Email: "ada@example.com", Username: "ada"}
	assert.True(t, req.ToEntity().IsActive)

	inactive := false
	req.IsActive = &inactive
	assert.False(t, req.ToEntity().IsActive)
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	require.NoError(t, UpdateUserRequest{}.Validate())
	require.NoError(t, UpdateUserRequest{FirstName: models.SetTo(strPtr(""))}.Validate())
	require.NoError(t, UpdateUserRequest{FirstName: models.SetTo(nil)}.Validate())

	long := strings.Repeat("n", MaxNameLength+1)
	errs := fieldErrors(t, UpdateUserRequest{LastName: models.SetTo(&long)}.Validate())
	assert.Contains(t, errs, "last_name")

	errs = fieldErrors(t, UpdateUserRequest{Email: strPtr("bad"), Username: strPtr("")}.Validate())
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "username")
}

func TestUpdateUserRequest_NullClearsName(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":null,"username":"ada"}`), &req))

	patch := req.ToPatch()
	assert.True(t, patch.FirstName.Set)
	assert.Nil(t, patch.FirstName.Val)
	assert.False(t, patch.LastName.Set)

	user := models.User{FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")}
	patch.Apply(&user)
	assert.Nil(t, user.FirstName)
	require.NotNil(t, user.LastName)
	assert.Equal(t, "Lovelace", *user.LastName)
}

func TestUpdateUserRequest_RejectsNonStringName(t *testing.T) {
	var req UpdateUserRequest
	assert.Error(t, json.Unmarshal([]byte(`{"last_name":42}`), &req))
}

func TestCreatePostRequest_Validate(t *testing.T) {
	require.NoError(t, CreatePostRequest{Title: "Hello", Content: "World"}.Validate())

	errs := fieldErrors(t, CreatePostRequest{Title: strings.Repeat("t", MaxTitleLength+1)}.Validate())
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "content")

	req := CreatePostRequest{Title: "Hello", Content: "World"}
	assert.True(t, req.ToEntity().IsPublished)
}

func TestUpdatePostRequest_Validate(t *testing.T) {
	require.NoError(t, UpdatePostRequest{Title: strPtr("Hello 2")}.Validate())

	errs := fieldErrors(t, UpdatePostRequest{Title: strPtr(""), Content: strPtr("")}.Validate())
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "content")

	req := UpdatePostRequest{Title: strPtr("Hello 2")}
	patch := req.ToPatch()
	assert.Equal(t, models.PostPatch{Title: strPtr("Hello 2")}, patch)
}

func TestParseListPostsQuery_BoolForms(t *testing.T) {
	tests := map[string]bool{
		"t": true, "T": true, "y": true, "on": true, "1": true, "TRUE": true,
		"f": false, "n": false, "off": false, "0": false, "No": false,
	}
	for raw, want := range tests {
		q, err := ParseListPostsQuery(url.Values{"isPublished": {raw}})
		require.NoError(t, err, raw)
		require.NotNil(t, q.IsPublished, raw)
		assert.Equal(t, want, *q.IsPublished, raw)
	}

	_, err := ParseListPostsQuery(url.Values{"is_published": {"maybe"}})
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "is_published")
}

func TestParseListUsersQuery(t *testing.T) {
	q, err := ParseListUsersQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, ListUsersQuery{Skip: 0, Limit: DefaultUserLimit}, q)

	q, err = ParseListUsersQuery(url.Values{"skip": {"5"}, "limit": {"1000"}})
	require.NoError(t, err)
	assert.Equal(t, ListUsersQuery{Skip: 5, Limit: 1000}, q)

	for _, values := range []url.Values{
		{"limit": {"1001"}},
		{"limit": {"0"}},
		{"skip": {"-1"}},
		{"skip": {"abc"}},
	} {
		_, err := ParseListUsersQuery(values)
		assert.Error(t, err, values.Encode())
	}
}

func TestParseListPostsQuery(t *testing.T) {
	q, err := ParseListPostsQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPostLimit, q.Limit)
	assert.Equal(t, "created_at", q.OrderBy)
	assert.Equal(t, "desc", q.OrderDir)
	assert.Nil(t, q.AuthorID)
	assert.Nil(t, q.IsPublished)

	q, err = ParseListPostsQuery(url.Values{
		"authorId":    {"7"},
		"search":      {"Hell"},
		"isPublished": {"false"},
		"orderBy":     {"title"},
		"orderDir":    {"asc"},
		"skip":        {"20"},
		"limit":       {"100"},
	})
	require.NoError(t, err)
	require.NotNil(t, q.AuthorID)
	assert.Equal(t, uint(7), *q.AuthorID)
	require.NotNil(t, q.IsPublished)
	assert.False(t, *q.IsPublished)

	filter := q.ToFilter()
	assert.Equal(t, "Hell", filter.Search)
	assert.Equal(t, "title", filter.OrderBy)
	assert.Equal(t, "asc", filter.OrderDir)
	assert.Equal(t, 20, filter.Skip)
	assert.Equal(t, 100, filter.Limit)

	q, err = ParseListPostsQuery(url.Values{"author_id": {"3"}, "is_published": {"yes"}})
	require.NoError(t, err)
	assert.Equal(t, uint(3), *q.AuthorID)
	assert.True(t, *q.IsPublished)
}

func TestParseListPostsQuery_Invalid(t *testing.T) {
	_, err := ParseListPostsQuery(url.Values{
		"limit":     {"101"},
		"order_by":  {"content"},
		"order_dir": {"sideways"},
		"author_id": {"me"},
	})
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "limit")
	assert.Contains(t, errs, "order_by")
	assert.Contains(t, errs, "order_dir")
	assert.Contains(t, errs, "author_id")
}
