package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thereayou/blog-lite/internal/models"
)

const MaxTitleLength = 255

type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"is_published"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// ToEntity converts the request into a new post; is_published defaults to true.
func (r CreatePostRequest) ToEntity() *models.Post {
	published := true
	if r.IsPublished != nil {
		published = *r.IsPublished
	}
	return &models.Post{
		Title:       r.Title,
		Content:     r.Content,
		IsPublished: published,
	}
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be blank"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Content, validation.NilOrNotEmpty.Error("content cannot be blank")),
	)
}

func (r UpdatePostRequest) ToPatch() models.PostPatch {
	return models.PostPatch{
		Title:       r.Title,
		Content:     r.Content,
		IsPublished: r.IsPublished,
	}
}

type PostResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	AuthorID    uint      `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		IsPublished: p.IsPublished,
		AuthorID:    p.AuthorID,
		CreatedAt:   p.CreatedAt,
	}
}

// NewPostResponses never returns nil so empty lists encode as [].
func NewPostResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = NewPostResponse(&posts[i])
	}
	return out
}
