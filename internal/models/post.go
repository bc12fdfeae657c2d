package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Content     string    `gorm:"type:text;not null"`
	AuthorID    uint      `gorm:"not null;index"`
	IsPublished bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// PostPatch carries the fields of a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.IsPublished != nil {
		post.IsPublished = *p.IsPublished
	}
}

// PostFilter describes a ListPosts query. Zero values mean "no filter".
type PostFilter struct {
	AuthorID    *uint
	Search      string
	IsPublished *bool
	OrderBy     string
	OrderDir    string
	Skip        int
	Limit       int
}
