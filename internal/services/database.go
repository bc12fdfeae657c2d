package services

import (
	"context"

	"github.com/thereayou/blog-lite/internal/models"
)

// DatabaseService is the storage contract the HTTP handlers depend on.
// *database.Database implements it.
type DatabaseService interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserWithPosts(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error

	GetPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)
	CreatePostForUser(ctx context.Context, authorID uint, post *models.Post) error
	UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error
}
