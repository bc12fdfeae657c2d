package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thereayou/blog-lite/internal/models"
)

const (
	DefaultPostLimit = 10
	MaxPostLimit     = 100
	defaultPostOrder = "created_at"
)

// postOrderColumns whitelists the sortable columns of ListPosts.
var postOrderColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"id":         "id",
}

func (d *Database) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := d.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translateError(err, ErrPostNotFound, ErrDuplicatePost)
	}
	return &post, nil
}

// ListPosts returns one page of posts matching f and the number of matching
// posts ignoring Skip and Limit. Unknown OrderBy values sort by created_at.
func (d *Database) ListPosts(ctx context.Context, f models.PostFilter) ([]models.Post, int64, error) {
	var total int64
	err := d.db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(filterPosts(f)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	column, ok := postOrderColumns[f.OrderBy]
	if !ok {
		column = defaultPostOrder
	}
	desc := !strings.EqualFold(f.OrderDir, "asc")

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	if limit > MaxPostLimit {
		limit = MaxPostLimit
	}

	query := d.db.WithContext(ctx).
		Scopes(filterPosts(f)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	if column != "id" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}

	var posts []models.Post
	if err := query.Offset(max(f.Skip, 0)).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func filterPosts(f models.PostFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.AuthorID != nil {
			db = db.Where("author_id = ?", *f.AuthorID)
		}
		if f.Search != "" {
			like := "%" + foldSearch(db.Dialector.Name(), f.Search) + "%"
			db = db.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", like, like)
		}
		if f.IsPublished != nil {
			db = db.Where("is_published = ?", *f.IsPublished)
		}
		return db
	}
}

// CreatePostForUser inserts post owned by authorID. A missing author is
// reported as ErrUserNotFound, whether found by the lookup or by the foreign key.
func (d *Database) CreatePostForUser(ctx context.Context, authorID uint, post *models.Post) error {
	if _, err := d.GetUser(ctx, authorID); err != nil {
		return err
	}

	post.AuthorID = authorID
	if err := d.db.WithContext(ctx).Create(post).Error; err != nil {
		return translateError(err, ErrUserNotFound, ErrDuplicatePost)
	}
	return nil
}

// UpdatePost applies only the non-nil fields of patch.
func (d *Database) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	post, err := d.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(post)

	res := d.db.WithContext(ctx).
		Model(post).
		Select("Title", "Content", "IsPublished").
		Updates(post)
	if res.Error != nil {
		return nil, translateError(res.Error, ErrPostNotFound, ErrDuplicatePost)
	}
	if res.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (d *Database) DeletePost(ctx context.Context, id uint) error {
	res := d.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// foldSearch lowercases the search term the same way the store's LOWER()
// folds column values. SQLite only folds ASCII letters.
func foldSearch(dialect, term string) string {
	if dialect != "sqlite" {
		return strings.ToLower(term)
	}
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, term)
}
