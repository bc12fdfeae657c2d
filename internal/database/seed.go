package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thereayou/blog-lite/internal/models"
)

func (d *Database) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (d *Database) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

// UserIDs returns the set of all stored user ids.
func (d *Database) UserIDs(ctx context.Context) (map[uint]struct{}, error) {
	var ids []uint
	if err := d.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// InsertUsers stores users in a single transaction, keeping explicit ids.
func (d *Database) InsertUsers(ctx context.Context, users []models.User) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Omit(clause.Associations).Create(&users[i]).Error; err != nil {
				return fmt.Errorf("insert user %q: %w", users[i].Email, translateError(err, ErrUserNotFound, ErrEmailTaken))
			}
		}
		return nil
	})
}

// InsertPosts stores posts in a single transaction, keeping explicit ids.
func (d *Database) InsertPosts(ctx context.Context, posts []models.Post) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range posts {
			if err := tx.Create(&posts[i]).Error; err != nil {
				return fmt.Errorf("insert post %q: %w", posts[i].Title, translateError(err, ErrPostNotFound, ErrDuplicatePost))
			}
		}
		return nil
	})
}

// SyncSequences moves postgres serial sequences past ids inserted explicitly.
// SQLite derives the next rowid from the table itself.
func (d *Database) SyncSequences(ctx context.Context) error {
	if d.db.Dialector.Name() != "postgres" {
		return nil
	}

	for _, table := range []string{"users", "posts"} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %s",
			table, table,
		)
		if err := d.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("sync %s sequence: %w", table, err)
		}
	}
	return nil
}
