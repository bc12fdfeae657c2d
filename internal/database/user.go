package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thereayou/blog-lite/internal/models"
)

func (d *Database) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err, ErrUserNotFound, ErrEmailTaken)
	}
	return &user, nil
}

// GetUserWithPosts loads the user together with all of its posts, oldest id first.
func (d *Database) GetUserWithPosts(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	err := d.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&user, id).Error
	if err != nil {
		return nil, translateError(err, ErrUserNotFound, ErrEmailTaken)
	}
	return &user, nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err, ErrUserNotFound, ErrEmailTaken)
	}
	return &user, nil
}

func (d *Database) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	err := d.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// CreateUser inserts user. The email lookup is only a fast path: the unique
// index decides races, and its violation maps to the same ErrEmailTaken.
func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	if err := d.ensureEmailFree(ctx, user.Email, 0); err != nil {
		return err
	}
	return d.insertUser(ctx, user)
}

func (d *Database) insertUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return translateError(err, ErrUserNotFound, ErrEmailTaken)
	}
	return nil
}

// UpdateUser applies only the non-nil fields of patch.
func (d *Database) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	user, err := d.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if err := d.ensureEmailFree(ctx, *patch.Email, user.ID); err != nil {
			return nil, err
		}
	}

	patch.Apply(user)

	res := d.db.WithContext(ctx).
		Model(user).
		Select("Email", "Username", "FirstName", "LastName", "IsActive").
		Updates(user)
	if res.Error != nil {
		return nil, translateError(res.Error, ErrUserNotFound, ErrEmailTaken)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes the user and its posts in one transaction. The posts
// table also declares ON DELETE CASCADE.
func (d *Database) DeleteUser(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// ensureEmailFree fails with ErrEmailTaken when email belongs to a user other than ownerID.
func (d *Database) ensureEmailFree(ctx context.Context, email string, ownerID uint) error {
	other, err := d.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	if other.ID != ownerID {
		return ErrEmailTaken
	}
	return nil
}
