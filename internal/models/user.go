package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Username  string    `gorm:"size:100;not null"`
	FirstName *string   `gorm:"size:100"`
	LastName  *string   `gorm:"size:100"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Связи
	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// UserPatch carries the fields of a partial update. Nil fields are left
// untouched; the names are cleared when set to null.
type UserPatch struct {
	Email     *string
	Username  *string
	FirstName NullableString
	LastName  NullableString
	IsActive  *bool
}

func (p UserPatch) Apply(user *User) {
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.FirstName.Set {
		user.FirstName = p.FirstName.Val
	}
	if p.LastName.Set {
		user.LastName = p.LastName.Val
	}
	if p.IsActive != nil {
		user.IsActive = *p.IsActive
	}
}
