package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/thereayou/blog-lite/internal/models"
)

const (
	MaxEmailLength = 255
	MaxNameLength  = 100
)

type CreateUserRequest struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.RuneLength(1, MaxEmailLength),
			is.EmailFormat.Error("must be a valid email address"),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.FirstName, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&r.LastName, validation.RuneLength(0, MaxNameLength)),
	)
}

// ToEntity converts the request into a new user; is_active defaults to true.
func (r CreateUserRequest) ToEntity() *models.User {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.User{
		Email:     r.Email,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		IsActive:  active,
	}
}

// UpdateUserRequest - all fields optional, only supplied ones are applied.
// first_name/last_name accept null to clear the stored value.
type UpdateUserRequest struct {
	Email     *string               `json:"email"`
	Username  *string               `json:"username"`
	FirstName models.NullableString `json:"first_name"`
	LastName  models.NullableString `json:"last_name"`
	IsActive  *bool                 `json:"is_active"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.NilOrNotEmpty.Error("email cannot be blank"),
			validation.RuneLength(1, MaxEmailLength),
			is.EmailFormat.Error("must be a valid email address"),
		),
		validation.Field(&r.Username,
			validation.NilOrNotEmpty.Error("username cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.FirstName, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&r.LastName, validation.RuneLength(0, MaxNameLength)),
	)
}

func (r UpdateUserRequest) ToPatch() models.UserPatch {
	return models.UserPatch{
		Email:     r.Email,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		IsActive:  r.IsActive,
	}
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithPostsResponse - GET /users/:id
type UserWithPostsResponse struct {
	UserResponse
	Posts []PostResponse `json:"posts"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserWithPostsResponse(u *models.User) UserWithPostsResponse {
	return UserWithPostsResponse{
		UserResponse: NewUserResponse(u),
		Posts:        NewPostResponses(u.Posts),
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}
