package users

import (
	"strings"
	"time"
)

type (
	User struct {
		ID        string
		Email     string
		Password  string // bcrypt hash
		CreatedAt time.Time
	}

	CreateUserRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}
)

// NormalizeEmail is the stored and compared form of an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToResponse strips the password hash
func (u *User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ToResponses maps a list of users
func ToResponses(list []User) []UserResponse {
	out := make([]UserResponse, len(list))
	for i := range list {
		out[i] = list[i].ToResponse()
	}
	return out
}
