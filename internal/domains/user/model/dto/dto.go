package dto

import (
	"carrental/internal/domains/user/model"
	"strings"
	"time"
)

type AddUserRequest struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6"`
	Email    string `validate:"required,email"`
	Role     string `validate:"required,oneof=Admin Manager Staff"`
}

func (r *AddUserRequest) ToModel(passwordHash string, now time.Time) model.User {
	return model.User{
		Username:     strings.TrimSpace(r.Username),
		PasswordHash: passwordHash,
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Role:         r.Role,
		CreatedAt:    now,
		IsActive:     true,
	}
}

// UpdateUserRequest edits an account. An empty Password keeps the stored hash.
type UpdateUserRequest struct {
	ID       int64  `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	Role     string `validate:"required,oneof=Admin Manager Staff"`
	Password string `validate:"omitempty,min=6"`
	IsActive bool
}

func (r *UpdateUserRequest) ApplyTo(current model.User, passwordHash string) model.User {
	current.Email = strings.ToLower(strings.TrimSpace(r.Email))
	current.Role = r.Role
	current.IsActive = r.IsActive

	if passwordHash != "" {
		current.PasswordHash = passwordHash
	}

	return current
}
