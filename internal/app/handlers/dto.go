package handlers

import (
	"time"

	"github.com/mowistore/backend/internal/domain/models"
)

// UserDTO is the explicit wire shape for users. The password hash never
// crosses this boundary, and the field names are fixed here instead of being
// rewritten at runtime.
type UserDTO struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	IsStaff    bool      `json:"is_staff"`
	IsAdmin    bool      `json:"is_admin"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		IsActive:   user.IsActive,
		IsStaff:    user.IsStaff,
		IsAdmin:    user.IsAdmin,
		DateJoined: user.DateJoined,
	}
}

func NewUserDTOs(users []*models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, NewUserDTO(user))
	}
	return dtos
}

// AuthUserDTO is the compact user shape embedded in auth responses.
type AuthUserDTO struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func NewAuthUserDTO(user *models.User) AuthUserDTO {
	return AuthUserDTO{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	}
}
