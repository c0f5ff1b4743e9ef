package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/service"
	"github.com/mowistore/backend/internal/storage"
)

// UserCreateRequest is the body of POST /usuarios/.
type UserCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	IsActive *bool  `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserUpdateRequest is the body of PUT /usuarios/{id}/; an empty password
// keeps the stored hash.
type UserUpdateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=6"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
	IsAdmin  bool   `json:"is_admin"`
}

func ListUsersHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := userService.List(r.Context())
		if err != nil {
			logger.Error("failed to list users", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, NewUserDTOs(users))
	}
}

func GetUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUserHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		user, err := userService.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get user", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, NewUserDTO(user))
	}
}

func CreateUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateUserHandler"
		logger := log.With(slog.String("op", op))

		var req UserCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		user := &models.User{
			Email:    req.Email,
			Name:     req.Name,
			IsActive: isActive,
			IsStaff:  req.IsStaff,
			IsAdmin:  req.IsAdmin,
		}
		created, err := userService.Create(r.Context(), user, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				http.Error(w, "email already registered", http.StatusBadRequest)
				return
			}
			logger.Error("failed to create user", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusCreated, NewUserDTO(created))
	}
}

func UpdateUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateUserHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req UserUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		user := &models.User{
			ID:       id,
			Email:    req.Email,
			Name:     req.Name,
			IsActive: req.IsActive,
			IsStaff:  req.IsStaff,
			IsAdmin:  req.IsAdmin,
		}
		if err := userService.Update(r.Context(), user, req.Password); err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update user", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, NewUserDTO(user))
	}
}

func DeleteUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUserHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := userService.Delete(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete user", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
