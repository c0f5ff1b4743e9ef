package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mowistore/backend/internal/service"
)

// RegisterRequest is the body of POST /api/register/.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	User    AuthUserDTO `json:"user"`
}

// LoginRequest is the body of POST /api/login/.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Access  string      `json:"access"`
	User    AuthUserDTO `json:"user"`
}

// RegisterHandler creates a new customer account.
func RegisterHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		user, err := authService.Register(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				http.Error(w, "email already registered", http.StatusBadRequest)
				return
			}
			logger.Error("registration failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusCreated, RegisterResponse{
			Message: "Usuario creado exitosamente",
			User:    NewAuthUserDTO(user),
		})
	}
}

// LoginHandler authenticates customers and administrators.
func LoginHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		token, user, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				http.Error(w, "invalid email or password", http.StatusUnauthorized)
			case errors.Is(err, service.ErrAccountDisabled):
				http.Error(w, "account is disabled", http.StatusForbidden)
			default:
				logger.Error("login failed", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		respondJSON(w, logger, http.StatusOK, LoginResponse{
			Message: "Inicio de sesión exitoso",
			Access:  token,
			User:    NewAuthUserDTO(user),
		})
	}
}
