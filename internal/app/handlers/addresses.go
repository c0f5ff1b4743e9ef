package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mowistore/backend/internal/auth/jwtmiddleware"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
)

// AddressRequest is the body of address create/update.
type AddressRequest struct {
	Etiqueta       string `json:"etiqueta"`
	Calle          string `json:"calle" validate:"required"`
	Ciudad         string `json:"ciudad" validate:"required"`
	Provincia      string `json:"provincia"`
	CodigoPostal   string `json:"codigo_postal"`
	Telefono       string `json:"telefono"`
	Predeterminada bool   `json:"predeterminada"`
}

func (req *AddressRequest) toModel(userID int64) *models.Address {
	return &models.Address{
		UserID:    userID,
		Label:     req.Etiqueta,
		Street:    req.Calle,
		City:      req.Ciudad,
		Province:  req.Provincia,
		ZipCode:   req.CodigoPostal,
		Phone:     req.Telefono,
		IsDefault: req.Predeterminada,
	}
}

// ListAddressesHandler serves GET /direcciones/ for the authenticated user.
func ListAddressesHandler(log *slog.Logger, repo storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListAddressesHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		addresses, err := repo.ListAddressesByUserID(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list addresses", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if addresses == nil {
			addresses = []*models.Address{}
		}
		respondJSON(w, logger, http.StatusOK, addresses)
	}
}

func GetAddressHandler(log *slog.Logger, repo storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		address, err := repo.GetAddressByID(r.Context(), id, userID)
		if err != nil {
			if errors.Is(err, storage.ErrAddressNotFound) {
				http.Error(w, "address not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get address", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, address)
	}
}

func CreateAddressHandler(log *slog.Logger, repo storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req AddressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		address, err := repo.CreateAddress(r.Context(), req.toModel(userID))
		if err != nil {
			logger.Error("failed to create address", slog.Any("error", err))
			http.Error(w, "failed to create address", http.StatusBadRequest)
			return
		}
		respondJSON(w, logger, http.StatusCreated, address)
	}
}

func UpdateAddressHandler(log *slog.Logger, repo storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req AddressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		address := req.toModel(userID)
		address.ID = id
		if err := repo.UpdateAddress(r.Context(), address); err != nil {
			if errors.Is(err, storage.ErrAddressNotFound) {
				http.Error(w, "address not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update address", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, address)
	}
}

func DeleteAddressHandler(log *slog.Logger, repo storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteAddressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := repo.DeleteAddress(r.Context(), id, userID); err != nil {
			if errors.Is(err, storage.ErrAddressNotFound) {
				http.Error(w, "address not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete address", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
