package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mowistore/backend/internal/auth/jwtmiddleware"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
)

// WishlistAddRequest is the body of POST /wishlist/.
type WishlistAddRequest struct {
	Producto int64 `json:"producto" validate:"required"`
}

func productIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
}

// ListWishlistHandler serves GET /wishlist/ for the authenticated user.
func ListWishlistHandler(log *slog.Logger, repo storage.WishlistStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := repo.ListWishlistByUserID(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list wishlist", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []*models.WishlistItem{}
		}
		respondJSON(w, logger, http.StatusOK, items)
	}
}

// AddWishlistHandler serves POST /wishlist/; adding an already-saved product
// is a no-op success.
func AddWishlistHandler(log *slog.Logger, repo storage.WishlistStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req WishlistAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		item, err := repo.AddWishlistItem(r.Context(), userID, req.Producto)
		if err != nil {
			logger.Error("failed to add wishlist item", slog.Any("error", err))
			http.Error(w, "failed to add wishlist item", http.StatusBadRequest)
			return
		}
		respondJSON(w, logger, http.StatusCreated, item)
	}
}

// RemoveWishlistHandler serves DELETE /wishlist/{productID}/.
func RemoveWishlistHandler(log *slog.Logger, repo storage.WishlistStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		productID, err := productIDParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		if err := repo.DeleteWishlistItem(r.Context(), userID, productID); err != nil {
			if errors.Is(err, storage.ErrWishlistItemNotFound) {
				http.Error(w, "wishlist item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete wishlist item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CheckWishlistHandler serves GET /wishlist/check/{productID}/.
func CheckWishlistHandler(log *slog.Logger, repo storage.WishlistStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		productID, err := productIDParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		inWishlist, err := repo.WishlistContains(r.Context(), userID, productID)
		if err != nil {
			logger.Error("failed to check wishlist", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, map[string]bool{"in_wishlist": inWishlist})
	}
}
