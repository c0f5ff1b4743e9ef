package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
)

// CategoryRequest is the body of category create/update.
type CategoryRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
}

func ListCategoriesHandler(log *slog.Logger, repo storage.CategoryStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := repo.ListCategories(r.Context())
		if err != nil {
			logger.Error("failed to list categories", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if categories == nil {
			categories = []*models.Category{}
		}
		respondJSON(w, logger, http.StatusOK, categories)
	}
}

func GetCategoryHandler(log *slog.Logger, repo storage.CategoryStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCategoryHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		category, err := repo.GetCategoryByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrCategoryNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get category", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, category)
	}
}

func CreateCategoryHandler(log *slog.Logger, repo storage.CategoryStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		category, err := repo.CreateCategory(r.Context(), &models.Category{
			Name:        req.Nombre,
			Description: req.Descripcion,
		})
		if err != nil {
			logger.Error("failed to create category", slog.Any("error", err))
			http.Error(w, "failed to create category", http.StatusBadRequest)
			return
		}
		respondJSON(w, logger, http.StatusCreated, category)
	}
}

func UpdateCategoryHandler(log *slog.Logger, repo storage.CategoryStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCategoryHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		category := &models.Category{ID: id, Name: req.Nombre, Description: req.Descripcion}
		if err := repo.UpdateCategory(r.Context(), category); err != nil {
			if errors.Is(err, storage.ErrCategoryNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update category", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, category)
	}
}

func DeleteCategoryHandler(log *slog.Logger, repo storage.CategoryStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := repo.DeleteCategory(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrCategoryNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete category", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
