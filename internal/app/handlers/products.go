package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of product create/update. Precio arrives as a
// JSON number and is parsed into an exact decimal.
type ProductRequest struct {
	Nombre      string          `json:"nombre" validate:"required"`
	Descripcion *string         `json:"descripcion"`
	Categoria   *int64          `json:"categoria"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Imagen      *string         `json:"imagen"`
	Activo      bool            `json:"activo"`
}

func (req *ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:        req.Nombre,
		Description: req.Descripcion,
		CategoryID:  req.Categoria,
		Price:       req.Precio,
		Stock:       req.Stock,
		ImageURL:    req.Imagen,
		Active:      req.Activo,
	}
}

func decodeProductRequest(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "validation error", http.StatusBadRequest)
		return nil, false
	}
	if req.Precio.IsNegative() {
		http.Error(w, "precio must not be negative", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func ListProductsHandler(log *slog.Logger, repo storage.ProductStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := repo.ListProducts(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if products == nil {
			products = []*models.Product{}
		}
		respondJSON(w, logger, http.StatusOK, products)
	}
}

func GetProductHandler(log *slog.Logger, repo storage.ProductStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		product, err := repo.GetProductByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, product)
	}
}

func CreateProductHandler(log *slog.Logger, repo storage.ProductStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		req, ok := decodeProductRequest(w, r)
		if !ok {
			return
		}

		product, err := repo.CreateProduct(r.Context(), req.toModel())
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			http.Error(w, "failed to create product", http.StatusBadRequest)
			return
		}
		respondJSON(w, logger, http.StatusCreated, product)
	}
}

func UpdateProductHandler(log *slog.Logger, repo storage.ProductStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		req, ok := decodeProductRequest(w, r)
		if !ok {
			return
		}

		product := req.toModel()
		product.ID = id
		if err := repo.UpdateProduct(r.Context(), product); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, product)
	}
}

func DeleteProductHandler(log *slog.Logger, repo storage.ProductStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := repo.DeleteProduct(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
