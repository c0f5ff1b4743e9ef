package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
)

// OrderLineCreateRequest is the body of POST /detalles/. The unit price is
// never accepted from the client; it is snapshotted from the product.
type OrderLineCreateRequest struct {
	Pedido   int64 `json:"pedido" validate:"required"`
	Producto int64 `json:"producto" validate:"required"`
	Cantidad int   `json:"cantidad" validate:"required,gt=0"`
}

// OrderLineUpdateRequest is the body of PUT /detalles/{id}/. Only the
// quantity is mutable; the unit price snapshot never changes.
type OrderLineUpdateRequest struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0"`
}

// ListOrderLinesHandler serves GET /detalles/, optionally filtered with
// ?pedido=<id>.
func ListOrderLinesHandler(log *slog.Logger, repo storage.OrderLineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrderLinesHandler"
		logger := log.With(slog.String("op", op))

		var (
			lines []*models.OrderLine
			err   error
		)
		if pedido := r.URL.Query().Get("pedido"); pedido != "" {
			orderID, parseErr := strconv.ParseInt(pedido, 10, 64)
			if parseErr != nil {
				http.Error(w, "invalid pedido parameter", http.StatusBadRequest)
				return
			}
			lines, err = repo.ListOrderLinesByOrderID(r.Context(), orderID)
		} else {
			lines, err = repo.ListOrderLines(r.Context())
		}
		if err != nil {
			logger.Error("failed to list order lines", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if lines == nil {
			lines = []*models.OrderLine{}
		}
		respondJSON(w, logger, http.StatusOK, lines)
	}
}

// CreateOrderLineHandler serves POST /detalles/, adding a line to an existing
// order with the product's current price snapshotted into it.
func CreateOrderLineHandler(log *slog.Logger, repo storage.OrderLineStorage, productRepo storage.ProductStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderLineHandler"
		logger := log.With(slog.String("op", op))

		var req OrderLineCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product, err := productRepo.GetProductByID(r.Context(), req.Producto)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusBadRequest)
				return
			}
			logger.Error("failed to get product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		line := &models.OrderLine{
			OrderID:     req.Pedido,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Cantidad,
			UnitPrice:   product.Price,
		}
		if err := repo.CreateOrderLine(r.Context(), line); err != nil {
			logger.Error("failed to create order line", slog.Any("error", err))
			http.Error(w, "failed to create order line", http.StatusBadRequest)
			return
		}
		respondJSON(w, logger, http.StatusCreated, line)
	}
}

func GetOrderLineHandler(log *slog.Logger, repo storage.OrderLineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderLineHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		line, err := repo.GetOrderLineByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrOrderLineNotFound) {
				http.Error(w, "order line not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get order line", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, line)
	}
}

func UpdateOrderLineHandler(log *slog.Logger, repo storage.OrderLineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderLineHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req OrderLineUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		if err := repo.UpdateOrderLineQuantity(r.Context(), id, req.Cantidad); err != nil {
			if errors.Is(err, storage.ErrOrderLineNotFound) {
				http.Error(w, "order line not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update order line", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, map[string]string{"message": "order line updated"})
	}
}

func DeleteOrderLineHandler(log *slog.Logger, repo storage.OrderLineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderLineHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := repo.DeleteOrderLine(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrOrderLineNotFound) {
				http.Error(w, "order line not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete order line", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
