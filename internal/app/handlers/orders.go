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

// OrderCreateRequest is the body of POST /pedidos/. The unit prices are not
// part of the request: they are snapshotted server-side at placement time.
type OrderCreateRequest struct {
	Usuario    int64              `json:"usuario" validate:"required"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=tarjeta yape transferencia"`
	Detalles   []OrderLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

type OrderLineRequest struct {
	Producto int64 `json:"producto" validate:"required"`
	Cantidad int   `json:"cantidad" validate:"required,gt=0"`
}

// OrderUpdateRequest is the body of PUT /pedidos/{id}/.
type OrderUpdateRequest struct {
	Estado     string `json:"estado" validate:"required,oneof=pendiente en_proceso enviado entregado cancelado"`
	MetodoPago string `json:"metodo_pago" validate:"required,oneof=tarjeta yape transferencia"`
}

func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.List(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}
		respondJSON(w, logger, http.StatusOK, orders)
	}
}

func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		order, err := orderService.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get order", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, order)
	}
}

func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req OrderCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		lines := make([]service.NewOrderLine, 0, len(req.Detalles))
		for _, detalle := range req.Detalles {
			lines = append(lines, service.NewOrderLine{
				ProductID: detalle.Producto,
				Quantity:  detalle.Cantidad,
			})
		}

		order, err := orderService.Create(r.Context(), req.Usuario, req.MetodoPago, lines)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInsufficientStock):
				http.Error(w, "insufficient stock", http.StatusBadRequest)
			case errors.Is(err, storage.ErrProductNotFound):
				http.Error(w, "product not found", http.StatusBadRequest)
			default:
				logger.Error("failed to create order", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}
		respondJSON(w, logger, http.StatusCreated, order)
	}
}

func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req OrderUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		order := &models.Order{ID: id, Status: req.Estado, PaymentMethod: req.MetodoPago}
		if err := orderService.Update(r.Context(), order); err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update order", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, logger, http.StatusOK, map[string]string{"message": "order updated"})
	}
}

func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := orderService.Delete(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete order", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
