package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("order has no lines")
)

// NewOrderLine is a requested product/quantity pair for order placement.
type NewOrderLine struct {
	ProductID int64
	Quantity  int
}

type OrderService interface {
	// Create places an order: locks each product, snapshots its current price
	// into the line, bumps the sold and stock counters and computes the total,
	// all inside one transaction.
	Create(ctx context.Context, userID int64, paymentMethod string, lines []NewOrderLine) (*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	GetLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int64) error
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
	lineRepo    storage.OrderLineStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, productRepo storage.ProductStorage, orderRepo storage.OrderStorage, lineRepo storage.OrderLineStorage) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
	}
}

func (s *orderService) Create(ctx context.Context, userID int64, paymentMethod string, lines []NewOrderLine) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("starting order transaction", slog.Int("lines", len(lines)))

	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyOrder)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	rollback := func() {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
	}

	total := decimal.Zero
	orderLines := make([]*models.OrderLine, 0, len(lines))
	for _, req := range lines {
		product, err := s.productRepo.LockProductByIDTx(ctx, tx, req.ProductID)
		if err != nil {
			rollback()
			logger.Error("failed to lock product", slog.Int64("productID", req.ProductID), slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
		}

		if product.Stock < req.Quantity {
			rollback()
			logger.Warn("insufficient stock",
				slog.Int64("productID", product.ID),
				slog.Int("stock", product.Stock),
				slog.Int("requested", req.Quantity))
			return nil, fmt.Errorf("%s: %w", op, ErrInsufficientStock)
		}

		// Price is snapshotted here; later catalog price changes never touch
		// this line.
		line := &models.OrderLine{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		}
		total = total.Add(line.Subtotal())
		orderLines = append(orderLines, line)

		newStock := product.Stock - req.Quantity
		newSold := product.Sold + req.Quantity
		if err := s.productRepo.UpdateProductCountersTx(ctx, tx, product.ID, newStock, newSold); err != nil {
			rollback()
			logger.Error("failed to update product counters", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to update product counters: %w", op, err)
		}
	}

	order := &models.Order{
		UserID:        userID,
		Total:         total,
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
	}
	orderID, err := s.orderRepo.CreateOrderTx(ctx, tx, order)
	if err != nil {
		rollback()
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}
	order.ID = orderID

	for _, line := range orderLines {
		line.OrderID = orderID
		if err := s.lineRepo.CreateOrderLineTx(ctx, tx, line); err != nil {
			rollback()
			logger.Error("failed to create order line", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order line: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order placed", slog.Int64("orderID", orderID), slog.String("total", total.String()))
	return order, nil
}

func (s *orderService) List(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

func (s *orderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *orderService) GetLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	return s.lineRepo.ListOrderLinesByOrderID(ctx, orderID)
}

func (s *orderService) Update(ctx context.Context, order *models.Order) error {
	return s.orderRepo.UpdateOrder(ctx, order)
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	return s.orderRepo.DeleteOrder(ctx, id)
}
