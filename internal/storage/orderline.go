package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mowistore/backend/internal/domain/models"
)

var ErrOrderLineNotFound = errors.New("order line not found")

// OrderLineStorage describes access to the order_lines table. The unit price
// of a line is written once at creation and is never part of an UPDATE.
type OrderLineStorage interface {
	CreateOrderLineTx(ctx context.Context, tx *sql.Tx, line *models.OrderLine) error
	// CreateOrderLine inserts a standalone line for an existing order, outside
	// of order placement.
	CreateOrderLine(ctx context.Context, line *models.OrderLine) error
	GetOrderLineByID(ctx context.Context, id int64) (*models.OrderLine, error)
	ListOrderLines(ctx context.Context) ([]*models.OrderLine, error)
	ListOrderLinesByOrderID(ctx context.Context, orderID int64) ([]*models.OrderLine, error)
	UpdateOrderLineQuantity(ctx context.Context, id int64, quantity int) error
	DeleteOrderLine(ctx context.Context, id int64) error
}

type orderLineRepository struct {
	db *sql.DB
}

func NewOrderLineRepository(db *sql.DB) OrderLineStorage {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) CreateOrderLineTx(ctx context.Context, tx *sql.Tx, line *models.OrderLine) error {
	query := `INSERT INTO order_lines (order_id, product_id, quantity, unit_price, created_at)
	          VALUES ($1, $2, $3, $4, NOW())`
	_, err := tx.ExecContext(ctx, query, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}
	return nil
}

func (r *orderLineRepository) CreateOrderLine(ctx context.Context, line *models.OrderLine) error {
	query := `INSERT INTO order_lines (order_id, product_id, quantity, unit_price, created_at)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		line.OrderID, line.ProductID, line.Quantity, line.UnitPrice,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}
	return nil
}

const orderLineQuery = `
	SELECT ol.id, ol.order_id, ol.product_id, p.name, ol.quantity, ol.unit_price, ol.created_at
	FROM order_lines ol
	JOIN products p ON ol.product_id = p.id`

func scanOrderLine(row interface{ Scan(...any) error }) (*models.OrderLine, error) {
	line := &models.OrderLine{}
	err := row.Scan(
		&line.ID, &line.OrderID, &line.ProductID, &line.ProductName,
		&line.Quantity, &line.UnitPrice, &line.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (r *orderLineRepository) GetOrderLineByID(ctx context.Context, id int64) (*models.OrderLine, error) {
	line, err := scanOrderLine(r.db.QueryRowContext(ctx, orderLineQuery+" WHERE ol.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderLineNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *orderLineRepository) ListOrderLines(ctx context.Context) ([]*models.OrderLine, error) {
	return r.queryOrderLines(ctx, orderLineQuery+" ORDER BY ol.id")
}

func (r *orderLineRepository) ListOrderLinesByOrderID(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	return r.queryOrderLines(ctx, orderLineQuery+" WHERE ol.order_id = $1 ORDER BY ol.id", orderID)
}

func (r *orderLineRepository) queryOrderLines(ctx context.Context, query string, args ...any) ([]*models.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.OrderLine
	for rows.Next() {
		line, err := scanOrderLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderLineRepository) UpdateOrderLineQuantity(ctx context.Context, id int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE order_lines SET quantity = $1 WHERE id = $2", quantity, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderLineNotFound
	}
	return nil
}

func (r *orderLineRepository) DeleteOrderLine(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM order_lines WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderLineNotFound
	}
	return nil
}
