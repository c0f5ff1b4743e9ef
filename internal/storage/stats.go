package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mowistore/backend/internal/domain/models"
)

// StatsStorage describes the read-only aggregate queries behind the dashboard
// reports. It never mutates state.
type StatsStorage interface {
	// GetSalesByCategory groups all order lines by the category name of their
	// product and sums quantity * unit_price per group, highest total first.
	// The category name is NULL for products without a category.
	GetSalesByCategory(ctx context.Context) ([]*models.CategorySales, error)
	// GetTopProducts returns up to limit products by sold counter descending,
	// ties broken by id ascending.
	GetTopProducts(ctx context.Context, limit int) ([]*models.ProductSales, error)
	// GetTotalSold sums the sold counter across all products, active or not.
	GetTotalSold(ctx context.Context) (int64, error)
	// ListRegistrationTimes returns the date_joined instants of users registered
	// at or after since. Day attribution happens in the caller's time zone, not
	// the database session's.
	ListRegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error)
}

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) StatsStorage {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetSalesByCategory(ctx context.Context) ([]*models.CategorySales, error) {
	query := `
		SELECT c.name, COALESCE(SUM(ol.quantity * ol.unit_price), 0) AS total
		FROM order_lines ol
		JOIN products p ON ol.product_id = p.id
		LEFT JOIN categories c ON p.category_id = c.id
		GROUP BY c.name
		ORDER BY total DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by category: %w", err)
	}
	defer rows.Close()

	var sales []*models.CategorySales
	for rows.Next() {
		row := &models.CategorySales{}
		if err := rows.Scan(&row.CategoryName, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category sales: %w", err)
		}
		sales = append(sales, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *statsRepository) GetTopProducts(ctx context.Context, limit int) ([]*models.ProductSales, error) {
	query := `
		SELECT p.id, p.name, c.name, p.sold
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.sold DESC, p.id ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var products []*models.ProductSales
	for rows.Next() {
		row := &models.ProductSales{}
		if err := rows.Scan(&row.ID, &row.Name, &row.CategoryName, &row.Sold); err != nil {
			return nil, fmt.Errorf("failed to scan product sales: %w", err)
		}
		products = append(products, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *statsRepository) GetTotalSold(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(sold), 0) FROM products").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to query total sold: %w", err)
	}
	return total, nil
}

func (r *statsRepository) ListRegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	query := `
		SELECT date_joined
		FROM users
		WHERE date_joined >= $1
		ORDER BY date_joined`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("failed to scan registration time: %w", err)
		}
		times = append(times, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return times, nil
}
