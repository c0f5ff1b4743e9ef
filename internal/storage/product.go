package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mowistore/backend/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage describes access to the products table.
type ProductStorage interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	// LockProductByIDTx reads a product FOR UPDATE inside a transaction; used by
	// order placement to snapshot the price and adjust counters safely.
	LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	// UpdateProductCountersTx writes the stock and sold counters inside a transaction.
	UpdateProductCountersTx(ctx context.Context, tx *sql.Tx, id int64, stock, sold int) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.name, p.description, p.category_id, c.name, p.price, p.stock, p.sold, p.image_url, p.active, p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.CategoryID,
		&product.CategoryName, &product.Price, &product.Stock, &product.Sold,
		&product.ImageURL, &product.Active, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (name, description, category_id, price, stock, sold, image_url, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Stock, product.Sold, product.ImageURL, product.Active,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE products
	          SET name = $1, description = $2, category_id = $3, price = $4, stock = $5, image_url = $6, active = $7, updated_at = NOW()
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Stock, product.ImageURL, product.Active, product.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	product := &models.Product{}
	row := tx.QueryRowContext(ctx,
		"SELECT id, name, price, stock, sold FROM products WHERE id = $1 FOR UPDATE NOWAIT", id)
	if err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Stock, &product.Sold); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "55P03" { // lock
				return nil, fmt.Errorf("resource is locked, please try again: %w", err)
			}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) UpdateProductCountersTx(ctx context.Context, tx *sql.Tx, id int64, stock, sold int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = $1, sold = $2, updated_at = NOW() WHERE id = $3",
		stock, sold, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
