package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mowistore/backend/internal/domain/models"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

// WishlistStorage describes access to the wishlist_items table.
type WishlistStorage interface {
	ListWishlistByUserID(ctx context.Context, userID int64) ([]*models.WishlistItem, error)
	AddWishlistItem(ctx context.Context, userID, productID int64) (*models.WishlistItem, error)
	DeleteWishlistItem(ctx context.Context, userID, productID int64) error
	WishlistContains(ctx context.Context, userID, productID int64) (bool, error)
}

type wishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) WishlistStorage {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) ListWishlistByUserID(ctx context.Context, userID int64) ([]*models.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.product_id, p.name, w.created_at
		FROM wishlist_items w
		JOIN products p ON w.product_id = p.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var items []*models.WishlistItem
	for rows.Next() {
		item := &models.WishlistItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.ProductName, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) AddWishlistItem(ctx context.Context, userID, productID int64) (*models.WishlistItem, error) {
	// ON CONFLICT keeps the call idempotent for the (user, product) unique pair.
	query := `INSERT INTO wishlist_items (user_id, product_id, created_at)
	          VALUES ($1, $2, NOW())
	          ON CONFLICT (user_id, product_id) DO UPDATE SET user_id = EXCLUDED.user_id
	          RETURNING id, created_at`
	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&item.ID, &item.CreatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *wishlistRepository) DeleteWishlistItem(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2", userID, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

func (r *wishlistRepository) WishlistContains(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)",
		userID, productID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}
