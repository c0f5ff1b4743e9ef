package models

import "time"

// WishlistItem marks a product saved by a user; one row per (user, product).
type WishlistItem struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	ProductID   int64     `json:"producto"`
	ProductName string    `json:"producto_nombre,omitempty"` // filled via JOIN with products
	CreatedAt   time.Time `json:"fecha_creacion"`
}
