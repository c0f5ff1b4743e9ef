package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Sold is a running counter of units sold,
// maintained alongside order placement; it is never recomputed from order lines.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nombre"`
	Description  *string         `json:"descripcion,omitempty"`
	CategoryID   *int64          `json:"categoria"`
	CategoryName *string         `json:"categoria_nombre,omitempty"` // filled via JOIN with categories
	Price        decimal.Decimal `json:"precio"`
	Stock        int             `json:"stock"`
	Sold         int             `json:"vendidos"`
	ImageURL     *string         `json:"imagen,omitempty"`
	Active       bool            `json:"activo"`
	CreatedAt    time.Time       `json:"fecha_creacion"`
	UpdatedAt    time.Time       `json:"fecha_actualizacion"`
}
