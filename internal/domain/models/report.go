package models

import "github.com/shopspring/decimal"

// CategorySales is one grouped row of the sales-by-category query.
// CategoryName is nil for lines whose product has no category.
type CategorySales struct {
	CategoryName *string
	Total        decimal.Decimal
}

// ProductSales is one row of the best-sellers query, ordered by Sold
// descending with id ascending as the tie-break.
type ProductSales struct {
	ID           int64
	Name         string
	CategoryName *string
	Sold         int
}
