package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending    = "pendiente"
	OrderStatusProcessing = "en_proceso"
	OrderStatusShipped    = "enviado"
	OrderStatusDelivered  = "entregado"
	OrderStatusCancelled  = "cancelado"
)

// Payment methods.
const (
	PaymentCard     = "tarjeta"
	PaymentWallet   = "yape"
	PaymentTransfer = "transferencia"
)

type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"usuario"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"estado"`
	PaymentMethod string          `json:"metodo_pago"`
	CreatedAt     time.Time       `json:"fecha_pedido"`
	UpdatedAt     time.Time       `json:"fecha_actualizacion"`
}

// OrderLine is a single product-quantity record inside an order.
// UnitPrice is snapshotted from the product at order time and never updated.
type OrderLine struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"pedido"`
	ProductID   int64           `json:"producto"`
	ProductName string          `json:"producto_nombre,omitempty"` // filled via JOIN with products
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	CreatedAt   time.Time       `json:"fecha_creacion"`
}

// Subtotal is quantity times the snapshotted unit price.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
