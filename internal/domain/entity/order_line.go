package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine (order-product) es una línea de un pedido. Quantity siempre es positiva
// y el producto pertenece a la misma empresa que el pedido.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal calcula cantidad × precio unitario.
func (l *OrderLine) Subtotal(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
