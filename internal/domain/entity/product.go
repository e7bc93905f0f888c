package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem vendible de una empresa. Price nunca es negativo.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
