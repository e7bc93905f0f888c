package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderLineRequest entrada para añadir un producto a un pedido.
type CreateOrderLineRequest struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateOrderLineRequest campos opcionales.
type UpdateOrderLineRequest struct {
	OrderID   *string `json:"orderId"`
	ProductID *string `json:"productId"`
	Quantity  *int    `json:"quantity"`
}

// OrderLineListQuery filtros de GET /order-products.
type OrderLineListQuery struct {
	OrderID   string `query:"orderId"`
	CompanyID string `query:"companyId"`
	PageRequest
}

// OrderLineResponse línea con pedido y producto embebidos.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Order     *OrderSummary   `json:"order,omitempty"`
	Product   *ProductSummary `json:"product,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type OrderLineListResponse struct {
	Items []OrderLineResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
