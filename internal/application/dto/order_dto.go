package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido. Number y Date los genera el servidor.
type CreateOrderRequest struct {
	Notes     string `json:"notes"`
	ClientID  string `json:"clientId"`
	CompanyID string `json:"companyId"`
}

// UpdateOrderRequest campos opcionales; el cliente debe seguir perteneciendo a la empresa.
type UpdateOrderRequest struct {
	Notes     *string `json:"notes"`
	ClientID  *string `json:"clientId"`
	CompanyID *string `json:"companyId"`
}

// OrderListQuery filtros de GET /orders.
type OrderListQuery struct {
	CompanyID string `query:"companyId"`
	ClientID  string `query:"clientId"`
	PageRequest
}

// OrderResponse pedido con cliente, empresa y líneas embebidos.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	Notes         string              `json:"notes"`
	Date          time.Time           `json:"date"`
	ClientID      string              `json:"clientId"`
	CompanyID     string              `json:"companyId"`
	Client        *ClientSummary      `json:"client,omitempty"`
	Company       *CompanySummary     `json:"company,omitempty"`
	OrderProducts []OrderLineResponse `json:"orderProducts"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// OrderSummary pedido embebido en líneas.
type OrderSummary struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Date       time.Time `json:"date"`
	ClientName string    `json:"clientName"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
