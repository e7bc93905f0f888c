package repository

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// OrderLineFilter filtros opcionales de listado de líneas (order-products).
type OrderLineFilter struct {
	OrderID   string
	CompanyID string
	ProductID string
}

// OrderLineRepository define el puerto de persistencia para OrderLine.
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.OrderLine, error)
	Update(ctx context.Context, line *entity.OrderLine) error
	Delete(ctx context.Context, id string) error
	// ListByOwner recorre línea → pedido → empresa → propietario.
	ListByOwner(ctx context.Context, ownerUserID string, f OrderLineFilter, page Page) ([]*entity.OrderLine, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	// DeleteByOrder elimina todas las líneas del pedido y devuelve cuántas borró.
	DeleteByOrder(ctx context.Context, orderID string) (int64, error)
}
