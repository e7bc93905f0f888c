package repository

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// OrderFilter filtros opcionales de listado de pedidos.
type OrderFilter struct {
	CompanyID string
	ClientID  string
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	// Create devuelve domain.ErrDuplicate si el número ya existe.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// Delete elimina solo la cabecera; la cascada de líneas la orquesta el caso de uso en una tx.
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerUserID string, f OrderFilter, page Page) ([]*entity.Order, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}
