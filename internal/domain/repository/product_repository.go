package repository

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// ProductFilter filtros opcionales de listado de productos.
type ProductFilter struct {
	CompanyID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerUserID string, f ProductFilter, page Page) ([]*entity.Product, error)
}
