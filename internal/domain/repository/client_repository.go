package repository

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// ClientFilter filtros opcionales de listado; se aplican además del filtro de propietario.
type ClientFilter struct {
	CompanyID string
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
	// ListByOwner lista los clientes de empresas cuyo propietario es ownerUserID.
	ListByOwner(ctx context.Context, ownerUserID string, f ClientFilter, page Page) ([]*entity.Client, error)
}
