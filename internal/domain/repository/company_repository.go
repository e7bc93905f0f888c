package repository

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	// GetByID devuelve (nil, nil) si la empresa no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// Update devuelve domain.ErrNotFound si la fila ya no existe.
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id string) error
	// ListByOwner lista solo las empresas cuyo propietario es ownerUserID.
	ListByOwner(ctx context.Context, ownerUserID string, page Page) ([]*entity.Company, error)
	CountByOwner(ctx context.Context, ownerUserID string) (int, error)
	// CountDependents suma clientes, productos y pedidos de la empresa.
	CountDependents(ctx context.Context, companyID string) (int, error)
}
