package ports

import (
	"context"

	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

// Repos agrupa los puertos de persistencia. El mismo conjunto se entrega atado al pool
// o atado a una transacción.
type Repos struct {
	Users      repository.UserRepository
	Companies  repository.CompanyRepository
	Clients    repository.ClientRepository
	Products   repository.ProductRepository
	Orders     repository.OrderRepository
	OrderLines repository.OrderLineRepository
}

// TxRunner ejecuta fn dentro de una transacción del almacén. Si fn devuelve error se hace rollback.
// Dentro de fn solo deben usarse los repos recibidos.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Repos) error) error
}
