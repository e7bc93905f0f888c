package entity

import (
	"time"

	"github.com/jhoicas/vendergas-api/internal/domain/authz"
)

// Company es la frontera del tenant. Cada empresa tiene exactamente un usuario propietario;
// todos los clientes, productos y pedidos cuelgan de una única empresa.
type Company struct {
	ID          string
	TradeName   string // nome fantasia
	LegalName   string // razão social
	CNPJ        string // formateado 00.000.000/0000-00
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy informa si la empresa pertenece al usuario.
func (c *Company) OwnedBy(userID string) bool {
	return c != nil && authz.IsAuthorized(userID, c.OwnerUserID)
}
