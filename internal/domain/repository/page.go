package repository

// Límites de paginación compartidos por todos los listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page paginación para listados (LIMIT/OFFSET).
type Page struct {
	Limit  int
	Offset int
}

// Normalize aplica valores por defecto y cotas.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
