package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `clients.id, clients.company_id, clients.name, clients.email, clients.phone, clients.created_at, clients.updated_at`

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (id, company_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.CompanyID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	return translate("insert client", err)
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("get client", err)
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE clients SET company_id = $2, name = $3, email = $4, phone = $5, updated_at = $6
		WHERE id = $1`,
		c.ID, c.CompanyID, c.Name, c.Email, c.Phone, c.UpdatedAt,
	)
	return exactlyOne("update client", tag, err)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return exactlyOne("delete client", tag, err)
}

// ListByOwner une con companies para filtrar por propietario; f.CompanyID acota además.
func (r *ClientRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.ClientFilter, page repository.Page) ([]*entity.Client, error) {
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+clientColumns+` FROM clients
		JOIN companies ON companies.id = clients.company_id
		WHERE companies.owner_user_id = $1
		  AND ($2 = '' OR clients.company_id = $2)
		ORDER BY clients.created_at, clients.id LIMIT $3 OFFSET $4`,
		ownerUserID, f.CompanyID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, translate("list clients", err)
	}
	defer rows.Close()

	list := make([]*entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, translate("scan client", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
