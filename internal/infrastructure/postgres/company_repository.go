package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, trade_name, legal_name, cnpj, owner_user_id, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.TradeName, c.LegalName, c.CNPJ, c.OwnerUserID, c.CreatedAt, c.UpdatedAt,
	)
	return translate("insert company", err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("get company", err)
	}
	return c, nil
}

// Update actualiza una empresa existente. El propietario no cambia.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE companies SET trade_name = $2, legal_name = $3, cnpj = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.TradeName, c.LegalName, c.CNPJ, c.UpdatedAt,
	)
	return exactlyOne("update company", tag, err)
}

// Delete elimina una empresa por ID. Con dependientes devuelve domain.ErrHasDependents.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return exactlyOne("delete company", tag, err)
}

// ListByOwner devuelve las empresas del usuario con paginación.
func (r *CompanyRepo) ListByOwner(ctx context.Context, ownerUserID string, page repository.Page) ([]*entity.Company, error) {
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+companyColumns+` FROM companies
		WHERE owner_user_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		ownerUserID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, translate("list companies", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, translate("scan company", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CompanyRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE owner_user_id = $1`, ownerUserID).Scan(&n)
	if err != nil {
		return 0, translate("count companies", err)
	}
	return n, nil
}

// CountDependents suma clientes, productos y pedidos en una sola consulta.
func (r *CompanyRepo) CountDependents(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM clients  WHERE company_id = $1)
		     + (SELECT COUNT(*) FROM products WHERE company_id = $1)
		     + (SELECT COUNT(*) FROM orders   WHERE company_id = $1)`,
		companyID,
	).Scan(&n)
	if err != nil {
		return 0, translate("count dependents", err)
	}
	return n, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.TradeName, &c.LegalName, &c.CNPJ, &c.OwnerUserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
