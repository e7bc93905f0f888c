package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// price es NUMERIC y se lee como decimal.Decimal gracias al codec registrado en NewPool.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `products.id, products.company_id, products.name, products.description, products.price, products.created_at, products.updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, company_id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CompanyID, p.Name, p.Description, p.Price, p.CreatedAt, p.UpdatedAt,
	)
	return translate("insert product", err)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET company_id = $2, name = $3, description = $4, price = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.CompanyID, p.Name, p.Description, p.Price, p.UpdatedAt,
	)
	return exactlyOne("update product", tag, err)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return exactlyOne("delete product", tag, err)
}

func (r *ProductRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.ProductFilter, page repository.Page) ([]*entity.Product, error) {
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		JOIN companies ON companies.id = products.company_id
		WHERE companies.owner_user_id = $1
		  AND ($2 = '' OR products.company_id = $2)
		ORDER BY products.created_at, products.id LIMIT $3 OFFSET $4`,
		ownerUserID, f.CompanyID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, translate("list products", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translate("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
