package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

// OrderLineRepo persiste order_products.
type OrderLineRepo struct {
	q Querier
}

func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

const orderLineColumns = `order_products.id, order_products.order_id, order_products.product_id, order_products.quantity, order_products.created_at, order_products.updated_at`

func (r *OrderLineRepo) Create(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_products (id, order_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.CreatedAt, l.UpdatedAt,
	)
	return translate("insert order line", err)
}

func (r *OrderLineRepo) GetByID(ctx context.Context, id string) (*entity.OrderLine, error) {
	l, err := scanOrderLine(r.q.QueryRow(ctx, `SELECT `+orderLineColumns+` FROM order_products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("get order line", err)
	}
	return l, nil
}

func (r *OrderLineRepo) Update(ctx context.Context, l *entity.OrderLine) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE order_products SET order_id = $2, product_id = $3, quantity = $4, updated_at = $5
		WHERE id = $1`,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.UpdatedAt,
	)
	return exactlyOne("update order line", tag, err)
}

func (r *OrderLineRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM order_products WHERE id = $1`, id)
	return exactlyOne("delete order line", tag, err)
}

// ListByOwner recorre línea → pedido → empresa → propietario.
func (r *OrderLineRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.OrderLineFilter, page repository.Page) ([]*entity.OrderLine, error) {
	page = page.Normalize()
	return r.list(ctx, `
		SELECT `+orderLineColumns+` FROM order_products
		JOIN orders ON orders.id = order_products.order_id
		JOIN companies ON companies.id = orders.company_id
		WHERE companies.owner_user_id = $1
		  AND ($2 = '' OR order_products.order_id = $2)
		  AND ($3 = '' OR orders.company_id = $3)
		  AND ($4 = '' OR order_products.product_id = $4)
		ORDER BY order_products.created_at, order_products.id LIMIT $5 OFFSET $6`,
		ownerUserID, f.OrderID, f.CompanyID, f.ProductID, page.Limit, page.Offset,
	)
}

func (r *OrderLineRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	return r.list(ctx, `
		SELECT `+orderLineColumns+` FROM order_products
		WHERE order_id = $1 ORDER BY created_at, id`, orderID)
}

func (r *OrderLineRepo) DeleteByOrder(ctx context.Context, orderID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM order_products WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, translate("delete order lines", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderLineRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translate("list order lines", err)
	}
	defer rows.Close()

	list := make([]*entity.OrderLine, 0)
	for rows.Next() {
		l, err := scanOrderLine(rows)
		if err != nil {
			return nil, translate("scan order line", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanOrderLine(row pgx.Row) (*entity.OrderLine, error) {
	var l entity.OrderLine
	if err := row.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
