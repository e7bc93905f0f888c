package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `orders.id, orders.number, orders.notes, orders.date, orders.client_id, orders.company_id, orders.created_at, orders.updated_at`

// Create persiste el pedido. La colisión de orders.number devuelve domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, number, notes, date, client_id, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.Number, o.Notes, o.Date, o.ClientID, o.CompanyID, o.CreatedAt, o.UpdatedAt,
	)
	return translate("insert order", err)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translate("get order", err)
	}
	return o, nil
}

// Update no toca number ni date.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET notes = $2, client_id = $3, company_id = $4, updated_at = $5
		WHERE id = $1`,
		o.ID, o.Notes, o.ClientID, o.CompanyID, o.UpdatedAt,
	)
	return exactlyOne("update order", tag, err)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return exactlyOne("delete order", tag, err)
}

func (r *OrderRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.OrderFilter, page repository.Page) ([]*entity.Order, error) {
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		JOIN companies ON companies.id = orders.company_id
		WHERE companies.owner_user_id = $1
		  AND ($2 = '' OR orders.company_id = $2)
		  AND ($3 = '' OR orders.client_id = $3)
		ORDER BY orders.date DESC, orders.id LIMIT $4 OFFSET $5`,
		ownerUserID, f.CompanyID, f.ClientID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, translate("list orders", err)
	}
	defer rows.Close()

	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, translate("scan order", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, translate("exists order number", err)
	}
	return exists, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.Number, &o.Notes, &o.Date, &o.ClientID, &o.CompanyID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
