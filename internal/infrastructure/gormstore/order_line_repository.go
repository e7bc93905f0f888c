package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

type OrderLineRepo struct {
	db *gorm.DB
}

func (r *OrderLineRepo) Create(ctx context.Context, l *entity.OrderLine) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(fromOrderLine(l)).Error)
}

func (r *OrderLineRepo) GetByID(ctx context.Context, id string) (*entity.OrderLine, error) {
	var m orderLineModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toOrderLine(&m), nil
}

func (r *OrderLineRepo) Update(ctx context.Context, l *entity.OrderLine) error {
	res := r.db.WithContext(ctx).Model(&orderLineModel{}).Where("id = ?", l.ID).Updates(map[string]any{
		"order_id":   l.OrderID,
		"product_id": l.ProductID,
		"quantity":   l.Quantity,
		"updated_at": l.UpdatedAt,
	})
	return affected(res)
}

func (r *OrderLineRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&orderLineModel{}, "id = ?", id))
}

func (r *OrderLineRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.OrderLineFilter, page repository.Page) ([]*entity.OrderLine, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_products.order_id").
		Joins("JOIN companies ON companies.id = orders.company_id").
		Where("companies.owner_user_id = ?", ownerUserID)
	if f.OrderID != "" {
		q = q.Where("order_products.order_id = ?", f.OrderID)
	}
	if f.CompanyID != "" {
		q = q.Where("orders.company_id = ?", f.CompanyID)
	}
	if f.ProductID != "" {
		q = q.Where("order_products.product_id = ?", f.ProductID)
	}
	var rows []orderLineModel
	if err := q.Order("order_products.created_at, order_products.id").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	return linesFrom(rows), nil
}

func (r *OrderLineRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	var rows []orderLineModel
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return linesFrom(rows), nil
}

func (r *OrderLineRepo) DeleteByOrder(ctx context.Context, orderID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&orderLineModel{}, "order_id = ?", orderID)
	return res.RowsAffected, res.Error
}

func linesFrom(rows []orderLineModel) []*entity.OrderLine {
	out := make([]*entity.OrderLine, 0, len(rows))
	for i := range rows {
		out = append(out, toOrderLine(&rows[i]))
	}
	return out
}
