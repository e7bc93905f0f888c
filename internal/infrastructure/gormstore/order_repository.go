package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct {
	db *gorm.DB
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(fromOrder(o)).Error)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toOrder(&m), nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	res := r.db.WithContext(ctx).Model(&orderModel{}).Where("id = ?", o.ID).Updates(map[string]any{
		"notes":      o.Notes,
		"client_id":  o.ClientID,
		"company_id": o.CompanyID,
		"updated_at": o.UpdatedAt,
	})
	return affected(res)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&orderModel{}, "id = ?", id))
}

func (r *OrderRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.OrderFilter, page repository.Page) ([]*entity.Order, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).
		Joins("JOIN companies ON companies.id = orders.company_id").
		Where("companies.owner_user_id = ?", ownerUserID)
	if f.CompanyID != "" {
		q = q.Where("orders.company_id = ?", f.CompanyID)
	}
	if f.ClientID != "" {
		q = q.Where("orders.client_id = ?", f.ClientID)
	}
	var rows []orderModel
	if err := q.Order("orders.date DESC, orders.id").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		out = append(out, toOrder(&rows[i]))
	}
	return out, nil
}

func (r *OrderRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&orderModel{}).Where("number = ?", number).Limit(1).Count(&n).Error
	return n > 0, err
}
