package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct {
	db *gorm.DB
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(fromProduct(p)).Error)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toProduct(&m), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"company_id":  p.CompanyID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"updated_at":  p.UpdatedAt,
	})
	return affected(res)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&productModel{}, "id = ?", id))
}

func (r *ProductRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.ProductFilter, page repository.Page) ([]*entity.Product, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).
		Joins("JOIN companies ON companies.id = products.company_id").
		Where("companies.owner_user_id = ?", ownerUserID)
	if f.CompanyID != "" {
		q = q.Where("products.company_id = ?", f.CompanyID)
	}
	var rows []productModel
	if err := q.Order("products.created_at, products.id").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		out = append(out, toProduct(&rows[i]))
	}
	return out, nil
}
