package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

type CompanyRepo struct {
	db *gorm.DB
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(fromCompany(c)).Error)
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var m companyModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toCompany(&m), nil
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	res := r.db.WithContext(ctx).Model(&companyModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"trade_name": c.TradeName,
		"legal_name": c.LegalName,
		"cnpj":       c.CNPJ,
		"updated_at": c.UpdatedAt,
	})
	return affected(res)
}

func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&companyModel{}, "id = ?", id))
}

func (r *CompanyRepo) ListByOwner(ctx context.Context, ownerUserID string, page repository.Page) ([]*entity.Company, error) {
	page = page.Normalize()
	var rows []companyModel
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at, id").
		Limit(page.Limit).Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Company, 0, len(rows))
	for i := range rows {
		out = append(out, toCompany(&rows[i]))
	}
	return out, nil
}

func (r *CompanyRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&companyModel{}).Where("owner_user_id = ?", ownerUserID).Count(&n).Error
	return int(n), err
}

func (r *CompanyRepo) CountDependents(ctx context.Context, companyID string) (int, error) {
	var total int64
	for _, m := range []any{&clientModel{}, &productModel{}, &orderModel{}} {
		var n int64
		if err := r.db.WithContext(ctx).Model(m).Where("company_id = ?", companyID).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return int(total), nil
}
