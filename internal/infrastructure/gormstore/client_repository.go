package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

type ClientRepo struct {
	db *gorm.DB
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(fromClient(c)).Error)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var m clientModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toClient(&m), nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	res := r.db.WithContext(ctx).Model(&clientModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"company_id": c.CompanyID,
		"name":       c.Name,
		"email":      c.Email,
		"phone":      c.Phone,
		"updated_at": c.UpdatedAt,
	})
	return affected(res)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Delete(&clientModel{}, "id = ?", id))
}

func (r *ClientRepo) ListByOwner(ctx context.Context, ownerUserID string, f repository.ClientFilter, page repository.Page) ([]*entity.Client, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).
		Joins("JOIN companies ON companies.id = clients.company_id").
		Where("companies.owner_user_id = ?", ownerUserID)
	if f.CompanyID != "" {
		q = q.Where("clients.company_id = ?", f.CompanyID)
	}
	var rows []clientModel
	if err := q.Order("clients.created_at, clients.id").Limit(page.Limit).Offset(page.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Client, 0, len(rows))
	for i := range rows {
		out = append(out, toClient(&rows[i]))
	}
	return out, nil
}
