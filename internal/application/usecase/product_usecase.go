package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendergas-api/internal/application/access"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// ProductUseCase reglas de negocio para productos de una empresa.
type ProductUseCase struct {
	base
}

func NewProductUseCase(repos ports.Repos, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{base: newBase(repos, tx, events, log, "product_usecase")}
}

// List lista los productos de empresas propias.
func (uc *ProductUseCase) List(ctx context.Context, sessionUserID string, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	p := pageOf(q.PageRequest)
	list, err := uc.repos.Products.ListByOwner(ctx, sessionUserID, repository.ProductFilter{CompanyID: q.CompanyID}, p)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *entityToProductResponse(pr))
	}
	return &dto.ProductListResponse{Items: items, Page: pageResponse(p)}, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, sessionUserID, id string) (*dto.ProductResponse, error) {
	p, _, err := access.New(uc.repos).Product(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	return entityToProductResponse(p), nil
}

// Create crea un producto en una empresa propia. Price es obligatorio y no negativo.
func (uc *ProductUseCase) Create(ctx context.Context, sessionUserID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&in, validation.Field(&in.Price, validation.NotNil)); err != nil {
		return nil, invalid(err)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   strings.TrimSpace(in.CompanyID),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if _, err := access.New(uc.repos).ParentCompany(ctx, sessionUserID, product.CompanyID); err != nil {
		return nil, err
	}
	if err := uc.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("company_id", product.CompanyID).Str("user_id", sessionUserID).Msg("producto creado")
	resp := entityToProductResponse(product)
	uc.publish(ctx, ports.EventProductCreated, product.ID, product.CompanyID, sessionUserID, resp)
	return resp, nil
}

// Update modifica un producto propio. Cambiar de empresa exige que el producto no esté en pedidos.
func (uc *ProductUseCase) Update(ctx context.Context, sessionUserID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	resolver := access.New(uc.repos)
	product, _, err := resolver.Product(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.CompanyID != nil && strings.TrimSpace(*in.CompanyID) != product.CompanyID {
		target := strings.TrimSpace(*in.CompanyID)
		if _, err := resolver.ParentCompany(ctx, sessionUserID, target); err != nil {
			return nil, err
		}
		inUse, err := uc.inOrders(ctx, sessionUserID, product.ID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, fmt.Errorf("%w: el producto está en pedidos y no puede cambiar de empresa", domain.ErrConflict)
		}
		product.CompanyID = target
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repos.Products.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("user_id", sessionUserID).Msg("producto actualizado")
	resp := entityToProductResponse(product)
	uc.publish(ctx, ports.EventProductUpdated, product.ID, product.CompanyID, sessionUserID, resp)
	return resp, nil
}

// Delete elimina un producto propio que no esté en ningún pedido.
func (uc *ProductUseCase) Delete(ctx context.Context, sessionUserID, id string) error {
	product, _, err := access.New(uc.repos).Product(ctx, sessionUserID, id)
	if err != nil {
		return err
	}
	inUse, err := uc.inOrders(ctx, sessionUserID, product.ID)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: el producto está en pedidos", domain.ErrHasDependents)
	}
	if err := uc.repos.Products.Delete(ctx, product.ID); err != nil {
		return err
	}

	uc.log.Info().Str("product_id", product.ID).Str("user_id", sessionUserID).Msg("producto eliminado")
	uc.publish(ctx, ports.EventProductDeleted, product.ID, product.CompanyID, sessionUserID, nil)
	return nil
}

func (uc *ProductUseCase) inOrders(ctx context.Context, sessionUserID, productID string) (bool, error) {
	lines, err := uc.repos.OrderLines.ListByOwner(ctx, sessionUserID, repository.OrderLineFilter{ProductID: productID}, repository.Page{Limit: 1})
	if err != nil {
		return false, err
	}
	return len(lines) > 0, nil
}

// MaxPrice mayor precio representable en NUMERIC(14,2).
var MaxPrice = decimal.RequireFromString("999999999999.99")

func validateProduct(p *entity.Product) error {
	p.Price = p.Price.Round(2)
	err := validation.ValidateStruct(p,
		validation.Field(&p.CompanyID, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Length(0, 2000)),
		validation.Field(&p.Price, validation.By(priceInRange)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

func priceInRange(v any) error {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	if d.GreaterThan(MaxPrice) {
		return fmt.Errorf("must be no greater than %s", MaxPrice.StringFixed(2))
	}
	return nil
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CompanyID:   p.CompanyID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func entityToProductSummary(p *entity.Product) *dto.ProductSummary {
	if p == nil {
		return nil
	}
	return &dto.ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price}
}
