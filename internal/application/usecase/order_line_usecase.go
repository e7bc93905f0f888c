package usecase

import (
	"context"
	"fmt"
	"math"
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

// MaxQuantity límite de la columna INTEGER de order_products.quantity.
const MaxQuantity = math.MaxInt32

// OrderLineUseCase reglas de negocio para líneas de pedido (order-products).
type OrderLineUseCase struct {
	base
}

func NewOrderLineUseCase(repos ports.Repos, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *OrderLineUseCase {
	return &OrderLineUseCase{base: newBase(repos, tx, events, log, "order_line_usecase")}
}

// List lista líneas de pedidos de empresas propias, filtrando por orderId y companyId si vienen.
func (uc *OrderLineUseCase) List(ctx context.Context, sessionUserID string, q dto.OrderLineListQuery) (*dto.OrderLineListResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	p := pageOf(q.PageRequest)
	list, err := uc.repos.OrderLines.ListByOwner(ctx, sessionUserID, repository.OrderLineFilter{OrderID: q.OrderID, CompanyID: q.CompanyID}, p)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderLineResponse, 0, len(list))
	for _, l := range list {
		resp, err := uc.buildResponse(ctx, l, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.OrderLineListResponse{Items: items, Page: pageResponse(p)}, nil
}

func (uc *OrderLineUseCase) Get(ctx context.Context, sessionUserID, id string) (*dto.OrderLineResponse, error) {
	l, o, err := uc.resolve(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, l, o)
}

// Create añade un producto a un pedido propio. El producto debe ser de la empresa del pedido.
func (uc *OrderLineUseCase) Create(ctx context.Context, sessionUserID string, in dto.CreateOrderLineRequest) (*dto.OrderLineResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	line := &entity.OrderLine{
		ID:        uuid.New().String(),
		OrderID:   strings.TrimSpace(in.OrderID),
		ProductID: strings.TrimSpace(in.ProductID),
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateOrderLine(line); err != nil {
		return nil, err
	}
	order, _, err := access.New(uc.repos).ParentOrder(ctx, sessionUserID, line.OrderID)
	if err != nil {
		return nil, err
	}
	if err := uc.productBelongs(ctx, line.ProductID, order.CompanyID); err != nil {
		return nil, err
	}
	if err := uc.repos.OrderLines.Create(ctx, line); err != nil {
		return nil, err
	}

	uc.log.Info().Str("line_id", line.ID).Str("order_id", order.ID).Str("user_id", sessionUserID).Msg("producto añadido al pedido")
	resp, err := uc.buildResponse(ctx, line, order)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.EventOrderLineCreated, line.ID, order.CompanyID, sessionUserID, resp)
	return resp, nil
}

// Update modifica una línea propia; el pedido y el producto resultantes deben ser de la misma empresa.
func (uc *OrderLineUseCase) Update(ctx context.Context, sessionUserID, id string, in dto.UpdateOrderLineRequest) (*dto.OrderLineResponse, error) {
	line, order, err := uc.resolve(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	if in.OrderID != nil && strings.TrimSpace(*in.OrderID) != line.OrderID {
		target, _, err := access.New(uc.repos).ParentOrder(ctx, sessionUserID, strings.TrimSpace(*in.OrderID))
		if err != nil {
			return nil, err
		}
		line.OrderID = target.ID
		order = target
	}
	if in.ProductID != nil {
		line.ProductID = strings.TrimSpace(*in.ProductID)
	}
	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	if err := validateOrderLine(line); err != nil {
		return nil, err
	}
	if err := uc.productBelongs(ctx, line.ProductID, order.CompanyID); err != nil {
		return nil, err
	}
	line.UpdatedAt = time.Now().UTC()
	if err := uc.repos.OrderLines.Update(ctx, line); err != nil {
		return nil, err
	}

	uc.log.Info().Str("line_id", line.ID).Str("user_id", sessionUserID).Msg("línea de pedido actualizada")
	resp, err := uc.buildResponse(ctx, line, order)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.EventOrderLineUpdated, line.ID, order.CompanyID, sessionUserID, resp)
	return resp, nil
}

func (uc *OrderLineUseCase) Delete(ctx context.Context, sessionUserID, id string) error {
	line, order, err := uc.resolve(ctx, sessionUserID, id)
	if err != nil {
		return err
	}
	if err := uc.repos.OrderLines.Delete(ctx, line.ID); err != nil {
		return err
	}

	uc.log.Info().Str("line_id", line.ID).Str("user_id", sessionUserID).Msg("línea de pedido eliminada")
	uc.publish(ctx, ports.EventOrderLineDeleted, line.ID, order.CompanyID, sessionUserID, nil)
	return nil
}

func (uc *OrderLineUseCase) resolve(ctx context.Context, sessionUserID, id string) (*entity.OrderLine, *entity.Order, error) {
	l, o, _, err := access.New(uc.repos).OrderLine(ctx, sessionUserID, id)
	return l, o, err
}

func (uc *OrderLineUseCase) productBelongs(ctx context.Context, productID, companyID string) error {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || p.CompanyID != companyID {
		return fmt.Errorf("%w: el producto no pertenece a la empresa del pedido", domain.ErrValidation)
	}
	return nil
}

// buildResponse embebe el resumen del pedido (con nombre del cliente) y del producto.
func (uc *OrderLineUseCase) buildResponse(ctx context.Context, l *entity.OrderLine, o *entity.Order) (*dto.OrderLineResponse, error) {
	var err error
	if o == nil {
		if o, err = uc.repos.Orders.GetByID(ctx, l.OrderID); err != nil {
			return nil, err
		}
	}
	var client *entity.Client
	if o != nil {
		if client, err = uc.repos.Clients.GetByID(ctx, o.ClientID); err != nil {
			return nil, err
		}
	}
	p, err := uc.repos.Products.GetByID(ctx, l.ProductID)
	if err != nil {
		return nil, err
	}
	return entityToOrderLineResponse(l, o, client, p), nil
}

func validateOrderLine(l *entity.OrderLine) error {
	err := validation.ValidateStruct(l,
		validation.Field(&l.OrderID, validation.Required),
		validation.Field(&l.ProductID, validation.Required),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1), validation.Max(MaxQuantity)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

// entityToOrderLineResponse; o y client son opcionales (se omite el resumen del pedido).
func entityToOrderLineResponse(l *entity.OrderLine, o *entity.Order, client *entity.Client, p *entity.Product) *dto.OrderLineResponse {
	resp := &dto.OrderLineResponse{
		ID:        l.ID,
		OrderID:   l.OrderID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Subtotal:  decimal.Zero,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if o != nil {
		resp.Order = entityToOrderSummary(o, client)
	}
	if p != nil {
		resp.Product = entityToProductSummary(p)
		resp.Subtotal = l.Subtotal(p.Price)
	}
	return resp
}
