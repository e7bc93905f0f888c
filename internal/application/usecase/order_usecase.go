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
	"github.com/jhoicas/vendergas-api/internal/domain/ordernum"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// MaxNumberAttempts intentos para obtener un número de pedido libre.
const MaxNumberAttempts = 5

// OrderUseCase reglas de negocio para pedidos.
type OrderUseCase struct {
	base
	numbers *ordernum.Generator
	pdf     ports.OrderPDFGenerator
	xml     ports.OrderXMLExporter
}

// NewOrderUseCase construye el caso de uso. pdf y xml pueden ser nil si no se exponen.
func NewOrderUseCase(
	repos ports.Repos,
	tx ports.TxRunner,
	events ports.EventPublisher,
	numbers *ordernum.Generator,
	pdf ports.OrderPDFGenerator,
	xml ports.OrderXMLExporter,
	log *logger.Logger,
) *OrderUseCase {
	if numbers == nil {
		numbers = ordernum.NewGenerator(nil)
	}
	return &OrderUseCase{
		base:    newBase(repos, tx, events, log, "order_usecase"),
		numbers: numbers,
		pdf:     pdf,
		xml:     xml,
	}
}

// List lista pedidos de empresas propias con cliente, empresa y líneas.
func (uc *OrderUseCase) List(ctx context.Context, sessionUserID string, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	p := pageOf(q.PageRequest)
	list, err := uc.repos.Orders.ListByOwner(ctx, sessionUserID, repository.OrderFilter{CompanyID: q.CompanyID, ClientID: q.ClientID}, p)
	if err != nil {
		return nil, err
	}
	companies := map[string]*entity.Company{}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		c, ok := companies[o.CompanyID]
		if !ok {
			if c, err = uc.repos.Companies.GetByID(ctx, o.CompanyID); err != nil {
				return nil, err
			}
			companies[o.CompanyID] = c
		}
		resp, err := uc.buildResponse(ctx, o, c)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.OrderListResponse{Items: items, Page: pageResponse(p)}, nil
}

func (uc *OrderUseCase) Get(ctx context.Context, sessionUserID, id string) (*dto.OrderResponse, error) {
	o, c, err := access.New(uc.repos).Order(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, o, c)
}

// Create crea un pedido en una empresa propia. El cliente debe pertenecer a esa empresa;
// Number y Date los asigna el servidor.
func (uc *OrderUseCase) Create(ctx context.Context, sessionUserID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Notes:     strings.TrimSpace(in.Notes),
		Date:      now,
		ClientID:  strings.TrimSpace(in.ClientID),
		CompanyID: strings.TrimSpace(in.CompanyID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	company, err := access.New(uc.repos).ParentCompany(ctx, sessionUserID, order.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := uc.insertWithNumber(ctx, order); err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", order.ID).Str("number", order.Number).Str("user_id", sessionUserID).Msg("pedido creado")
	resp, err := uc.buildResponse(ctx, order, company)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.EventOrderCreated, order.ID, order.CompanyID, sessionUserID, resp)
	return resp, nil
}

// errNumberTaken marca un intento cuyo número ya estaba asignado.
var errNumberTaken = errors.New("número de pedido ocupado")

// insertWithNumber asigna un número libre y persiste; reintenta ante colisiones.
// Cada intento comprueba el cliente e inserta en la misma transacción.
func (uc *OrderUseCase) insertWithNumber(ctx context.Context, order *entity.Order) error {
	for attempt := 0; attempt < MaxNumberAttempts; attempt++ {
		order.Number = uc.numbers.Next()
		err := uc.tx.RunInTx(ctx, func(tx ports.Repos) error {
			if err := clientBelongs(ctx, tx, order.ClientID, order.CompanyID); err != nil {
				return err
			}
			exists, err := tx.Orders.ExistsByNumber(ctx, order.Number)
			if err != nil {
				return err
			}
			if exists {
				return errNumberTaken
			}
			err = tx.Orders.Create(ctx, order)
			if errors.Is(err, domain.ErrDuplicate) {
				return errNumberTaken
			}
			return err
		})
		if errors.Is(err, errNumberTaken) {
			continue
		}
		return err
	}
	uc.log.Warn().Int("attempts", MaxNumberAttempts).Msg("sin número de pedido libre")
	return fmt.Errorf("%w: no se pudo asignar un número de pedido único", domain.ErrConflict)
}

// Update modifica un pedido propio. Se re-valida la propiedad de la empresa destino y
// que el cliente pertenezca a ella. Un pedido con líneas no cambia de empresa.
func (uc *OrderUseCase) Update(ctx context.Context, sessionUserID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	resolver := access.New(uc.repos)
	order, company, err := resolver.Order(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	if in.Notes != nil {
		order.Notes = strings.TrimSpace(*in.Notes)
	}
	moved := in.CompanyID != nil && strings.TrimSpace(*in.CompanyID) != order.CompanyID
	if moved {
		target, err := resolver.ParentCompany(ctx, sessionUserID, strings.TrimSpace(*in.CompanyID))
		if err != nil {
			return nil, err
		}
		order.CompanyID = target.ID
		company = target
	}
	if in.ClientID != nil {
		order.ClientID = strings.TrimSpace(*in.ClientID)
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	order.UpdatedAt = time.Now().UTC()
	err = uc.tx.RunInTx(ctx, func(tx ports.Repos) error {
		if moved {
			lines, err := tx.OrderLines.ListByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			if len(lines) > 0 {
				return fmt.Errorf("%w: el pedido tiene productos y no puede cambiar de empresa", domain.ErrConflict)
			}
		}
		if err := clientBelongs(ctx, tx, order.ClientID, order.CompanyID); err != nil {
			return err
		}
		return tx.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", order.ID).Str("user_id", sessionUserID).Msg("pedido actualizado")
	resp, err := uc.buildResponse(ctx, order, company)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.EventOrderUpdated, order.ID, order.CompanyID, sessionUserID, resp)
	return resp, nil
}

// Delete elimina las líneas y el pedido en una sola transacción.
func (uc *OrderUseCase) Delete(ctx context.Context, sessionUserID, id string) error {
	order, _, err := access.New(uc.repos).Order(ctx, sessionUserID, id)
	if err != nil {
		return err
	}
	var removed int64
	err = uc.tx.RunInTx(ctx, func(tx ports.Repos) error {
		n, err := tx.OrderLines.DeleteByOrder(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("eliminar líneas: %w", err)
		}
		removed = n
		return tx.Orders.Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("order_id", order.ID).Int64("lines", removed).Str("user_id", sessionUserID).Msg("pedido eliminado")
	uc.publish(ctx, ports.EventOrderDeleted, order.ID, order.CompanyID, sessionUserID, nil)
	return nil
}

// PDF genera el comprobante del pedido. Devuelve bytes y nombre de archivo.
func (uc *OrderUseCase) PDF(ctx context.Context, sessionUserID, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", errors.New("generador de PDF no configurado")
	}
	doc, err := uc.Document(ctx, sessionUserID, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateOrderPDF(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("pedido-%s.pdf", doc.Order.Number), nil
}

// XML exporta el pedido. Devuelve bytes y nombre de archivo.
func (uc *OrderUseCase) XML(ctx context.Context, sessionUserID, id string) ([]byte, string, error) {
	if uc.xml == nil {
		return nil, "", errors.New("exportador XML no configurado")
	}
	doc, err := uc.Document(ctx, sessionUserID, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xml.ExportOrderXML(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("pedido-%s.xml", doc.Order.Number), nil
}

// Document reúne pedido, empresa, cliente y líneas con producto.
func (uc *OrderUseCase) Document(ctx context.Context, sessionUserID, id string) (*ports.OrderDocument, error) {
	order, company, err := access.New(uc.repos).Order(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	client, err := uc.repos.Clients.GetByID(ctx, order.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("pedido %s sin cliente", order.ID)
	}
	lines, err := uc.repos.OrderLines.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	doc := &ports.OrderDocument{Order: order, Company: company, Client: client, Total: decimal.Zero}
	products := map[string]*entity.Product{}
	for _, l := range lines {
		p, err := uc.product(ctx, products, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		doc.Lines = append(doc.Lines, ports.OrderDocumentLine{Line: l, Product: p})
		doc.Total = doc.Total.Add(l.Subtotal(p.Price))
	}
	return doc, nil
}

func clientBelongs(ctx context.Context, repos ports.Repos, clientID, companyID string) error {
	client, err := repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil || client.CompanyID != companyID {
		return fmt.Errorf("%w: el cliente no pertenece a la empresa del pedido", domain.ErrValidation)
	}
	return nil
}

func (uc *OrderUseCase) product(ctx context.Context, cache map[string]*entity.Product, id string) (*entity.Product, error) {
	if p, ok := cache[id]; ok {
		return p, nil
	}
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = p
	return p, nil
}

// buildResponse arma el pedido con cliente, empresa, líneas (con producto) y total.
func (uc *OrderUseCase) buildResponse(ctx context.Context, o *entity.Order, company *entity.Company) (*dto.OrderResponse, error) {
	client, err := uc.repos.Clients.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repos.OrderLines.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		Notes:         o.Notes,
		Date:          o.Date,
		ClientID:      o.ClientID,
		CompanyID:     o.CompanyID,
		Client:        entityToClientSummary(client),
		Company:       entityToCompanySummary(company),
		OrderProducts: make([]dto.OrderLineResponse, 0, len(lines)),
		Total:         decimal.Zero,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	products := map[string]*entity.Product{}
	for _, l := range lines {
		p, err := uc.product(ctx, products, l.ProductID)
		if err != nil {
			return nil, err
		}
		line := entityToOrderLineResponse(l, nil, nil, p)
		resp.OrderProducts = append(resp.OrderProducts, *line)
		resp.Total = resp.Total.Add(line.Subtotal)
	}
	return resp, nil
}

func validateOrder(o *entity.Order) error {
	err := validation.ValidateStruct(o,
		validation.Field(&o.CompanyID, validation.Required),
		validation.Field(&o.ClientID, validation.Required),
		validation.Field(&o.Notes, validation.Length(0, 2000)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

func entityToOrderSummary(o *entity.Order, client *entity.Client) *dto.OrderSummary {
	if o == nil {
		return nil
	}
	s := &dto.OrderSummary{ID: o.ID, Number: o.Number, Date: o.Date}
	if client != nil {
		s.ClientName = client.Name
	}
	return s
}
