package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/jhoicas/vendergas-api/internal/application/access"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// ClientUseCase reglas de negocio para clientes de una empresa.
type ClientUseCase struct {
	base
}

func NewClientUseCase(repos ports.Repos, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{base: newBase(repos, tx, events, log, "client_usecase")}
}

// List lista los clientes de empresas propias; CompanyID restringe aún más el resultado.
func (uc *ClientUseCase) List(ctx context.Context, sessionUserID string, q dto.ClientListQuery) (*dto.ClientListResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	p := pageOf(q.PageRequest)
	list, err := uc.repos.Clients.ListByOwner(ctx, sessionUserID, repository.ClientFilter{CompanyID: q.CompanyID}, p)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: pageResponse(p)}, nil
}

func (uc *ClientUseCase) Get(ctx context.Context, sessionUserID, id string) (*dto.ClientResponse, error) {
	cl, _, err := access.New(uc.repos).Client(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	return entityToClientResponse(cl), nil
}

// Create crea un cliente en una empresa propia.
func (uc *ClientUseCase) Create(ctx context.Context, sessionUserID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: strings.TrimSpace(in.CompanyID),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if _, err := access.New(uc.repos).ParentCompany(ctx, sessionUserID, client.CompanyID); err != nil {
		return nil, err
	}
	if err := uc.repos.Clients.Create(ctx, client); err != nil {
		return nil, err
	}

	uc.log.Info().Str("client_id", client.ID).Str("company_id", client.CompanyID).Str("user_id", sessionUserID).Msg("cliente creado")
	resp := entityToClientResponse(client)
	uc.publish(ctx, ports.EventClientCreated, client.ID, client.CompanyID, sessionUserID, resp)
	return resp, nil
}

// Update modifica un cliente propio. Cambiar de empresa exige que la nueva también sea propia
// y que el cliente no tenga pedidos.
func (uc *ClientUseCase) Update(ctx context.Context, sessionUserID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	resolver := access.New(uc.repos)
	client, _, err := resolver.Client(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		client.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		client.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		client.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.CompanyID != nil && strings.TrimSpace(*in.CompanyID) != client.CompanyID {
		target := strings.TrimSpace(*in.CompanyID)
		if _, err := resolver.ParentCompany(ctx, sessionUserID, target); err != nil {
			return nil, err
		}
		orders, err := uc.repos.Orders.ListByOwner(ctx, sessionUserID, repository.OrderFilter{ClientID: client.ID}, repository.Page{Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(orders) > 0 {
			return nil, fmt.Errorf("%w: el cliente tiene pedidos y no puede cambiar de empresa", domain.ErrConflict)
		}
		client.CompanyID = target
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}
	client.UpdatedAt = time.Now().UTC()
	if err := uc.repos.Clients.Update(ctx, client); err != nil {
		return nil, err
	}

	uc.log.Info().Str("client_id", client.ID).Str("user_id", sessionUserID).Msg("cliente actualizado")
	resp := entityToClientResponse(client)
	uc.publish(ctx, ports.EventClientUpdated, client.ID, client.CompanyID, sessionUserID, resp)
	return resp, nil
}

// Delete elimina un cliente propio sin pedidos.
func (uc *ClientUseCase) Delete(ctx context.Context, sessionUserID, id string) error {
	client, _, err := access.New(uc.repos).Client(ctx, sessionUserID, id)
	if err != nil {
		return err
	}
	orders, err := uc.repos.Orders.ListByOwner(ctx, sessionUserID, repository.OrderFilter{ClientID: client.ID}, repository.Page{Limit: 1})
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return fmt.Errorf("%w: el cliente tiene pedidos", domain.ErrHasDependents)
	}
	if err := uc.repos.Clients.Delete(ctx, client.ID); err != nil {
		return err
	}

	uc.log.Info().Str("client_id", client.ID).Str("user_id", sessionUserID).Msg("cliente eliminado")
	uc.publish(ctx, ports.EventClientDeleted, client.ID, client.CompanyID, sessionUserID, nil)
	return nil
}

func validateClient(c *entity.Client) error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.CompanyID, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Email, is.EmailFormat, validation.Length(0, 320)),
		validation.Field(&c.Phone, validation.Length(0, 40)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

func entityToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CompanyID: c.CompanyID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func entityToClientSummary(c *entity.Client) *dto.ClientSummary {
	if c == nil {
		return nil
	}
	return &dto.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
