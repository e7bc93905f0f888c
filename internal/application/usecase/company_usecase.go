package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/jhoicas/vendergas-api/internal/application/access"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/pkg/cnpj"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// CompanyUseCase reglas de negocio para empresas. El propietario siempre es el usuario de la sesión.
type CompanyUseCase struct {
	base
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repos ports.Repos, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{base: newBase(repos, tx, events, log, "company_usecase")}
}

// List lista las empresas del usuario de la sesión.
func (uc *CompanyUseCase) List(ctx context.Context, sessionUserID string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	p := pageOf(page)
	list, err := uc.repos.Companies.ListByOwner(ctx, sessionUserID, p)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: pageResponse(p)}, nil
}

// Get obtiene una empresa propia por ID.
func (uc *CompanyUseCase) Get(ctx context.Context, sessionUserID, id string) (*dto.CompanyResponse, error) {
	c, err := access.New(uc.repos).Company(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(c), nil
}

// Create crea una empresa cuyo propietario es la sesión. El CNPJ se guarda con máscara.
func (uc *CompanyUseCase) Create(ctx context.Context, sessionUserID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	owner, err := uc.repos.Users.GetByID(ctx, sessionUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:          uuid.New().String(),
		TradeName:   strings.TrimSpace(in.TradeName),
		LegalName:   strings.TrimSpace(in.LegalName),
		CNPJ:        in.CNPJ,
		OwnerUserID: sessionUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateCompany(company); err != nil {
		return nil, err
	}
	if err := uc.repos.Companies.Create(ctx, company); err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("user_id", sessionUserID).Msg("empresa creada")
	resp := entityToCompanyResponse(company)
	uc.publish(ctx, ports.EventCompanyCreated, company.ID, company.ID, sessionUserID, resp)
	return resp, nil
}

// Update modifica los campos enviados de una empresa propia.
func (uc *CompanyUseCase) Update(ctx context.Context, sessionUserID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := access.New(uc.repos).Company(ctx, sessionUserID, id)
	if err != nil {
		return nil, err
	}
	if in.TradeName != nil {
		company.TradeName = strings.TrimSpace(*in.TradeName)
	}
	if in.LegalName != nil {
		company.LegalName = strings.TrimSpace(*in.LegalName)
	}
	if in.CNPJ != nil {
		company.CNPJ = *in.CNPJ
	}
	if err := validateCompany(company); err != nil {
		return nil, err
	}
	company.UpdatedAt = time.Now().UTC()
	if err := uc.repos.Companies.Update(ctx, company); err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("user_id", sessionUserID).Msg("empresa actualizada")
	resp := entityToCompanyResponse(company)
	uc.publish(ctx, ports.EventCompanyUpdated, company.ID, company.ID, sessionUserID, resp)
	return resp, nil
}

// Delete elimina una empresa propia. Con clientes, productos o pedidos devuelve ErrHasDependents.
func (uc *CompanyUseCase) Delete(ctx context.Context, sessionUserID, id string) error {
	company, err := access.New(uc.repos).Company(ctx, sessionUserID, id)
	if err != nil {
		return err
	}
	err = uc.tx.RunInTx(ctx, func(tx ports.Repos) error {
		n, err := tx.Companies.CountDependents(ctx, company.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: la empresa tiene %d clientes, productos o pedidos", domain.ErrHasDependents, n)
		}
		return tx.Companies.Delete(ctx, company.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("company_id", company.ID).Str("user_id", sessionUserID).Msg("empresa eliminada")
	uc.publish(ctx, ports.EventCompanyDeleted, company.ID, company.ID, sessionUserID, nil)
	return nil
}

// validateCompany valida y normaliza el CNPJ a 00.000.000/0000-00.
func validateCompany(c *entity.Company) error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.TradeName, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.LegalName, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.CNPJ, validation.Required, validation.By(func(v any) error {
			s, _ := v.(string)
			return cnpj.Validate(s)
		})),
	)
	if err != nil {
		return invalid(err)
	}
	c.CNPJ = cnpj.Format(c.CNPJ)
	return nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		TradeName: c.TradeName,
		LegalName: c.LegalName,
		CNPJ:      c.CNPJ,
		UserID:    c.OwnerUserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func entityToCompanySummary(c *entity.Company) *dto.CompanySummary {
	if c == nil {
		return nil
	}
	return &dto.CompanySummary{ID: c.ID, TradeName: c.TradeName, LegalName: c.LegalName, CNPJ: c.CNPJ}
}
