// Package access resuelve la cadena de propiedad de cada recurso hasta su usuario propietario
// y aplica el predicado de authz.
//
// Política: ErrNotFound solo cuando el id solicitado no existe; cualquier otra falla de la cadena
// (propietario distinto o padre inexistente) es ErrForbidden.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/authz"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// Resolver recorre empresa → propietario, cliente/producto/pedido → empresa y línea → pedido.
type Resolver struct {
	repos ports.Repos
}

// New construye el resolver sobre un conjunto de repos (del pool o de una tx).
func New(repos ports.Repos) *Resolver {
	return &Resolver{repos: repos}
}

// Company devuelve la empresa si la sesión es su propietaria.
func (r *Resolver) Company(ctx context.Context, sessionUserID, companyID string) (*entity.Company, error) {
	if sessionUserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	c, err := r.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("access: obtener empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.Require(sessionUserID, c.OwnerUserID); err != nil {
		return nil, err
	}
	return c, nil
}

// ParentCompany valida la empresa declarada como padre en un create o update.
// Una empresa inexistente se trata como ajena.
func (r *Resolver) ParentCompany(ctx context.Context, sessionUserID, companyID string) (*entity.Company, error) {
	if sessionUserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if companyID == "" {
		return nil, fmt.Errorf("%w: companyId es obligatorio", domain.ErrValidation)
	}
	c, err := r.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("access: obtener empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrForbidden
	}
	if err := authz.Require(sessionUserID, c.OwnerUserID); err != nil {
		return nil, err
	}
	return c, nil
}

// owningCompany resuelve la empresa de un hijo ya existente. Sin empresa la cadena está rota.
func (r *Resolver) owningCompany(ctx context.Context, sessionUserID, companyID string) (*entity.Company, error) {
	c, err := r.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("access: obtener empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrForbidden
	}
	if err := authz.Require(sessionUserID, c.OwnerUserID); err != nil {
		return nil, err
	}
	return c, nil
}

// Client devuelve el cliente y su empresa si la sesión es propietaria.
func (r *Resolver) Client(ctx context.Context, sessionUserID, clientID string) (*entity.Client, *entity.Company, error) {
	if sessionUserID == "" {
		return nil, nil, domain.ErrUnauthenticated
	}
	cl, err := r.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("access: obtener cliente: %w", err)
	}
	if cl == nil {
		return nil, nil, domain.ErrNotFound
	}
	c, err := r.owningCompany(ctx, sessionUserID, cl.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return cl, c, nil
}

// Product devuelve el producto y su empresa si la sesión es propietaria.
func (r *Resolver) Product(ctx context.Context, sessionUserID, productID string) (*entity.Product, *entity.Company, error) {
	if sessionUserID == "" {
		return nil, nil, domain.ErrUnauthenticated
	}
	p, err := r.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("access: obtener producto: %w", err)
	}
	if p == nil {
		return nil, nil, domain.ErrNotFound
	}
	c, err := r.owningCompany(ctx, sessionUserID, p.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return p, c, nil
}

// Order devuelve el pedido y su empresa si la sesión es propietaria.
func (r *Resolver) Order(ctx context.Context, sessionUserID, orderID string) (*entity.Order, *entity.Company, error) {
	if sessionUserID == "" {
		return nil, nil, domain.ErrUnauthenticated
	}
	o, err := r.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("access: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, nil, domain.ErrNotFound
	}
	c, err := r.owningCompany(ctx, sessionUserID, o.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return o, c, nil
}

// ParentOrder valida el pedido declarado como padre de una línea. Un pedido inexistente es ajeno.
func (r *Resolver) ParentOrder(ctx context.Context, sessionUserID, orderID string) (*entity.Order, *entity.Company, error) {
	if sessionUserID == "" {
		return nil, nil, domain.ErrUnauthenticated
	}
	if orderID == "" {
		return nil, nil, fmt.Errorf("%w: orderId es obligatorio", domain.ErrValidation)
	}
	o, c, err := r.Order(ctx, sessionUserID, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.ErrForbidden
	}
	return o, c, err
}

// OrderLine devuelve la línea con su pedido y empresa si la sesión es propietaria.
func (r *Resolver) OrderLine(ctx context.Context, sessionUserID, lineID string) (*entity.OrderLine, *entity.Order, *entity.Company, error) {
	if sessionUserID == "" {
		return nil, nil, nil, domain.ErrUnauthenticated
	}
	l, err := r.repos.OrderLines.GetByID(ctx, lineID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("access: obtener línea: %w", err)
	}
	if l == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	o, err := r.repos.Orders.GetByID(ctx, l.OrderID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("access: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, nil, nil, domain.ErrForbidden
	}
	c, err := r.owningCompany(ctx, sessionUserID, o.CompanyID)
	if err != nil {
		return nil, nil, nil, err
	}
	return l, o, c, nil
}
