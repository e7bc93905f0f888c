package usecase_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/ordernum"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos: cliente de otra empresa, número, cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_ClienteDeOtraEmpresa_RetornaValidationSinPersistir(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	ctx := context.Background()

	other, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "Outra", LegalName: "Outra SA", CNPJ: validCNPJ})
	require.NoError(t, err)

	_, err = env.orders.Create(ctx, env.userA, dto.CreateOrderRequest{ClientID: a.client.ID, CompanyID: other.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := env.orders.List(ctx, env.userA, dto.OrderListQuery{CompanyID: other.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestOrderCreate_NumeroDeOchoDigitosYFecha(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	re := regexp.MustCompile(`^[1-9][0-9]{7}$`)

	assert.Regexp(t, re, a.order.Number)
	assert.False(t, a.order.Date.IsZero())
	for i := 0; i < 10; i++ {
		o, err := env.orders.Create(context.Background(), env.userA, dto.CreateOrderRequest{ClientID: a.client.ID, CompanyID: a.company.ID})
		require.NoError(t, err)
		assert.Regexp(t, re, o.Number)
	}
}

func TestOrderCreate_ColisionDeNumero_Reintenta(t *testing.T) {
	// valores relativos a Max-Min+1; el primero se repite dos veces
	env := newEnv(t, ordernum.NewGenerator(ordernum.NewSequence(5, 5, 6)))
	a := env.seedTenant(t, env.userA)
	assert.Equal(t, "10000005", a.order.Number)

	o, err := env.orders.Create(context.Background(), env.userA, dto.CreateOrderRequest{ClientID: a.client.ID, CompanyID: a.company.ID})
	require.NoError(t, err)
	assert.Equal(t, "10000006", o.Number)
}

func TestOrderCreate_SinNumeroLibre_RetornaConflict(t *testing.T) {
	env := newEnv(t, ordernum.NewGenerator(ordernum.NewSequence(7)))
	a := env.seedTenant(t, env.userA)

	_, err := env.orders.Create(context.Background(), env.userA, dto.CreateOrderRequest{ClientID: a.client.ID, CompanyID: a.company.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, usecase.MaxNumberAttempts)
}

func TestOrderDelete_EliminaLineasEnCascada(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	ctx := context.Background()

	_, err := env.orderLines.Create(ctx, env.userA, dto.CreateOrderLineRequest{OrderID: a.order.ID, ProductID: a.product.ID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, env.orders.Delete(ctx, env.userA, a.order.ID))

	lines, err := env.store.Repos().OrderLines.ListByOrder(ctx, a.order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	_, err = env.orders.Get(ctx, env.userA, a.order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.orderLines.Get(ctx, env.userA, a.line.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUpdate_ConLineasNoCambiaDeEmpresa(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	ctx := context.Background()
	other, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "Outra", LegalName: "Outra SA", CNPJ: validCNPJ})
	require.NoError(t, err)

	_, err = env.orders.Update(ctx, env.userA, a.order.ID, dto.UpdateOrderRequest{CompanyID: strPtr(other.ID)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	updated, err := env.orders.Update(ctx, env.userA, a.order.ID, dto.UpdateOrderRequest{Notes: strPtr("entregar de manhã")})
	require.NoError(t, err)
	assert.Equal(t, "entregar de manhã", updated.Notes)
	assert.Equal(t, a.order.Number, updated.Number)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas de pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderLineCreate_ProductoDeOtraEmpresa_RetornaValidation(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	ctx := context.Background()
	other, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "Outra", LegalName: "Outra SA", CNPJ: validCNPJ})
	require.NoError(t, err)
	price := decimal.NewFromInt(10)
	p, err := env.products.Create(ctx, env.userA, dto.CreateProductRequest{Name: "Água", Price: &price, CompanyID: other.ID})
	require.NoError(t, err)

	_, err = env.orderLines.Create(ctx, env.userA, dto.CreateOrderLineRequest{OrderID: a.order.ID, ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderLineCreate_CantidadNoPositiva_RetornaValidation(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)

	for _, q := range []int{0, -3} {
		_, err := env.orderLines.Create(context.Background(), env.userA, dto.CreateOrderLineRequest{OrderID: a.order.ID, ProductID: a.product.ID, Quantity: q})
		assert.ErrorIs(t, err, domain.ErrValidation, "quantity %d", q)
	}
}

func TestOrderLine_RespuestaIncluyePedidoYProducto(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)

	got, err := env.orderLines.Get(context.Background(), env.userA, a.line.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Order)
	require.NotNil(t, got.Product)
	assert.Equal(t, a.order.Number, got.Order.Number)
	assert.Equal(t, "Maria", got.Order.ClientName)
	assert.Equal(t, "P13", got.Product.Name)
	assert.True(t, decimal.RequireFromString("221").Equal(got.Subtotal))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de payloads
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyCreate_CNPJ(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	_, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "X", LegalName: "X", CNPJ: "11222333000100"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	c, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "X", LegalName: "X LTDA", CNPJ: validCNPJ})
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", c.CNPJ)
	assert.Equal(t, env.userA, c.UserID)
}

func TestClientCreate_EmailInvalido_RetornaValidation(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)

	_, err := env.clients.Create(context.Background(), env.userA, dto.CreateClientRequest{Name: "João", Email: "no-es-email", CompanyID: a.company.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductCreate_PrecioNegativoOAusente_RetornaValidation(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	ctx := context.Background()
	neg := decimal.NewFromInt(-1)

	_, err := env.products.Create(ctx, env.userA, dto.CreateProductRequest{Name: "X", Price: &neg, CompanyID: a.company.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.products.Create(ctx, env.userA, dto.CreateProductRequest{Name: "X", CompanyID: a.company.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado con dependientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyDelete_ConDependientes_RetornaHasDependents(t *testing.T) {
	env := newEnv(t, nil)
	a := env.seedTenant(t, env.userA)
	ctx := context.Background()

	assert.ErrorIs(t, env.companies.Delete(ctx, env.userA, a.company.ID), domain.ErrHasDependents)
	assert.ErrorIs(t, env.clients.Delete(ctx, env.userA, a.client.ID), domain.ErrHasDependents)
	assert.ErrorIs(t, env.products.Delete(ctx, env.userA, a.product.ID), domain.ErrHasDependents)

	// vaciando en orden se puede borrar todo
	require.NoError(t, env.orders.Delete(ctx, env.userA, a.order.ID))
	require.NoError(t, env.clients.Delete(ctx, env.userA, a.client.ID))
	require.NoError(t, env.products.Delete(ctx, env.userA, a.product.ID))
	require.NoError(t, env.companies.Delete(ctx, env.userA, a.company.ID))

	_, err := env.companies.Get(ctx, env.userA, a.company.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountDelete_ConEmpresas_RetornaConflict(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	c, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "X", LegalName: "X LTDA", CNPJ: validCNPJ})
	require.NoError(t, err)

	assert.ErrorIs(t, env.accounts.Delete(ctx, env.userA), domain.ErrConflict)

	require.NoError(t, env.companies.Delete(ctx, env.userA, c.ID))
	require.NoError(t, env.accounts.Delete(ctx, env.userA))

	u, err := env.store.Repos().Users.GetByID(ctx, env.userA)
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.ErrorIs(t, env.accounts.Delete(ctx, env.userA), domain.ErrUnauthenticated)
}

func TestAccountUpdateName(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	_, err := env.accounts.UpdateName(ctx, env.userA, dto.UpdateUserRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	u, err := env.accounts.UpdateName(ctx, env.userA, dto.UpdateUserRequest{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
}

func TestList_Paginacion(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := env.companies.Create(ctx, env.userA, dto.CreateCompanyRequest{TradeName: "X", LegalName: "X LTDA", CNPJ: validCNPJ})
		require.NoError(t, err)
	}

	page, err := env.companies.List(ctx, env.userA, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	rest, err := env.companies.List(ctx, env.userA, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)

	all, err := env.companies.List(ctx, env.userA, dto.PageRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, repository.MaxLimit, all.Page.Limit)
}
