package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/ordernum"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/events"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/xmlexport"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: SQLite en memoria + casos de uso reales
// ──────────────────────────────────────────────────────────────────────────────

const validCNPJ = "11222333000181"

type testEnv struct {
	store      *gormstore.Store
	companies  *usecase.CompanyUseCase
	clients    *usecase.ClientUseCase
	products   *usecase.ProductUseCase
	orders     *usecase.OrderUseCase
	orderLines *usecase.OrderLineUseCase
	accounts   *usecase.AccountUseCase
	userA      string
	userB      string
}

func newEnv(t *testing.T, numbers *ordernum.Generator) *testEnv {
	t.Helper()
	store, err := gormstore.Open(gormstore.Config{Dialect: gormstore.DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repos := store.Repos()
	pub := events.NewNoopPublisher(nil)
	log := logger.Nop()
	env := &testEnv{
		store:      store,
		companies:  usecase.NewCompanyUseCase(repos, store, pub, log),
		clients:    usecase.NewClientUseCase(repos, store, pub, log),
		products:   usecase.NewProductUseCase(repos, store, pub, log),
		orders:     usecase.NewOrderUseCase(repos, store, pub, numbers, pdf.NewMarotoPDFGenerator(), xmlexport.NewEtreeExporter(), log),
		orderLines: usecase.NewOrderLineUseCase(repos, store, pub, log),
		accounts:   usecase.NewAccountUseCase(repos, store, pub, log),
	}
	env.userA = env.addUser(t, "Usuario A")
	env.userB = env.addUser(t, "Usuario B")
	return env
}

func (e *testEnv) addUser(t *testing.T, name string) string {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{ID: uuid.NewString(), Name: name, Email: uuid.NewString() + "@test.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.store.Repos().Users.Create(context.Background(), u))
	return u.ID
}

// tenant empresa con un cliente, un producto y un pedido con una línea.
type tenant struct {
	company *dto.CompanyResponse
	client  *dto.ClientResponse
	product *dto.ProductResponse
	order   *dto.OrderResponse
	line    *dto.OrderLineResponse
}

func (e *testEnv) seedTenant(t *testing.T, userID string) tenant {
	t.Helper()
	ctx := context.Background()

	c, err := e.companies.Create(ctx, userID, dto.CreateCompanyRequest{TradeName: "Gás Bom", LegalName: "Gás Bom LTDA", CNPJ: validCNPJ})
	require.NoError(t, err)
	cl, err := e.clients.Create(ctx, userID, dto.CreateClientRequest{Name: "Maria", Email: "maria@test.com", CompanyID: c.ID})
	require.NoError(t, err)
	price := decimal.RequireFromString("110.50")
	p, err := e.products.Create(ctx, userID, dto.CreateProductRequest{Name: "P13", Price: &price, CompanyID: c.ID})
	require.NoError(t, err)
	o, err := e.orders.Create(ctx, userID, dto.CreateOrderRequest{ClientID: cl.ID, CompanyID: c.ID})
	require.NoError(t, err)
	l, err := e.orderLines.Create(ctx, userID, dto.CreateOrderLineRequest{OrderID: o.ID, ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	return tenant{company: c, client: cl, product: p, order: o, line: l}
}

func strPtr(s string) *string { return &s }
