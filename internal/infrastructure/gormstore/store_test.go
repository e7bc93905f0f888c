package gormstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/internal/domain/repository"
)

// setupTestStore abre una base SQLite en memoria para cada test.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Dialect: DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fixture struct {
	user    *entity.User
	company *entity.Company
	client  *entity.Client
	product *entity.Product
	order   *entity.Order
}

func seed(t *testing.T, repos ports.Repos, number string) fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	u := &entity.User{ID: uuid.NewString(), Name: "Ana", Email: uuid.NewString() + "@test.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Users.Create(ctx, u))
	c := &entity.Company{ID: uuid.NewString(), TradeName: "Gás Bom", LegalName: "Gás Bom LTDA", CNPJ: "11.222.333/0001-81", OwnerUserID: u.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Companies.Create(ctx, c))
	cl := &entity.Client{ID: uuid.NewString(), CompanyID: c.ID, Name: "Maria", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Clients.Create(ctx, cl))
	p := &entity.Product{ID: uuid.NewString(), CompanyID: c.ID, Name: "P13", Price: decimal.RequireFromString("110.50"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Products.Create(ctx, p))
	o := &entity.Order{ID: uuid.NewString(), Number: number, Date: now, ClientID: cl.ID, CompanyID: c.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Orders.Create(ctx, o))
	return fixture{user: u, company: c, client: cl, product: p, order: o}
}

func TestGetByID_AbsentReturnsNil(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	c, err := s.Repos().Companies.GetByID(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, c)

	u, err := s.Repos().Users.GetByEmail(ctx, "nadie@test.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestProductPriceRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	f := seed(t, s.Repos(), "10000001")

	got, err := s.Repos().Products.GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("110.5")), got.Price.String())
}

func TestListByOwner_ScopesToOwner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	repos := s.Repos()
	a := seed(t, repos, "10000001")
	b := seed(t, repos, "10000002")

	companies, err := repos.Companies.ListByOwner(ctx, a.user.ID, repository.Page{})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, a.company.ID, companies[0].ID)

	// el filtro sobre una empresa ajena no amplía el resultado
	clients, err := repos.Clients.ListByOwner(ctx, a.user.ID, repository.ClientFilter{CompanyID: b.company.ID}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, clients)

	orders, err := repos.Orders.ListByOwner(ctx, a.user.ID, repository.OrderFilter{ClientID: a.client.ID}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "10000001", orders[0].Number)

	products, err := repos.Products.ListByOwner(ctx, b.user.ID, repository.ProductFilter{}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, b.product.ID, products[0].ID)
}

func TestOrderNumberUnique(t *testing.T) {
	s := setupTestStore(t)
	f := seed(t, s.Repos(), "12345678")
	ctx := context.Background()

	exists, err := s.Repos().Orders.ExistsByNumber(ctx, "12345678")
	require.NoError(t, err)
	assert.True(t, exists)

	now := time.Now().UTC()
	dup := &entity.Order{ID: uuid.NewString(), Number: "12345678", Date: now, ClientID: f.client.ID, CompanyID: f.company.ID, CreatedAt: now, UpdatedAt: now}
	err = s.Repos().Orders.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCountDependentsAndRestrict(t *testing.T) {
	s := setupTestStore(t)
	f := seed(t, s.Repos(), "10000001")
	ctx := context.Background()

	n, err := s.Repos().Companies.CountDependents(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.Repos().Companies.CountByOwner(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	err = s.Repos().Companies.Delete(ctx, f.company.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
}

func TestForeignKeyRestrict_TraduceAHasDependents(t *testing.T) {
	s := setupTestStore(t)
	f := seed(t, s.Repos(), "10000001")
	ctx := context.Background()
	now := time.Now().UTC()

	err := s.Repos().Clients.Delete(ctx, f.client.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents)

	err = s.Repos().Products.Delete(ctx, f.product.ID)
	require.NoError(t, err)

	l := &entity.OrderLine{ID: uuid.NewString(), OrderID: uuid.NewString(), ProductID: uuid.NewString(), Quantity: 1, CreatedAt: now, UpdatedAt: now}
	err = s.Repos().OrderLines.Create(ctx, l)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
}

func TestIsSQLiteForeignKey(t *testing.T) {
	assert.True(t, isSQLiteForeignKey(fmt.Errorf("envuelto: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})))
	assert.False(t, isSQLiteForeignKey(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isSQLiteForeignKey(errors.New("otro")))
}

func TestUpdateMissingRow(t *testing.T) {
	s := setupTestStore(t)
	err := s.Repos().Clients.Update(context.Background(), &entity.Client{ID: uuid.NewString(), Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunInTx_CascadeAndRollback(t *testing.T) {
	s := setupTestStore(t)
	f := seed(t, s.Repos(), "10000001")
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		l := &entity.OrderLine{ID: uuid.NewString(), OrderID: f.order.ID, ProductID: f.product.ID, Quantity: i + 1, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, s.Repos().OrderLines.Create(ctx, l))
	}

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(tx ports.Repos) error {
		if _, err := tx.OrderLines.DeleteByOrder(ctx, f.order.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	lines, err := s.Repos().OrderLines.ListByOrder(ctx, f.order.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2, "rollback debe conservar las líneas")

	err = s.RunInTx(ctx, func(tx ports.Repos) error {
		n, err := tx.OrderLines.DeleteByOrder(ctx, f.order.ID)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 2, n)
		return tx.Orders.Delete(ctx, f.order.ID)
	})
	require.NoError(t, err)

	o, err := s.Repos().Orders.GetByID(ctx, f.order.ID)
	require.NoError(t, err)
	assert.Nil(t, o)
	remaining, err := s.Repos().OrderLines.ListByOwner(ctx, f.user.ID, repository.OrderLineFilter{OrderID: f.order.ID}, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
