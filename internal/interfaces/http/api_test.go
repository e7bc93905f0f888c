package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/internal/application/auth"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/events"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/vendergas-api/internal/interfaces/http"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre SQLite en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := gormstore.Open(gormstore.Config{Dialect: gormstore.DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := logger.Nop()
	pub := events.NewNoopPublisher(log)
	repos := store.Repos()
	return apphttp.NewApp(apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin}, pub, log),
		AccountUC:   usecase.NewAccountUseCase(repos, store, pub, log),
		CompanyUC:   usecase.NewCompanyUseCase(repos, store, pub, log),
		ClientUC:    usecase.NewClientUseCase(repos, store, pub, log),
		ProductUC:   usecase.NewProductUseCase(repos, store, pub, log),
		OrderUC:     usecase.NewOrderUseCase(repos, store, pub, nil, pdf.NewMarotoPDFGenerator(), xmlexport.NewEtreeExporter(), log),
		OrderLineUC: usecase.NewOrderLineUseCase(repos, store, pub, log),
		Store:       store,
		Log:         log,
		AppName:     "vendergas-test",
	})
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c apiClient) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	return resp
}

// decode lee el cuerpo y verifica el status esperado.
func decode[T any](t *testing.T, resp *http.Response, status int) T {
	t.Helper()
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	require.Equal(t, status, resp.StatusCode, string(raw))
	var out T
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return out
}

func errorCode(t *testing.T, resp *http.Response, status int) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp, status).Code
}

func registerAndLogin(t *testing.T, app *fiber.App, name string) apiClient {
	t.Helper()
	anon := apiClient{t: t, app: app}
	email := strings.ToLower(name) + "-" + uuid.NewString()[:8] + "@test.com"
	decode[dto.UserResponse](t, anon.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: name, Email: email, Password: "senha-segura"}), http.StatusCreated)
	login := decode[dto.LoginResponse](t, anon.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: "senha-segura"}), http.StatusOK)
	require.NotEmpty(t, login.Token)
	return apiClient{t: t, app: app, token: login.Token}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: dos tenants, el usuario B nunca ve los datos de A
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_DosTenants(t *testing.T) {
	app := buildTestApp(t)
	a := registerAndLogin(t, app, "Ana")
	b := registerAndLogin(t, app, "Bruno")

	company := decode[dto.CompanyResponse](t, a.do(http.MethodPost, "/api/v1/companies",
		dto.CreateCompanyRequest{TradeName: "Gás Bom", LegalName: "Gás Bom LTDA", CNPJ: "11222333000181"}), http.StatusCreated)
	assert.Equal(t, "11.222.333/0001-81", company.CNPJ)

	client := decode[dto.ClientResponse](t, a.do(http.MethodPost, "/api/v1/clients",
		dto.CreateClientRequest{Name: "Maria", Email: "maria@test.com", CompanyID: company.ID}), http.StatusCreated)
	product := decode[dto.ProductResponse](t, a.do(http.MethodPost, "/api/v1/products",
		map[string]any{"name": "P13", "price": "110.50", "companyId": company.ID}), http.StatusCreated)
	order := decode[dto.OrderResponse](t, a.do(http.MethodPost, "/api/v1/orders",
		dto.CreateOrderRequest{ClientID: client.ID, CompanyID: company.ID, Notes: "portão azul"}), http.StatusCreated)
	assert.Len(t, order.Number, 8)
	line := decode[dto.OrderLineResponse](t, a.do(http.MethodPost, "/api/v1/order-products",
		dto.CreateOrderLineRequest{OrderID: order.ID, ProductID: product.ID, Quantity: 2}), http.StatusCreated)

	got := decode[dto.OrderResponse](t, a.do(http.MethodGet, "/api/v1/orders/"+order.ID, nil), http.StatusOK)
	require.Len(t, got.OrderProducts, 1)
	assert.Equal(t, "Maria", got.Client.Name)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(221)), got.Total.String())

	// B no accede a nada de A
	assert.Equal(t, "FORBIDDEN", errorCode(t, b.do(http.MethodGet, "/api/v1/companies/"+company.ID, nil), http.StatusForbidden))
	assert.Equal(t, "FORBIDDEN", errorCode(t, b.do(http.MethodGet, "/api/v1/orders/"+order.ID, nil), http.StatusForbidden))
	assert.Equal(t, "FORBIDDEN", errorCode(t, b.do(http.MethodPut, "/api/v1/clients/"+client.ID, map[string]any{"name": "x"}), http.StatusForbidden))
	assert.Equal(t, "FORBIDDEN", errorCode(t, b.do(http.MethodDelete, "/api/v1/order-products/"+line.ID, nil), http.StatusForbidden))
	assert.Equal(t, "FORBIDDEN", errorCode(t, b.do(http.MethodGet, "/api/v1/orders/"+order.ID+"/pdf", nil), http.StatusForbidden))
	assert.Equal(t, "FORBIDDEN", errorCode(t, b.do(http.MethodPost, "/api/v1/clients",
		dto.CreateClientRequest{Name: "Intruso", CompanyID: company.ID}), http.StatusForbidden))

	bOrders := decode[dto.OrderListResponse](t, b.do(http.MethodGet, "/api/v1/orders?companyId="+company.ID, nil), http.StatusOK)
	assert.Empty(t, bOrders.Items)
	bProducts := decode[dto.ProductListResponse](t, b.do(http.MethodGet, "/api/v1/products/company/"+company.ID, nil), http.StatusOK)
	assert.Empty(t, bProducts.Items)
	aProducts := decode[dto.ProductListResponse](t, a.do(http.MethodGet, "/api/v1/products/company/"+company.ID, nil), http.StatusOK)
	assert.Len(t, aProducts.Items, 1)

	// id inexistente
	assert.Equal(t, "NOT_FOUND", errorCode(t, a.do(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil), http.StatusNotFound))
}

func TestAPI_ReglasDeNegocio(t *testing.T) {
	app := buildTestApp(t)
	a := registerAndLogin(t, app, "Ana")

	c1 := decode[dto.CompanyResponse](t, a.do(http.MethodPost, "/api/v1/companies",
		dto.CreateCompanyRequest{TradeName: "Um", LegalName: "Um LTDA", CNPJ: "11.222.333/0001-81"}), http.StatusCreated)
	c2 := decode[dto.CompanyResponse](t, a.do(http.MethodPost, "/api/v1/companies",
		dto.CreateCompanyRequest{TradeName: "Dois", LegalName: "Dois LTDA", CNPJ: "11.222.333/0001-81"}), http.StatusCreated)
	client := decode[dto.ClientResponse](t, a.do(http.MethodPost, "/api/v1/clients",
		dto.CreateClientRequest{Name: "Maria", CompanyID: c1.ID}), http.StatusCreated)

	// cliente de otra empresa
	assert.Equal(t, "VALIDATION", errorCode(t, a.do(http.MethodPost, "/api/v1/orders",
		dto.CreateOrderRequest{ClientID: client.ID, CompanyID: c2.ID}), http.StatusBadRequest))
	list := decode[dto.OrderListResponse](t, a.do(http.MethodGet, "/api/v1/orders", nil), http.StatusOK)
	assert.Empty(t, list.Items)

	// GET /clients exige companyId
	assert.Equal(t, "VALIDATION", errorCode(t, a.do(http.MethodGet, "/api/v1/clients", nil), http.StatusBadRequest))

	// CNPJ inválido y cuerpo roto
	assert.Equal(t, "VALIDATION", errorCode(t, a.do(http.MethodPost, "/api/v1/companies",
		dto.CreateCompanyRequest{TradeName: "X", LegalName: "X", CNPJ: "123"}), http.StatusBadRequest))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp, http.StatusBadRequest))

	// empresa con dependientes
	assert.Equal(t, "HAS_DEPENDENTS", errorCode(t, a.do(http.MethodDelete, "/api/v1/companies/"+c1.ID, nil), http.StatusConflict))
	// cuenta con empresas
	assert.Equal(t, "CONFLICT", errorCode(t, a.do(http.MethodDelete, "/api/v1/users/me", nil), http.StatusConflict))

	resp = a.do(http.MethodDelete, "/api/v1/companies/"+c2.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_CascadaYDocumentos(t *testing.T) {
	app := buildTestApp(t)
	a := registerAndLogin(t, app, "Ana")

	company := decode[dto.CompanyResponse](t, a.do(http.MethodPost, "/api/v1/companies",
		dto.CreateCompanyRequest{TradeName: "Gás Bom", LegalName: "Gás Bom LTDA", CNPJ: "11222333000181"}), http.StatusCreated)
	client := decode[dto.ClientResponse](t, a.do(http.MethodPost, "/api/v1/clients",
		dto.CreateClientRequest{Name: "Maria", CompanyID: company.ID}), http.StatusCreated)
	product := decode[dto.ProductResponse](t, a.do(http.MethodPost, "/api/v1/products",
		map[string]any{"name": "P13", "price": 110.5, "companyId": company.ID}), http.StatusCreated)
	order := decode[dto.OrderResponse](t, a.do(http.MethodPost, "/api/v1/orders",
		dto.CreateOrderRequest{ClientID: client.ID, CompanyID: company.ID}), http.StatusCreated)
	for i := 1; i <= 2; i++ {
		decode[dto.OrderLineResponse](t, a.do(http.MethodPost, "/api/v1/order-products",
			dto.CreateOrderLineRequest{OrderID: order.ID, ProductID: product.ID, Quantity: i}), http.StatusCreated)
	}

	resp := a.do(http.MethodGet, "/api/v1/orders/"+order.ID+"/pdf", nil)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = a.do(http.MethodGet, "/api/v1/orders/"+order.ID+"/xml", nil)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), order.Number)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pedido-"+order.Number+".xml")

	resp = a.do(http.MethodDelete, "/api/v1/orders/"+order.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	lines := decode[dto.OrderLineListResponse](t, a.do(http.MethodGet, "/api/v1/order-products?orderId="+order.ID, nil), http.StatusOK)
	assert.Empty(t, lines.Items)
}

func TestAPI_SesionYCookie(t *testing.T) {
	app := buildTestApp(t)
	anon := apiClient{t: t, app: app}

	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, anon.do(http.MethodGet, "/api/v1/companies", nil), http.StatusUnauthorized))

	decode[dto.UserResponse](t, anon.do(http.MethodPost, "/api/auth/register",
		dto.RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: "senha-segura"}), http.StatusCreated)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, anon.do(http.MethodPost, "/api/auth/register",
		dto.RegisterRequest{Name: "Ana", Email: "ANA@test.com", Password: "senha-segura"}), http.StatusConflict))
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, anon.do(http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: "ana@test.com", Password: "errada"}), http.StatusUnauthorized))

	resp := anon.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@test.com", Password: "senha-segura"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.SessionCookie {
			session = ck
		}
	}
	require.NotNil(t, session, "login debe emitir la cookie de sesión")
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: session.Value})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	me := decode[dto.UserResponse](t, resp, http.StatusOK)
	assert.Equal(t, "ana@test.com", me.Email)

	resp = anon.do(http.MethodPost, "/api/auth/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	health := decode[map[string]string](t, anon.do(http.MethodGet, "/health", nil), http.StatusOK)
	assert.Equal(t, "ok", health["status"])
}

func TestAPI_SinSesion_TodasLasRutasRetornan401(t *testing.T) {
	app := buildTestApp(t)
	id := uuid.NewString()

	type route struct{ method, path string }
	routes := []route{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/v1/users/me"},
		{http.MethodDelete, "/api/v1/users/me"},
	}
	for _, seg := range []string{"companies", "clients", "products", "orders", "order-products"} {
		routes = append(routes,
			route{http.MethodGet, "/api/v1/" + seg},
			route{http.MethodPost, "/api/v1/" + seg},
			route{http.MethodGet, "/api/v1/" + seg + "/" + id},
			route{http.MethodPut, "/api/v1/" + seg + "/" + id},
			route{http.MethodDelete, "/api/v1/" + seg + "/" + id},
		)
	}
	routes = append(routes,
		route{http.MethodGet, "/api/v1/products/company/" + id},
		route{http.MethodGet, "/api/v1/orders/" + id + "/pdf"},
		route{http.MethodGet, "/api/v1/orders/" + id + "/xml"},
	)

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			var body any
			if r.method == http.MethodPost || r.method == http.MethodPut {
				body = map[string]any{}
			}
			resp := apiClient{t: t, app: app}.do(r.method, r.path, body)
			assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp, http.StatusUnauthorized))
		})
	}
}

func TestAPI_EmailDeDominioNoResoluble(t *testing.T) {
	app := buildTestApp(t)
	anon := apiClient{t: t, app: app}

	decode[dto.UserResponse](t, anon.do(http.MethodPost, "/api/auth/register",
		dto.RegisterRequest{Name: "Ana", Email: "ana@distribuidora-interna.invalid", Password: "senha-segura"}), http.StatusCreated)
}
