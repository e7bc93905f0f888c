package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/internal/application/auth"
	apphttp "github.com/jhoicas/vendergas-api/internal/interfaces/http"
	"github.com/jhoicas/vendergas-api/pkg/logger"
	pkgjwt "github.com/jhoicas/vendergas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "vendergas-test"
	testExpMin    = 60
)

// buildMiddlewareApp construye una aplicación Fiber mínima con AuthMiddleware y un
// handler dummy que devuelve el user_id si pasa el middleware.
func buildMiddlewareApp() *fiber.App {
	sessions := auth.NewAuthUseCase(nil, auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin}, nil, logger.Nop())
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(sessions), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doProtected(t *testing.T, app *fiber.App, mutate func(r *http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerValido_CargaUserID(t *testing.T) {
	app := buildMiddlewareApp()
	tok := validToken(t)
	resp := doProtected(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

func TestAuthMiddleware_CookieDeSesion_CargaUserID(t *testing.T) {
	app := buildMiddlewareApp()
	tok := validToken(t)
	resp := doProtected(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: tok})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinCredencial_Retorna401(t *testing.T) {
	app := buildMiddlewareApp()
	resp := doProtected(t, app, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHENTICATED")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildMiddlewareApp()
	tok := validToken(t)
	resp := doProtected(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Token "+tok) })
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildMiddlewareApp()
	resp := doProtected(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Bearer token.invalido.aqui") })
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildMiddlewareApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)
	resp := doProtected(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token expirado debe retornar 401")
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildMiddlewareApp()
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doProtected(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) })
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
