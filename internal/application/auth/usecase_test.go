package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/internal/application/auth"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/events"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store, err := gormstore.Open(gormstore.Config{Dialect: gormstore.DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	cfg := auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "vendergas-test"}
	return auth.NewAuthUseCase(store.Repos().Users, cfg, events.NewNoopPublisher(nil), logger.Nop())
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: " Ana@Test.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", u.Email)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@test.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, u.ID, res.User.ID)

	uid, err := uc.ResolveSession(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	me, err := uc.Me(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Otra", Email: "ANA@test.com", Password: "password456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "", Email: "no-es-email", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@test.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@test.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResolveSession_SinToken(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.ResolveSession("")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = uc.ResolveSession("token.invalido.aqui")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Me(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRegister_DominioSinDNS(t *testing.T) {
	uc := newAuth(t)

	u, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@distribuidora-interna.invalid", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@distribuidora-interna.invalid", u.Email)
}
