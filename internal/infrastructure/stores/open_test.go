package stores

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendergas-api/pkg/config"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")}}
	s, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Ping(context.Background()))
	assert.NotNil(t, s.Repos().Orders)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DB: config.DBConfig{Driver: "mongo"}}, logger.Nop())
	assert.ErrorContains(t, err, "mongo")
}
