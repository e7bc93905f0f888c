// Package stores elige la implementación de persistencia según la configuración.
package stores

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vendergas-api/pkg/config"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// Store lo implementan postgres.Store y gormstore.Store.
type Store interface {
	ports.TxRunner
	Repos() ports.Repos
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*postgres.Store)(nil)
	_ Store = (*gormstore.Store)(nil)
)

// Open conecta y migra el esquema: pgx (por defecto), gorm sobre PostgreSQL o SQLite embebido.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (Store, error) {
	switch cfg.DB.Driver {
	case config.DriverPgx:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		s := postgres.NewStore(pool)
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case config.DriverGorm:
		return openGorm(gormstore.DialectPostgres, cfg.DB.ConnectionString(), cfg.App.IsDevelopment())
	case config.DriverSQLite:
		return openGorm(gormstore.DialectSQLite, cfg.DB.SQLitePath, cfg.App.IsDevelopment())
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.DB.Driver)
	}
}

func openGorm(dialect, dsn string, debug bool) (Store, error) {
	s, err := gormstore.Open(gormstore.Config{Dialect: dialect, DSN: dsn, Debug: debug})
	if err != nil {
		return nil, err
	}
	return s, nil
}
