// Package gormstore implementa los puertos de persistencia sobre GORM (PostgreSQL o SQLite).
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
)

// Dialectos soportados.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Config conexión del almacén GORM.
type Config struct {
	Dialect string
	DSN     string
	// Debug activa el log SQL de GORM.
	Debug bool
}

var _ ports.TxRunner = (*Store)(nil)

// Store mantiene el *gorm.DB compartido por todos los repositorios.
type Store struct {
	db *gorm.DB
}

// Open abre la conexión y aplica AutoMigrate. En SQLite se usa una sola conexión
// y se activan las claves foráneas.
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DialectSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("gormstore: dialecto no soportado %q", cfg.Dialect)
	}

	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: conectar: %w", err)
	}

	if cfg.Dialect == DialectSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("gormstore: foreign_keys: %w", err)
		}
	}

	if err := db.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("gormstore: migrar: %w", err)
	}
	return &Store{db: db}, nil
}

// Repos devuelve los repositorios atados a la conexión principal.
func (s *Store) Repos() ports.Repos {
	return reposFor(s.db)
}

func reposFor(db *gorm.DB) ports.Repos {
	return ports.Repos{
		Users:      &UserRepo{db: db},
		Companies:  &CompanyRepo{db: db},
		Clients:    &ClientRepo{db: db},
		Products:   &ProductRepo{db: db},
		Orders:     &OrderRepo{db: db},
		OrderLines: &OrderLineRepo{db: db},
	}
}

// RunInTx ejecuta fn con repositorios atados a una transacción GORM.
func (s *Store) RunInTx(ctx context.Context, fn func(tx ports.Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// Ping comprueba la conexión (health).
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close cierra el pool subyacente.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isSQLiteForeignKey(err):
		return fmt.Errorf("%w: %v", domain.ErrHasDependents, err)
	default:
		return err
	}
}

// isSQLiteForeignKey detecta SQLITE_CONSTRAINT_FOREIGNKEY (787); TranslateError del driver
// sqlite solo traduce las violaciones de unicidad.
func isSQLiteForeignKey(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
