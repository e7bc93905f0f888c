// Package postgres implementa los puertos de persistencia sobre pgx (PostgreSQL).
package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
)

//go:embed schema.sql
var schema string

var _ ports.TxRunner = (*Store)(nil)

// Store agrupa el pool y construye repositorios atados al pool o a una tx.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore envuelve un pool ya conectado. El Store toma posesión del pool (Close lo cierra).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate crea las tablas si no existen. Es idempotente.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}

// Repos devuelve los repositorios sobre el pool.
func (s *Store) Repos() ports.Repos {
	return reposFor(s.pool)
}

func reposFor(q Querier) ports.Repos {
	return ports.Repos{
		Users:      NewUserRepository(q),
		Companies:  NewCompanyRepository(q),
		Clients:    NewClientRepository(q),
		Products:   NewProductRepository(q),
		Orders:     NewOrderRepository(q),
		OrderLines: NewOrderLineRepository(q),
	}
}

// RunInTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(tx ports.Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
