package postgre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"agentpacks-registry/pkg/log"
)

// Store implements every repository interface on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	l    log.Logger
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// New creates a PostgreSQL-backed Store.
func New(pool *pgxpool.Pool, l log.Logger) *Store {
	if pool == nil {
		panic("storage/postgre: pool is required")
	}
	return &Store{pool: pool, l: l}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// dsn is a helper to return a method-scoped context string for logging.
func (s *Store) dsn(method string) string {
	return fmt.Sprintf("storage/postgre.%s", method)
}

// nullableJSON sends an empty document as NULL.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
