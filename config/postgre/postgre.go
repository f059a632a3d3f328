package postgre

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Config for the connection pool.
type Config struct {
	DSN      string
	MaxConns int32
}

// Connect opens a pool and checks it with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgre.Connect parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgre.Connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgre.Connect ping: %w", err)
	}
	return pool, nil
}

// Disconnect closes the pool. Safe on nil.
func Disconnect(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

// Migrate applies every embedded migration in file-name order. Statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	names, err := MigrationNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		body, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("postgre.Migrate read %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return nil, fmt.Errorf("postgre.Migrate exec %s: %w", name, err)
		}
	}
	return names, nil
}

// MigrationNames lists the embedded migrations in apply order.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("postgre.MigrationNames: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
