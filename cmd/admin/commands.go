package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"agentpacks-registry/config"
	pgConfig "agentpacks-registry/config/postgre"
	"agentpacks-registry/internal/auth"
	authUC "agentpacks-registry/internal/auth/usecase"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/storage/postgre"
	"agentpacks-registry/pkg/log"
)

var errNeedsPostgres = errors.New("admin commands need storage.driver=postgres; the memory store does not outlive a process")

// admin carries what every subcommand resolves lazily, so --help and flag errors never touch the database.
type admin struct {
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &admin{out: out}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operate an agent packs registry",
		Long:          "admin runs maintenance tasks against the registry's PostgreSQL database.\nConfiguration is read the same way as the API server (config.yaml and env).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(a.migrateCmd(), a.tokenCmd(), a.ratingsCmd())
	return root
}

func (a *admin) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, _, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pgConfig.Disconnect(pool)

			names, err := pgConfig.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintf(a.out, "applied %s\n", n)
			}
			return nil
		},
	}
}

func (a *admin) tokenCmd() *cobra.Command {
	token := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	var user, scope string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token; the raw value is printed once and only its hash is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, store, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pgConfig.Disconnect(pool)

			out, err := authUC.New(log.NewNop(), store, authUC.Config{}).Issue(ctx, auth.IssueInput{Username: user, Scope: scope})
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintf(a.out, "user:  %s\nscope: %s\ntoken: %s\n", out.Username, out.Scope, out.Token)
			return nil
		},
	}
	issue.Flags().StringVar(&user, "user", "", "username that owns the token")
	issue.Flags().StringVar(&scope, "scope", model.ScopePublish, "token scope")
	_ = issue.MarkFlagRequired("user")

	token.AddCommand(issue)
	return token
}

func (a *admin) ratingsCmd() *cobra.Command {
	ratings := &cobra.Command{
		Use:   "ratings",
		Short: "Maintain cached pack ratings",
	}

	var pack string
	recompute := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild a pack's cached average rating and review count from its reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, store, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pgConfig.Disconnect(pool)

			p, err := store.RecomputeRatingCache(ctx, pack)
			if err != nil {
				return fmt.Errorf("recompute %s: %w", pack, err)
			}
			if !p.Exists() {
				return fmt.Errorf("pack %q not found", pack)
			}
			fmt.Fprintf(a.out, "%s: %s (%d reviews)\n", p.Name, formatRating(p.AverageRating), p.ReviewCount)
			return nil
		},
	}
	recompute.Flags().StringVar(&pack, "pack", "", "pack name")
	_ = recompute.MarkFlagRequired("pack")

	ratings.AddCommand(recompute)
	return ratings
}

func (a *admin) connect(ctx context.Context) (*pgxpool.Pool, *postgre.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		return nil, nil, errNeedsPostgres
	}

	pool, err := pgConfig.Connect(ctx, pgConfig.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return nil, nil, err
	}
	l := log.Init(log.ZapConfig{Level: cfg.Logger.Level, Mode: cfg.Logger.Mode, Encoding: cfg.Logger.Encoding})
	return pool, postgre.New(pool, l), nil
}

// formatRating renders the fixed-point cache (x10) as a decimal.
func formatRating(avg *int) string {
	if avg == nil {
		return "no rating"
	}
	return fmt.Sprintf("%d.%d", *avg/10, *avg%10)
}
