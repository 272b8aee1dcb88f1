package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/yanqian/mindmend/internal/infra/migrations"
)

var migrateTimeout time.Duration

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded Postgres schema",
	Long: `Creates the users, user_identities, profiles and logs tables when they
do not exist yet. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 30*time.Second, "overall migration timeout")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		return errors.New("POSTGRES_DSN is not set")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	applied, err := migrations.Apply(ctx, pool)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info("schema applied", "statements", applied)
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d statements\n", applied)
	return nil
}
