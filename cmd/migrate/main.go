package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/persistence"
)

type migrateContext struct {
	migrator *persistence.Migrator
	logger   *zap.Logger
}

type cli struct {
	Up      upCmd      `cmd:"" help:"Apply all pending migrations."`
	Down    downCmd    `cmd:"" help:"Roll back applied migrations."`
	Version versionCmd `cmd:"" help:"Print the applied schema version."`
}

type upCmd struct{}

func (upCmd) Run(ctx *migrateContext) error {
	if err := ctx.migrator.Up(); err != nil {
		return err
	}
	ctx.logger.Info("migrations applied")
	return nil
}

type downCmd struct {
	Steps int `help:"Number of migrations to roll back." default:"1"`
}

func (d downCmd) Run(ctx *migrateContext) error {
	if err := ctx.migrator.Down(d.Steps); err != nil {
		return err
	}
	ctx.logger.Info("migrations rolled back", zap.Int("steps", d.Steps))
	return nil
}

type versionCmd struct{}

func (versionCmd) Run(ctx *migrateContext) error {
	version, dirty, err := ctx.migrator.Version()
	if err != nil {
		return err
	}
	fmt.Printf("version=%d dirty=%t\n", version, dirty)
	return nil
}

func main() {
	var commands cli
	kctx := kong.Parse(&commands,
		kong.Name("migrate"),
		kong.Description("Manage the job board database schema."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Postgres.DSN == "" {
		fmt.Fprintln(os.Stderr, "POSTGRES_DSN is required")
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(context.Background(), cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	migrator, err := persistence.NewMigrator(pg.PoolHandle(), logger)
	if err != nil {
		logger.Fatal("failed to init migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := kctx.Run(&migrateContext{migrator: migrator, logger: logger}); err != nil {
		logger.Error("migration command failed", zap.Error(err))
		os.Exit(1)
	}
}
