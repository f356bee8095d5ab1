package main

import (
	"context"
	"fmt"
	"os"

	"deposito/internal/adapters/cli"
	"deposito/internal/adapters/repl"
	"deposito/internal/app"
	"deposito/internal/config"
	"deposito/internal/db"
	"deposito/internal/logger"
	"deposito/internal/project"

	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read the working directory: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load(workDir)
	log := logger.New(os.Stderr, cfg.Logger.Level, cfg.Logger.Format)
	args := os.Args[1:]

	opts := cli.Options{
		NoColor: cfg.Output.NoColor,
		Init: func() (string, error) {
			return initProject(ctx, cfg, workDir, log)
		},
	}

	if !cli.RequiresProject(args) {
		exit(cli.New(nil, os.Stdout, opts).Run(ctx, args))
	}

	if err := project.Require(workDir, cfg.Project.DirName); err != nil {
		exit(err)
	}

	store, err := openStore(ctx, cfg, workDir)
	if err != nil {
		log.Error().Err(err).Msg("unable to open the store")
		exit(err)
	}

	svc := app.NewAppService(store, log, cfg.Project.DefaultWarehouse)
	var c *cli.CLI
	opts.Shell = func(ctx context.Context) error {
		return repl.Run(ctx, c, os.Stdin, os.Stdout)
	}
	c = cli.New(svc, os.Stdout, opts)

	err = c.Run(ctx, args)
	store.Close()
	exit(err)
}

// openStore connects to the configured backend and brings the schema up to date.
func openStore(ctx context.Context, cfg *config.Config, workDir string) (*db.Store, error) {
	store, err := db.Open(ctx, db.Config{
		URL:             cfg.Database.URL,
		Path:            cfg.DatabasePath(workDir),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, store); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func initProject(ctx context.Context, cfg *config.Config, workDir string, log zerolog.Logger) (string, error) {
	path, err := project.Init(workDir, cfg.Project.DirName)
	if err != nil {
		return "", err
	}
	store, err := openStore(ctx, cfg, workDir)
	if err != nil {
		return "", fmt.Errorf("project created but the store could not be prepared: %w", err)
	}
	defer store.Close()

	log.Info().Str("path", path).Str("dialect", string(store.Dialect)).Msg("project initialized")
	return path, nil
}

func exit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
