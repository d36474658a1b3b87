package main

import (
	"context"
	"fmt"
	"os"

	"team-pulse/internal/app"
	"team-pulse/internal/bootstrap"
	"team-pulse/internal/config"
	"team-pulse/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := bootstrap.NewLogger(cfg.App.Env)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var infra *app.Infra
	defer func() {
		if infra != nil {
			infra.Close()
		}
	}()

	root := seed.NewRootCmd(func() (seed.Runner, error) {
		var err error
		infra, err = app.ConnectInfra(cfg, false)
		if err != nil {
			return nil, err
		}
		return seed.NewRunner(infra.GormDB, logger), nil
	})
	return root.ExecuteContext(context.Background())
}
