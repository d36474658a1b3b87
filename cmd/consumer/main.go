package main

import (
	"team-pulse/internal/app"
	"team-pulse/internal/bootstrap"
	"team-pulse/internal/config"
	"team-pulse/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := apperror.Init(); err != nil {
		logger.Fatal("init request validation failed", zap.Error(err))
	}

	if err := app.RunConsumer(cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
