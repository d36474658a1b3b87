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

	// build dependency + routes
	router, infra, err := app.BuildApp(cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer infra.Close()

	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	if err := bootstrap.StartHTTPServer(
		router,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  cfg.App.ReadTimeout,
			WriteTimeout: cfg.App.WriteTimeout,
			IdleTimeout:  cfg.App.IdleTimeout,
		},
		auditLogger,
	); err != nil {
		logger.Error("http server stopped with error", zap.Error(err))
	}
}
