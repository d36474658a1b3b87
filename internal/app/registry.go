package app

import (
	"team-pulse/internal/auth"
	"team-pulse/internal/config"
	"team-pulse/internal/leave"
	"team-pulse/internal/messaging/kafka"
	"team-pulse/internal/middleware"
	"team-pulse/internal/notification"
	"team-pulse/internal/rbac"
	"team-pulse/internal/team"
	"team-pulse/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	infra *Infra,
	logger *zap.Logger,
) error {
	db, gormDB, rdb := infra.SQLDB, infra.GormDB, infra.Redis

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	authService := auth.NewService(db, authRepo, userRepo, auth.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
	}, logger)
	userService := user.NewService(userRepo, logger)
	teamService := team.NewService(teamRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, userRepo, outboxRepo, rdb, logger)
	notificationService := notification.NewService(notificationRepo, userRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), cfg.JWT.TTL, logger)
	userHandler := user.NewHandler(userService, logger)
	teamHandler := team.NewHandler(teamService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Middleware ---
	authMW := middleware.AuthMiddleware(cfg.JWT.Secret)
	loginLimit := middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.LoginPerSecond), cfg.RateLimit.LoginBurst)
	userLimit := middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.UserPerSecond), cfg.RateLimit.UserBurst)
	idempotency := middleware.Idempotency(rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW, loginLimit, userLimit)
		user.RegisterRoutes(api, userHandler, authMW, userLimit, rbacService)
		team.RegisterRoutes(api, teamHandler, authMW, rbacService)
		leave.RegisterRoutes(api, leaveHandler, authMW, userLimit, idempotency, rbacService)
		notification.RegisterRoutes(api, notificationHandler, authMW, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
	}

	return nil
}
