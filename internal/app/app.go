package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"team-pulse/internal/config"
	"team-pulse/internal/middleware"
	"team-pulse/internal/shared/connection"
	"team-pulse/internal/shared/database"
	"team-pulse/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the shared connections of a process.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

// ConnectInfra opens Postgres (running migrations when enabled) and, when
// withRedis is set, Redis.
func ConnectInfra(cfg *config.Config, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.Migrate {
		if err := database.Migrate(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}
	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	}
	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// BuildApp wires the HTTP router. The returned Infra must be closed by the
// caller once the server has stopped.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, *Infra, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	infra, err := ConnectInfra(cfg, true)
	if err != nil {
		return nil, nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.ContextLogger(logger))
	router.GET("/health", healthHandler(infra))

	if err := registerModules(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, nil, err
	}

	logger.Info("application built", zap.String("env", cfg.App.Env))
	return router, infra, nil
}

func healthHandler(infra *Infra) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "up", "redis": "up"}
		code := http.StatusOK
		if err := infra.SQLDB.PingContext(ctx); err != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := infra.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, status, nil)
	}
}
