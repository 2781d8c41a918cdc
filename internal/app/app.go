package app

import (
	"context"

	"go-school/internal/bootstrap"
	"go-school/internal/shared/config"
	"go-school/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates the schema and registers the HTTP
// modules on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config, audit bootstrap.AuditLogger) (func(), error) {
	logger := zap.L().Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := Migrate(context.Background(), gormDB, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("schema migrated")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, audit, zap.L()); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}
	return cleanup, nil
}
