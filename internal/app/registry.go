package app

import (
	"context"
	"database/sql"

	"go-school/internal/balance"
	"go-school/internal/bootstrap"
	"go-school/internal/leave"
	"go-school/internal/messaging/kafka"
	"go-school/internal/middleware"
	"go-school/internal/processing"
	"go-school/internal/quota"
	"go-school/internal/rbac"
	"go-school/internal/rbac/infra"
	"go-school/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// ledger is the storage core shared by the API, the worker and the consumer.
type ledger struct {
	quotas   quota.Service
	balances balance.Service
	leaves   leave.Repository
	engine   processing.Engine
}

func newLedger(cfg config.Config, db *sql.DB, gormDB *gorm.DB, rdb *redis.Client, logger *zap.Logger) ledger {
	quotaService := quota.NewService(quota.NewRepository(gormDB), rdb, logger)
	balanceService := balance.NewService(db, balance.NewRepository(gormDB), quotaService, rdb,
		balance.WithCacheTTL(cfg.Leave.ApplicantCacheTTL, cfg.Leave.ResetCheckMarkerTTL),
		balance.WithLogger(logger),
	)
	leaveRepo := leave.NewRepository(gormDB)

	return ledger{
		quotas:   quotaService,
		balances: balanceService,
		leaves:   leaveRepo,
		engine:   processing.NewEngine(db, leaveRepo, balanceService, logger),
	}
}

func newRBACService(cfg config.Config, logger *zap.Logger) (rbac.Service, error) {
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer, logger)
	if err := rbacService.LoadPolicy(rbac.DefaultPolicies, rbac.DefaultGroupings); err != nil {
		return nil, err
	}
	return rbacService, nil
}

// auditedRoutes are the admin writes that leave an audit entry.
var auditedRoutes = map[string]string{
	"PUT /api/v1/quotas/:role":           "QUOTA_UPDATED",
	"PUT /api/v1/balances/:applicant_id": "BALANCE_SET",
	"POST /api/v1/leaves/:id/approve":    "LEAVE_APPROVED",
	"POST /api/v1/leaves/:id/reject":     "LEAVE_REJECTED",
	"POST /api/v1/leaves/:id/process":    "LEAVE_PROCESS_TRIGGERED",
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) error {
	core := newLedger(cfg, db, gormDB, rdb, logger)

	rbacService, err := newRBACService(cfg, logger)
	if err != nil {
		return err
	}

	leaveService := leave.NewService(db, core.leaves, core.balances, kafka.NewOutboxRepository(db),
		leave.LookbackDays(cfg.Leave.ListLookbackDays, cfg.Leave.PendingLookbackDays),
		logger,
	)

	quotaHandler := quota.NewHandler(core.quotas, logger)
	balanceHandler := balance.NewHandler(core.balances, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	processingHandler := processing.NewHandler(core.engine, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.AuditTrail(audit, auditedRoutes),
	)

	api := router.Group("/api/v1")
	{
		quota.RegisterRoutes(api, quotaHandler, rbacService, cfg.JWTSecret)
		balance.RegisterRoutes(api, balanceHandler, rbacService, cfg.JWTSecret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, leave.RouteOptions{
			JWTSecret: cfg.JWTSecret,
			Submit: []gin.HandlerFunc{
				middleware.RateLimitByUser(rate.Limit(cfg.Leave.SubmitRateLimitPerSec), cfg.Leave.SubmitRateLimitBurst),
				middleware.Idempotency(rdb, cfg.IdempotencyTTL, logger),
			},
		})
		processing.RegisterRoutes(api, processingHandler, rbacService, cfg.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	audit.Log(context.Background(), bootstrap.AuditLog{
		Action:  "MODULES_REGISTERED",
		Message: "leave ledger routes registered",
		Meta: map[string]any{
			"routes": len(router.Routes()),
		},
	})

	return nil
}
