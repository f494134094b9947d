package app

import (
	"go-timeclock/internal/account"
	"go-timeclock/internal/anomaly"
	"go-timeclock/internal/config"
	"go-timeclock/internal/ledger"
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/notify"
	"go-timeclock/internal/punch"
	"go-timeclock/internal/rbac"
	"go-timeclock/internal/replstore"
	"go-timeclock/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	store *replstore.Store,
	rdb *redis.Client,
	cfg config.Config,
) error {
	logger := zap.L()

	// --- Repositories ---
	tokenRepo := token.NewRepository(store)
	accountRepo := account.NewRepository(store)
	punchRepo := punch.NewRepository(store)
	anomalyRepo := anomaly.NewRepository(store)
	ledgerRepo := ledger.NewRepository(store)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	tokenService := token.NewService(tokenRepo, cfg.TokenTTL, logger)
	accountService := account.NewService(accountRepo, tokenService, logger)
	punchService := punch.NewService(punchRepo, logger)
	anomalyService := anomaly.NewService(anomalyRepo)
	ledgerService := ledger.NewService(ledgerRepo, rdb, ledger.Pricing{
		RatePerMinute:      cfg.Policy.RatePerMinute,
		AbsentPenalty:      cfg.Policy.AbsentPenalty,
		OvertimeMultiplier: cfg.Policy.OvertimeMultiplier,
	}, logger)
	notifyService := notify.NewService(rdb, logger)

	// --- Handlers ---
	tokenHandler := token.NewHandler(tokenService)
	accountHandler := account.NewHandler(accountService)
	punchHandler := punch.NewHandler(punchService)
	anomalyHandler := anomaly.NewHandler(anomalyService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	notifyHandler := notify.NewHandler(notifyService)

	// --- Middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	authn := middleware.AuthMiddleware(tokenService, accountService, logger)
	idempotent := middleware.Idempotency(rdb)
	salaryAdmin := middleware.RBACAuthorize(rbacService, "salary", "set_base")
	warningReader := middleware.RBACAuthorize(rbacService, "warnings", "read")

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		token.RegisterRoutes(api, tokenHandler)
		account.RegisterRoutes(api, accountHandler)
		punch.RegisterRoutes(api, punchHandler, authn, idempotent)
		anomaly.RegisterRoutes(api, anomalyHandler, authn)
		ledger.RegisterRoutes(api, ledgerHandler, authn, salaryAdmin)
		notify.RegisterRoutes(api, notifyHandler, authn, warningReader)
	}

	return nil
}
