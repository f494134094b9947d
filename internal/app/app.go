package app

import (
	"log"

	"go-timeclock/internal/config"
	"go-timeclock/internal/replstore"
	"go-timeclock/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the router. Both database replicas must be reachable at
// startup; after that the replicated store tolerates either one dying.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	primary, err := connection.ConnectGORMWithRetry(cfg.Primary, 5)
	if err != nil {
		return err
	}
	log.Println("✅ Primary database connection established")

	backup, err := connection.ConnectGORMWithRetry(cfg.Backup, 5)
	if err != nil {
		return err
	}
	log.Println("✅ Backup database connection established")

	store := replstore.New(primary, backup, cfg.StoreTimeout, zap.L())

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	return registerModules(router, store, redisClient, cfg)
}
