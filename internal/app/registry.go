package app

import (
	"database/sql"

	"go-personnel/internal/config"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/middleware"
	"go-personnel/internal/personnel"
	"go-personnel/internal/rbac"
	"go-personnel/internal/rbac/infra"
	"go-personnel/internal/salary"
	"go-personnel/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	personnelRepo := personnel.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	personnelService := personnel.NewServiceWithOutbox(db, personnelRepo, counterRepo, outboxRepo, rdb, logger)
	salaryService := salary.NewService(db, salaryRepo, salary.Deductions(cfg.Salary), logger)

	// --- Handlers ---
	personnelHandler := personnel.NewHandler(personnelService, logger)
	salaryHandler := salary.NewHandler(salaryService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	api := router.Group("/api/v1")
	{
		personnel.RegisterRoutes(api, personnelHandler, rbacService, auth, logger)
		salary.RegisterRoutes(api, salaryHandler, rbacService, auth, rdb, logger)
		rbac.RegisterRoutes(api, rbacHandler, auth, logger)
	}

	return nil
}

func migrate(gormDB *gorm.DB) error {
	models := []any{&personnel.Personnel{}, &salary.Salary{}}
	models = append(models, rbac.Models()...)
	if err := gormDB.AutoMigrate(models...); err != nil {
		return err
	}

	for _, ddl := range []string{counter.CountersTableDDL, kafka.OutboxTableDDL} {
		if err := gormDB.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}
