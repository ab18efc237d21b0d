package app

import (
	"context"
	"database/sql"

	"dairy-erp/internal/advance"
	"dairy-erp/internal/config"
	"dairy-erp/internal/messaging/kafka"
	"dairy-erp/internal/middleware"
	"dairy-erp/internal/payroll"
	"dairy-erp/internal/rbac"
	"dairy-erp/internal/rbac/infra"
	"dairy-erp/internal/salary"
	"dairy-erp/internal/salarybonus"
	"dairy-erp/internal/settings"
	"dairy-erp/internal/shared/counter"
	"dairy-erp/internal/shared/storage"
	"dairy-erp/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// modules holds the services shared by the API and the consumer.
type modules struct {
	workerRepo      worker.Repository
	advanceRepo     advance.Repository
	bonusRepo       salarybonus.Repository
	settingsService settings.Service
	payrollService  payroll.Service
	outboxRepo      kafka.OutboxRepository
	counterRepo     counter.Repository
}

func buildModules(cfg *config.Config, db *sql.DB, gormDB *gorm.DB, rdb *redis.Client) (*modules, error) {
	files, err := storage.NewLocalStorage(cfg.Storage.FilesDir, cfg.Storage.FilesBaseURL)
	if err != nil {
		return nil, err
	}

	m := &modules{
		workerRepo:  worker.NewRepository(gormDB),
		advanceRepo: advance.NewRepository(gormDB),
		bonusRepo:   salarybonus.NewRepository(gormDB),
		outboxRepo:  kafka.NewOutboxRepository(db),
		counterRepo: counter.NewRepository(gormDB),
	}

	m.settingsService = settings.NewService(
		settings.NewRepository(gormDB),
		rdb,
		salary.Settings{
			EPFPercentage: cfg.Payroll.DefaultEPFPercentage,
			ETFPercentage: cfg.Payroll.DefaultETFPercentage,
		},
	)

	m.payrollService = payroll.NewService(payroll.Dependencies{
		DB:          db,
		Repo:        payroll.NewRepository(gormDB),
		Workers:     m.workerRepo,
		Bonuses:     m.bonusRepo,
		Advances:    m.advanceRepo,
		Settings:    m.settingsService,
		Counter:     m.counterRepo,
		Outbox:      m.outboxRepo,
		Storage:     files,
		Concurrency: cfg.Payroll.PreviewConcurrency,
	})

	return m, nil
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	m, err := buildModules(cfg, db, gormDB, rdb)
	if err != nil {
		return err
	}

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(gormDB), enforcer)
	if err := rbacService.LoadPolicy(context.Background()); err != nil {
		return err
	}

	// --- Services ---
	workerService := worker.NewServiceWithOutbox(db, m.workerRepo, m.counterRepo, m.outboxRepo)
	advanceService := advance.NewService(m.advanceRepo, m.workerRepo)
	bonusService := salarybonus.NewService(m.bonusRepo, m.workerRepo)

	// --- Handlers ---
	workerHandler := worker.NewHandler(workerService)
	advanceHandler := advance.NewHandler(advanceService)
	bonusHandler := salarybonus.NewHandler(bonusService)
	settingsHandler := settings.NewHandler(m.settingsService)
	payrollHandler := payroll.NewHandler(m.payrollService)
	rbacHandler := rbac.NewHandler(rbacService)

	router.Static("/files", cfg.Storage.FilesDir)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ContextLogger(zap.L()),
	)
	{
		worker.RegisterRoutes(api, workerHandler, rbacService)
		advance.RegisterRoutes(api, advanceHandler, rbacService, rdb)
		salarybonus.RegisterRoutes(api, bonusHandler, rbacService)
		settings.RegisterRoutes(api, settingsHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
