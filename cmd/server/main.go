package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seller-panel.backend/internal/config"
	"seller-panel.backend/internal/infrastructure/datasources/postgres"
	"seller-panel.backend/internal/infrastructure/jobs"
	"seller-panel.backend/internal/infrastructure/notifier"
	"seller-panel.backend/internal/infrastructure/ratelimit"
	"seller-panel.backend/internal/infrastructure/repositories"
	"seller-panel.backend/internal/infrastructure/storage"
	"seller-panel.backend/internal/interfaces/http/handlers"
	"seller-panel.backend/internal/interfaces/http/middleware"
	"seller-panel.backend/internal/usecases"
	"seller-panel.backend/pkg/crypto"
	"seller-panel.backend/pkg/jwt"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/redis"
)

var (
	loadDotenv     = godotenv.Load
	loadCfg        = config.Load
	initLog        = logger.Init
	initRedis      = redis.Init
	closeRedis     = redis.Close
	openDB         = postgres.NewConnection
	migrateDB      = repositories.AutoMigrate
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	newObjectStore = func(ctx context.Context, cfg config.StorageConfig) (usecases.ObjectStore, error) {
		store, err := storage.NewMinioStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	runServer     = func(srv *http.Server) error { return srv.ListenAndServe() }
	awaitShutdown = func(timeout time.Duration, ops map[string]gfshutdown.Operation) <-chan int {
		return gfshutdown.GracefulShutdown(context.Background(), timeout, ops)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func newNotifier(cfg config.SMTPConfig) usecases.Notifier {
	if cfg.Host == "" {
		return notifier.LogNotifier{}
	}
	return notifier.NewEmailNotifier(cfg)
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	db, err := openDB(cfg.Database)
	if err != nil {
		_ = closeRedis()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		_ = closeRedis()
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	logger.Info(ctx, "Connected to PostgreSQL")

	closeStores := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn(ctx, "Failed to close database", zap.Error(err))
		}
		if err := closeRedis(); err != nil {
			logger.Warn(ctx, "Failed to close Redis", zap.Error(err))
		}
	}

	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			closeStores()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database schema migrated")
	}

	objectStore, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		closeStores()
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Repositories
	sellerRepo := repositories.NewSellerRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	variantRepo := repositories.NewVariantRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Collaborators
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	hasher := crypto.NewHasher(crypto.DefaultCost)
	otpLimiter := ratelimit.NewOtpLimiter(cfg.OTP)
	mailer := newNotifier(cfg.SMTP)

	// Usecases
	identityUsecase := usecases.NewIdentityUsecase(sellerRepo, categoryRepo, productRepo, variantRepo, hasher, jwtService, mailer, otpLimiter, cfg.OTP.TTL)
	onboardingUsecase := usecases.NewOnboardingUsecase(sellerRepo, objectStore, jwtService, cfg.Onboarding.RequireAdminApproval)
	catalogUsecase := usecases.NewCatalogUsecase(uow, categoryRepo, productRepo, variantRepo, objectStore)
	categoryUsecase := usecases.NewCategoryUsecase(uow, categoryRepo, productRepo)
	accessControl := usecases.NewAccessControl(sellerRepo, jwtService)

	r := newRouter(cfg, routeDeps{
		authHandler:           handlers.NewAuthHandler(identityUsecase),
		onboardingHandler:     handlers.NewOnboardingHandler(onboardingUsecase),
		categoryHandler:       handlers.NewCategoryHandler(categoryUsecase),
		productHandler:        handlers.NewProductHandler(catalogUsecase),
		authMiddleware:        middleware.AuthMiddleware(accessControl),
		idempotencyMiddleware: middleware.IdempotencyMiddleware(),
	})

	// Background jobs
	jobCtx, cancelJobs := context.WithCancel(ctx)
	expiryJob := jobs.NewOtpExpiryJob(sellerRepo, cfg.OTP.CleanupEvery)
	go expiryJob.Start(jobCtx)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// HTTP server first, then jobs, then the stores they use
	shutdown := func(ctx context.Context) error {
		logger.Info(ctx, "Shutting down seller panel")
		var errs []error
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
		expiryJob.Stop()
		cancelJobs()
		closeStores()
		return errors.Join(errs...)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Seller panel backend starting", zap.String("port", cfg.Server.Port))
		if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	wait := awaitShutdown(cfg.Server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"seller-panel": shutdown,
	})

	var code int
	select {
	case err, failed := <-serverErr:
		if failed {
			_ = shutdown(ctx)
			return fmt.Errorf("failed to start server: %w", err)
		}
		code = <-wait
	case code = <-wait:
	}

	if code != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", code)
	}
	logger.Info(ctx, "Shutdown completed")
	return nil
}
