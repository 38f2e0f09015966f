package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/doug-fsg/controlei/internal/application/identity"
	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/doug-fsg/controlei/internal/infrastructure/auth"
	"github.com/doug-fsg/controlei/internal/infrastructure/config"
	"github.com/doug-fsg/controlei/internal/infrastructure/logger"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence"
	"github.com/doug-fsg/controlei/internal/infrastructure/telemetry"
	"github.com/doug-fsg/controlei/internal/interfaces/http/handler"
	"github.com/doug-fsg/controlei/internal/interfaces/http/middleware"
	"github.com/doug-fsg/controlei/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version))

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLevel := gormlogger.Warn
	if cfg.App.Env == "development" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterGormTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Token services
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Warn("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	tokenRepo := persistence.NewGormVerificationTokenRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	categoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	recurringPaymentRepo := persistence.NewGormRecurringExpensePaymentRepository(db.DB)

	// Application services
	orgService := identityapp.NewOrganizationService(orgRepo, membershipRepo, log)
	authService := identityapp.NewAuthService(
		userRepo, orgRepo, membershipRepo, tokenRepo, orgService, jwtService, blacklist, log)
	clientService := ledgerapp.NewClientService(clientRepo, log)
	saleService := ledgerapp.NewSaleService(saleRepo, clientRepo, log)
	categoryService := ledgerapp.NewCategoryService(categoryRepo, log)
	expenseService := ledgerapp.NewExpenseService(expenseRepo, categoryRepo, log)
	recurringPaymentService := ledgerapp.NewRecurringPaymentService(expenseRepo, recurringPaymentRepo, log)
	dashboardService := ledgerapp.NewDashboardService(saleRepo, expenseRepo, clientRepo, log)
	cashFlowService := ledgerapp.NewCashFlowService(saleRepo, expenseRepo, clientRepo, categoryRepo, recurringPaymentRepo, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log

	engine.Use(
		middleware.Tracing(cfg.App.Name, cfg.Telemetry.Enabled),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(),
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.TracingAttributes(),
	)

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db.DB, version)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewOrganizationHandler(orgService)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewSaleHandler(saleService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewRecurringPaymentHandler(recurringPaymentService)).
		Register(handler.NewDashboardHandler(dashboardService)).
		Register(handler.NewCashFlowHandler(cashFlowService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
