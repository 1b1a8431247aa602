package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/storekit/backend/internal/application/catalog"
	financeapp "github.com/storekit/backend/internal/application/finance"
	identityapp "github.com/storekit/backend/internal/application/identity"
	partnerapp "github.com/storekit/backend/internal/application/partner"
	reportapp "github.com/storekit/backend/internal/application/report"
	tradeapp "github.com/storekit/backend/internal/application/trade"
	"github.com/storekit/backend/internal/domain/trade"
	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/infrastructure/config"
	"github.com/storekit/backend/internal/infrastructure/logger"
	"github.com/storekit/backend/internal/infrastructure/persistence"
	"github.com/storekit/backend/internal/interfaces/http/dto"
	"github.com/storekit/backend/internal/interfaces/http/handler"
	"github.com/storekit/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting StoreKit backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token revocation store. Redis keeps revocations across restarts;
	// when it is unreachable at startup the server still comes up with an
	// in-process store.
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	cancelPing()

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	returnRepo := persistence.NewGormInvoiceReturnRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	sequenceRepo := persistence.NewGormDocumentSequenceRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	purchaseReportRepo := persistence.NewGormPurchaseReportRepository(db.DB)
	inventoryReportRepo := persistence.NewGormInventoryReportRepository(db.DB)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db.DB)

	numbers := trade.NewNumberGenerator(sequenceRepo)
	txTimeout := cfg.Orchestrator.TransactionTimeout

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, log)
	taxService := catalogapp.NewTaxService(taxRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	invoiceService := tradeapp.NewInvoiceService(invoiceRepo, productRepo, taxRepo, customerRepo, numbers, txTimeout, log)
	returnService := tradeapp.NewInvoiceReturnService(invoiceRepo, returnRepo, productRepo, numbers, txTimeout, log)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, productRepo, taxRepo, supplierRepo, numbers, txTimeout, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	reportService := reportapp.NewReportService(salesReportRepo, purchaseReportRepo, inventoryReportRepo, financeReportRepo, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := dto.RegisterValidations(); err != nil {
		log.Fatal("Failed to register binding validations", zap.Error(err))
	}
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", healthHandler(db))

	router.Setup(engine, jwtService, router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Product:       handler.NewProductHandler(productService),
		Tax:           handler.NewTaxHandler(taxService),
		Customer:      handler.NewCustomerHandler(customerService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		Invoice:       handler.NewInvoiceHandler(invoiceService),
		InvoiceReturn: handler.NewInvoiceReturnHandler(returnService),
		Purchase:      handler.NewPurchaseHandler(purchaseService),
		Expense:       handler.NewExpenseHandler(expenseService),
		Report:        handler.NewReportHandler(reportService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
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

// healthHandler reports liveness of the process and its database
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
