package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"saletracker-api/internal/auth"
	"saletracker-api/internal/config"
	"saletracker-api/internal/repository"
	"saletracker-api/internal/service"
	httpTransport "saletracker-api/internal/transport/http"
	"saletracker-api/internal/transport/http/handler"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	logger := newLogger(cfg)
	defer logger.Sync()

	logger.Info("starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// Connect to the sales database. Startup does not fail when the database
	// is unreachable: the service degrades to offline mode so local
	// development without a store keeps working. Not production behavior.
	var saleRepo repository.SaleRepository
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Warn("sales database unavailable, running in offline mode", zap.Error(err))
		saleRepo = repository.NewOfflineSaleRepository(logger)
	} else {
		defer db.Close()
		saleRepo, err = repository.NewMySQLSaleRepository(db)
		if err != nil {
			logger.Fatal("failed to initialize sales repository", zap.Error(err))
		}
		logger.Info("sales database connected")
	}

	// Services
	salesService := service.NewSalesService(saleRepo, logger)
	dashboardService := service.NewDashboardService(saleRepo, logger)

	// Transport layer
	h := handler.New(cfg.App.Name, cfg.App.Version)
	salesHandler := handler.NewSalesHandler(salesService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	resolver := auth.NewPrincipalResolver()

	router := httpTransport.NewRouter(h, salesHandler, dashboardHandler, resolver, cfg.CORS.AllowedOrigins, logger)

	// Configure HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.Address()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}

// newLogger builds the process logger: human-readable in development,
// JSON in production.
func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.App.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// connectDB establishes a pooled connection to the sales MySQL database.
func connectDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci&timeout=5s&readTimeout=10s&writeTimeout=10s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Verify connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sales database: %w", err)
	}

	return db, nil
}
