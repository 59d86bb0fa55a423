package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/expense-tracker/internal/config"
	"github.com/expense-tracker/internal/guard"
	"github.com/expense-tracker/internal/handler"
	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/internal/session"
	"github.com/expense-tracker/pkg/crypto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize structured logging
	if err := middleware.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis
	rdb := initRedis(cfg)

	// Auto migrate database
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	adminLogRepo := repository.NewAdminLogRepository(db)

	// Initialize session store
	sessionTTL := time.Duration(cfg.Session.ExpireHours) * time.Hour
	sessions := session.NewStore(rdb, sessionTTL)

	// Ensure the bootstrap admin account exists
	if err := ensureAdmin(userRepo, cfg.Admin); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, expenseRepo, budgetRepo, categoryRepo, sessions)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, expenseRepo)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo)
	reportService := service.NewReportService(expenseRepo, budgetRepo)
	adminService := service.NewAdminService(userRepo, expenseRepo, categoryRepo, budgetRepo, adminLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, int(sessionTTL.Seconds()))
	expenseHandler := handler.NewExpenseHandler(expenseService, reportService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Create Gin router
	router := gin.Default()

	// Add request logging middleware (logs all requests with error details)
	router.Use(middleware.RequestLoggerMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"version":    Version,
			"commit":     Commit,
			"build_time": BuildTime,
			"time":       time.Now().Unix(),
		})
	})

	// Access guards
	loginRequired := middleware.Guard(guard.LoginRequired, sessions, userRepo)
	userOnly := middleware.Guard(guard.UserOnly, sessions, userRepo)
	adminRequired := middleware.Guard(guard.AdminRequired, sessions, userRepo)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1, loginRequired)
		expenseHandler.RegisterRoutes(v1, userOnly)
		categoryHandler.RegisterRoutes(v1, userOnly)
		budgetHandler.RegisterRoutes(v1, userOnly)
		reportHandler.RegisterRoutes(v1, userOnly)
		adminHandler.RegisterRoutes(v1, adminRequired)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close Redis connection
	if err := rdb.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}

	log.Println("Server exited properly")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	// TranslateError maps driver unique-violation errors to
	// gorm.ErrDuplicatedKey, which the repositories rely on
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Budget{},
		&models.Category{},
		&models.AdminLog{},
	)
}

// ensureAdmin creates the configured admin account on first startup
func ensureAdmin(users *repository.UserRepository, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}

	_, err := users.GetByEmail(cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(admin, nil); err != nil {
		return err
	}

	log.Printf("Bootstrap admin account created: %s", cfg.Email)
	return nil
}
