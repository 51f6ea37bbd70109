package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yaseenferoz/virl-backend/internal/config"
	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/handler"
	"github.com/yaseenferoz/virl-backend/internal/middleware"
	"github.com/yaseenferoz/virl-backend/internal/repository"
	"github.com/yaseenferoz/virl-backend/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting virl-backend service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Sample{},
		&entity.TestType{},
		&entity.SampleRequest{},
		&entity.Notification{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	minioClient, err := initMinio(cfg.MinIO)
	if err != nil {
		zapLogger.Warn("MinIO unavailable, report storage disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, minioClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initMinio(cfg config.MinIOConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return client, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)

		authed := auth.Group("")
		authed.Use(middleware.JWTAuth(cfg.JWT.Secret))
		authed.GET("/me", h.Auth.Me)
		authed.POST("/approve-user", middleware.RequireRole(entity.RoleSuperAdmin), h.Auth.ApproveUser)
	}

	customer := api.Group("/customer")
	customer.Use(middleware.JWTAuth(cfg.JWT.Secret), middleware.RequireRole(entity.RoleCustomer))
	{
		customer.POST("/submit-sample", h.Customer.SubmitSample)
		customer.GET("/submitted-tests", h.Customer.SubmittedTests)
		customer.GET("/dashboard", h.Customer.Dashboard)
		customer.GET("/profile", h.Customer.Profile)
		customer.PUT("/profile", h.Customer.UpdateProfile)
		customer.GET("/report/:sampleRequestId", h.Customer.DownloadReport)
		customer.GET("/notifications", h.Notification.List)
		customer.PUT("/notifications/:id/read", h.Notification.MarkRead)
	}

	collector := api.Group("/collector")
	collector.Use(middleware.JWTAuth(cfg.JWT.Secret), middleware.RequireRole(entity.RoleCollector))
	{
		collector.PUT("/collect-sample", h.Collector.CollectSample)
		collector.PUT("/deliver-sample", h.Collector.DeliverSample)
		collector.GET("/samples-to-collect", h.Collector.SamplesToCollect)
		collector.GET("/samples-delivered", h.Collector.SamplesDelivered)
		collector.GET("/profile", h.Collector.Profile)
		collector.PUT("/profile", h.Collector.UpdateProfile)
		collector.GET("/notifications", h.Notification.List)
		collector.PUT("/notifications/:id/read", h.Notification.MarkRead)
	}

	vendor := api.Group("/vendor")
	vendor.Use(middleware.JWTAuth(cfg.JWT.Secret), middleware.RequireRole(entity.RoleVendor))
	{
		vendor.POST("/approve-user", h.Vendor.ApproveUser)
		vendor.POST("/decline-user", h.Vendor.DeclineUser)
		vendor.GET("/users-awaiting-approval", h.Vendor.UsersAwaitingApproval)
		vendor.POST("/create-sample", h.Vendor.CreateSample)
		vendor.PUT("/update-sample-availability", h.Vendor.UpdateSampleAvailability)
		vendor.DELETE("/delete-sample/:sampleId", h.Vendor.DeleteSample)
		vendor.POST("/add-test-type", h.Vendor.AddTestType)
		vendor.DELETE("/delete-test-type/:testTypeId", h.Vendor.DeleteTestType)
		vendor.GET("/submitted-samples", h.Vendor.SubmittedSamples)
		vendor.PUT("/update-sample-status", h.Vendor.UpdateSampleStatus)
		vendor.GET("/delivered-samples-history", h.Vendor.DeliveredSamplesHistory)
		vendor.GET("/delivered-samples-history/export", h.Vendor.ExportDeliveredHistory)
		vendor.POST("/upload-report/:sampleRequestId", h.Vendor.UploadReport)
		vendor.GET("/report/:sampleRequestId", h.Vendor.DownloadReport)
		vendor.GET("/profile", h.Vendor.Profile)
		vendor.PUT("/profile", h.Vendor.UpdateProfile)
		vendor.GET("/notifications", h.Notification.List)
		vendor.PUT("/notifications/:id/read", h.Notification.MarkRead)
	}

	shared := api.Group("/shared")
	shared.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		shared.GET("/samples", h.Shared.Samples)
		shared.GET("/test-types", h.Shared.TestTypes)
	}
}
