package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/config"
	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// Services service collection
type Services struct {
	Auth         *AuthService
	Account      *AccountService
	Catalog      *CatalogService
	Lifecycle    *LifecycleService
	Notification *NotificationService
	Report       *ReportService
}

// NewServices wires the service collection. The notification service doubles
// as the lifecycle engine's fan-out consumer.
func NewServices(repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	notification := NewNotificationService(repos.Notification, logger)
	lifecycle := NewLifecycleService(repos.SampleRequest, repos.Sample, repos.TestType, repos.User, notification, logger)

	return &Services{
		Auth:         NewAuthService(repos.User, rdb, cfg),
		Account:      NewAccountService(repos.User),
		Catalog:      NewCatalogService(repos.Sample, repos.TestType),
		Lifecycle:    lifecycle,
		Notification: notification,
		Report:       NewReportService(repos.SampleRequest, repos.Notification, minioClient, cfg.MinIO.Bucket, logger),
	}
}
