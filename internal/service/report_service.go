package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// ReportService stores and serves test report files in object storage. The
// object key is recorded on the sample request.
type ReportService struct {
	requestRepo      *repository.SampleRequestRepository
	notificationRepo *repository.NotificationRepository
	minioClient      *minio.Client
	bucket           string
	logger           *zap.Logger
}

func NewReportService(
	requestRepo *repository.SampleRequestRepository,
	notificationRepo *repository.NotificationRepository,
	minioClient *minio.Client,
	bucket string,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		minioClient:      minioClient,
		bucket:           bucket,
		logger:           logger,
	}
}

// UploadReport attaches a report file to a tested sample request. The request
// must have reached Sample Tested; uploading again replaces the report path.
func (s *ReportService) UploadReport(ctx context.Context, requestID, filename string, reader io.Reader, size int64, contentType string) (*entity.SampleRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sample request %s: %w", requestID, err)
	}

	if !entity.AtLeast(request.Status, entity.StatusTested) {
		return nil, fmt.Errorf("%w: request is %s", ErrReportNotReady, request.Status)
	}

	if s.minioClient == nil {
		return nil, fmt.Errorf("object storage not configured")
	}

	objectKey := fmt.Sprintf("reports/%s/%s%s",
		time.Now().Format("2006/01/02"),
		uuid.New().String()[:8],
		filepath.Ext(filename),
	)

	_, err = s.minioClient.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	request.ReportPath = objectKey
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update sample request: %w", err)
	}

	notification := entity.Notification{
		ID:              generateID(),
		UserID:          request.CustomerID,
		SampleRequestID: request.ID,
		Message:         "Your test report is ready for download",
		CreatedAt:       time.Now(),
	}
	if err := s.notificationRepo.CreateBatch(ctx, []entity.Notification{notification}); err != nil {
		s.logger.Error("report notification failed",
			zap.String("sample_request_id", request.ID),
			zap.Error(err),
		)
	}

	return request, nil
}

// DownloadReport streams a stored report. A non-empty ownerID restricts the
// download to the request's customer. The caller must close the reader.
func (s *ReportService) DownloadReport(ctx context.Context, requestID, ownerID string) (io.ReadCloser, string, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("sample request %s: %w", requestID, err)
	}

	if ownerID != "" && request.CustomerID != ownerID {
		return nil, "", fmt.Errorf("%w: report belongs to another customer", ErrForbidden)
	}

	if request.ReportPath == "" {
		return nil, "", fmt.Errorf("%w: no report uploaded", ErrNotFound)
	}

	if s.minioClient == nil {
		return nil, "", fmt.Errorf("object storage not configured")
	}

	obj, err := s.minioClient.GetObject(ctx, s.bucket, request.ReportPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("fetch report: %w", err)
	}

	return obj, filepath.Base(request.ReportPath), nil
}
