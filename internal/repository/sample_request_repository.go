package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yaseenferoz/virl-backend/internal/entity"
)

// SampleRequestRepository sample request store
type SampleRequestRepository struct {
	db *gorm.DB
}

func NewSampleRequestRepository(db *gorm.DB) *SampleRequestRepository {
	return &SampleRequestRepository{db: db}
}

// Create inserts a new sample request
func (r *SampleRequestRepository) Create(ctx context.Context, req *entity.SampleRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// FindByID looks a sample request up by id
func (r *SampleRequestRepository) FindByID(ctx context.Context, id string) (*entity.SampleRequest, error) {
	var req entity.SampleRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Update saves the full sample request record
func (r *SampleRequestRepository) Update(ctx context.Context, req *entity.SampleRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// ListByStatus returns requests in the given status, oldest first
func (r *SampleRequestRepository) ListByStatus(ctx context.Context, status string) ([]entity.SampleRequest, error) {
	var reqs []entity.SampleRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at").
		Find(&reqs).Error
	return reqs, err
}

// ListByCustomer returns every request a customer submitted
func (r *SampleRequestRepository) ListByCustomer(ctx context.Context, customerID string) ([]entity.SampleRequest, error) {
	var reqs []entity.SampleRequest
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("submitted_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListByCollector returns requests handled by a collector, excluding one status
func (r *SampleRequestRepository) ListByCollector(ctx context.Context, collectorID, excludeStatus string) ([]entity.SampleRequest, error) {
	var reqs []entity.SampleRequest
	err := r.db.WithContext(ctx).
		Where("collector_id = ? AND status <> ?", collectorID, excludeStatus).
		Order("submitted_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListAll returns every sample request
func (r *SampleRequestRepository) ListAll(ctx context.Context) ([]entity.SampleRequest, error) {
	var reqs []entity.SampleRequest
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&reqs).Error
	return reqs, err
}

// CountByStatusForCustomer returns status → request count for one customer
func (r *SampleRequestRepository) CountByStatusForCustomer(ctx context.Context, customerID string) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&entity.SampleRequest{}).
		Select("status, COUNT(*) AS n").
		Where("customer_id = ?", customerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
