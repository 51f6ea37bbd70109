package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yaseenferoz/virl-backend/internal/entity"
)

// SampleRepository sample catalog store
type SampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// Create inserts a new sample type
func (r *SampleRepository) Create(ctx context.Context, sample *entity.Sample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

// FindByID looks a sample up by id
func (r *SampleRepository) FindByID(ctx context.Context, id string) (*entity.Sample, error) {
	var sample entity.Sample
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

// FindByIDs returns samples keyed by id
func (r *SampleRepository) FindByIDs(ctx context.Context, ids []string) (map[string]entity.Sample, error) {
	byID := make(map[string]entity.Sample, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var samples []entity.Sample
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&samples).Error
	if err != nil {
		return nil, err
	}
	for _, s := range samples {
		byID[s.ID] = s
	}
	return byID, nil
}

// Update saves the full sample record
func (r *SampleRepository) Update(ctx context.Context, sample *entity.Sample) error {
	return r.db.WithContext(ctx).Save(sample).Error
}

// Delete removes a sample by id
func (r *SampleRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Sample{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByStatus returns samples with the given availability status
func (r *SampleRepository) ListByStatus(ctx context.Context, status string) ([]entity.Sample, error) {
	var samples []entity.Sample
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at").Find(&samples).Error
	return samples, err
}
