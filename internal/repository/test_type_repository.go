package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yaseenferoz/virl-backend/internal/entity"
)

// TestTypeRepository test type catalog store
type TestTypeRepository struct {
	db *gorm.DB
}

func NewTestTypeRepository(db *gorm.DB) *TestTypeRepository {
	return &TestTypeRepository{db: db}
}

// Create inserts a new test type
func (r *TestTypeRepository) Create(ctx context.Context, tt *entity.TestType) error {
	return r.db.WithContext(ctx).Create(tt).Error
}

// FindByID looks a test type up by id
func (r *TestTypeRepository) FindByID(ctx context.Context, id string) (*entity.TestType, error) {
	var tt entity.TestType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tt, nil
}

// FindByIDs returns test types keyed by id
func (r *TestTypeRepository) FindByIDs(ctx context.Context, ids []string) (map[string]entity.TestType, error) {
	byID := make(map[string]entity.TestType, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var types []entity.TestType
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&types).Error
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		byID[t.ID] = t
	}
	return byID, nil
}

// Delete removes a test type by id
func (r *TestTypeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.TestType{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every test type
func (r *TestTypeRepository) ListAll(ctx context.Context) ([]entity.TestType, error) {
	var types []entity.TestType
	err := r.db.WithContext(ctx).Order("created_at").Find(&types).Error
	return types, err
}
