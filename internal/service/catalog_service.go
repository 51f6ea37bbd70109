package service

import (
	"context"
	"fmt"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// CatalogService manages the sample and test type catalog offered to
// customers.
type CatalogService struct {
	sampleRepo   *repository.SampleRepository
	testTypeRepo *repository.TestTypeRepository
}

func NewCatalogService(sampleRepo *repository.SampleRepository, testTypeRepo *repository.TestTypeRepository) *CatalogService {
	return &CatalogService{sampleRepo: sampleRepo, testTypeRepo: testTypeRepo}
}

// CreateSampleReq sample creation payload
type CreateSampleReq struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

// CreateSample adds a sample to the catalog, available by default.
func (s *CatalogService) CreateSample(ctx context.Context, req CreateSampleReq) (*entity.Sample, error) {
	sample := &entity.Sample{
		ID:          generateID(),
		Type:        req.Type,
		Description: req.Description,
		Status:      entity.SampleAvailable,
	}
	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("create sample: %w", err)
	}
	return sample, nil
}

// UpdateSampleAvailability flips a sample between Available and Unavailable.
func (s *CatalogService) UpdateSampleAvailability(ctx context.Context, sampleID, status string) (*entity.Sample, error) {
	if status != entity.SampleAvailable && status != entity.SampleUnavailable {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	sample, err := s.sampleRepo.FindByID(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", sampleID, err)
	}

	sample.Status = status
	if err := s.sampleRepo.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("update sample: %w", err)
	}
	return sample, nil
}

// DeleteSample removes a sample from the catalog.
func (s *CatalogService) DeleteSample(ctx context.Context, sampleID string) error {
	if err := s.sampleRepo.Delete(ctx, sampleID); err != nil {
		return fmt.Errorf("delete sample %s: %w", sampleID, err)
	}
	return nil
}

// ListAvailableSamples returns samples customers can currently request.
func (s *CatalogService) ListAvailableSamples(ctx context.Context) ([]entity.Sample, error) {
	samples, err := s.sampleRepo.ListByStatus(ctx, entity.SampleAvailable)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	return samples, nil
}

// CreateTestTypeReq test type creation payload
type CreateTestTypeReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateTestType adds a test type to the catalog.
func (s *CatalogService) CreateTestType(ctx context.Context, req CreateTestTypeReq) (*entity.TestType, error) {
	tt := &entity.TestType{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.testTypeRepo.Create(ctx, tt); err != nil {
		return nil, fmt.Errorf("create test type: %w", err)
	}
	return tt, nil
}

// DeleteTestType removes a test type from the catalog.
func (s *CatalogService) DeleteTestType(ctx context.Context, testTypeID string) error {
	if err := s.testTypeRepo.Delete(ctx, testTypeID); err != nil {
		return fmt.Errorf("delete test type %s: %w", testTypeID, err)
	}
	return nil
}

// ListTestTypes returns the full test type catalog.
func (s *CatalogService) ListTestTypes(ctx context.Context) ([]entity.TestType, error) {
	testTypes, err := s.testTypeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list test types: %w", err)
	}
	return testTypes, nil
}
