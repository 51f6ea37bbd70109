package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories repository collection
type Repositories struct {
	User          *UserRepository
	Sample        *SampleRepository
	TestType      *TestTypeRepository
	SampleRequest *SampleRequestRepository
	Notification  *NotificationRepository
}

// NewRepositories creates the repository collection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Sample:        NewSampleRepository(db),
		TestType:      NewTestTypeRepository(db),
		SampleRequest: NewSampleRequestRepository(db),
		Notification:  NewNotificationRepository(db),
	}
}
