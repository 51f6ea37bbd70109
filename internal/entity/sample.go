package entity

import "time"

// Sample availability
const (
	SampleAvailable   = "Available"
	SampleUnavailable = "Unavailable"
)

// Sample catalog entity: a kind of physical sample customers may submit
type Sample struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Type        string    `json:"type" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:500"`
	Status      string    `json:"status" gorm:"size:20;not null;default:Available"` // Available/Unavailable
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Sample) TableName() string {
	return "samples"
}
