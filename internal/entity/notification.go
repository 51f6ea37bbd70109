package entity

import "time"

// Notification append-only record produced by the lifecycle fan-out.
// Only the read flag is ever mutated after creation.
type Notification struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	UserID          string    `json:"user_id" gorm:"size:32;not null;index"`
	SampleRequestID string    `json:"sample_request_id" gorm:"size:32;not null;index"`
	Message         string    `json:"message" gorm:"size:500;not null"`
	Read            bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
