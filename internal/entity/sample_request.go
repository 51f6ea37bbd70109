package entity

import "time"

// SampleRequest tracks one customer's sample through the testing lifecycle.
type SampleRequest struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SampleID    string    `json:"sample_id" gorm:"size:32;not null;index"`
	TestTypeID  string    `json:"test_type_id" gorm:"size:32;not null"`
	CustomerID  string    `json:"customer_id" gorm:"size:32;not null;index"`
	VendorID    *string   `json:"vendor_id" gorm:"size:32"`
	CollectorID *string   `json:"collector_id" gorm:"size:32;index"` // set once at collection
	Status      string    `json:"status" gorm:"size:20;not null;default:Submitted"`
	ReportPath  string    `json:"report_path" gorm:"size:512"` // object path of the test report, once uploaded
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"` // doubles as delivery date for delivered requests
}

func (SampleRequest) TableName() string {
	return "sample_requests"
}

// Lifecycle statuses, in order.
const (
	StatusSubmitted = "Submitted"
	StatusCollected = "Collected"
	StatusReceived  = "Sample Received"
	StatusInTest    = "Sample in Test"
	StatusTested    = "Sample Tested"
	StatusDelivered = "Sample Delivered"
)

// statusRank orders the lifecycle. Transitions may only move forward.
var statusRank = map[string]int{
	StatusSubmitted: 0,
	StatusCollected: 1,
	StatusReceived:  2,
	StatusInTest:    3,
	StatusTested:    4,
	StatusDelivered: 5,
}

// VendorStatuses are the statuses a vendor may apply via update-sample-status.
var VendorStatuses = map[string]bool{
	StatusInTest:    true,
	StatusTested:    true,
	StatusDelivered: true,
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether moving from one status to another goes strictly
// forward in the lifecycle. Skipping forward is allowed; regressing is not.
func CanAdvance(from, to string) bool {
	f, ok := statusRank[from]
	if !ok {
		return false
	}
	t, ok := statusRank[to]
	if !ok {
		return false
	}
	return t > f
}

// AtLeast reports whether status has reached the given stage.
func AtLeast(status, stage string) bool {
	s, ok := statusRank[status]
	if !ok {
		return false
	}
	g, ok := statusRank[stage]
	if !ok {
		return false
	}
	return s >= g
}
