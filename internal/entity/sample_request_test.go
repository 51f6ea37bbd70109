package entity

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusSubmitted, StatusCollected, StatusReceived,
		StatusInTest, StatusTested, StatusDelivered,
	} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}

	for _, s := range []string{"", "submitted", "Done", "In Test"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusSubmitted, StatusCollected, true},
		{StatusCollected, StatusReceived, true},
		{StatusReceived, StatusInTest, true},
		{StatusInTest, StatusTested, true},
		{StatusTested, StatusDelivered, true},
		// skipping forward is allowed
		{StatusReceived, StatusTested, true},
		{StatusReceived, StatusDelivered, true},
		// regressing is not
		{StatusCollected, StatusSubmitted, false},
		{StatusDelivered, StatusInTest, false},
		{StatusTested, StatusTested, false},
		// unknown statuses never advance
		{"bogus", StatusInTest, false},
		{StatusInTest, "bogus", false},
	}

	for _, tt := range tests {
		if got := CanAdvance(tt.from, tt.to); got != tt.want {
			t.Errorf("CanAdvance(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		status, stage string
		want          bool
	}{
		{StatusTested, StatusTested, true},
		{StatusDelivered, StatusTested, true},
		{StatusInTest, StatusTested, false},
		{StatusSubmitted, StatusCollected, false},
		{"bogus", StatusTested, false},
	}

	for _, tt := range tests {
		if got := AtLeast(tt.status, tt.stage); got != tt.want {
			t.Errorf("AtLeast(%q, %q) = %v, want %v", tt.status, tt.stage, got, tt.want)
		}
	}
}

func TestVendorStatuses(t *testing.T) {
	if VendorStatuses[StatusSubmitted] || VendorStatuses[StatusCollected] || VendorStatuses[StatusReceived] {
		t.Error("collector-owned statuses must not be vendor-assignable")
	}
	if !VendorStatuses[StatusInTest] || !VendorStatuses[StatusTested] || !VendorStatuses[StatusDelivered] {
		t.Error("vendor statuses missing from VendorStatuses")
	}
}
