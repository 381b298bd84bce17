package models

import (
	"strings"
	"testing"
)

func TestNewPrefixedIDs(t *testing.T) {
	tests := []struct {
		prefix string
		mint   func() string
	}{
		{GuestIDPrefix, NewGuestID},
		{BookingIDPrefix, NewBookingID},
		{CheckInIDPrefix, NewCheckInID},
		{PaymentIDPrefix, NewPaymentID},
	}

	for _, tc := range tests {
		id := tc.mint()
		if !strings.HasPrefix(id, tc.prefix) {
			t.Fatalf("expected prefix %s, got %s", tc.prefix, id)
		}
		if len(id) != len(tc.prefix)+publicIDHexLen {
			t.Fatalf("unexpected length for %s", id)
		}
		if id != strings.ToUpper(id) {
			t.Fatalf("expected uppercase id, got %s", id)
		}
	}
}

func TestNewGuestIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewGuestID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
