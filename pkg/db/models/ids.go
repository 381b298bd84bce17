package models

import (
	"strings"

	"github.com/google/uuid"
)

const publicIDHexLen = 12

// Prefixes for public entity identifiers.
const (
	GuestIDPrefix   = "CLT"
	BookingIDPrefix = "BKG"
	CheckInIDPrefix = "CHK"
	PaymentIDPrefix = "PMT"
)

func newPrefixedID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(hex[:publicIDHexLen])
}

// NewGuestID mints a public guest identifier.
func NewGuestID() string { return newPrefixedID(GuestIDPrefix) }

// NewBookingID mints a public booking identifier.
func NewBookingID() string { return newPrefixedID(BookingIDPrefix) }

// NewCheckInID mints a public check-in identifier.
func NewCheckInID() string { return newPrefixedID(CheckInIDPrefix) }

// NewPaymentID mints a public payment identifier.
func NewPaymentID() string { return newPrefixedID(PaymentIDPrefix) }
