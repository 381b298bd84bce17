package models

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
)

// CheckIn records the physical arrival for a booking. A booking has at most
// one check-in row; checkout closes it via ActualCheckOut/IsCheckedOut.
type CheckIn struct {
	CheckInID        string            `gorm:"column:check_in_id;primaryKey"`
	BookingID        string            `gorm:"column:booking_id;not null;uniqueIndex"`
	ActualCheckIn    time.Time         `gorm:"column:actual_check_in;not null"`
	ExpectedCheckOut time.Time         `gorm:"column:expected_check_out;not null"`
	ActualCheckOut   *time.Time        `gorm:"column:actual_check_out"`
	NumberOfGuests   int               `gorm:"column:number_of_guests;not null;default:1"`
	IDProofType      enums.IDProofType `gorm:"column:id_proof_type;type:id_proof_type;not null;default:'aadhaar'"`
	IDProofNumber    string            `gorm:"column:id_proof_number;not null"`
	IsCheckedOut     bool              `gorm:"column:is_checked_out;not null;default:false"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`

	Booking *Booking `gorm:"foreignKey:BookingID;references:BookingID;constraint:OnDelete:CASCADE"`
}
