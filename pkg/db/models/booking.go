package models

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Booking is a reservation tying a guest to a room over a date range.
// RoomType is snapshotted at creation so later room edits do not rewrite
// history.
type Booking struct {
	BookingID      string              `gorm:"column:booking_id;primaryKey"`
	GuestID        string              `gorm:"column:guest_id;not null;index"`
	RoomNumber     string              `gorm:"column:room_number;not null;index"`
	RoomType       enums.RoomType      `gorm:"column:room_type;type:room_type;not null"`
	CheckInDate    time.Time           `gorm:"column:check_in_date;type:date;not null"`
	CheckOutDate   time.Time           `gorm:"column:check_out_date;type:date;not null"`
	NumberOfGuests int                 `gorm:"column:number_of_guests;not null;default:1"`
	NumberOfNights int                 `gorm:"column:number_of_nights;not null;default:1"`
	TotalAmount    decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	AmountPaid     decimal.Decimal     `gorm:"column:amount_paid;type:numeric(10,2);not null;default:0"`
	Status         enums.BookingStatus `gorm:"column:status;type:booking_status;not null;default:'confirmed'"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`

	Guest *Guest `gorm:"foreignKey:GuestID;references:GuestID;constraint:OnDelete:CASCADE"`
	Room  *Room  `gorm:"foreignKey:RoomNumber;references:RoomNumber;constraint:OnDelete:CASCADE"`
}

// BalanceDue returns the outstanding amount against the booked total.
func (b Booking) BalanceDue() decimal.Decimal {
	return b.TotalAmount.Sub(b.AmountPaid)
}
