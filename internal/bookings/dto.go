package booking

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// BookingDTO is the reservation shape returned by the API.
type BookingDTO struct {
	BookingID      string              `json:"booking_id"`
	GuestID        string              `json:"guest_id"`
	GuestName      string              `json:"guest_name,omitempty"`
	RoomNumber     string              `json:"room_number"`
	RoomType       enums.RoomType      `json:"room_type"`
	CheckInDate    time.Time           `json:"check_in_date"`
	CheckOutDate   time.Time           `json:"check_out_date"`
	NumberOfGuests int                 `json:"number_of_guests"`
	NumberOfNights int                 `json:"number_of_nights"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	BalanceDue     decimal.Decimal     `json:"balance_due"`
	Status         enums.BookingStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
}

// NewBookingDTO maps the model into its API shape.
func NewBookingDTO(booking *models.Booking) *BookingDTO {
	if booking == nil {
		return nil
	}
	dto := &BookingDTO{
		BookingID:      booking.BookingID,
		GuestID:        booking.GuestID,
		RoomNumber:     booking.RoomNumber,
		RoomType:       booking.RoomType,
		CheckInDate:    booking.CheckInDate,
		CheckOutDate:   booking.CheckOutDate,
		NumberOfGuests: booking.NumberOfGuests,
		NumberOfNights: booking.NumberOfNights,
		TotalAmount:    booking.TotalAmount,
		AmountPaid:     booking.AmountPaid,
		BalanceDue:     booking.BalanceDue(),
		Status:         booking.Status,
		CreatedAt:      booking.CreatedAt,
	}
	if booking.Guest != nil {
		dto.GuestName = booking.Guest.FullName()
	}
	return dto
}

func toDTOs(bookings []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, *NewBookingDTO(&bookings[i]))
	}
	return out
}
