package frontdesk

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CheckInDTO is the arrival record shape returned by the API.
type CheckInDTO struct {
	CheckInID        string            `json:"check_in_id"`
	BookingID        string            `json:"booking_id"`
	GuestID          string            `json:"guest_id"`
	GuestName        string            `json:"guest_name,omitempty"`
	RoomNumber       string            `json:"room_number"`
	ActualCheckIn    time.Time         `json:"actual_check_in"`
	ExpectedCheckOut time.Time         `json:"expected_check_out"`
	ActualCheckOut   *time.Time        `json:"actual_check_out,omitempty"`
	NumberOfGuests   int               `json:"number_of_guests"`
	IDProofType      enums.IDProofType `json:"id_proof_type"`
	IsCheckedOut     bool              `json:"is_checked_out"`
}

// CheckOutDTO summarizes a completed departure.
type CheckOutDTO struct {
	CheckInID      string          `json:"check_in_id"`
	BookingID      string          `json:"booking_id"`
	RoomNumber     string          `json:"room_number"`
	ActualCheckOut time.Time       `json:"actual_check_out"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
}

// BillDTO carries both the elapsed-stay figure and the booking's stored
// amounts; the desk decides which one to settle against.
type BillDTO struct {
	CheckInID         string          `json:"check_in_id"`
	BookingID         string          `json:"booking_id"`
	GuestID           string          `json:"guest_id"`
	GuestName         string          `json:"guest_name,omitempty"`
	RoomNumber        string          `json:"room_number"`
	PricePerNight     decimal.Decimal `json:"price_per_night"`
	ActualCheckIn     time.Time       `json:"actual_check_in"`
	NightsStayed      int             `json:"nights_stayed"`
	ElapsedStayTotal  decimal.Decimal `json:"elapsed_stay_total"`
	BookedTotalAmount decimal.Decimal `json:"booked_total_amount"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	BalanceDue        decimal.Decimal `json:"balance_due"`
}

func newCheckInDTO(checkIn *models.CheckIn, booking *models.Booking, guest *models.Guest) *CheckInDTO {
	dto := &CheckInDTO{
		CheckInID:        checkIn.CheckInID,
		BookingID:        checkIn.BookingID,
		ActualCheckIn:    checkIn.ActualCheckIn,
		ExpectedCheckOut: checkIn.ExpectedCheckOut,
		ActualCheckOut:   checkIn.ActualCheckOut,
		NumberOfGuests:   checkIn.NumberOfGuests,
		IDProofType:      checkIn.IDProofType,
		IsCheckedOut:     checkIn.IsCheckedOut,
	}
	if booking != nil {
		dto.RoomNumber = booking.RoomNumber
		dto.GuestID = booking.GuestID
	}
	if guest != nil {
		dto.GuestName = guest.FullName()
	}
	return dto
}
