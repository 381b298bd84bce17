package payment

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// PaymentDTO is the ledger row shape returned by the API.
type PaymentDTO struct {
	PaymentID     string              `json:"payment_id"`
	BookingID     string              `json:"booking_id"`
	GuestID       string              `json:"guest_id"`
	GuestName     string              `json:"guest_name,omitempty"`
	RoomNumber    string              `json:"room_number,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Method        enums.PaymentMethod `json:"payment_method"`
	Status        enums.PaymentStatus `json:"payment_status"`
	Type          enums.PaymentType   `json:"payment_type"`
	TransactionID *string             `json:"transaction_id,omitempty"`
	PaymentDate   time.Time           `json:"payment_date"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	Description   string              `json:"description,omitempty"`
	CreatedBy     string              `json:"created_by,omitempty"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	BalanceDue    decimal.Decimal     `json:"balance_due"`
	Replayed      bool                `json:"replayed,omitempty"`
}

// BalanceDTO reports the running booking balance as of one payment.
type BalanceDTO struct {
	PaymentID    string          `json:"payment_id"`
	BookingID    string          `json:"booking_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidThrough  decimal.Decimal `json:"paid_through"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// NewPaymentDTO maps a ledger row; booking figures are filled when loaded.
func NewPaymentDTO(payment *models.Payment) *PaymentDTO {
	dto := &PaymentDTO{
		PaymentID:     payment.PaymentID,
		BookingID:     payment.BookingID,
		GuestID:       payment.GuestID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
		Type:          payment.Type,
		TransactionID: payment.TransactionID,
		PaymentDate:   payment.PaymentDate,
		DueDate:       payment.DueDate,
		Description:   payment.Description,
		CreatedBy:     payment.CreatedBy,
	}
	if payment.Booking != nil {
		dto.RoomNumber = payment.Booking.RoomNumber
		dto.AmountPaid = payment.Booking.AmountPaid
		dto.BalanceDue = payment.Booking.BalanceDue()
	}
	if payment.Guest != nil {
		dto.GuestName = payment.Guest.FullName()
	}
	return dto
}
