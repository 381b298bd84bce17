package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	payment "github.com/harborview-hotels/frontdesk-backend/internal/payments"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
)

const dateLayout = "2006-01-02"

var bookingHeader = []string{
	"booking_id", "guest_name", "guest_id", "room_number", "room_type",
	"check_in_date", "check_out_date", "nights", "total_amount", "amount_paid",
	"balance_due", "status", "booked_at",
}

var paymentHeader = []string{
	"payment_id", "booking_id", "guest_id", "guest_name", "amount",
	"payment_method", "payment_status", "payment_type", "payment_date",
	"created_by",
}

// Service streams ledger data as CSV attachments.
type Service interface {
	WriteBookingsCSV(ctx context.Context, w io.Writer, filter timefilter.Filter) error
	WritePaymentsCSV(ctx context.Context, w io.Writer, filter timefilter.Filter) error
}

type service struct {
	bookings *booking.Repository
	payments *payment.Repository
	clock    clock.Clock
}

// NewService constructs the CSV export service.
func NewService(bookings *booking.Repository, payments *payment.Repository, clk clock.Clock) (Service, error) {
	if bookings == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{bookings: bookings, payments: payments, clock: clk}, nil
}

// WriteBookingsCSV streams the booking ledger under the time filter.
func (s *service) WriteBookingsCSV(ctx context.Context, w io.Writer, filter timefilter.Filter) error {
	if !filter.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid time filter")
	}
	rows, err := s.bookings.List(ctx, filter, s.clock.Now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(bookingHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for i := range rows {
		b := &rows[i]
		guestName := ""
		if b.Guest != nil {
			guestName = b.Guest.FullName()
		}
		record := []string{
			b.BookingID,
			guestName,
			b.GuestID,
			b.RoomNumber,
			b.RoomType.String(),
			b.CheckInDate.Format(dateLayout),
			b.CheckOutDate.Format(dateLayout),
			fmt.Sprintf("%d", b.NumberOfNights),
			b.TotalAmount.StringFixed(2),
			b.AmountPaid.StringFixed(2),
			b.BalanceDue().StringFixed(2),
			b.Status.String(),
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

// WritePaymentsCSV streams the payment ledger under the time filter.
func (s *service) WritePaymentsCSV(ctx context.Context, w io.Writer, filter timefilter.Filter) error {
	if !filter.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid time filter")
	}
	rows, err := s.payments.List(ctx, filter, s.clock.Now(), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(paymentHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for i := range rows {
		p := &rows[i]
		guestName := ""
		if p.Guest != nil {
			guestName = p.Guest.FullName()
		}
		record := []string{
			p.PaymentID,
			p.BookingID,
			p.GuestID,
			guestName,
			p.Amount.StringFixed(2),
			p.Method.String(),
			p.Status.String(),
			p.Type.String(),
			p.PaymentDate.Format(time.RFC3339),
			p.CreatedBy,
		}
		if err := cw.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

// AttachmentName builds the download filename for a dataset.
func AttachmentName(dataset string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", dataset, now.Format(dateLayout))
}
