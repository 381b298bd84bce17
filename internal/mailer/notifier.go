package mailer

import (
	"context"
	"fmt"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
)

const bookingDateLayout = "Mon, 02 Jan 2006"

// Notifier composes guest-facing notifications on top of a Mailer transport.
type Notifier struct {
	mailer    Mailer
	hotelName string
}

// NewNotifier builds a notifier for the named hotel.
func NewNotifier(m Mailer, hotelName string) (*Notifier, error) {
	if m == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if hotelName == "" {
		hotelName = "the hotel"
	}
	return &Notifier{mailer: m, hotelName: hotelName}, nil
}

// BookingConfirmed sends the stay confirmation with room, dates, and total.
func (n *Notifier) BookingConfirmed(ctx context.Context, guestName, guestEmail string, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking required")
	}
	checkIn := booking.CheckInDate.Format(bookingDateLayout)
	checkOut := booking.CheckOutDate.Format(bookingDateLayout)
	total := booking.TotalAmount.StringFixed(2)

	subject := fmt.Sprintf("Booking %s confirmed at %s", booking.BookingID, n.hotelName)
	text := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s is confirmed.\n\nRoom: %s\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: %s\n\nWe look forward to welcoming you.\n%s",
		guestName, booking.BookingID, booking.RoomNumber, checkIn, checkOut,
		booking.NumberOfNights, total, n.hotelName,
	)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your booking <b>%s</b> is confirmed.</p><ul><li>Room: %s</li><li>Check-in: %s</li><li>Check-out: %s</li><li>Nights: %d</li><li>Total: %s</li></ul><p>We look forward to welcoming you.<br>%s</p>",
		guestName, booking.BookingID, booking.RoomNumber, checkIn, checkOut,
		booking.NumberOfNights, total, n.hotelName,
	)

	return n.mailer.Send(ctx, Message{
		ToName:  guestName,
		ToEmail: guestEmail,
		Subject: subject,
		Text:    text,
		HTML:    html,
	})
}
