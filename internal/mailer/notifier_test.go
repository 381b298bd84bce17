package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	sent []Message
}

func (c *captureMailer) Send(_ context.Context, msg Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

func TestBookingConfirmedComposesStayDetails(t *testing.T) {
	t.Parallel()

	capture := &captureMailer{}
	notifier, err := NewNotifier(capture, "Harborview Hotel")
	require.NoError(t, err)

	booking := &models.Booking{
		BookingID:      "BKG1234567890AB",
		RoomNumber:     "204",
		RoomType:       enums.RoomTypeSuite,
		CheckInDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		NumberOfNights: 2,
		TotalAmount:    decimal.NewFromInt(380),
	}
	require.NoError(t, notifier.BookingConfirmed(context.Background(), "Ravi Patel", "ravi@example.com", booking))

	require.Len(t, capture.sent, 1)
	msg := capture.sent[0]
	require.Equal(t, "ravi@example.com", msg.ToEmail)
	require.Contains(t, msg.Subject, "BKG1234567890AB")
	require.Contains(t, msg.Text, "Room: 204")
	require.Contains(t, msg.Text, "Sat, 01 Jun 2024")
	require.Contains(t, msg.Text, "Mon, 03 Jun 2024")
	require.Contains(t, msg.Text, "Total: 380.00")
	require.Contains(t, msg.HTML, "<b>BKG1234567890AB</b>")
}

func TestBookingConfirmedRequiresBooking(t *testing.T) {
	t.Parallel()

	notifier, err := NewNotifier(&captureMailer{}, "")
	require.NoError(t, err)
	require.Error(t, notifier.BookingConfirmed(context.Background(), "A", "a@example.com", nil))
}

func TestFromConfigSelectsTransport(t *testing.T) {
	t.Parallel()

	logMailer, err := FromConfig(config.MailConfig{Provider: "log"}, nil)
	require.NoError(t, err)
	require.IsType(t, &LogMailer{}, logMailer)

	ms, err := FromConfig(config.MailConfig{
		Provider:         "mailersend",
		FromEmail:        "desk@harborview.test",
		MailerSendAPIKey: "key",
	}, nil)
	require.NoError(t, err)
	require.IsType(t, &MailerSend{}, ms)

	smtpMailer, err := FromConfig(config.MailConfig{
		Provider:  "smtp",
		FromEmail: "desk@harborview.test",
		SMTPHost:  "localhost",
		SMTPPort:  1025,
	}, nil)
	require.NoError(t, err)
	require.IsType(t, &SMTP{}, smtpMailer)

	_, err = FromConfig(config.MailConfig{Provider: "pigeon"}, nil)
	require.Error(t, err)

	_, err = FromConfig(config.MailConfig{Provider: "mailersend"}, nil)
	require.Error(t, err)
}
