package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	payment "github.com/harborview-hotels/frontdesk-backend/internal/payments"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:exports_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Guest{}, &models.Room{}, &models.Booking{}, &models.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(booking.NewRepository(conn), payment.NewRepository(conn), clock.Fixed(fixedNow))
	require.NoError(t, err)
	return svc, conn
}

func seedLedger(t *testing.T, conn *gorm.DB, createdAt time.Time) (*models.Booking, *models.Payment) {
	t.Helper()
	g := &models.Guest{
		GuestID:   models.NewGuestID(),
		FirstName: "Iris",
		LastName:  "Vale",
		Email:     uuid.NewString() + "@example.com",
		Phone:     "+1555" + uuid.NewString()[:7],
		IsActive:  true,
	}
	require.NoError(t, conn.Create(g).Error)

	roomNumber := "E" + uuid.NewString()[:8]
	require.NoError(t, conn.Create(&models.Room{
		RoomNumber:    roomNumber,
		RoomName:      "standard",
		RoomType:      enums.RoomTypeStandard,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(100),
		Status:        enums.RoomStatusOccupied,
	}).Error)

	b := &models.Booking{
		BookingID:      models.NewBookingID(),
		GuestID:        g.GuestID,
		RoomNumber:     roomNumber,
		RoomType:       enums.RoomTypeStandard,
		CheckInDate:    createdAt,
		CheckOutDate:   createdAt.AddDate(0, 0, 2),
		NumberOfGuests: 1,
		NumberOfNights: 2,
		TotalAmount:    decimal.NewFromInt(200),
		AmountPaid:     decimal.NewFromInt(50),
		Status:         enums.BookingStatusCheckedIn,
		CreatedAt:      createdAt,
	}
	require.NoError(t, conn.Create(b).Error)

	p := &models.Payment{
		PaymentID:   models.NewPaymentID(),
		BookingID:   b.BookingID,
		GuestID:     g.GuestID,
		Amount:      decimal.NewFromInt(50),
		Method:      enums.PaymentMethodCard,
		Status:      enums.PaymentStatusCompleted,
		Type:        enums.PaymentTypeAdvance,
		PaymentDate: createdAt,
		CreatedBy:   "desk",
		CreatedAt:   createdAt,
	}
	require.NoError(t, conn.Create(p).Error)
	return b, p
}

func TestWriteBookingsCSV(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	b, _ := seedLedger(t, conn, fixedNow.Add(-time.Hour))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteBookingsCSV(context.Background(), &buf, timefilter.All))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, bookingHeader, records[0])

	row := records[1]
	require.Equal(t, b.BookingID, row[0])
	require.Equal(t, "Iris Vale", row[1])
	require.Equal(t, b.GuestID, row[2])
	require.Equal(t, b.RoomNumber, row[3])
	require.Equal(t, "standard", row[4])
	require.Equal(t, "2", row[7])
	require.Equal(t, "200.00", row[8])
	require.Equal(t, "50.00", row[9])
	require.Equal(t, "150.00", row[10])
	require.Equal(t, "checked_in", row[11])
}

func TestWritePaymentsCSV(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	_, p := seedLedger(t, conn, fixedNow.Add(-time.Hour))

	var buf bytes.Buffer
	require.NoError(t, svc.WritePaymentsCSV(context.Background(), &buf, timefilter.All))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, paymentHeader, records[0])

	row := records[1]
	require.Equal(t, p.PaymentID, row[0])
	require.Equal(t, p.BookingID, row[1])
	require.Equal(t, "Iris Vale", row[3])
	require.Equal(t, "50.00", row[4])
	require.Equal(t, "card", row[5])
	require.Equal(t, "completed", row[6])
	require.Equal(t, "desk", row[9])
}

func TestExportsHonorTimeFilter(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	seedLedger(t, conn, fixedNow.Add(-time.Hour))
	seedLedger(t, conn, fixedNow.AddDate(0, 0, -45))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteBookingsCSV(context.Background(), &buf, timefilter.Week))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	buf.Reset()
	require.NoError(t, svc.WriteBookingsCSV(context.Background(), &buf, timefilter.All))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestExportRejectsInvalidFilter(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	var buf bytes.Buffer
	err := svc.WriteBookingsCSV(context.Background(), &buf, timefilter.Filter("fortnight"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAttachmentName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "bookings_2024-06-01.csv", AttachmentName("bookings", fixedNow))
}
