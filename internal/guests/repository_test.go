package guest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/harborview-hotels/frontdesk-backend/pkg/pagination"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:guests_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Guest{}, &models.Room{}, &models.Booking{}, &models.CheckIn{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedGuest(t *testing.T, db *gorm.DB, first, last, email, phone string) *models.Guest {
	t.Helper()
	guest := &models.Guest{
		GuestID:   models.NewGuestID(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		IsActive:  true,
	}
	require.NoError(t, db.Create(guest).Error)
	return guest
}

func TestSearchOrderingAndCaseInsensitivity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedGuest(t, db, "Zara", "Smithson", "zara@example.com", "+15550000001")
	seedGuest(t, db, "Alan", "Smith", "alan@example.com", "+15550000002")
	seedGuest(t, db, "Bea", "Smith", "bea@example.com", "+15550000003")
	seedGuest(t, db, "Carol", "Jones", "carol@example.com", "+15550000004")

	results, err := repo.Search(ctx, "SMITH")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// (last_name, first_name) ordering
	require.Equal(t, "Alan", results[0].FirstName)
	require.Equal(t, "Bea", results[1].FirstName)
	require.Equal(t, "Smithson", results[2].LastName)
}

func TestSearchMatchesPhoneAndGuestID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	guest := seedGuest(t, db, "Dana", "Lee", "dana@example.com", "+15557778888")

	byPhone, err := repo.Search(ctx, "7778")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)

	byID, err := repo.Search(ctx, guest.GuestID[3:9])
	require.NoError(t, err)
	require.Len(t, byID, 1)
	require.Equal(t, guest.GuestID, byID[0].GuestID)
}

func TestSetActiveAndVIPReportMatch(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	guest := seedGuest(t, db, "Eli", "Ng", "eli@example.com", "+15550000005")

	matched, err := repo.SetActive(ctx, guest.GuestID, false)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = repo.SetVIP(ctx, guest.GuestID, true)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = repo.SetActive(ctx, "CLT000000000000", false)
	require.NoError(t, err)
	require.False(t, matched)

	reloaded, err := repo.FindByID(ctx, guest.GuestID)
	require.NoError(t, err)
	require.False(t, reloaded.IsActive)
	require.True(t, reloaded.IsVIP)
}

func TestListHonorsTimeFilter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	recent := seedGuest(t, db, "Fay", "Ortiz", "fay@example.com", "+15550000006")
	old := seedGuest(t, db, "Gus", "Price", "gus@example.com", "+15550000007")
	require.NoError(t, db.Model(&models.Guest{}).
		Where("guest_id = ?", old.GuestID).
		Update("created_at", now.AddDate(0, 0, -45)).Error)

	all, err := repo.List(ctx, listQuery{filter: timefilter.All, now: now, limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)

	month, err := repo.List(ctx, listQuery{filter: timefilter.Month, now: now, limit: 10})
	require.NoError(t, err)
	require.Len(t, month, 1)
	require.Equal(t, recent.GuestID, month[0].GuestID)
}

func TestListCursorWalksPages(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	ids := make([]string, 0, 3)
	for i, email := range []string{"one@example.com", "two@example.com", "three@example.com"} {
		g := seedGuest(t, db, "Guest", "Page", email, "+1555000100"+string(rune('0'+i)))
		require.NoError(t, db.Model(&models.Guest{}).
			Where("guest_id = ?", g.GuestID).
			Update("created_at", now.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, g.GuestID)
	}

	firstPage, err := repo.List(ctx, listQuery{filter: timefilter.All, now: now, limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	require.Equal(t, ids[2], firstPage[0].GuestID)

	cursor := &pagination.Cursor{CreatedAt: firstPage[1].CreatedAt, ID: firstPage[1].GuestID}
	secondPage, err := repo.List(ctx, listQuery{filter: timefilter.All, now: now, limit: 2, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	require.Equal(t, ids[0], secondPage[0].GuestID)
}

func TestStatsCountsBookingsAndLastCheckIn(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	guest := seedGuest(t, db, "Hana", "Kim", "hana@example.com", "+15550000008")
	room := &models.Room{
		RoomNumber:    "101",
		RoomName:      "standard",
		RoomType:      enums.RoomTypeStandard,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(100),
		Status:        enums.RoomStatusAvailable,
	}
	require.NoError(t, db.Create(room).Error)

	booking := &models.Booking{
		BookingID:      models.NewBookingID(),
		GuestID:        guest.GuestID,
		RoomNumber:     room.RoomNumber,
		RoomType:       room.RoomType,
		CheckInDate:    time.Now().AddDate(0, 0, -2),
		CheckOutDate:   time.Now(),
		NumberOfGuests: 1,
		NumberOfNights: 2,
		TotalAmount:    decimal.NewFromInt(200),
		AmountPaid:     decimal.Zero,
		Status:         enums.BookingStatusCheckedIn,
	}
	require.NoError(t, db.Create(booking).Error)

	arrival := time.Now().Add(-30 * time.Hour).UTC().Truncate(time.Second)
	checkIn := &models.CheckIn{
		CheckInID:        models.NewCheckInID(),
		BookingID:        booking.BookingID,
		ActualCheckIn:    arrival,
		ExpectedCheckOut: arrival.Add(48 * time.Hour),
		NumberOfGuests:   1,
		IDProofType:      enums.IDProofTypeAadhaar,
		IDProofNumber:    "1234-5678",
	}
	require.NoError(t, db.Create(checkIn).Error)

	stats, err := repo.Stats(ctx, guest.GuestID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.BookingCount)
	require.NotNil(t, stats.LastCheckIn)
	require.WithinDuration(t, arrival, *stats.LastCheckIn, time.Second)
}
