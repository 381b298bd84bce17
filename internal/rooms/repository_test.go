package room

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:rooms_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Room{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, number string, status enums.RoomStatus) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:    number,
		RoomName:      "standard",
		RoomType:      enums.RoomTypeStandard,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(100),
		Status:        status,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func TestClaimForOccupancy(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoom(t, db, "101", enums.RoomStatusAvailable)

	claimed, err := repo.ClaimForOccupancy(ctx, "101")
	require.NoError(t, err)
	require.True(t, claimed)

	// Second claim sees an occupied room and must not match.
	claimed, err = repo.ClaimForOccupancy(ctx, "101")
	require.NoError(t, err)
	require.False(t, claimed)

	room, err := repo.FindByNumber(ctx, "101")
	require.NoError(t, err)
	require.Equal(t, enums.RoomStatusOccupied, room.Status)
}

func TestClaimForOccupancySkipsMaintenance(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoom(t, db, "201", enums.RoomStatusMaintenance)

	claimed, err := repo.ClaimForOccupancy(ctx, "201")
	require.NoError(t, err)
	require.False(t, claimed)

	room, err := repo.FindByNumber(ctx, "201")
	require.NoError(t, err)
	require.Equal(t, enums.RoomStatusMaintenance, room.Status)
}

func TestListOrderingAndStatusCounts(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoom(t, db, "300", enums.RoomStatusOccupied)
	seedRoom(t, db, "102", enums.RoomStatusAvailable)
	seedRoom(t, db, "205", enums.RoomStatusAvailable)
	seedRoom(t, db, "104", enums.RoomStatusOutOfService)

	rooms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 4)
	require.Equal(t, "102", rooms[0].RoomNumber)
	require.Equal(t, "300", rooms[3].RoomNumber)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 4, counts.Total)
	require.EqualValues(t, 2, counts.Available)
	require.EqualValues(t, 1, counts.Occupied)
	require.EqualValues(t, 1, counts.OutOfService)

	available, err := repo.ListByStatus(ctx, enums.RoomStatusAvailable)
	require.NoError(t, err)
	require.Len(t, available, 2)
}

func TestSetStatusAndDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoom(t, db, "401", enums.RoomStatusAvailable)

	matched, err := repo.SetStatus(ctx, "401", enums.RoomStatusMaintenance)
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = repo.SetStatus(ctx, "999", enums.RoomStatusMaintenance)
	require.NoError(t, err)
	require.False(t, matched)

	deleted, err := repo.Delete(ctx, "401")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, "401")
	require.NoError(t, err)
	require.False(t, deleted)
}
