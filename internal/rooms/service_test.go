package room

import (
	"context"
	"testing"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo, clock.Fixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return svc
}

func TestCreateDuplicateRoomNumberConflicts(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	input := CreateRoomInput{
		RoomNumber:    "101",
		RoomType:      enums.RoomTypeDouble,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(120),
	}
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	require.Equal(t, enums.RoomStatusAvailable, created.Status)
	require.Equal(t, "standard", created.RoomName)

	_, err = svc.Create(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	cases := []CreateRoomInput{
		{RoomType: enums.RoomTypeSuite, Capacity: 1, PricePerNight: decimal.NewFromInt(1)},
		{RoomNumber: "102", RoomType: enums.RoomTypeSuite, Capacity: 0, PricePerNight: decimal.NewFromInt(1)},
		{RoomNumber: "103", RoomType: "penthouse", Capacity: 1, PricePerNight: decimal.NewFromInt(1)},
		{RoomNumber: "104", RoomType: enums.RoomTypeSuite, Capacity: 1, PricePerNight: decimal.NewFromInt(-5)},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "input %+v", input)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code(), "input %+v", input)
	}
}

func TestUpdateMissingRoomIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	name := "seaview"
	_, err := svc.Update(context.Background(), "nope", UpdateRoomInput{RoomName: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoomInput{
		RoomNumber:    "105",
		RoomType:      enums.RoomTypeFamily,
		Capacity:      4,
		PricePerNight: decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	price := decimal.NewFromInt(175)
	updated, err := svc.Update(ctx, "105", UpdateRoomInput{PricePerNight: &price})
	require.NoError(t, err)
	require.True(t, updated.PricePerNight.Equal(price))
	require.Equal(t, enums.RoomTypeFamily, updated.RoomType)
	require.Equal(t, 4, updated.Capacity)
}

func TestDeleteMissingRoomIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	err := svc.Delete(context.Background(), "nope")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSetStatusFlow(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoomInput{
		RoomNumber:    "106",
		RoomType:      enums.RoomTypeExecutive,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	room, err := svc.SetStatus(ctx, "106", enums.RoomStatusMaintenance)
	require.NoError(t, err)
	require.Equal(t, enums.RoomStatusMaintenance, room.Status)

	_, err = svc.SetStatus(ctx, "106", "renovating")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
