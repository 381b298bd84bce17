package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes reservation operations.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*BookingDTO, error)
	Cancel(ctx context.Context, bookingID string) (*BookingDTO, error)
	Get(ctx context.Context, bookingID string) (*BookingDTO, error)
	List(ctx context.Context, filter timefilter.Filter) ([]BookingDTO, error)
}

// CreateBookingInput holds the validated payload to create a reservation.
type CreateBookingInput struct {
	GuestID        string
	RoomNumber     string
	CheckInDate    time.Time
	CheckOutDate   time.Time
	NumberOfGuests int
	WalkIn         bool
}

type repository interface {
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindByIDWithGuest(ctx context.Context, bookingID string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID string, from, to enums.BookingStatus) (bool, error)
	List(ctx context.Context, filter timefilter.Filter, now time.Time) ([]models.Booking, error)
}

type roomLoader interface {
	FindByNumber(ctx context.Context, roomNumber string) (*models.Room, error)
}

type guestLoader interface {
	FindByID(ctx context.Context, guestID string) (*models.Guest, error)
}

type service struct {
	repo   repository
	rooms  roomLoader
	guests guestLoader
	clock  clock.Clock
}

// NewService constructs a booking service.
func NewService(repo repository, rooms roomLoader, guests guestLoader, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if rooms == nil {
		return nil, fmt.Errorf("room loader required")
	}
	if guests == nil {
		return nil, fmt.Errorf("guest loader required")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, rooms: rooms, guests: guests, clock: clk}, nil
}

// Nights returns the whole-day difference between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Create registers a reservation at the room's current nightly price.
func (s *service) Create(ctx context.Context, input CreateBookingInput) (*BookingDTO, error) {
	nights := Nights(input.CheckInDate, input.CheckOutDate)
	if nights <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stay length must be positive")
	}
	if input.NumberOfGuests < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number_of_guests must be at least 1")
	}

	guest, err := s.guests.FindByID(ctx, input.GuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest")
	}

	room, err := s.rooms.FindByNumber(ctx, input.RoomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	if input.NumberOfGuests > room.Capacity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number_of_guests exceeds room capacity")
	}

	status := enums.BookingStatusConfirmed
	if input.WalkIn {
		status = enums.BookingStatusCheckedIn
	}

	booking := &models.Booking{
		BookingID:      models.NewBookingID(),
		GuestID:        guest.GuestID,
		RoomNumber:     room.RoomNumber,
		RoomType:       room.RoomType,
		CheckInDate:    input.CheckInDate,
		CheckOutDate:   input.CheckOutDate,
		NumberOfGuests: input.NumberOfGuests,
		NumberOfNights: nights,
		TotalAmount:    room.PricePerNight.Mul(decimal.NewFromInt(int64(nights))),
		AmountPaid:     decimal.Zero,
		Status:         status,
		CreatedAt:      s.clock.Now(),
	}
	if _, err := s.repo.Create(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}
	booking.Guest = guest
	return NewBookingDTO(booking), nil
}

// Cancel voids a confirmed reservation. Checked-in, checked-out, and already
// cancelled bookings refuse the transition. Payments and the room are left
// untouched.
func (s *service) Cancel(ctx context.Context, bookingID string) (*BookingDTO, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.Status != enums.BookingStatusConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot cancel a booking in status %q", booking.Status))
	}

	flipped, err := s.repo.TransitionStatus(ctx, bookingID, enums.BookingStatusConfirmed, enums.BookingStatusCancelled)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel booking")
	}
	if !flipped {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking changed state concurrently")
	}

	booking.Status = enums.BookingStatusCancelled
	return NewBookingDTO(booking), nil
}

// Get loads a single booking with its guest.
func (s *service) Get(ctx context.Context, bookingID string) (*BookingDTO, error) {
	booking, err := s.repo.FindByIDWithGuest(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return NewBookingDTO(booking), nil
}

// List returns bookings under the creation-time filter, newest first.
func (s *service) List(ctx context.Context, filter timefilter.Filter) ([]BookingDTO, error) {
	if !filter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid time filter")
	}
	bookings, err := s.repo.List(ctx, filter, s.clock.Now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return toDTOs(bookings), nil
}
