package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"time"

	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	guest "github.com/harborview-hotels/frontdesk-backend/internal/guests"
	room "github.com/harborview-hotels/frontdesk-backend/internal/rooms"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service drives the check-in/check-out desk workflow.
type Service interface {
	CheckIn(ctx context.Context, input CheckInInput) (*CheckInDTO, error)
	CheckInFromBooking(ctx context.Context, bookingID string, input ArrivalInput) (*CheckInDTO, error)
	CheckOut(ctx context.Context, roomNumber string) (*CheckOutDTO, error)
	ComputeBill(ctx context.Context, roomNumber string) (*BillDTO, error)
}

// CheckInInput is the walk-in arrival payload: guest details plus stay terms.
// A zero CheckInDate means the stay starts today.
type CheckInInput struct {
	Email          string
	FirstName      string
	LastName       string
	Phone          string
	RoomNumber     string
	CheckInDate    time.Time
	CheckOutDate   time.Time
	NumberOfGuests int
	IDProofType    enums.IDProofType
	IDProofNumber  string
}

// ArrivalInput carries the desk-captured fields when an existing reservation
// arrives.
type ArrivalInput struct {
	NumberOfGuests int
	IDProofType    enums.IDProofType
	IDProofNumber  string
}

type guestResolver interface {
	FindOrCreate(ctx context.Context, input guest.FindOrCreateInput) (*guest.GuestDTO, error)
}

type bookingNotifier interface {
	BookingConfirmed(ctx context.Context, guestName, guestEmail string, booking *models.Booking) error
}

type service struct {
	dbClient *db.Client
	checkIns *Repository
	rooms    *room.Repository
	bookings *booking.Repository
	guests   guestResolver
	notifier bookingNotifier
	logg     *logger.Logger
	clock    clock.Clock
}

// ServiceParams bundles the dependencies required to build the desk service.
type ServiceParams struct {
	DBClient *db.Client
	CheckIns *Repository
	Rooms    *room.Repository
	Bookings *booking.Repository
	Guests   guestResolver
	Notifier bookingNotifier
	Logger   *logger.Logger
	Clock    clock.Clock
}

// NewService constructs the front-desk workflow service.
func NewService(params ServiceParams) (Service, error) {
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.CheckIns == nil {
		return nil, fmt.Errorf("check-in repository required")
	}
	if params.Rooms == nil {
		return nil, fmt.Errorf("room repository required")
	}
	if params.Bookings == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if params.Guests == nil {
		return nil, fmt.Errorf("guest resolver required")
	}
	if params.Clock == nil {
		params.Clock = clock.System()
	}
	return &service{
		dbClient: params.DBClient,
		checkIns: params.CheckIns,
		rooms:    params.Rooms,
		bookings: params.Bookings,
		guests:   params.Guests,
		notifier: params.Notifier,
		logg:     params.Logger,
		clock:    params.Clock,
	}, nil
}

// CheckIn processes a walk-in arrival. The room flip, booking, and check-in
// row commit in one transaction; a lost race on the room claim leaves no
// side effects behind.
func (s *service) CheckIn(ctx context.Context, input CheckInInput) (*CheckInDTO, error) {
	now := s.clock.Now()
	checkInDate := input.CheckInDate
	if checkInDate.IsZero() {
		checkInDate = now
	}
	stayStart := startOfDay(checkInDate)
	stayEnd := startOfDay(input.CheckOutDate)
	nights := booking.Nights(stayStart, stayEnd)
	if nights <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stay length must be positive")
	}
	if input.NumberOfGuests < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number_of_guests must be at least 1")
	}
	if !input.IDProofType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id proof type")
	}
	if input.IDProofNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id_proof_number is required")
	}

	resolvedGuest, err := s.guests.FindOrCreate(ctx, guest.FindOrCreateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		return nil, err
	}

	roomRow, err := s.loadRoom(ctx, input.RoomNumber)
	if err != nil {
		return nil, err
	}
	if input.NumberOfGuests > roomRow.Capacity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number_of_guests exceeds room capacity")
	}

	var (
		bookingRow *models.Booking
		checkInRow *models.CheckIn
	)
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		claimed, err := s.rooms.WithTx(tx).ClaimForOccupancy(ctx, roomRow.RoomNumber)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim room")
		}
		if !claimed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "room not available")
		}

		bookingRow = &models.Booking{
			BookingID:      models.NewBookingID(),
			GuestID:        resolvedGuest.GuestID,
			RoomNumber:     roomRow.RoomNumber,
			RoomType:       roomRow.RoomType,
			CheckInDate:    stayStart,
			CheckOutDate:   stayEnd,
			NumberOfGuests: input.NumberOfGuests,
			NumberOfNights: nights,
			TotalAmount:    roomRow.PricePerNight.Mul(decimal.NewFromInt(int64(nights))),
			AmountPaid:     decimal.Zero,
			Status:         enums.BookingStatusCheckedIn,
			CreatedAt:      now,
		}
		if _, err := s.bookings.WithTx(tx).Create(ctx, bookingRow); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}

		checkInRow = &models.CheckIn{
			CheckInID:        models.NewCheckInID(),
			BookingID:        bookingRow.BookingID,
			ActualCheckIn:    now,
			ExpectedCheckOut: stayEnd,
			NumberOfGuests:   input.NumberOfGuests,
			IDProofType:      input.IDProofType,
			IDProofNumber:    input.IDProofNumber,
			CreatedAt:        now,
		}
		if _, err := s.checkIns.WithTx(tx).Create(ctx, checkInRow); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create check-in")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check in")
	}

	s.sendConfirmation(ctx, resolvedGuest.FirstName+" "+resolvedGuest.LastName, resolvedGuest.Email, bookingRow)

	return newCheckInDTO(checkInRow, bookingRow, &models.Guest{
		FirstName: resolvedGuest.FirstName,
		LastName:  resolvedGuest.LastName,
	}), nil
}

// CheckInFromBooking converts a confirmed reservation into an occupied stay.
func (s *service) CheckInFromBooking(ctx context.Context, bookingID string, input ArrivalInput) (*CheckInDTO, error) {
	if !input.IDProofType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id proof type")
	}
	if input.IDProofNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id_proof_number is required")
	}

	bookingRow, err := s.bookings.FindByIDWithGuest(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if bookingRow.Status != enums.BookingStatusConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot check in a booking in status %q", bookingRow.Status))
	}

	guests := input.NumberOfGuests
	if guests < 1 {
		guests = bookingRow.NumberOfGuests
	}

	now := s.clock.Now()
	var checkInRow *models.CheckIn
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		claimed, err := s.rooms.WithTx(tx).ClaimForOccupancy(ctx, bookingRow.RoomNumber)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim room")
		}
		if !claimed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "room not available")
		}

		flipped, err := s.bookings.WithTx(tx).TransitionStatus(ctx, bookingRow.BookingID,
			enums.BookingStatusConfirmed, enums.BookingStatusCheckedIn)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
		}
		if !flipped {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "booking changed state concurrently")
		}

		checkInRow = &models.CheckIn{
			CheckInID:        models.NewCheckInID(),
			BookingID:        bookingRow.BookingID,
			ActualCheckIn:    now,
			ExpectedCheckOut: bookingRow.CheckOutDate,
			NumberOfGuests:   guests,
			IDProofType:      input.IDProofType,
			IDProofNumber:    input.IDProofNumber,
			CreatedAt:        now,
		}
		if _, err := s.checkIns.WithTx(tx).Create(ctx, checkInRow); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create check-in")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check in from booking")
	}

	bookingRow.Status = enums.BookingStatusCheckedIn
	return newCheckInDTO(checkInRow, bookingRow, bookingRow.Guest), nil
}

// CheckOut closes the room's open stay: check-in closed, booking checked out,
// room back to available, all in one transaction.
func (s *service) CheckOut(ctx context.Context, roomNumber string) (*CheckOutDTO, error) {
	now := s.clock.Now()
	var (
		checkInRow *models.CheckIn
		bookingRow *models.Booking
	)
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		checkInRow, err = s.checkIns.WithTx(tx).FindOpenByRoom(ctx, roomNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no open check-in for room")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find open check-in")
		}

		closed, err := s.checkIns.WithTx(tx).Close(ctx, checkInRow.CheckInID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close check-in")
		}
		if !closed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "check-in already closed")
		}

		if _, err := s.bookings.WithTx(tx).SetStatus(ctx, checkInRow.BookingID, enums.BookingStatusCheckedOut); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
		}
		if _, err := s.rooms.WithTx(tx).SetStatus(ctx, roomNumber, enums.RoomStatusAvailable); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release room")
		}

		bookingRow, err = s.bookings.WithTx(tx).FindByID(ctx, checkInRow.BookingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check out")
	}

	return &CheckOutDTO{
		CheckInID:      checkInRow.CheckInID,
		BookingID:      bookingRow.BookingID,
		RoomNumber:     roomNumber,
		ActualCheckOut: now,
		TotalAmount:    bookingRow.TotalAmount,
		AmountPaid:     bookingRow.AmountPaid,
		BalanceDue:     bookingRow.BalanceDue(),
	}, nil
}

// ComputeBill prices the in-progress stay without mutating anything. A guest
// always owes at least one night once checked in.
func (s *service) ComputeBill(ctx context.Context, roomNumber string) (*BillDTO, error) {
	checkInRow, err := s.checkIns.FindOpenByRoom(ctx, roomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open check-in for room")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find open check-in")
	}

	bookingRow, err := s.bookings.FindByIDWithGuest(ctx, checkInRow.BookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	roomRow, err := s.loadRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	nights := booking.Nights(checkInRow.ActualCheckIn, s.clock.Now())
	if nights < 1 {
		nights = 1
	}

	dto := &BillDTO{
		CheckInID:         checkInRow.CheckInID,
		BookingID:         bookingRow.BookingID,
		GuestID:           bookingRow.GuestID,
		RoomNumber:        roomNumber,
		PricePerNight:     roomRow.PricePerNight,
		ActualCheckIn:     checkInRow.ActualCheckIn,
		NightsStayed:      nights,
		ElapsedStayTotal:  roomRow.PricePerNight.Mul(decimal.NewFromInt(int64(nights))),
		BookedTotalAmount: bookingRow.TotalAmount,
		AmountPaid:        bookingRow.AmountPaid,
		BalanceDue:        bookingRow.BalanceDue(),
	}
	if bookingRow.Guest != nil {
		dto.GuestName = bookingRow.Guest.FullName()
	}
	return dto, nil
}

func (s *service) loadRoom(ctx context.Context, roomNumber string) (*models.Room, error) {
	roomRow, err := s.rooms.FindByNumber(ctx, roomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	return roomRow, nil
}

// sendConfirmation is best-effort: a mail failure never fails the check-in.
func (s *service) sendConfirmation(ctx context.Context, guestName, guestEmail string, bookingRow *models.Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BookingConfirmed(ctx, guestName, guestEmail, bookingRow); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithBookingID(ctx, bookingRow.BookingID), "booking confirmation email failed")
	}
}

// startOfDay normalizes to the UTC calendar date so night counts never shift
// with the server's zone.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
