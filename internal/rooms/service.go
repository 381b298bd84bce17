package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes room inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateRoomInput) (*RoomDTO, error)
	Update(ctx context.Context, roomNumber string, input UpdateRoomInput) (*RoomDTO, error)
	Delete(ctx context.Context, roomNumber string) error
	SetStatus(ctx context.Context, roomNumber string, status enums.RoomStatus) (*RoomDTO, error)
	Get(ctx context.Context, roomNumber string) (*RoomDTO, error)
	List(ctx context.Context) (*RoomListDTO, error)
	ListByStatus(ctx context.Context, status enums.RoomStatus) ([]RoomDTO, error)
}

// CreateRoomInput holds the validated payload to register a room.
type CreateRoomInput struct {
	RoomNumber    string
	RoomName      string
	RoomType      enums.RoomType
	Capacity      int
	PricePerNight decimal.Decimal
	Amenities     string
	Description   string
}

// UpdateRoomInput holds optional mutation values for a room.
type UpdateRoomInput struct {
	RoomName      *string
	RoomType      *enums.RoomType
	Capacity      *int
	PricePerNight *decimal.Decimal
	Amenities     *string
	Description   *string
}

type repository interface {
	FindByNumber(ctx context.Context, roomNumber string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) (*models.Room, error)
	Delete(ctx context.Context, roomNumber string) (bool, error)
	SetStatus(ctx context.Context, roomNumber string, status enums.RoomStatus) (bool, error)
	List(ctx context.Context) ([]models.Room, error)
	ListByStatus(ctx context.Context, status enums.RoomStatus) ([]models.Room, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}

type service struct {
	repo  repository
	clock clock.Clock
}

// NewService constructs a room inventory service.
func NewService(repo repository, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("room repository required")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk}, nil
}

// Create registers a room; duplicate room numbers map to CONFLICT.
func (s *service) Create(ctx context.Context, input CreateRoomInput) (*RoomDTO, error) {
	number := strings.TrimSpace(input.RoomNumber)
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room_number is required")
	}
	if input.Capacity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be at least 1")
	}
	if !input.RoomType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid room type")
	}
	if input.PricePerNight.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_night must not be negative")
	}

	name := strings.TrimSpace(input.RoomName)
	if name == "" {
		name = "standard"
	}

	room := &models.Room{
		RoomNumber:    number,
		RoomName:      name,
		RoomType:      input.RoomType,
		Capacity:      input.Capacity,
		PricePerNight: input.PricePerNight,
		Status:        enums.RoomStatusAvailable,
		Amenities:     input.Amenities,
		Description:   input.Description,
		CreatedAt:     s.clock.Now(),
	}
	if _, err := s.repo.Create(ctx, room); err != nil {
		if db.IsUniqueViolation(err, "room_number") || db.IsUniqueViolation(err, "rooms_pkey") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "room number already exists").
				WithDetails(map[string]string{"field": "room_number"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create room")
	}
	return NewRoomDTO(room), nil
}

// Update mutates room fields; NOT_FOUND when the room does not exist.
func (s *service) Update(ctx context.Context, roomNumber string, input UpdateRoomInput) (*RoomDTO, error) {
	room, err := s.loadRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	if input.Capacity != nil && *input.Capacity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be at least 1")
	}
	if input.RoomType != nil && !input.RoomType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid room type")
	}
	if input.PricePerNight != nil && input.PricePerNight.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_night must not be negative")
	}

	applyUpdateToRoom(room, input)
	if _, err := s.repo.Update(ctx, room); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room")
	}
	return NewRoomDTO(room), nil
}

// Delete removes the room and cascades its bookings, check-ins, and payments.
func (s *service) Delete(ctx context.Context, roomNumber string) error {
	matched, err := s.repo.Delete(ctx, roomNumber)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete room")
	}
	if !matched {
		return pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
	}
	return nil
}

// SetStatus writes the room status; NOT_FOUND when the room does not exist.
func (s *service) SetStatus(ctx context.Context, roomNumber string, status enums.RoomStatus) (*RoomDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid room status")
	}
	matched, err := s.repo.SetStatus(ctx, roomNumber, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set room status")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
	}
	return s.Get(ctx, roomNumber)
}

// Get loads a single room.
func (s *service) Get(ctx context.Context, roomNumber string) (*RoomDTO, error) {
	room, err := s.loadRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	return NewRoomDTO(room), nil
}

// List returns the full inventory with per-status totals.
func (s *service) List(ctx context.Context) (*RoomListDTO, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rooms")
	}
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count rooms")
	}
	return &RoomListDTO{
		Rooms:        toDTOs(rooms),
		Total:        counts.Total,
		Available:    counts.Available,
		Occupied:     counts.Occupied,
		Maintenance:  counts.Maintenance,
		OutOfService: counts.OutOfService,
	}, nil
}

// ListByStatus returns rooms with the requested status.
func (s *service) ListByStatus(ctx context.Context, status enums.RoomStatus) ([]RoomDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid room status")
	}
	rooms, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rooms by status")
	}
	return toDTOs(rooms), nil
}

func (s *service) loadRoom(ctx context.Context, roomNumber string) (*models.Room, error) {
	room, err := s.repo.FindByNumber(ctx, roomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	return room, nil
}

func applyUpdateToRoom(room *models.Room, input UpdateRoomInput) {
	if input.RoomName != nil {
		room.RoomName = strings.TrimSpace(*input.RoomName)
	}
	if input.RoomType != nil {
		room.RoomType = *input.RoomType
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.PricePerNight != nil {
		room.PricePerNight = *input.PricePerNight
	}
	if input.Amenities != nil {
		room.Amenities = *input.Amenities
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
}
