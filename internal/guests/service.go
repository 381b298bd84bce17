package guest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/pagination"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"gorm.io/gorm"
)

// Service exposes guest registry operations.
type Service interface {
	FindOrCreate(ctx context.Context, input FindOrCreateInput) (*GuestDTO, error)
	SetActive(ctx context.Context, guestID string, active bool) (*GuestDTO, error)
	SetVIP(ctx context.Context, guestID string, vip bool) (*GuestDTO, error)
	Search(ctx context.Context, query string) ([]GuestDTO, error)
	Get(ctx context.Context, guestID string) (*GuestDetailDTO, error)
	List(ctx context.Context, filter timefilter.Filter, page pagination.Params) (*GuestListDTO, error)
}

// FindOrCreateInput is the registry resolution payload.
type FindOrCreateInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type repository interface {
	FindByID(ctx context.Context, guestID string) (*models.Guest, error)
	FindByEmail(ctx context.Context, email string) (*models.Guest, error)
	Create(ctx context.Context, guest *models.Guest) (*models.Guest, error)
	Update(ctx context.Context, guest *models.Guest) (*models.Guest, error)
	SetActive(ctx context.Context, guestID string, active bool) (bool, error)
	SetVIP(ctx context.Context, guestID string, vip bool) (bool, error)
	Search(ctx context.Context, query string) ([]models.Guest, error)
	List(ctx context.Context, opts listQuery) ([]models.Guest, error)
	Stats(ctx context.Context, guestID string) (*GuestStats, error)
}

type service struct {
	repo  repository
	clock clock.Clock
}

// NewService constructs a guest registry service.
func NewService(repo repository, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("guest repository required")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk}, nil
}

// FindOrCreate resolves a guest by email, refreshing name/phone in place, or
// registers a new guest with a freshly minted id. Repeated calls with the same
// email return the same guest id.
func (s *service) FindOrCreate(ctx context.Context, input FindOrCreateInput) (*GuestDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	phone := strings.TrimSpace(input.Phone)
	if firstName == "" || lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name and last_name are required")
	}
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup guest")
	}

	if existing != nil {
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.Phone = phone
		if input.Address != "" {
			existing.Address = strings.TrimSpace(input.Address)
		}
		if _, err := s.repo.Update(ctx, existing); err != nil {
			if db.IsUniqueViolation(err, "phone") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered to another guest").
					WithDetails(map[string]string{"field": "phone"})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update guest")
		}
		return NewGuestDTO(existing), nil
	}

	guest := &models.Guest{
		GuestID:   models.NewGuestID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Address:   strings.TrimSpace(input.Address),
		IsActive:  true,
		CreatedAt: s.clock.Now(),
	}
	if _, err := s.repo.Create(ctx, guest); err != nil {
		switch {
		case db.IsUniqueViolation(err, "email"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered").
				WithDetails(map[string]string{"field": "email"})
		case db.IsUniqueViolation(err, "phone"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered").
				WithDetails(map[string]string{"field": "phone"})
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create guest")
		}
	}
	return NewGuestDTO(guest), nil
}

// SetActive toggles the active flag; unknown ids map to NOT_FOUND.
func (s *service) SetActive(ctx context.Context, guestID string, active bool) (*GuestDTO, error) {
	matched, err := s.repo.SetActive(ctx, guestID, active)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set guest active")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
	}
	return s.load(ctx, guestID)
}

// SetVIP toggles the vip flag; unknown ids map to NOT_FOUND.
func (s *service) SetVIP(ctx context.Context, guestID string, vip bool) (*GuestDTO, error) {
	matched, err := s.repo.SetVIP(ctx, guestID, vip)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set guest vip")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
	}
	return s.load(ctx, guestID)
}

// Search matches guests by name, email, phone, or id.
func (s *service) Search(ctx context.Context, query string) ([]GuestDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	guests, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search guests")
	}
	return toDTOs(guests), nil
}

// Get returns a guest with booking count and last check-in annotations.
func (s *service) Get(ctx context.Context, guestID string) (*GuestDetailDTO, error) {
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest")
	}
	stats, err := s.repo.Stats(ctx, guestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest stats")
	}
	return NewGuestDetailDTO(guest, stats), nil
}

// List returns a page of guests under the creation-time filter.
func (s *service) List(ctx context.Context, filter timefilter.Filter, page pagination.Params) (*GuestListDTO, error) {
	if !filter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid time filter")
	}

	limit := pagination.NormalizeLimit(page.Limit)
	opts := listQuery{
		filter: filter,
		now:    s.clock.Now(),
		limit:  pagination.LimitWithBuffer(page.Limit),
	}
	if page.Cursor != "" {
		cursor, err := pagination.ParseCursor(page.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		opts.cursor = cursor
	}

	guests, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list guests")
	}

	// The cursor marks the last row of this page; the next query resumes
	// strictly after it, so encoding the buffer row would skip it entirely
	// (and return an empty page when timestamps tie).
	nextCursor := ""
	if len(guests) > limit {
		guests = guests[:limit]
		last := guests[limit-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.GuestID,
		})
	}

	return &GuestListDTO{Items: toDTOs(guests), Cursor: nextCursor}, nil
}

func (s *service) load(ctx context.Context, guestID string) (*GuestDTO, error) {
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload guest")
	}
	return NewGuestDTO(guest), nil
}

func toDTOs(guests []models.Guest) []GuestDTO {
	out := make([]GuestDTO, 0, len(guests))
	for i := range guests {
		out = append(out, *NewGuestDTO(&guests[i]))
	}
	return out
}
