package booking

import (
	"context"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository wires together booking persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a booking by public identifier.
func (r *Repository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDWithGuest loads a booking with its guest association.
func (r *Repository) FindByIDWithGuest(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Guest").
		First(&booking, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create inserts a new booking row.
func (r *Repository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// SetStatus writes the booking status, reporting whether a row matched.
func (r *Repository) SetStatus(ctx context.Context, bookingID string, status enums.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// TransitionStatus flips status only when the booking currently has the
// expected status. Zero rows means the booking was absent or in another state.
func (r *Repository) TransitionStatus(ctx context.Context, bookingID string, from, to enums.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetAmountPaid persists the recomputed paid total.
func (r *Repository) SetAmountPaid(ctx context.Context, bookingID string, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Update("amount_paid", amount).Error
}

// List returns bookings under the creation-time filter, newest first.
func (r *Repository) List(ctx context.Context, filter timefilter.Filter, now time.Time) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{}).Preload("Guest")
	if cutoff, ok := filter.CutoffFrom(now); ok {
		q = q.Where("created_at >= ?", cutoff)
	}
	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByGuest returns all bookings for one guest, newest stay first.
func (r *Repository) ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("check_in_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
