package frontdesk

import (
	"context"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together check-in persistence helpers.
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

// Create inserts a new check-in row.
func (r *Repository) Create(ctx context.Context, checkIn *models.CheckIn) (*models.CheckIn, error) {
	if err := r.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		return nil, err
	}
	return checkIn, nil
}

// FindOpenByRoom locates the open check-in occupying the given room.
func (r *Repository) FindOpenByRoom(ctx context.Context, roomNumber string) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.booking_id = check_ins.booking_id").
		Where("bookings.room_number = ? AND check_ins.is_checked_out = ?", roomNumber, false).
		Order("check_ins.actual_check_in DESC").
		First(&checkIn).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// FindOpenByBooking locates the open check-in for a booking, if any.
func (r *Repository) FindOpenByBooking(ctx context.Context, bookingID string) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND is_checked_out = ?", bookingID, false).
		First(&checkIn).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// Close stamps the departure and marks the check-in finished. Zero rows means
// the check-in was already closed or absent.
func (r *Repository) Close(ctx context.Context, checkInID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("check_in_id = ? AND is_checked_out = ?", checkInID, false).
		Updates(map[string]any{
			"actual_check_out": at,
			"is_checked_out":   true,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountOpen returns how many guests are currently in house.
func (r *Repository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("is_checked_out = ?", false).
		Count(&n).Error
	return n, err
}
