package guest

import (
	"context"
	"strings"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/pagination"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"gorm.io/gorm"
)

// SearchResultCap bounds how many rows a registry search returns.
const SearchResultCap = 25

// GuestStats carries the registry annotations computed per guest.
type GuestStats struct {
	BookingCount int64
	LastCheckIn  *time.Time
}

// Repository wires together guest persistence helpers.
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

// FindByID loads a guest by public identifier.
func (r *Repository) FindByID(ctx context.Context, guestID string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).First(&guest, "guest_id = ?", guestID).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// FindByEmail loads a guest by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).First(&guest, "lower(email) = lower(?)", email).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// Create inserts a new guest row.
func (r *Repository) Create(ctx context.Context, guest *models.Guest) (*models.Guest, error) {
	if err := r.db.WithContext(ctx).Create(guest).Error; err != nil {
		return nil, err
	}
	return guest, nil
}

// Update persists the mutable registry fields.
func (r *Repository) Update(ctx context.Context, guest *models.Guest) (*models.Guest, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("guest_id = ?", guest.GuestID).
		Updates(map[string]any{
			"first_name": guest.FirstName,
			"last_name":  guest.LastName,
			"phone":      guest.Phone,
			"address":    guest.Address,
		}).Error; err != nil {
		return nil, err
	}
	return guest, nil
}

// SetActive flips the is_active flag, reporting whether a row matched.
func (r *Repository) SetActive(ctx context.Context, guestID string, active bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("guest_id = ?", guestID).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetVIP flips the is_vip flag, reporting whether a row matched.
func (r *Repository) SetVIP(ctx context.Context, guestID string, vip bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("guest_id = ?", guestID).
		Update("is_vip", vip)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Search runs a case-insensitive substring match over the registry fields,
// ordered by (last_name, first_name) and capped.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Guest, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var guests []models.Guest
	err := r.db.WithContext(ctx).
		Where(
			"lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ? OR lower(guest_id) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		).
		Order("last_name, first_name").
		Limit(SearchResultCap).
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

type listQuery struct {
	filter timefilter.Filter
	now    time.Time
	limit  int
	cursor *pagination.Cursor
}

// List returns guests under the creation-time filter using cursor pagination,
// newest registrations first with guest_id as the tiebreaker.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Guest, error) {
	q := r.db.WithContext(ctx).Model(&models.Guest{})
	if cutoff, ok := opts.filter.CutoffFrom(opts.now); ok {
		q = q.Where("created_at >= ?", cutoff)
	}
	if opts.cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND guest_id < ?)",
			opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID,
		)
	}

	var guests []models.Guest
	err := q.Order("created_at DESC").Order("guest_id DESC").Limit(opts.limit).Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// Stats computes the booking count and most recent check-in for a guest.
func (r *Repository) Stats(ctx context.Context, guestID string) (*GuestStats, error) {
	stats := &GuestStats{}

	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("guest_id = ?", guestID).
		Count(&stats.BookingCount).Error; err != nil {
		return nil, err
	}

	var last struct {
		ActualCheckIn *time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Select("check_ins.actual_check_in").
		Joins("JOIN bookings ON bookings.booking_id = check_ins.booking_id").
		Where("bookings.guest_id = ?", guestID).
		Order("check_ins.actual_check_in DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return nil, err
	}
	stats.LastCheckIn = last.ActualCheckIn

	return stats, nil
}
