package report

import (
	"context"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository runs the read-only aggregate queries behind the reports API.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RevenueOn sums booking totals for stays that physically checked in within
// the window.
func (r *Repository) RevenueOn(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN check_ins ON check_ins.booking_id = bookings.booking_id").
		Where("check_ins.actual_check_in >= ? AND check_ins.actual_check_in < ?", from, to).
		Select("COALESCE(SUM(bookings.total_amount), 0) AS total").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return raw.Total, nil
}

// CountGuests returns the size of the guest registry.
func (r *Repository) CountGuests(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Count(&n).Error
	return n, err
}

// CountBookings returns the all-time booking count.
func (r *Repository) CountBookings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&n).Error
	return n, err
}

// CountCheckInsBetween counts arrivals inside the window.
func (r *Repository) CountCheckInsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("actual_check_in >= ? AND actual_check_in < ?", from, to).
		Count(&n).Error
	return n, err
}

// DailyRevenueRow is one day's booked revenue.
type DailyRevenueRow struct {
	Day   string
	Total decimal.Decimal
}

// RevenueBetween sums booking totals by creation date over the range and
// returns the per-day breakdown oldest first.
func (r *Repository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, []DailyRevenueRow, error) {
	var rows []DailyRevenueRow
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("date(created_at) AS day, COALESCE(SUM(total_amount), 0) AS total").
		Group("date(created_at)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
	}
	return total, rows, nil
}

// PaymentStanding buckets bookings by how much of the total has been paid.
type PaymentStanding struct {
	FullyPaid     int64
	PartiallyPaid int64
	Unpaid        int64
}

// CountPaymentStanding classifies every booking by amount_paid against
// total_amount.
func (r *Repository) CountPaymentStanding(ctx context.Context) (*PaymentStanding, error) {
	standing := &PaymentStanding{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Booking{})
	}
	if err := base().Where("amount_paid >= total_amount").Count(&standing.FullyPaid).Error; err != nil {
		return nil, err
	}
	if err := base().Where("amount_paid > 0 AND amount_paid < total_amount").Count(&standing.PartiallyPaid).Error; err != nil {
		return nil, err
	}
	if err := base().Where("amount_paid <= 0").Count(&standing.Unpaid).Error; err != nil {
		return nil, err
	}
	return standing, nil
}

// RecentCheckIns returns arrivals since the cutoff with booking and guest
// context, newest first.
func (r *Repository) RecentCheckIns(ctx context.Context, since time.Time, limit int) ([]models.CheckIn, error) {
	var checkIns []models.CheckIn
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Guest").
		Where("actual_check_in >= ?", since).
		Order("actual_check_in DESC").
		Limit(limit).
		Find(&checkIns).Error
	return checkIns, err
}

// RecentCheckOuts returns departures since the cutoff, newest first.
func (r *Repository) RecentCheckOuts(ctx context.Context, since time.Time, limit int) ([]models.CheckIn, error) {
	var checkIns []models.CheckIn
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Guest").
		Where("is_checked_out = ? AND actual_check_out >= ?", true, since).
		Order("actual_check_out DESC").
		Limit(limit).
		Find(&checkIns).Error
	return checkIns, err
}

// RecentBookings returns bookings created since the cutoff, newest first.
func (r *Repository) RecentBookings(ctx context.Context, since time.Time, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
