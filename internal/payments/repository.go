package payment

import (
	"context"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// signedAmountExpr maps each ledger row to its contribution to a booking's
// paid total: completed payments add, refunds subtract, pending/failed rows
// contribute nothing.
const signedAmountExpr = `CASE
	WHEN payment_status IN ('refunded', 'partially_refunded') THEN -amount
	WHEN payment_status = 'completed' AND payment_type = 'refund' THEN -amount
	WHEN payment_status = 'completed' THEN amount
	ELSE 0
END`

// Repository wires together payment persistence helpers.
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

// FindByID loads a payment with its booking.
func (r *Repository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Booking").
		First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByIdempotencyKey returns the payment previously recorded under the key,
// or gorm.ErrRecordNotFound.
func (r *Repository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		First(&payment, "idempotency_key = ?", key).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create inserts a new ledger row.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// PaidTotal recomputes the booking's paid amount from its ledger rows.
func (r *Repository) PaidTotal(ctx context.Context, bookingID string) (decimal.Decimal, error) {
	return r.signedSum(ctx, r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ?", bookingID))
}

// PaidTotalBefore sums ledger contributions dated strictly before the instant.
func (r *Repository) PaidTotalBefore(ctx context.Context, bookingID string, before time.Time) (decimal.Decimal, error) {
	return r.signedSum(ctx, r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ? AND payment_date < ?", bookingID, before))
}

func (r *Repository) signedSum(_ context.Context, q *gorm.DB) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	if err := q.Select("COALESCE(SUM(" + signedAmountExpr + "), 0) AS total").
		Scan(&raw).Error; err != nil {
		return decimal.Zero, err
	}
	return raw.Total, nil
}

// List returns payments under the creation-time filter, optionally narrowed to
// one status, newest first.
func (r *Repository) List(ctx context.Context, filter timefilter.Filter, now time.Time, status *enums.PaymentStatus) ([]models.Payment, error) {
	q := r.db.WithContext(ctx).Model(&models.Payment{}).
		Preload("Booking").
		Preload("Guest")
	if cutoff, ok := filter.CutoffFrom(now); ok {
		q = q.Where("payments.created_at >= ?", cutoff)
	}
	if status != nil {
		q = q.Where("payment_status = ?", *status)
	}
	var payments []models.Payment
	if err := q.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByBooking returns the full ledger for one booking, oldest first.
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("payment_date").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
