package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the payment ledger operations.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*PaymentDTO, error)
	BalanceAfter(ctx context.Context, paymentID string) (*BalanceDTO, error)
	List(ctx context.Context, filter timefilter.Filter, status *enums.PaymentStatus) ([]PaymentDTO, error)
	ListByBooking(ctx context.Context, bookingID string) ([]PaymentDTO, error)
}

// RecordInput is the payload for recording one ledger row.
type RecordInput struct {
	BookingID      string
	Amount         decimal.Decimal
	Method         enums.PaymentMethod
	Status         enums.PaymentStatus
	Type           enums.PaymentType
	TransactionID  *string
	DueDate        *time.Time
	Description    string
	CreatedBy      string
	IdempotencyKey *string
}

type service struct {
	dbClient *db.Client
	payments *Repository
	bookings *booking.Repository
	logg     *logger.Logger
	clock    clock.Clock
}

// NewService constructs the payment ledger service.
func NewService(dbClient *db.Client, payments *Repository, bookings *booking.Repository, logg *logger.Logger, clk clock.Clock) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if bookings == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		dbClient: dbClient,
		payments: payments,
		bookings: bookings,
		logg:     logg,
		clock:    clk,
	}, nil
}

// Record writes one ledger row and reconciles the booking's paid total from
// the ledger inside the same transaction. A reused idempotency key returns the
// originally recorded payment without touching the ledger again.
func (s *service) Record(ctx context.Context, input RecordInput) (*PaymentDTO, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	status := input.Status
	if status == "" {
		status = enums.PaymentStatusCompleted
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	paymentType := input.Type
	if paymentType == "" {
		paymentType = enums.PaymentTypeAdvance
	}
	if !paymentType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
	}

	if input.IdempotencyKey != nil && *input.IdempotencyKey != "" {
		existing, err := s.payments.FindByIdempotencyKey(ctx, *input.IdempotencyKey)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "idempotency lookup")
		}
		if existing != nil {
			if existing.BookingID != input.BookingID {
				return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key already used for another booking")
			}
			return s.replayDTO(ctx, existing)
		}
	}

	bookingRow, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	if subtracts(status, paymentType) && input.Amount.GreaterThan(bookingRow.AmountPaid) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "refund exceeds amount paid")
	}

	now := s.clock.Now()
	paymentRow := &models.Payment{
		PaymentID:      models.NewPaymentID(),
		BookingID:      bookingRow.BookingID,
		GuestID:        bookingRow.GuestID,
		Amount:         input.Amount,
		Method:         input.Method,
		Status:         status,
		Type:           paymentType,
		TransactionID:  input.TransactionID,
		PaymentDate:    now,
		DueDate:        input.DueDate,
		Description:    input.Description,
		CreatedBy:      input.CreatedBy,
		IdempotencyKey: normalizeKey(input.IdempotencyKey),
		CreatedAt:      now,
	}

	var paidTotal decimal.Decimal
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.payments.WithTx(tx).Create(ctx, paymentRow); err != nil {
			if db.IsUniqueViolation(err, "idempotency_key") {
				return pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key already used")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
		}
		total, err := s.payments.WithTx(tx).PaidTotal(ctx, bookingRow.BookingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reconcile paid total")
		}
		// The pre-transaction guard reads a possibly stale amount_paid;
		// concurrent refunds are caught here against the recomputed ledger.
		if total.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "refund exceeds amount paid")
		}
		paidTotal = total
		if err := s.bookings.WithTx(tx).SetAmountPaid(ctx, bookingRow.BookingID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist paid total")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			if typed.Code() == pkgerrors.CodeIdempotency && input.IdempotencyKey != nil {
				if existing, findErr := s.payments.FindByIdempotencyKey(ctx, *input.IdempotencyKey); findErr == nil && existing.BookingID == input.BookingID {
					return s.replayDTO(ctx, existing)
				}
			}
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
	}

	dto := NewPaymentDTO(paymentRow)
	dto.AmountPaid = paidTotal
	dto.BalanceDue = bookingRow.TotalAmount.Sub(paidTotal)
	return dto, nil
}

// BalanceAfter reports the booking balance immediately after the payment was
// taken, ordering the ledger by payment date.
func (s *service) BalanceAfter(ctx context.Context, paymentID string) (*BalanceDTO, error) {
	paymentRow, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	if paymentRow.Booking == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment missing booking")
	}

	prior, err := s.payments.PaidTotalBefore(ctx, paymentRow.BookingID, paymentRow.PaymentDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum prior payments")
	}

	paidThrough := prior
	if subtracts(paymentRow.Status, paymentRow.Type) {
		paidThrough = paidThrough.Sub(paymentRow.Amount)
	} else if paymentRow.Status == enums.PaymentStatusCompleted {
		paidThrough = paidThrough.Add(paymentRow.Amount)
	}

	return &BalanceDTO{
		PaymentID:    paymentRow.PaymentID,
		BookingID:    paymentRow.BookingID,
		TotalAmount:  paymentRow.Booking.TotalAmount,
		PaidThrough:  paidThrough,
		BalanceAfter: paymentRow.Booking.TotalAmount.Sub(paidThrough),
	}, nil
}

// List returns ledger rows under the time filter, optionally by status.
func (s *service) List(ctx context.Context, filter timefilter.Filter, status *enums.PaymentStatus) ([]PaymentDTO, error) {
	if !filter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid time filter")
	}
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	payments, err := s.payments.List(ctx, filter, s.clock.Now(), status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return toDTOs(payments), nil
}

// ListByBooking returns the full ledger for one booking.
func (s *service) ListByBooking(ctx context.Context, bookingID string) ([]PaymentDTO, error) {
	if _, err := s.bookings.FindByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list booking payments")
	}
	return toDTOs(payments), nil
}

func (s *service) replayDTO(ctx context.Context, existing *models.Payment) (*PaymentDTO, error) {
	dto := NewPaymentDTO(existing)
	dto.Replayed = true
	if bookingRow, err := s.bookings.FindByID(ctx, existing.BookingID); err == nil {
		dto.AmountPaid = bookingRow.AmountPaid
		dto.BalanceDue = bookingRow.BalanceDue()
	}
	return dto, nil
}

// normalizeKey maps absent or blank keys to NULL so the unique index only
// constrains real keys.
func normalizeKey(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	return key
}

// subtracts reports whether the row reduces the booking's paid total.
func subtracts(status enums.PaymentStatus, paymentType enums.PaymentType) bool {
	if status.IsRefund() {
		return true
	}
	return status == enums.PaymentStatusCompleted && paymentType == enums.PaymentTypeRefund
}

func toDTOs(payments []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, *NewPaymentDTO(&payments[i]))
	}
	return out
}
