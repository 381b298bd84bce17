package models

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Payment is one ledger row against a booking. IdempotencyKey carries the
// client-provided key as a DB-level backstop behind the Redis replay cache.
type Payment struct {
	PaymentID      string              `gorm:"column:payment_id;primaryKey"`
	BookingID      string              `gorm:"column:booking_id;not null;index"`
	GuestID        string              `gorm:"column:guest_id;not null;index"`
	Amount         decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Method         enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null;default:'cash'"`
	Status         enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	TransactionID  *string             `gorm:"column:transaction_id"`
	PaymentDate    time.Time           `gorm:"column:payment_date;not null"`
	DueDate        *time.Time          `gorm:"column:due_date;type:date"`
	Type           enums.PaymentType   `gorm:"column:payment_type;type:payment_type;not null;default:'advance'"`
	Description    string              `gorm:"column:description"`
	CreatedBy      string              `gorm:"column:created_by"`
	IdempotencyKey *string             `gorm:"column:idempotency_key;uniqueIndex"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Booking *Booking `gorm:"foreignKey:BookingID;references:BookingID;constraint:OnDelete:CASCADE"`
	Guest   *Guest   `gorm:"foreignKey:GuestID;references:GuestID;constraint:OnDelete:CASCADE"`
}
