package models

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Room is the physical inventory unit, keyed by its natural room number.
type Room struct {
	RoomNumber    string           `gorm:"column:room_number;primaryKey"`
	RoomName      string           `gorm:"column:room_name;not null;default:'standard'"`
	RoomType      enums.RoomType   `gorm:"column:room_type;type:room_type;not null"`
	Capacity      int              `gorm:"column:capacity;not null;default:1"`
	PricePerNight decimal.Decimal  `gorm:"column:price_per_night;type:numeric(10,2);not null"`
	Status        enums.RoomStatus `gorm:"column:status;type:room_status;not null;default:'available'"`
	Amenities     string           `gorm:"column:amenities"`
	Description   string           `gorm:"column:description"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
}
