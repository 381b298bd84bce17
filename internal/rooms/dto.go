package room

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// RoomDTO is the inventory shape returned by the API.
type RoomDTO struct {
	RoomNumber    string           `json:"room_number"`
	RoomName      string           `json:"room_name"`
	RoomType      enums.RoomType   `json:"room_type"`
	Capacity      int              `json:"capacity"`
	PricePerNight decimal.Decimal  `json:"price_per_night"`
	Status        enums.RoomStatus `json:"status"`
	Amenities     string           `json:"amenities,omitempty"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// RoomListDTO is the inventory listing with per-status totals.
type RoomListDTO struct {
	Rooms        []RoomDTO `json:"rooms"`
	Total        int64     `json:"total"`
	Available    int64     `json:"available"`
	Occupied     int64     `json:"occupied"`
	Maintenance  int64     `json:"maintenance"`
	OutOfService int64     `json:"out_of_service"`
}

// NewRoomDTO maps the model into its API shape.
func NewRoomDTO(room *models.Room) *RoomDTO {
	if room == nil {
		return nil
	}
	return &RoomDTO{
		RoomNumber:    room.RoomNumber,
		RoomName:      room.RoomName,
		RoomType:      room.RoomType,
		Capacity:      room.Capacity,
		PricePerNight: room.PricePerNight,
		Status:        room.Status,
		Amenities:     room.Amenities,
		Description:   room.Description,
		CreatedAt:     room.CreatedAt,
	}
}

func toDTOs(rooms []models.Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(rooms))
	for i := range rooms {
		out = append(out, *NewRoomDTO(&rooms[i]))
	}
	return out
}
