package enums

import "fmt"

// RoomStatus tracks the occupancy state of a room.
type RoomStatus string

const (
	RoomStatusAvailable    RoomStatus = "available"
	RoomStatusOccupied     RoomStatus = "occupied"
	RoomStatusMaintenance  RoomStatus = "maintenance"
	RoomStatusOutOfService RoomStatus = "out_of_service"
)

var validRoomStatuses = []RoomStatus{
	RoomStatusAvailable,
	RoomStatusOccupied,
	RoomStatusMaintenance,
	RoomStatusOutOfService,
}

// String implements fmt.Stringer.
func (r RoomStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoomStatus.
func (r RoomStatus) IsValid() bool {
	for _, candidate := range validRoomStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoomStatus converts raw input into a RoomStatus.
func ParseRoomStatus(value string) (RoomStatus, error) {
	for _, candidate := range validRoomStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid room status %q", value)
}
