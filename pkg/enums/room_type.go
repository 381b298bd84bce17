package enums

import "fmt"

// RoomType classifies the physical room category.
type RoomType string

const (
	RoomTypeStandard  RoomType = "standard"
	RoomTypeDouble    RoomType = "double"
	RoomTypeSuite     RoomType = "suite"
	RoomTypeFamily    RoomType = "family"
	RoomTypeDelux     RoomType = "delux"
	RoomTypeExecutive RoomType = "executive"
)

var validRoomTypes = []RoomType{
	RoomTypeStandard,
	RoomTypeDouble,
	RoomTypeSuite,
	RoomTypeFamily,
	RoomTypeDelux,
	RoomTypeExecutive,
}

// String implements fmt.Stringer.
func (r RoomType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoomType.
func (r RoomType) IsValid() bool {
	for _, candidate := range validRoomTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoomType converts raw input into a RoomType.
func ParseRoomType(value string) (RoomType, error) {
	for _, candidate := range validRoomTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid room type %q", value)
}
