package guest

import (
	"time"

	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
)

// GuestDTO is the registry shape returned by the API.
type GuestDTO struct {
	GuestID   string    `json:"guest_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	LoyaltyID *string   `json:"loyalty_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsVIP     bool      `json:"is_vip"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestListDTO is one page of the registry plus the cursor for the next page.
type GuestListDTO struct {
	Items  []GuestDTO `json:"items"`
	Cursor string     `json:"cursor"`
}

// GuestDetailDTO adds the per-guest registry annotations.
type GuestDetailDTO struct {
	GuestDTO
	BookingCount int64      `json:"booking_count"`
	LastCheckIn  *time.Time `json:"last_check_in,omitempty"`
}

// NewGuestDTO maps the model into its API shape.
func NewGuestDTO(guest *models.Guest) *GuestDTO {
	if guest == nil {
		return nil
	}
	return &GuestDTO{
		GuestID:   guest.GuestID,
		FirstName: guest.FirstName,
		LastName:  guest.LastName,
		Email:     guest.Email,
		Phone:     guest.Phone,
		Address:   guest.Address,
		LoyaltyID: guest.LoyaltyID,
		IsActive:  guest.IsActive,
		IsVIP:     guest.IsVIP,
		CreatedAt: guest.CreatedAt,
	}
}

// NewGuestDetailDTO maps the model plus stats into the detail shape.
func NewGuestDetailDTO(guest *models.Guest, stats *GuestStats) *GuestDetailDTO {
	if guest == nil {
		return nil
	}
	detail := &GuestDetailDTO{GuestDTO: *NewGuestDTO(guest)}
	if stats != nil {
		detail.BookingCount = stats.BookingCount
		detail.LastCheckIn = stats.LastCheckIn
	}
	return detail
}
