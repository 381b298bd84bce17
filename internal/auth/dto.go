package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
)

// StaffDTO is the operator account shape returned by the API.
type StaffDTO struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	Role        enums.StaffRole `json:"role"`
	IsActive    bool            `json:"is_active"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}

// TokenPairDTO is the login/refresh response.
type TokenPairDTO struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         StaffDTO `json:"user"`
}

// NewStaffDTO maps a staff account row.
func NewStaffDTO(user *models.StaffUser) StaffDTO {
	return StaffDTO{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
	}
}
