package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Username string
	Role     enums.StaffRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to front-desk clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID       `json:"user_id"`
	Username string          `json:"username,omitempty"`
	Role     enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
