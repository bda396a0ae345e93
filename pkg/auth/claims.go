package auth

import (
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting a session token.
type SessionTokenPayload struct {
	UserID string
	Role   enums.UserRole
	JTI    string
}

// SessionTokenClaims represents the typed JWT handed to callers on login.
type SessionTokenClaims struct {
	UserID string         `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
