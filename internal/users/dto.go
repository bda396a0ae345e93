package users

import (
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/auth/session"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
)

// ShippingProfile is the default delivery contact of a buyer.
type ShippingProfile struct {
	RecipientName string `json:"recipientName" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"required,max=40"`
	Address       string `json:"address" validate:"required,max=500"`
}

// User is the stored account record.
type User struct {
	ID                string              `json:"id"`
	Username          string              `json:"username"`
	Email             string              `json:"email"`
	PasswordHash      string              `json:"passwordHash,omitempty"`
	Role              enums.UserRole      `json:"role"`
	Status            enums.AccountStatus `json:"status"`
	AvatarURL         string              `json:"avatarUrl,omitempty"`
	QualificationURLs []string            `json:"qualificationUrls,omitempty"`
	Shipping          *ShippingProfile    `json:"shipping,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID                string              `json:"id"`
	Username          string              `json:"username"`
	Email             string              `json:"email"`
	Role              enums.UserRole      `json:"role"`
	Status            enums.AccountStatus `json:"status"`
	AvatarURL         string              `json:"avatarUrl,omitempty"`
	QualificationURLs []string            `json:"qualificationUrls,omitempty"`
	Shipping          *ShippingProfile    `json:"shipping,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

func FromModel(u *User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := &UserDTO{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		Status:            u.Status,
		AvatarURL:         u.AvatarURL,
		QualificationURLs: append([]string(nil), u.QualificationURLs...),
		CreatedAt:         u.CreatedAt,
	}
	if u.Shipping != nil {
		shipping := *u.Shipping
		dto.Shipping = &shipping
	}
	return dto
}

// Principal is the snapshot cached in the session.
func (u *User) Principal() session.Principal {
	return session.Principal{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		AvatarURL: u.AvatarURL,
	}
}

// RegisterRequest is the sign-up payload. Role defaults to traveler.
type RegisterRequest struct {
	Email             string         `json:"email" validate:"required,email,max=254"`
	Password          string         `json:"password" validate:"required,min=6,max=128"`
	Username          string         `json:"username,omitempty" validate:"max=80"`
	Role              enums.UserRole `json:"role,omitempty"`
	QualificationURLs []string       `json:"qualificationUrls,omitempty" validate:"max=10,dive,required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the self-service fields. Nil leaves a field
// untouched; role, status and email cannot change here.
type UpdateProfileRequest struct {
	Username          *string          `json:"username,omitempty" validate:"omitempty,min=1,max=80"`
	AvatarURL         *string          `json:"avatarUrl,omitempty" validate:"omitempty,max=2048"`
	QualificationURLs []string         `json:"qualificationUrls,omitempty" validate:"omitempty,max=10,dive,required"`
	Shipping          *ShippingProfile `json:"shipping,omitempty"`
}

// AuthResult is returned by login and registration.
type AuthResult struct {
	User      *UserDTO  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
