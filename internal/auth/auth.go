// Package auth implements the delegated authentication gateway. All
// credential checks happen in a hosted auth service; this package wraps
// its REST API, tracks the current identity, and maintains a best-effort
// local profile record.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated caller state returned by the auth service.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Credentials carries an email/password sign-in or sign-up request.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// Profile is the local profile record upserted after authentication.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	UpdatedAt time.Time `json:"updated_at"`
}
