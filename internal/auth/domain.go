// Package auth resolves bearer tokens to caller identities. Token
// issuance is deliberately minimal: the authorization core downstream
// only needs a trustworthy user and tenant id per request.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential row used for login.
type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Email        string
	PasswordHash string
}

// Token is an issued access token.
type Token struct {
	Value     string
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Email     string
	ExpiresAt time.Time
}
