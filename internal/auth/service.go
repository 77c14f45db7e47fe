package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/siteline-pm/siteline/internal/shared"
)

// Repository defines the credential lookup surface.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// Service handles login and logout.
type Service struct {
	repo   Repository
	tokens *TokenStore
}

// NewService builds Service instance.
func NewService(repo Repository, tokens *TokenStore) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Token{}, shared.ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("auth: lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Token{}, shared.ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, *user)
}

// Logout revokes a token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func parseIdentity(rec tokenRecord) (shared.Identity, error) {
	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return shared.Identity{}, fmt.Errorf("auth: bad user id in token: %w", err)
	}
	tenantID, err := uuid.Parse(rec.TenantID)
	if err != nil {
		return shared.Identity{}, fmt.Errorf("auth: bad tenant id in token: %w", err)
	}
	return shared.Identity{UserID: userID, TenantID: tenantID, Email: rec.Email}, nil
}
