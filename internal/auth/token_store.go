package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siteline-pm/siteline/internal/shared"
)

const tokenKeyPrefix = "siteline:token:"

// TokenStore keeps issued tokens in Redis with a TTL. Tokens carry
// only identity, never permissions: grants are resolved fresh on
// every request so a revoke is effective immediately.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

type tokenRecord struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
}

// Issue creates and stores a new opaque token for the user.
func (s *TokenStore) Issue(ctx context.Context, user User) (Token, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return Token{}, fmt.Errorf("auth: token entropy: %w", err)
	}
	value := hex.EncodeToString(raw)

	data, err := json.Marshal(tokenRecord{
		UserID:   user.ID.String(),
		TenantID: user.TenantID.String(),
		Email:    user.Email,
	})
	if err != nil {
		return Token{}, fmt.Errorf("auth: encode token: %w", err)
	}
	if err := s.client.Set(ctx, tokenKeyPrefix+value, data, s.ttl).Err(); err != nil {
		return Token{}, fmt.Errorf("auth: store token: %w", err)
	}
	return Token{
		Value:     value,
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Resolve returns the identity behind a token value. Unknown and
// expired tokens both resolve to shared.ErrTokenExpired.
func (s *TokenStore) Resolve(ctx context.Context, value string) (shared.Identity, error) {
	data, err := s.client.Get(ctx, tokenKeyPrefix+value).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return shared.Identity{}, shared.ErrTokenExpired
		}
		return shared.Identity{}, fmt.Errorf("auth: resolve token: %w", err)
	}
	var rec tokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return shared.Identity{}, fmt.Errorf("auth: decode token: %w", err)
	}
	id, err := parseIdentity(rec)
	if err != nil {
		return shared.Identity{}, err
	}
	return id, nil
}

// Revoke deletes a token.
func (s *TokenStore) Revoke(ctx context.Context, value string) error {
	return s.client.Del(ctx, tokenKeyPrefix+value).Err()
}
