package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/siteline-pm/siteline/internal/shared"
)

func newTestStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, ttl), mr
}

func TestTokenIssueAndResolve(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	user := User{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Email:    "pm@example.com",
	}

	token, err := store.Issue(ctx, user)
	require.NoError(t, err)
	require.Len(t, token.Value, 64)
	require.Equal(t, user.ID, token.UserID)

	id, err := store.Resolve(ctx, token.Value)
	require.NoError(t, err)
	require.Equal(t, user.ID, id.UserID)
	require.Equal(t, user.TenantID, id.TenantID)
	require.Equal(t, user.Email, id.Email)
}

func TestTokenResolveUnknown(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Resolve(context.Background(), "deadbeef")
	require.ErrorIs(t, err, shared.ErrTokenExpired)
}

func TestTokenExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Issue(ctx, User{ID: uuid.New(), TenantID: uuid.New(), Email: "pm@example.com"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Resolve(ctx, token.Value)
	require.ErrorIs(t, err, shared.ErrTokenExpired)
}

func TestTokenRevoke(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, User{ID: uuid.New(), TenantID: uuid.New(), Email: "pm@example.com"})
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, token.Value))

	_, err = store.Resolve(ctx, token.Value)
	require.ErrorIs(t, err, shared.ErrTokenExpired)
}
