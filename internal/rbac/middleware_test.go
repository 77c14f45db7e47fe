package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/siteline-pm/siteline/internal/shared"
)

type stubLoader struct {
	users map[uuid.UUID]User
	err   error
}

func (l stubLoader) LoadUser(ctx context.Context, id uuid.UUID) (User, error) {
	if l.err != nil {
		return User{}, l.err
	}
	u, ok := l.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func authedRequest(u User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := shared.ContextWithIdentity(req.Context(), shared.Identity{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
	})
	return req.WithContext(ctx)
}

func TestRequireAny(t *testing.T) {
	u := snapshot(uuid.New(), activeRole("viewer", shared.PermProjectView))
	mw := Middleware{Loader: stubLoader{users: map[uuid.UUID]User{u.ID: u}}}

	var called bool
	handler := mw.RequireAny(shared.PermProjectView, shared.PermProjectUpdate)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(u))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	called = false
	denied := mw.RequireAny(shared.PermProjectDelete)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, authedRequest(u))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAll(t *testing.T) {
	u := snapshot(uuid.New(), activeRole("viewer", shared.PermProjectView, shared.PermTaskView))
	mw := Middleware{Loader: stubLoader{users: map[uuid.UUID]User{u.ID: u}}}

	var called bool
	handler := mw.RequireAll(shared.PermProjectView, shared.PermTaskView)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(u))
	require.True(t, called)

	called = false
	denied := mw.RequireAll(shared.PermProjectView, shared.PermProjectDelete)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, authedRequest(u))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireWithoutIdentity(t *testing.T) {
	mw := Middleware{Loader: stubLoader{}}
	handler := mw.RequireAny(shared.PermProjectView)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireFailsClosedOnLoaderError(t *testing.T) {
	u := snapshot(uuid.New(), activeRole("viewer", shared.PermProjectView))
	mw := Middleware{Loader: stubLoader{err: errors.New("connection reset")}}

	handler := mw.RequireAny(shared.PermProjectView)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(u))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
