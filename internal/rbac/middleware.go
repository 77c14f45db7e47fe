package rbac

import (
	"net/http"

	"log/slog"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/shared"
)

// Middleware wires authorization checks into HTTP handlers. The
// snapshot is loaded fresh per request; a loader failure denies.
type Middleware struct {
	Loader SnapshotLoader
	Logger *slog.Logger
}

// RequireAny ensures the caller holds at least one of the permissions.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return m.require(func(set PermissionSet) bool {
		for _, p := range perms {
			if set.Has(Code(p)) {
				return true
			}
		}
		return len(perms) == 0
	})
}

// RequireAll ensures the caller holds every listed permission.
func (m Middleware) RequireAll(perms ...string) func(http.Handler) http.Handler {
	return m.require(func(set PermissionSet) bool {
		for _, p := range perms {
			if !set.Has(Code(p)) {
				return false
			}
		}
		return true
	})
}

func (m Middleware) require(check func(PermissionSet) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := m.CurrentUser(w, r)
			if !ok {
				return
			}
			if !check(Resolve(user)) {
				httpx.Problem(w, http.StatusForbidden, "Access Restricted", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser loads the caller snapshot, writing the failure response
// itself when the caller cannot be established. Load failures deny;
// they never fall through to the handler.
func (m Middleware) CurrentUser(w http.ResponseWriter, r *http.Request) (User, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return User{}, false
	}
	user, err := m.Loader.LoadUser(r.Context(), id.UserID)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("rbac load snapshot", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return User{}, false
	}
	return user, true
}
