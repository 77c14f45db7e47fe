package auth

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/shared"
)

// Middleware resolves the Authorization bearer token and attaches the
// caller identity to the request context. Downstream code never
// consults a global "current user": the identity flows through
// context to handlers and from there into policies as an argument.
type Middleware struct {
	Tokens *TokenStore
	Logger *slog.Logger
}

// Authenticate rejects requests without a valid token.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value := bearerToken(r)
		if value == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		id, err := m.Tokens.Resolve(r.Context(), value)
		if err != nil {
			if m.Logger != nil && err != shared.ErrTokenExpired {
				m.Logger.Error("auth resolve token", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		ctx := shared.ContextWithIdentity(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
