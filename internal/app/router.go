package app

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siteline-pm/siteline/internal/auth"
	"github.com/siteline-pm/siteline/internal/contracts"
	"github.com/siteline-pm/siteline/internal/documents"
	"github.com/siteline-pm/siteline/internal/notifications"
	"github.com/siteline-pm/siteline/internal/projects"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/tenancy"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	AuthHandler          *auth.Handler
	AuthMiddleware       auth.Middleware
	RBACHandler          *rbac.Handler
	ProjectsHandler      *projects.Handler
	ContractsHandler     *contracts.Handler
	DocumentsHandler     *documents.Handler
	NotificationsHandler *notifications.Handler
	Pool                 *pgxpool.Pool
}

// NewRouter constructs the chi.Router with Siteline defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if params.Pool != nil {
			if err := params.Pool.Ping(req.Context()); err != nil {
				params.Logger.Error("health check failed", slog.Any("error", err))
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/auth", func(ar chi.Router) {
		params.AuthHandler.MountRoutes(ar)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(params.AuthMiddleware.Authenticate)
		api.Use(tenancy.Middleware)

		api.Route("/rbac", func(rr chi.Router) {
			params.RBACHandler.MountRoutes(rr)
		})
		api.Route("/projects", func(pr chi.Router) {
			params.ProjectsHandler.MountRoutes(pr)
		})
		api.Route("/contracts", func(cr chi.Router) {
			params.ContractsHandler.MountRoutes(cr)
		})
		api.Route("/documents", func(dr chi.Router) {
			params.DocumentsHandler.MountRoutes(dr)
		})
		api.Route("/notifications", func(nr chi.Router) {
			params.NotificationsHandler.MountRoutes(nr)
		})
	})

	return r
}
