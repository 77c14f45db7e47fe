package notifications

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
)

// Handler manages notification endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	rbac     rbac.Middleware
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw, validate: validator.New()}
}

// MountRoutes registers notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listMine)
	r.Post("/", h.send)
	r.Post("/{notificationID}/read", h.markAsRead)
	r.Delete("/{notificationID}", h.delete)
}

type notificationResponse struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body,omitempty"`
	Read    bool      `json:"read"`
}

func toResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:      n.ID,
		UserID:  n.UserID,
		Subject: n.Subject,
		Body:    n.Body,
		Read:    n.ReadAt != nil,
	}
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	items, err := h.service.ListMine(r.Context(), user)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]notificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toResponse(n))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"notifications": out})
}

type sendRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Subject string    `json:"subject" validate:"required,min=1,max=255"`
	Body    string    `json:"body" validate:"max=4096"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	n, err := h.service.Send(r.Context(), user, req.UserID, req.Subject, req.Body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(n))
}

func (h *Handler) markAsRead(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid notification id")
		return
	}
	n, err := h.service.MarkAsRead(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(n))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid notification id")
		return
	}
	if err := h.service.Delete(r.Context(), user, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
