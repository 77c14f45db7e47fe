package documents

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
)

// Handler manages document endpoints.
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

// MountRoutes registers document routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{documentID}", h.get)
	r.Get("/{documentID}/download", h.download)
	r.Post("/{documentID}/approve", h.approve)
	r.Delete("/{documentID}", h.delete)
	r.Delete("/{documentID}/force", h.forceDelete)
}

type documentResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	UploadedBy uuid.UUID  `json:"uploaded_by"`
}

func toResponse(d Document) documentResponse {
	return documentResponse{ID: d.ID, ProjectID: d.ProjectID, Name: d.Name, Status: d.Status, UploadedBy: d.UploadedBy}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	var projectID *uuid.UUID
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid project id")
			return
		}
		projectID = &id
	}
	docs, err := h.service.List(r.Context(), user, projectID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toResponse(d))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"documents": out})
}

type createDocumentRequest struct {
	ProjectID  *uuid.UUID `json:"project_id"`
	Name       string     `json:"name" validate:"required,min=1,max=255"`
	StorageKey string     `json:"storage_key" validate:"required,min=1,max=512"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	var req createDocumentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	d, err := h.service.Create(r.Context(), user, req.ProjectID, req.Name, req.StorageKey)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid document id")
		return
	}
	d, err := h.service.Get(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid document id")
		return
	}
	key, err := h.service.Download(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"storage_key": key})
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid document id")
		return
	}
	d, err := h.service.Approve(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid document id")
		return
	}
	if err := h.service.Delete(r.Context(), user, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) forceDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "documentID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid document id")
		return
	}
	if err := h.service.ForceDelete(r.Context(), user, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
