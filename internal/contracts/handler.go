package contracts

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/siteline-pm/siteline/internal/platform/httpx"
	"github.com/siteline-pm/siteline/internal/rbac"
)

// Handler manages contract and payment certificate endpoints.
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

// MountRoutes registers contract routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{contractID}", h.get)
	r.Put("/{contractID}", h.update)
	r.Delete("/{contractID}", h.delete)
	r.Post("/{contractID}/approve", h.approve)
	r.Post("/{contractID}/send", h.send)
	r.Get("/{contractID}/payments", h.listPayments)
	r.Post("/{contractID}/payments", h.createPayment)
	r.Post("/payments/{paymentID}/approve", h.approvePayment)
	r.Post("/payments/{paymentID}/certify", h.certifyPayment)
}

type contractResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Reference   string    `json:"reference"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
}

func toContractResponse(c Contract) contractResponse {
	return contractResponse{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		Reference:   c.Reference,
		Title:       c.Title,
		Status:      c.Status,
		AmountCents: c.AmountCents,
	}
}

type paymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	ContractID    uuid.UUID  `json:"contract_id"`
	CertificateNo int        `json:"certificate_no"`
	AmountCents   int64      `json:"amount_cents"`
	Status        string     `json:"status"`
	CertifiedBy   *uuid.UUID `json:"certified_by,omitempty"`
}

func toPaymentResponse(p Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		ContractID:    p.ContractID,
		CertificateNo: p.CertificateNo,
		AmountCents:   p.AmountCents,
		Status:        p.Status,
		CertifiedBy:   p.CertifiedBy,
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

type createContractRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Reference   string    `json:"reference" validate:"required,min=2,max=64"`
	Title       string    `json:"title" validate:"required,min=2,max=255"`
	AmountCents int64     `json:"amount_cents" validate:"gte=0"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	var req createContractRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.Create(r.Context(), user, CreateInput{
		ProjectID:   req.ProjectID,
		Reference:   req.Reference,
		Title:       req.Title,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toContractResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContractResponse(c))
}

type updateContractRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=255"`
	AmountCents int64  `json:"amount_cents" validate:"gte=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	var req updateContractRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.Update(r.Context(), user, id, req.Title, req.AmountCents)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContractResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), user, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	c, err := h.service.Approve(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContractResponse(c))
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	c, err := h.service.Send(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContractResponse(c))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	payments, err := h.service.ListPayments(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"payments": out})
}

type createPaymentRequest struct {
	CertificateNo int   `json:"certificate_no" validate:"required,gt=0"`
	AmountCents   int64 `json:"amount_cents" validate:"gte=0"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "contractID")
	if !ok {
		return
	}
	var req createPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.CreatePayment(r.Context(), user, id, req.CertificateNo, req.AmountCents)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *Handler) approvePayment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "paymentID")
	if !ok {
		return
	}
	p, err := h.service.ApprovePayment(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) certifyPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.rbac.CurrentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "paymentID")
	if !ok {
		return
	}
	p, err := h.service.CertifyPayment(r.Context(), user, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPaymentResponse(p))
}
