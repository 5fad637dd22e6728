package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Renderer turns an invoice into a printable PDF document.
type Renderer interface {
	RenderInvoice(ctx context.Context, inv *InvoiceWithRelations) ([]byte, error)
}

// Dispatcher queues an invoice email for background delivery.
type Dispatcher interface {
	EnqueueInvoiceEmail(ctx context.Context, invoiceID uuid.UUID) error
}

// CacheInvalidator drops cached aggregates after invoice or payment writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Handler manages invoice and payment endpoints.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	renderer   Renderer
	dispatcher Dispatcher
	cache      CacheInvalidator
	validator  *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, renderer Renderer, dispatcher Dispatcher, cache CacheInvalidator) *Handler {
	return &Handler{
		logger:     logger,
		service:    service,
		renderer:   renderer,
		dispatcher: dispatcher,
		cache:      cache,
		validator:  validator.New(),
	}
}

func (h *Handler) invalidateCache(ctx context.Context) {
	if h.cache != nil {
		h.cache.Invalidate(ctx)
	}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", h.listInvoices)
		r.Post("/", h.createInvoice)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getInvoice)
			r.Put("/", h.updateInvoice)
			r.Delete("/", h.deleteInvoice)
			r.Patch("/status", h.changeStatus)
			r.Get("/pdf", h.downloadPDF)
			r.Post("/send", h.sendInvoice)
		})
	})
	r.Post("/payments", h.createPayment)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var invalid *InvalidTransitionError
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateNumber):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.As(err, &invalid),
		errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrHasPayments),
		errors.Is(err, httpx.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	default:
		h.logger.Error("invoice request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func invoiceID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid invoice id", httpx.ErrValidation)
	}
	return id, nil
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListInvoicesRequest{
		Status: Status(q.Get("status")),
		Limit:  100,
	}
	if raw := q.Get("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "invalid client_id")
			return
		}
		req.ClientID = &id
	}
	if raw := q.Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "invalid project_id")
			return
		}
		req.ProjectID = &id
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 500 {
			req.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			req.Offset = offset
		}
	}

	invoices, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if invoices == nil {
		invoices = []InvoiceWithRelations{}
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	inv, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.invalidateCache(r.Context())
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req UpdateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	inv, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.invalidateCache(r.Context())
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	h.invalidateCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req ChangeStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	inv, err := h.service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.invalidateCache(r.Context())
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	doc, err := h.renderer.RenderInvoice(r.Context(), inv)
	if err != nil {
		h.logger.Error("render invoice pdf", slog.String("invoice", inv.Number), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Number+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) sendInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if inv.Client == nil || inv.Client.Email == "" {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "client has no email address")
		return
	}

	if err := h.dispatcher.EnqueueInvoiceEmail(r.Context(), inv.ID); err != nil {
		h.logger.Error("enqueue invoice email", slog.String("invoice", inv.Number), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusAccepted, map[string]string{
		"message": fmt.Sprintf("Invoice queued for delivery to %s", inv.Client.Email),
	})
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.invalidateCache(r.Context())
	httpx.JSON(w, http.StatusCreated, payment)
}
