// Package http provides HTTP handlers for the invoice form actions and listing.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicedash/dashboard/internal/form"
	"github.com/invoicedash/dashboard/internal/httputil"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
	"github.com/invoicedash/dashboard/internal/invoice/http/dto"
	invoiceUseCase "github.com/invoicedash/dashboard/internal/invoice/usecase"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	invoiceUseCase invoiceUseCase.InvoiceUseCase
	logger         *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(invoiceUseCase invoiceUseCase.InvoiceUseCase, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUseCase: invoiceUseCase,
		logger:         logger,
	}
}

// CreateHandler creates an invoice from a form submission.
// POST /dashboard/invoices - fields customerId, amount, status.
// Answers 303 to the invoices listing, 422 with the field errors or 500 with the failure message.
func (h *InvoiceHandler) CreateHandler(c *gin.Context) {
	values, err := httputil.FormValues(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.invoiceUseCase.Create(c.Request.Context(), values)
	httputil.RespondResult(c, result, err, h.logger)
}

// UpdateHandler overwrites an invoice from a form submission.
// POST /dashboard/invoices/:id - fields customerId, amount, status.
func (h *InvoiceHandler) UpdateHandler(c *gin.Context) {
	invoiceID, ok := h.parseInvoiceID(c)
	if !ok {
		return
	}

	values, err := httputil.FormValues(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.invoiceUseCase.Update(c.Request.Context(), invoiceID, values)
	httputil.RespondResult(c, result, err, h.logger)
}

// DeleteHandler removes an invoice.
// DELETE /dashboard/invoices/:id or POST /dashboard/invoices/:id/delete.
// Answers 204 on success, including for an unknown id.
func (h *InvoiceHandler) DeleteHandler(c *gin.Context) {
	invoiceID, ok := h.parseInvoiceID(c)
	if !ok {
		return
	}

	result, err := h.invoiceUseCase.Delete(c.Request.Context(), invoiceID)
	httputil.RespondResult(c, result, err, h.logger)
}

// ListHandler returns one page of the filtered invoice listing.
// GET /dashboard/invoices?query=&page=
func (h *InvoiceHandler) ListHandler(c *gin.Context) {
	query, page := httputil.ParseListing(c)

	result, err := h.invoiceUseCase.List(c.Request.Context(), query, page)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapInvoicePageToResponse(result))
}

// parseInvoiceID reads the :id path parameter. It answers 400 and returns false when
// the id is not a UUID, so storage is never reached with it.
func (h *InvoiceHandler) parseInvoiceID(c *gin.Context) (uuid.UUID, bool) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.logger.Warn("bad request", slog.String("id", c.Param("id")), slog.Any("error", err))
		httputil.RespondState(c, http.StatusBadRequest, form.State{Message: invoiceDomain.MsgInvalidID})
		return uuid.Nil, false
	}
	return invoiceID, true
}
