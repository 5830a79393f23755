// Package http provides HTTP handlers for the customer form action and listings.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invoicedash/dashboard/internal/customer/http/dto"
	customerUseCase "github.com/invoicedash/dashboard/internal/customer/usecase"
	"github.com/invoicedash/dashboard/internal/httputil"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	customerUseCase customerUseCase.CustomerUseCase
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerUseCase customerUseCase.CustomerUseCase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerUseCase: customerUseCase,
		logger:          logger,
	}
}

// CreateHandler creates a customer from a form submission.
// POST /dashboard/customers - fields name, email.
// Answers 303 to the customers listing, 422 with the field errors or 500 with the failure message.
func (h *CustomerHandler) CreateHandler(c *gin.Context) {
	values, err := httputil.FormValues(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.customerUseCase.Create(c.Request.Context(), values)
	httputil.RespondResult(c, result, err, h.logger)
}

// ListHandler returns one page of the filtered customer listing.
// GET /dashboard/customers?query=&page=
func (h *CustomerHandler) ListHandler(c *gin.Context) {
	query, page := httputil.ParseListing(c)

	result, err := h.customerUseCase.List(c.Request.Context(), query, page)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCustomerPageToResponse(result))
}

// OptionsHandler returns the customers selectable on the invoice forms.
// GET /dashboard/customers/options
func (h *CustomerHandler) OptionsHandler(c *gin.Context) {
	options, err := h.customerUseCase.Options(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.MapOptionsToResponse(options)})
}
