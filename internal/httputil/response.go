// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/invoicedash/dashboard/internal/errors"
	"github.com/invoicedash/dashboard/internal/form"
	"github.com/invoicedash/dashboard/internal/validation"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorResponse = ErrorResponse{
			Error:   "unavailable",
			Message: "The service is temporarily unavailable",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed forms or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// RespondState writes a form result state with the given status code.
func RespondState(c *gin.Context, statusCode int, state form.State) {
	c.JSON(statusCode, state)
}

// RespondResult answers a form action.
//
//   - storage failure (err != nil): 500 with the result state, the cause is logged
//   - validation failure: 422 with the result state
//   - success with a destination: 303 See Other to it
//   - success in place: 204 No Content
func RespondResult(c *gin.Context, result form.Result, err error, logger *slog.Logger) {
	if err != nil {
		if logger != nil {
			logger.Error("form action failed",
				slog.String("message", result.State.Message),
				slog.Any("error", err),
			)
		}
		RespondState(c, http.StatusInternalServerError, result.State)
		return
	}

	switch {
	case result.Status == form.StatusInvalid:
		if logger != nil {
			logger.Debug("form validation failed",
				slog.Any("fields", validation.Fields(result.State.Errors)))
		}
		RespondState(c, http.StatusUnprocessableEntity, result.State)
	case !result.OK():
		RespondState(c, http.StatusInternalServerError, result.State)
	case result.RedirectTo != "":
		c.Redirect(http.StatusSeeOther, result.RedirectTo)
	default:
		c.Status(http.StatusNoContent)
	}
}

// FormValues reads the submitted form fields of the request.
func FormValues(c *gin.Context) (form.Values, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return form.FromURLValues(c.Request.PostForm), nil
}
