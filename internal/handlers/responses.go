package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/validation"
)

// ERROR HANDLING
//
// Handlers report failures through three helpers only:
//
// 1. SendError - client and business rule errors with a known code
//    SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//
// 2. SendLedgerError - any error returned by the budgeting engine. Domain
//    errors are mapped to their code, everything else becomes SendSystemError.
//
// 3. SendSystemError - store failures and anything unexpected. The client
//    only sees the generic SYSTEM_002 (store) or SYSTEM_001 message.
//
// Do not return echo.NewHTTPError or write error bodies with c.JSON directly.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse := errors.ResponseFor(err, traceID)
	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Path(),
		"error_code", errorResponse.Error.Code,
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendLedgerError maps an error from the budgeting engine onto the response
// taxonomy
func SendLedgerError(c echo.Context, err error) error {
	code, ok := errors.FromError(err)
	if !ok {
		return SendSystemError(c, err)
	}
	return SendError(c, code, errors.WithDetails(err.Error()))
}

// SendValidationError reports struct validation failures field by field
func SendValidationError(c echo.Context, err error) error {
	errorResponse := errors.NewValidationError(validation.FormatErrors(err), getTraceID(c))
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}
