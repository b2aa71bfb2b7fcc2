package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/validation"
)

// ErrorHandler formats every error that escapes a handler as a standard
// error response and counts it
type ErrorHandler struct {
	errorsTotal *prometheus.CounterVec
}

// NewErrorHandler registers the api_errors_total counter on reg. A nil reg
// uses the default registerer.
func NewErrorHandler(reg prometheus.Registerer) *ErrorHandler {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &ErrorHandler{
		errorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API errors by code, endpoint, and status",
			},
			[]string{"code", "endpoint", "status"},
		),
	}
}

// Handle implements echo.HTTPErrorHandler
func (h *ErrorHandler) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	errorResponse := h.responseFor(err, traceID)
	httpStatus := errorResponse.GetHTTPStatus()
	if echoErr, ok := err.(*echo.HTTPError); ok {
		httpStatus = echoErr.Code
	}

	logLevel := slog.LevelError
	if errorResponse.IsClientError() && httpStatus < 500 {
		logLevel = slog.LevelWarn
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"status", httpStatus,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	h.errorsTotal.WithLabelValues(
		errorResponse.Error.Code,
		c.Path(),
		fmt.Sprintf("%d", httpStatus),
	).Inc()

	if sendErr := c.JSON(httpStatus, errorResponse); sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

func (h *ErrorHandler) responseFor(err error, traceID string) *errors.ErrorResponse {
	if echoErr, ok := err.(*echo.HTTPError); ok {
		return errors.NewErrorResponse(
			mapHTTPStatusToErrorCode(echoErr.Code),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", echoErr.Message)),
		)
	}

	if _, ok := err.(validator.ValidationErrors); ok {
		return errors.NewValidationError(validation.FormatErrors(err), traceID)
	}

	return errors.ResponseFor(err, traceID)
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed,
		http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge,
		http.StatusUnsupportedMediaType:
		return errors.ValidationGeneral
	case http.StatusNotFound:
		return errors.SystemNotFound
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemInternalError
	}
}
