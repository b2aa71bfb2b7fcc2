package middleware

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/repositories"
	"github.com/tmahmood/envelop-budget/internal/validation"
)

// ErrorHandlerTestSuite defines the test suite for error handler middleware
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	handler *ErrorHandler
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.handler = NewErrorHandler(prometheus.NewRegistry())
	s.echo.HTTPErrorHandler = s.handler.Handle
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) handle(err error) (*httptest.ResponseRecorder, errors.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	s.handler.Handle(err, c)

	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func (s *ErrorHandlerTestSuite) TestHandle_EchoHTTPError() {
	rec, body := s.handle(echo.NewHTTPError(http.StatusNotFound, "Resource not found"))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.SystemNotFound), body.Error.Code)
	s.Equal("Resource not found", body.Error.Message)
	s.Equal("test-trace-id", body.Error.TraceID)
}

func (s *ErrorHandlerTestSuite) TestHandle_GenericError() {
	rec, body := s.handle(stderrors.New("disk on fire"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(errors.SystemInternalError), body.Error.Code)
	s.NotContains(rec.Body.String(), "disk on fire")
}

func (s *ErrorHandlerTestSuite) TestHandle_StoreError() {
	err := fmt.Errorf("failed to list budgets: %w", fmt.Errorf("%w: %w", repositories.ErrStore, stderrors.New("sql: database is closed")))
	rec, body := s.handle(err)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(errors.SystemDatabaseError), body.Error.Code)
	s.NotContains(rec.Body.String(), "database is closed")
}

func (s *ErrorHandlerTestSuite) TestHandle_DomainError() {
	err := fmt.Errorf("%w: %q", budgeting.ErrCategoryNotFound, "Rent")
	rec, body := s.handle(err)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.CategoryNotFound), body.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestHandle_ValidationErrors() {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	err := validation.GetValidator().Struct(payload{})
	s.Require().Error(err)

	rec, body := s.handle(err)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), body.Error.Code)
	s.Contains(body.Error.Details, "name: is required")
}

func (s *ErrorHandlerTestSuite) TestHandle_NoTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.handler.Handle(stderrors.New("boom"), c)

	s.Contains(rec.Body.String(), "unknown")
}

func (s *ErrorHandlerTestSuite) TestHandle_CommittedResponseIsLeftAlone() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	s.Require().NoError(c.String(http.StatusOK, "done"))

	s.handler.Handle(stderrors.New("late"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("done", rec.Body.String())
}

func (s *ErrorHandlerTestSuite) TestHandle_CountsErrors() {
	s.handle(echo.NewHTTPError(http.StatusTooManyRequests, "slow down"))
	s.handle(echo.NewHTTPError(http.StatusTooManyRequests, "slow down"))

	s.Equal(float64(2), testutil.ToFloat64(
		s.handler.errorsTotal.WithLabelValues(string(errors.SystemRateLimitExceeded), "", "429"),
	))
}

func (s *ErrorHandlerTestSuite) TestMapHTTPStatusToErrorCode() {
	tests := []struct {
		status int
		want   errors.ErrorCode
	}{
		{http.StatusBadRequest, errors.ValidationGeneral},
		{http.StatusMethodNotAllowed, errors.ValidationGeneral},
		{http.StatusNotFound, errors.SystemNotFound},
		{http.StatusTooManyRequests, errors.SystemRateLimitExceeded},
		{http.StatusServiceUnavailable, errors.SystemServiceUnavailable},
		{http.StatusTeapot, errors.SystemInternalError},
	}
	for _, tt := range tests {
		s.Equal(tt.want, mapHTTPStatusToErrorCode(tt.status), "status %d", tt.status)
	}
}
