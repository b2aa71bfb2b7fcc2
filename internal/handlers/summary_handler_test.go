package handlers

import (
	"net/http"
	"strings"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/models"
)

func (s *APITestSuite) TestGetSummary() {
	s.openBudget(100)
	s.createCategory("Groceries", "40")
	s.Require().NoError(s.ledger.FundFromUnallocated("Groceries"))
	_, err := s.ledger.NewTransactionToCategory("Groceries").Expense(amt(15)).Done()
	s.Require().NoError(err)
	_, err = s.ledger.NewTransactionToCategory(models.DefaultCategory).Income(amt(30)).Done()
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/v1/summary", nil)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	summary := decodeData[dto.SummaryResponse](s.T(), rec)
	s.Equal("main", summary.Budget.Name)
	s.Equal("115.00", summary.ActualTotalBalance)
	s.Equal("60.00", summary.UnallocatedBalance)
	s.Equal("30.00", summary.UncategorizedBalance)
	s.Equal("40.00", summary.TotalAllocated)
	s.Equal("30.00", summary.TotalIncome)
	s.Equal("-15.00", summary.TotalExpense)
	s.Len(summary.Categories, 3)
}

func (s *APITestSuite) TestGetSummary_NoBudget() {
	rec := s.do(http.MethodGet, "/api/v1/summary", nil)
	s.assertError(rec, http.StatusConflict, errors.BudgetNotSelected)
}

func (s *APITestSuite) TestHealthCheck() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"healthy"`)
	s.Contains(rec.Body.String(), `"driver":"sqlite"`)
}

func (s *APITestSuite) TestHealthCheck_StoreDown() {
	s.Require().NoError(s.db.Close())

	rec := s.do(http.MethodGet, "/health", nil)
	s.assertError(rec, http.StatusServiceUnavailable, errors.SystemServiceUnavailable)
}

func (s *APITestSuite) TestMetricsEndpoint() {
	s.openBudget(5)

	rec := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.True(strings.Contains(body, "budgeting_operations_total"), body)
}

func (s *APITestSuite) TestListCategories_StoreDown() {
	s.openBudget(100)
	s.Require().NoError(s.db.Close())

	rec := s.do(http.MethodGet, "/api/v1/categories", nil)
	resp := s.assertError(rec, http.StatusInternalServerError, errors.SystemDatabaseError)
	s.Empty(resp.Error.Details)
	s.NotContains(rec.Body.String(), "sql")
}
