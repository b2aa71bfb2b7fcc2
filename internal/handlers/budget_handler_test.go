package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
)

func (s *APITestSuite) TestCreateBudget() {
	rec := s.do(http.MethodPost, "/api/v1/budgets", dto.CreateBudgetRequest{Name: "household", InitialAmount: "250.5"})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())

	budget := decodeData[dto.BudgetResponse](s.T(), rec)
	s.Equal("household", budget.Name)
	s.Equal("250.50", budget.InitialAmount)
	s.True(budget.Current)

	rec = s.do(http.MethodGet, "/api/v1/categories?all=true", nil)
	s.Equal(http.StatusOK, rec.Code)
	list := decodeData[dto.CategoryListResponse](s.T(), rec)
	s.Equal(2, list.Total, "a new budget owns the pool and the fallback category")
}

func (s *APITestSuite) TestCreateBudget_Duplicate() {
	s.openBudget(0)

	rec := s.do(http.MethodPost, "/api/v1/budgets", dto.CreateBudgetRequest{Name: "main"})
	s.assertError(rec, http.StatusConflict, errors.BudgetAlreadyExists)
}

func (s *APITestSuite) TestCreateBudget_Validation() {
	rec := s.do(http.MethodPost, "/api/v1/budgets", dto.CreateBudgetRequest{InitialAmount: "10"})
	body := s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
	s.Contains(body.Error.Details, "name: is required")

	rec = s.do(http.MethodPost, "/api/v1/budgets", dto.CreateBudgetRequest{Name: "x", InitialAmount: "lots"})
	s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)

	rec = s.do(http.MethodPost, "/api/v1/budgets", dto.CreateBudgetRequest{Name: "x", InitialAmount: "-5"})
	s.assertError(rec, http.StatusBadRequest, errors.BudgetInvalid)

	rec = s.do(http.MethodPost, "/api/v1/budgets", "{not json")
	s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
}

func (s *APITestSuite) TestListBudgets_MarksCurrent() {
	s.Require().NoError(s.ledger.NewBudget("first", decimal.Zero))
	s.Require().NoError(s.ledger.NewBudget("second", decimal.Zero))

	rec := s.do(http.MethodGet, "/api/v1/budgets", nil)
	s.Equal(http.StatusOK, rec.Code)

	list := decodeData[dto.BudgetListResponse](s.T(), rec)
	s.Require().Equal(2, list.Total)
	current := map[string]bool{}
	for _, b := range list.Budgets {
		current[b.Name] = b.Current
	}
	s.False(current["first"])
	s.True(current["second"])
}

func (s *APITestSuite) TestListBudgets_NoneSelected() {
	rec := s.do(http.MethodGet, "/api/v1/budgets", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(0, decodeData[dto.BudgetListResponse](s.T(), rec).Total)

	rec = s.do(http.MethodGet, "/api/v1/budgets/current", nil)
	s.assertError(rec, http.StatusConflict, errors.BudgetNotSelected)
}

func (s *APITestSuite) TestSelectBudget() {
	s.Require().NoError(s.ledger.NewBudget("first", decimal.Zero))
	s.Require().NoError(s.ledger.NewBudget("second", decimal.Zero))

	rec := s.do(http.MethodPut, "/api/v1/budgets/current", dto.SelectBudgetRequest{Name: "first"})
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("first", decodeData[dto.BudgetResponse](s.T(), rec).Name)

	rec = s.do(http.MethodGet, "/api/v1/budgets/current", nil)
	s.Equal("first", decodeData[dto.BudgetResponse](s.T(), rec).Name)

	rec = s.do(http.MethodPut, "/api/v1/budgets/current", dto.SelectBudgetRequest{Name: "missing"})
	s.assertError(rec, http.StatusNotFound, errors.BudgetNotFound)
}
