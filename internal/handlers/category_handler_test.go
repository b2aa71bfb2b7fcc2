package handlers

import (
	"fmt"
	"net/http"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/models"
)

func (s *APITestSuite) createCategory(name, allocated string) dto.CategoryResponse {
	rec := s.do(http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: name, Allocated: allocated})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[dto.CategoryResponse](s.T(), rec)
}

func (s *APITestSuite) TestCategories_RequireBudget() {
	rec := s.do(http.MethodGet, "/api/v1/categories", nil)
	s.assertError(rec, http.StatusConflict, errors.BudgetNotSelected)

	rec = s.do(http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: "Rent"})
	s.assertError(rec, http.StatusConflict, errors.BudgetNotSelected)
}

func (s *APITestSuite) TestCreateCategory() {
	s.openBudget(100)

	category := s.createCategory("Groceries", "40")
	s.NotZero(category.ID)
	s.Equal("Groceries", category.Name)
	s.Equal(models.CategoryKindEnvelope, category.Kind)
	s.Equal("40.00", category.Allocated)
	s.Equal("0.00", category.Balance)
	s.Equal("40.00", category.Shortfall)
	s.False(category.Funded)

	rec := s.do(http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: "Groceries"})
	s.assertError(rec, http.StatusConflict, errors.CategoryAlreadyExists)

	rec = s.do(http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: "   "})
	s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)

	rec = s.do(http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: "Debt", Allocated: "-1"})
	s.assertError(rec, http.StatusBadRequest, errors.CategoryInvalid)
}

func (s *APITestSuite) TestListCategories() {
	s.openBudget(100)
	s.createCategory("Groceries", "40")

	rec := s.do(http.MethodGet, "/api/v1/categories", nil)
	s.Equal(http.StatusOK, rec.Code)
	list := decodeData[dto.CategoryListResponse](s.T(), rec)
	s.Require().Equal(2, list.Total)
	s.Equal(models.DefaultCategory, list.Categories[0].Name)
	s.Equal("Groceries", list.Categories[1].Name)

	rec = s.do(http.MethodGet, "/api/v1/categories?all=true", nil)
	list = decodeData[dto.CategoryListResponse](s.T(), rec)
	s.Require().Equal(3, list.Total)
	s.Equal(models.UnallocatedCategory, list.Categories[0].Name)
	s.Equal("100.00", list.Categories[0].Balance)
}

func (s *APITestSuite) TestGetCategory() {
	s.openBudget(100)
	created := s.createCategory("Groceries", "40")

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", created.ID), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Groceries", decodeData[dto.CategoryResponse](s.T(), rec).Name)

	rec = s.do(http.MethodGet, "/api/v1/categories/999", nil)
	s.assertError(rec, http.StatusNotFound, errors.CategoryNotFound)

	rec = s.do(http.MethodGet, "/api/v1/categories/abc", nil)
	s.assertError(rec, http.StatusBadRequest, errors.ValidationInvalidFormat)
}

func (s *APITestSuite) TestUpdateCategory() {
	s.openBudget(100)
	created := s.createCategory("Groceries", "40")
	path := fmt.Sprintf("/api/v1/categories/%d", created.ID)

	rec := s.do(http.MethodPut, path, dto.UpdateCategoryRequest{Name: "Food", Allocated: "55.5"})
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[dto.CategoryResponse](s.T(), rec)
	s.Equal("Food", updated.Name)
	s.Equal("55.50", updated.Allocated)

	rec = s.do(http.MethodPut, path, dto.UpdateCategoryRequest{Name: "Food"})
	s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
}

func (s *APITestSuite) TestUpdateCategory_PoolIsReadOnly() {
	s.openBudget(100)
	pool, err := s.ledger.CategoryByName(models.UnallocatedCategory)
	s.Require().NoError(err)

	rec := s.do(http.MethodPut, fmt.Sprintf("/api/v1/categories/%d", pool.ID),
		dto.UpdateCategoryRequest{Name: "Savings", Allocated: "1"})
	s.assertError(rec, http.StatusBadRequest, errors.CategoryInvalid)
}

func (s *APITestSuite) TestFundCategory() {
	s.openBudget(100)
	s.createCategory("Groceries", "40")
	s.createCategory("Rent", "200")

	rec := s.do(http.MethodPost, "/api/v1/categories/fund", dto.FundCategoryRequest{Name: "Groceries"})
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeData[dto.TransferResponse](s.T(), rec)
	s.Equal(models.UnallocatedCategory, resp.From.Name)
	s.Equal("60.00", resp.From.Balance)
	s.Equal("40.00", resp.To.Balance)
	s.True(resp.To.Funded)

	rec = s.do(http.MethodPost, "/api/v1/categories/fund", dto.FundCategoryRequest{Name: "Groceries"})
	s.assertError(rec, http.StatusUnprocessableEntity, errors.CategoryAlreadyFunded)

	rec = s.do(http.MethodPost, "/api/v1/categories/fund", dto.FundCategoryRequest{Name: "Rent"})
	s.assertError(rec, http.StatusUnprocessableEntity, errors.TransferInsufficientFunds)

	rec = s.do(http.MethodPost, "/api/v1/categories/fund", dto.FundCategoryRequest{Name: "Holidays"})
	s.assertError(rec, http.StatusNotFound, errors.CategoryNotFound)
}

func (s *APITestSuite) TestCategoryTransactions() {
	s.openBudget(100)
	groceries := s.createCategory("Groceries", "40")

	_, err := s.ledger.NewTransactionToCategory("Groceries").Expense(amt(12.5)).Done()
	s.Require().NoError(err)
	_, err = s.ledger.NewTransactionToCategory("").Income(amt(3)).Done()
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/categories/%d/transactions", groceries.ID), nil)
	s.Equal(http.StatusOK, rec.Code)
	list := decodeData[dto.TransactionListResponse](s.T(), rec)
	s.Require().Equal(1, list.Total)
	s.Equal("-12.50", list.Transactions[0].Amount)
	s.Equal("Groceries", list.Transactions[0].CategoryName)
}
