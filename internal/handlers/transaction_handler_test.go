package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/models"
)

func (s *APITestSuite) TestCreateTransaction_Expense() {
	s.openBudget(100)
	s.createCategory("Groceries", "40")

	when := time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)
	rec := s.do(http.MethodPost, "/api/v1/transactions", dto.CreateTransactionRequest{
		Category: "Groceries",
		Type:     dto.TransactionTypeExpense,
		Amount:   "12.50",
		Payee:    "Alice",
		Note:     "lunch",
		Date:     &when,
	})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())

	tx := decodeData[dto.TransactionResponse](s.T(), rec)
	s.NotZero(tx.ID)
	s.Equal("-12.50", tx.Amount)
	s.False(tx.Income)
	s.Equal("Groceries", tx.CategoryName)
	s.Equal("Alice", tx.Payee)
	s.Equal("lunch", tx.Note)
	s.True(when.Equal(tx.DateCreated))
}

func (s *APITestSuite) TestCreateTransaction_IncomeFallsBackToUncategorized() {
	s.openBudget(0)

	rec := s.do(http.MethodPost, "/api/v1/transactions", dto.CreateTransactionRequest{
		Category: "Does not exist",
		Type:     "INCOME",
		Amount:   "20",
		Payee:    gofakeit.Company(),
	})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())

	tx := decodeData[dto.TransactionResponse](s.T(), rec)
	s.Equal("20.00", tx.Amount)
	s.True(tx.Income)
	s.Equal(models.DefaultCategory, tx.CategoryName)
}

func (s *APITestSuite) TestCreateTransaction_Validation() {
	s.openBudget(0)

	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{"missing type", dto.CreateTransactionRequest{Amount: "1"}},
		{"unknown type", dto.CreateTransactionRequest{Type: "refund", Amount: "1"}},
		{"missing amount", dto.CreateTransactionRequest{Type: "income"}},
		{"zero amount", dto.CreateTransactionRequest{Type: "income", Amount: "0"}},
		{"negative amount", dto.CreateTransactionRequest{Type: "expense", Amount: "-3"}},
		{"three decimals", dto.CreateTransactionRequest{Type: "expense", Amount: "1.005"}},
		{"not a number", dto.CreateTransactionRequest{Type: "expense", Amount: "ten"}},
		{"payee too long", dto.CreateTransactionRequest{Type: "expense", Amount: "1", Payee: strings.Repeat("p", 256)}},
		{"note too long", dto.CreateTransactionRequest{Type: "expense", Amount: "1", Note: strings.Repeat("n", 1001)}},
		{"beyond the store's precision", dto.CreateTransactionRequest{Type: "income", Amount: "12345678901234567.89"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/transactions", tt.req)
			s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
		})
	}

	transactions, err := s.ledger.Transactions()
	s.Require().NoError(err)
	s.Empty(transactions)
}

func (s *APITestSuite) TestListTransactions() {
	s.openBudget(100)
	groceries := s.createCategory("Groceries", "40")

	older := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.ledger.NewTransactionToCategory("Groceries").Expense(amt(5)).DateCreated(older).Done()
	s.Require().NoError(err)
	latest, err := s.ledger.NewTransactionToCategory("").Income(amt(7)).Done()
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/v1/transactions", nil)
	s.Equal(http.StatusOK, rec.Code)
	list := decodeData[dto.TransactionListResponse](s.T(), rec)
	s.Require().Equal(2, list.Total)
	s.Equal(latest.ID, list.Transactions[0].ID)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/transactions?category_id=%d", groceries.ID), nil)
	list = decodeData[dto.TransactionListResponse](s.T(), rec)
	s.Require().Equal(1, list.Total)
	s.Equal("-5.00", list.Transactions[0].Amount)

	rec = s.do(http.MethodGet, "/api/v1/transactions?category_id=404", nil)
	s.assertError(rec, http.StatusNotFound, errors.CategoryNotFound)

	rec = s.do(http.MethodGet, "/api/v1/transactions?category_id=x", nil)
	s.assertError(rec, http.StatusBadRequest, errors.ValidationInvalidFormat)
}
