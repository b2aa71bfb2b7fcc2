package handlers

import (
	"net/http"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/models"
)

func (s *APITestSuite) TestCreateTransfer() {
	s.openBudget(100)
	s.createCategory("Groceries", "40")

	rec := s.do(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{
		From:   models.UnallocatedCategory,
		To:     "Groceries",
		Amount: "25",
	})
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeData[dto.TransferResponse](s.T(), rec)
	s.Equal("75.00", resp.From.Balance)
	s.Equal("25.00", resp.To.Balance)
	s.Equal("25.00", resp.To.Summary.TransferIn)
	s.Equal("25.00", resp.From.Summary.TransferOut)
}

func (s *APITestSuite) TestCreateTransfer_Rejected() {
	s.openBudget(10)
	s.createCategory("Groceries", "40")

	rec := s.do(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{From: "Groceries", To: "Groceries", Amount: "1"})
	s.assertError(rec, http.StatusBadRequest, errors.TransferSameCategory)

	rec = s.do(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{From: models.UnallocatedCategory, To: "Groceries", Amount: "11"})
	s.assertError(rec, http.StatusUnprocessableEntity, errors.TransferInsufficientFunds)

	rec = s.do(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{From: models.UnallocatedCategory, To: "Nowhere", Amount: "1"})
	s.assertError(rec, http.StatusNotFound, errors.CategoryNotFound)

	rec = s.do(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{From: models.UnallocatedCategory, To: "Groceries"})
	s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)

	unallocated, err := s.ledger.UnallocatedBalance()
	s.Require().NoError(err)
	s.True(amt(10).Equal(unallocated), "rejected transfers move nothing")
}
