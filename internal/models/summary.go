package models

import (
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/money"
)

// SummaryData is a plain snapshot consumed by presentation code
type SummaryData struct {
	TransferIn   decimal.Decimal `json:"transfer_in"`
	TransferOut  decimal.Decimal `json:"transfer_out"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// Add returns the field-wise sum of s and other
func (s SummaryData) Add(other SummaryData) SummaryData {
	return SummaryData{
		TransferIn:   money.Sum(s.TransferIn, other.TransferIn),
		TransferOut:  money.Sum(s.TransferOut, other.TransferOut),
		TotalIncome:  money.Sum(s.TotalIncome, other.TotalIncome),
		TotalExpense: money.Sum(s.TotalExpense, other.TotalExpense),
	}
}
