package dto

import (
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// Category Request DTOs

// CreateCategoryRequest represents the request payload for creating an envelope
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,category_name"`
	Allocated string `json:"allocated" validate:"omitempty,numeric,max_amount"`
}

// UpdateCategoryRequest replaces a category's name and allocation
type UpdateCategoryRequest struct {
	Name      string `json:"name" validate:"required,category_name"`
	Allocated string `json:"allocated" validate:"required,numeric,max_amount"`
}

// FundCategoryRequest tops a category up from the Unallocated pool
type FundCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Category Response DTOs

// CategorySummary holds the per-category totals
type CategorySummary struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	TransferIn   string `json:"transfer_in"`
	TransferOut  string `json:"transfer_out"`
}

// CategoryResponse is the computed view of one category
type CategoryResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Allocated string          `json:"allocated"`
	Balance   string          `json:"balance"`
	Shortfall string          `json:"shortfall"`
	Funded    bool            `json:"funded"`
	Summary   CategorySummary `json:"summary"`
}

// CategoryListResponse lists the categories of the current budget
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// NewCategorySummary formats summary totals for the wire
func NewCategorySummary(s models.SummaryData) CategorySummary {
	return CategorySummary{
		TotalIncome:  money.Format(s.TotalIncome),
		TotalExpense: money.Format(s.TotalExpense),
		TransferIn:   money.Format(s.TransferIn),
		TransferOut:  money.Format(s.TransferOut),
	}
}

// NewCategoryResponse converts a computed category
func NewCategoryResponse(m models.CategoryModel) CategoryResponse {
	return CategoryResponse{
		ID:        m.ID(),
		Name:      m.Name(),
		Kind:      m.Category.Kind,
		Allocated: money.Format(m.Allocated()),
		Balance:   money.Format(m.Balance()),
		Shortfall: money.Format(m.Shortfall()),
		Funded:    m.IsFunded(),
		Summary:   NewCategorySummary(m.Summary()),
	}
}

// NewCategoryListResponse converts every model in order
func NewCategoryListResponse(list []models.CategoryModel) CategoryListResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, m := range list {
		out = append(out, NewCategoryResponse(m))
	}
	return CategoryListResponse{Categories: out, Total: len(out)}
}
