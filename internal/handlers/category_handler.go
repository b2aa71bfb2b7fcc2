package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// CategoryHandler handles envelope management for the current budget
type CategoryHandler struct {
	ledger *budgeting.Budgeting
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(ledger *budgeting.Budgeting) *CategoryHandler {
	return &CategoryHandler{ledger: ledger}
}

// ListCategories lists the computed view of every category. The Unallocated
// pool is included only with ?all=true.
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	views, err := h.ledger.CategoryModels()
	if err != nil {
		return SendLedgerError(c, err)
	}

	if all, _ := strconv.ParseBool(c.QueryParam("all")); !all {
		filtered := views[:0]
		for _, v := range views {
			if !v.Category.IsUnallocated() {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewCategoryListResponse(views)})
}

// CreateCategory creates an envelope in the current budget
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	allocated := decimal.Zero
	if req.Allocated != "" {
		var err error
		allocated, err = money.Parse(req.Allocated)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid allocated amount"))
		}
	}

	category, err := h.ledger.NewCategory(req.Name, allocated)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return h.respondCategory(c, http.StatusCreated, *category, "Category created")
}

// GetCategory returns the computed view of one category
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	view, err := h.ledger.GetCategoryModelByID(id)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewCategoryResponse(view)})
}

// UpdateCategory renames a category and replaces its allocation
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	allocated, err := money.Parse(req.Allocated)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid allocated amount"))
	}

	category, err := h.ledger.UpdateCategory(id, req.Name, allocated)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return h.respondCategory(c, http.StatusOK, *category, "Category updated")
}

// CategoryTransactions lists the transactions posted to one category
// @Router /categories/{id}/transactions [get]
func (h *CategoryHandler) CategoryTransactions(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	transactions, err := h.ledger.CategoryTransactions(id)
	if err != nil {
		return SendLedgerError(c, err)
	}
	names, err := categoryNames(h.ledger)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewTransactionListResponse(transactions, names)})
}

// FundCategory tops a category up from the Unallocated pool
// @Router /categories/fund [post]
func (h *CategoryHandler) FundCategory(c echo.Context) error {
	var req dto.FundCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	if err := h.ledger.FundFromUnallocated(req.Name); err != nil {
		return SendLedgerError(c, err)
	}

	resp, err := transferResponse(h.ledger, models.UnallocatedCategory, req.Name)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: resp, Message: "Category funded"})
}

func (h *CategoryHandler) respondCategory(c echo.Context, status int, category models.Category, message string) error {
	view, err := h.ledger.CategoryModel(category)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(status, SuccessResponse{Data: dto.NewCategoryResponse(view), Message: message})
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// categoryNames maps every category of the current budget to its name
func categoryNames(ledger *budgeting.Budgeting) (map[uint]string, error) {
	categories, err := ledger.AllCategories()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func categoryView(ledger *budgeting.Budgeting, name string) (models.CategoryModel, error) {
	category, err := ledger.CategoryByName(name)
	if err != nil {
		return models.CategoryModel{}, err
	}
	return ledger.CategoryModel(*category)
}

func transferResponse(ledger *budgeting.Budgeting, from, to string) (dto.TransferResponse, error) {
	fromView, err := categoryView(ledger, from)
	if err != nil {
		return dto.TransferResponse{}, err
	}
	toView, err := categoryView(ledger, to)
	if err != nil {
		return dto.TransferResponse{}, err
	}
	return dto.TransferResponse{
		From: dto.NewCategoryResponse(fromView),
		To:   dto.NewCategoryResponse(toView),
	}, nil
}
