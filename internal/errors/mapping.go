package errors

import (
	"errors"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/money"
	"github.com/tmahmood/envelop-budget/internal/repositories"
	"github.com/tmahmood/envelop-budget/internal/services"
)

var domainCodes = []struct {
	err  error
	code ErrorCode
}{
	{budgeting.ErrNoCurrentBudget, BudgetNotSelected},
	{budgeting.ErrBudgetNotFound, BudgetNotFound},
	{budgeting.ErrBudgetAlreadyExists, BudgetAlreadyExists},
	{budgeting.ErrInvalidBudget, BudgetInvalid},
	{budgeting.ErrCategoryNotFound, CategoryNotFound},
	{budgeting.ErrCategoryAlreadyExists, CategoryAlreadyExists},
	{budgeting.ErrInvalidCategory, CategoryInvalid},
	{budgeting.ErrAlreadyFunded, CategoryAlreadyFunded},
	{budgeting.ErrOverFunding, TransferInsufficientFunds},
	{budgeting.ErrSameCategoryTransfer, TransferSameCategory},
	{budgeting.ErrInvalidTransaction, TransactionInvalid},
	{money.ErrInvalidAmount, TransactionInvalidAmount},
	{services.ErrInvalidActivityType, ValidationInvalidFormat},
	{services.ErrInvalidDemoRange, ValidationInvalidDate},
	{services.ErrInvalidRetention, ValidationInvalidFormat},
}

// FromError maps a ledger error onto its code. The second result is false
// for errors outside the domain taxonomy, which callers treat as system errors.
func FromError(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	for _, dc := range domainCodes {
		if errors.Is(err, dc.err) {
			return dc.code, true
		}
	}
	return SystemInternalError, false
}

// UserMessage returns the message shown to a person for err. Domain errors
// keep their context; anything else is reduced to the generic system message.
func UserMessage(err error) string {
	if _, ok := FromError(err); ok {
		return err.Error()
	}
	return GetErrorMessage(SystemInternalError)
}

// IsDatabaseError reports whether err came from the record store failing
// rather than from a ledger rule.
func IsDatabaseError(err error) bool {
	return errors.Is(err, repositories.ErrStore)
}

// ResponseFor builds the error response for err. Domain errors carry their
// message as detail. Store failures get SYSTEM_002 and everything else
// SYSTEM_001, neither exposing the underlying error.
func ResponseFor(err error, traceID string) *ErrorResponse {
	if code, ok := FromError(err); ok {
		return NewErrorResponse(code, traceID, WithDetails(err.Error()))
	}
	if IsDatabaseError(err) {
		response, _ := WrapDatabaseError(err, traceID)
		return response
	}
	response, _ := WrapSystemError(err, traceID)
	return response
}
