package budgeting

import "errors"

// Domain failures. Callers match them with errors.Is; they may arrive
// wrapped with context.
var (
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrBudgetAlreadyExists   = errors.New("budget already exists")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrAlreadyFunded         = errors.New("category is already funded")
	ErrOverFunding           = errors.New("not enough funds to cover the transfer")
	ErrInvalidTransaction    = errors.New("invalid transaction")
	ErrSameCategoryTransfer  = errors.New("cannot transfer funds to the same category")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidBudget         = errors.New("invalid budget")
)

// ErrNoCurrentBudget is returned by reads and mutations issued before any
// budget was created or selected. It always wraps together with
// ErrBudgetNotFound.
var ErrNoCurrentBudget = errors.New("no current budget")
