package repositories

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetNameExists    = errors.New("budget with this name already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameExists  = errors.New("category with this name already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ErrStore marks failures of the record store itself, as opposed to lookups
// that found nothing or rejected a duplicate.
var ErrStore = errors.New("record store failure")

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}
