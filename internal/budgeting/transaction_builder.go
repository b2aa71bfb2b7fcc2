package budgeting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
	"github.com/tmahmood/envelop-budget/internal/repositories"
)

// TransactionBuilder collects the fields of a transaction and validates them
// together when Done is called. Exactly one of Income or Expense must be set,
// exactly once.
type TransactionBuilder struct {
	budgeting    *Budgeting
	category     string
	amount       decimal.Decimal
	incomeCalls  int
	expenseCalls int
	payee        string
	note         string
	dateCreated  time.Time
}

type transactionInput struct {
	Amount decimal.Decimal `json:"amount" validate:"positive_amount,max_amount"`
	Payee  string          `json:"payee" validate:"max=255"`
	Note   string          `json:"note" validate:"max=1000"`
}

// NewTransactionToCategory starts a transaction for the named category. The
// name is resolved when Done is called: an empty or unknown name posts to the
// Uncategorized category.
func (b *Budgeting) NewTransactionToCategory(name string) *TransactionBuilder {
	return &TransactionBuilder{
		budgeting: b,
		category:  strings.TrimSpace(name),
	}
}

// Income sets a positive amount. The sign of amount is ignored, so
// Income(-20) posts +20.
func (tb *TransactionBuilder) Income(amount decimal.Decimal) *TransactionBuilder {
	tb.incomeCalls++
	tb.amount = money.Abs(amount)
	return tb
}

// Expense sets a negative amount. The sign of amount is ignored, so
// Expense(20) and Expense(-20) both post -20.
func (tb *TransactionBuilder) Expense(amount decimal.Decimal) *TransactionBuilder {
	tb.expenseCalls++
	tb.amount = money.Abs(amount)
	return tb
}

func (tb *TransactionBuilder) Payee(payee string) *TransactionBuilder {
	tb.payee = strings.TrimSpace(payee)
	return tb
}

func (tb *TransactionBuilder) Note(note string) *TransactionBuilder {
	tb.note = strings.TrimSpace(note)
	return tb
}

// DateCreated overrides the creation date, which defaults to now
func (tb *TransactionBuilder) DateCreated(t time.Time) *TransactionBuilder {
	tb.dateCreated = t
	return tb
}

// Done validates the collected fields and posts the transaction
func (tb *TransactionBuilder) Done() (*models.Transaction, error) {
	if err := tb.check(); err != nil {
		return nil, err
	}

	b := tb.budgeting
	b.mu.Lock()
	start := time.Now()
	transaction, err := b.postTransaction(tb)
	b.observe("new_transaction", start, err)
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	b.publish(Event{
		Kind:          EventTransactionCreated,
		BudgetID:      transaction.BudgetID,
		CategoryID:    transaction.CategoryID,
		TransactionID: transaction.ID,
		Amount:        transaction.Amount,
	})
	return transaction, nil
}

func (tb *TransactionBuilder) check() error {
	switch {
	case tb.incomeCalls+tb.expenseCalls == 0:
		return fmt.Errorf("%w: amount not set", ErrInvalidTransaction)
	case tb.incomeCalls > 0 && tb.expenseCalls > 0:
		return fmt.Errorf("%w: both income and expense set", ErrInvalidTransaction)
	case tb.incomeCalls > 1 || tb.expenseCalls > 1:
		return fmt.Errorf("%w: amount set more than once", ErrInvalidTransaction)
	}

	input := transactionInput{Amount: tb.amount, Payee: tb.payee, Note: tb.note}
	if err := tb.budgeting.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	return nil
}

func (tb *TransactionBuilder) signedAmount() decimal.Decimal {
	if tb.expenseCalls > 0 {
		return tb.amount.Neg()
	}
	return tb.amount
}

// postTransaction must be called with mu held
func (b *Budgeting) postTransaction(tb *TransactionBuilder) (*models.Transaction, error) {
	budget, err := b.currentBudget()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	category, err := b.resolveCategory(budget, tb.category)
	if err != nil {
		return nil, err
	}

	date := tb.dateCreated
	if date.IsZero() {
		date = b.now()
	}

	transaction := &models.Transaction{
		BudgetID:    budget.ID,
		CategoryID:  category.ID,
		Amount:      tb.signedAmount(),
		Payee:       tb.payee,
		Note:        tb.note,
		DateCreated: date,
	}
	if err := b.repos.Transactions.Create(transaction); err != nil {
		b.logger.Error("failed to post transaction", "budget", budget.Name, "category", category.Name, "error", err)
		return nil, err
	}

	kind := "income"
	if transaction.IsExpense() {
		kind = "expense"
	}
	b.metrics.IncrementCounter(metricTransactionPosted, map[string]string{"kind": kind})
	amount, _ := money.Abs(transaction.Amount).Float64()
	b.metrics.RecordGauge(metricTransactionAmount, amount, map[string]string{"kind": kind})
	if cm, err := b.loadCategoryModel(b.repos, *category); err == nil {
		b.recordBalance(budget, cm)
	}

	b.logger.Info("transaction posted",
		"budget", budget.Name,
		"category", category.Name,
		"transaction_id", transaction.ID,
		"amount", transaction.Amount.String(),
	)
	return transaction, nil
}

// resolveCategory maps a builder's category name onto a stored category.
// Empty and unknown names fall back to the Uncategorized category.
func (b *Budgeting) resolveCategory(budget *models.Budget, name string) (*models.Category, error) {
	if name != "" {
		category, err := b.repos.Categories.GetByName(budget.ID, name)
		if err == nil {
			return category, nil
		}
		if !errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, err
		}
		b.logger.Warn("unknown category, posting to default", "category", name, "default", models.DefaultCategory)
	}

	fallback, err := b.repos.Categories.GetByKind(budget.ID, models.CategoryKindUncategorized)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%w: no category resolved and no default available", ErrInvalidTransaction)
		}
		return nil, err
	}
	return fallback, nil
}
