package budgeting

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
	"github.com/tmahmood/envelop-budget/internal/repositories"
)

// FundFromUnallocated tops the named category up to its allocation with money
// from the Unallocated pool. The shortfall is moved as a single transfer; on
// any failure nothing is posted.
func (b *Budgeting) FundFromUnallocated(name string) error {
	b.mu.Lock()
	start := time.Now()
	transfer, err := b.fundFromUnallocated(strings.TrimSpace(name))
	b.observe("fund_from_unallocated", start, err)
	b.recordTransfer(transfer, err)
	b.mu.Unlock()

	if err != nil {
		return err
	}
	b.publish(Event{
		Kind:           EventFundsTransferred,
		BudgetID:       transfer.BudgetID,
		CategoryID:     transfer.ToCategoryID,
		FromCategoryID: transfer.FromCategoryID,
		TransferID:     transfer.ID,
		Amount:         transfer.Amount,
	})
	return nil
}

func (b *Budgeting) fundFromUnallocated(name string) (*models.Transfer, error) {
	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}

	var transfer *models.Transfer
	var target, pool models.CategoryModel
	err = b.db.Transaction(func(tx *gorm.DB) error {
		repos := b.repos.WithTx(tx)

		category, err := repos.Categories.GetByName(budget.ID, name)
		if err != nil {
			return categoryLookupError(err, name)
		}
		if category.IsUnallocated() {
			return fmt.Errorf("%w: %q", ErrSameCategoryTransfer, name)
		}

		target, err = b.loadCategoryModel(repos, *category)
		if err != nil {
			return err
		}
		if target.IsFunded() {
			return fmt.Errorf("%w: %q holds %s of %s", ErrAlreadyFunded, name,
				money.Format(target.Balance()), money.Format(target.Allocated()))
		}
		needed := target.Shortfall()

		pool, err = b.loadPool(repos, budget)
		if err != nil {
			return err
		}
		if pool.Balance().LessThan(needed) {
			return fmt.Errorf("%w: %q needs %s, %s has %s", ErrOverFunding, name,
				money.Format(needed), models.UnallocatedCategory, money.Format(pool.Balance()))
		}

		transfer = &models.Transfer{
			BudgetID:       budget.ID,
			FromCategoryID: pool.ID(),
			ToCategoryID:   category.ID,
			Amount:         needed,
			Note:           "Funded from " + models.UnallocatedCategory,
		}
		return repos.Transfers.Create(transfer)
	})
	if err != nil {
		b.logger.Warn("fund from unallocated failed", "budget", budget.Name, "category", name, "error", err)
		return nil, err
	}

	b.logger.Info("category funded",
		"budget", budget.Name,
		"category", name,
		"amount", transfer.Amount.String(),
		"reference", transfer.Reference,
	)
	for _, c := range []models.Category{target.Category, pool.Category} {
		if cm, err := b.loadCategoryModel(b.repos, c); err == nil {
			b.recordBalance(budget, cm)
		}
	}
	return transfer, nil
}

// TransferFunds moves amount from one category to another. The source must
// hold at least amount.
func (b *Budgeting) TransferFunds(from, to string, amount decimal.Decimal) error {
	b.mu.Lock()
	start := time.Now()
	transfer, err := b.transferFunds(strings.TrimSpace(from), strings.TrimSpace(to), money.Normalize(amount))
	b.observe("transfer_funds", start, err)
	b.recordTransfer(transfer, err)
	b.mu.Unlock()

	if err != nil {
		return err
	}
	b.publish(Event{
		Kind:           EventFundsTransferred,
		BudgetID:       transfer.BudgetID,
		CategoryID:     transfer.ToCategoryID,
		FromCategoryID: transfer.FromCategoryID,
		TransferID:     transfer.ID,
		Amount:         transfer.Amount,
	})
	return nil
}

func (b *Budgeting) transferFunds(from, to string, amount decimal.Decimal) (*models.Transfer, error) {
	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", ErrInvalidTransaction)
	}
	if err := b.validate.Var(amount, "max_amount"); err != nil {
		return nil, fmt.Errorf("%w: transfer amount cannot exceed %s", ErrInvalidTransaction, money.Format(money.MaxAmount))
	}
	if from == to {
		return nil, fmt.Errorf("%w: %q", ErrSameCategoryTransfer, from)
	}

	var transfer *models.Transfer
	err = b.db.Transaction(func(tx *gorm.DB) error {
		repos := b.repos.WithTx(tx)

		source, err := repos.Categories.GetByName(budget.ID, from)
		if err != nil {
			return categoryLookupError(err, from)
		}
		destination, err := repos.Categories.GetByName(budget.ID, to)
		if err != nil {
			return categoryLookupError(err, to)
		}

		sourceModel, err := b.loadCategoryModel(repos, *source)
		if err != nil {
			return err
		}
		if sourceModel.Balance().LessThan(amount) {
			return fmt.Errorf("%w: %q has %s, %s requested", ErrOverFunding, from,
				money.Format(sourceModel.Balance()), money.Format(amount))
		}

		transfer = &models.Transfer{
			BudgetID:       budget.ID,
			FromCategoryID: source.ID,
			ToCategoryID:   destination.ID,
			Amount:         amount,
			Note:           fmt.Sprintf("Transfer from %s to %s", source.Name, destination.Name),
		}
		return repos.Transfers.Create(transfer)
	})
	if err != nil {
		b.logger.Warn("transfer failed", "budget", budget.Name, "from", from, "to", to, "error", err)
		return nil, err
	}

	b.logger.Info("funds transferred",
		"budget", budget.Name,
		"from", from,
		"to", to,
		"amount", amount.String(),
		"reference", transfer.Reference,
	)
	return transfer, nil
}

func (b *Budgeting) loadPool(repos *repositories.Repositories, budget *models.Budget) (models.CategoryModel, error) {
	pool, err := repos.Categories.GetByKind(budget.ID, models.CategoryKindUnallocated)
	if err != nil {
		return models.CategoryModel{}, categoryLookupError(err, models.UnallocatedCategory)
	}
	return b.loadCategoryModel(repos, *pool)
}

func (b *Budgeting) recordTransfer(transfer *models.Transfer, err error) {
	status := "success"
	switch {
	case errors.Is(err, ErrAlreadyFunded):
		status = "already_funded"
	case errors.Is(err, ErrOverFunding):
		status = "over_funding"
	case err != nil:
		status = "failed"
	}
	b.metrics.IncrementCounter(metricFundsTransferred, map[string]string{"status": status})

	if transfer != nil {
		amount, _ := transfer.Amount.Float64()
		b.metrics.RecordGauge(metricTransferAmount, amount, nil)
	}
}
