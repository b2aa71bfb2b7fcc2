package budgeting

import (
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// Overview is one consistent snapshot of every aggregate of the current budget
type Overview struct {
	Budget               models.Budget          `json:"budget"`
	ActualTotalBalance   decimal.Decimal        `json:"actual_total_balance"`
	UnallocatedBalance   decimal.Decimal        `json:"unallocated_balance"`
	UncategorizedBalance decimal.Decimal        `json:"uncategorized_balance"`
	TotalAllocated       decimal.Decimal        `json:"total_allocated"`
	TotalIncome          decimal.Decimal        `json:"total_income"`
	TotalExpense         decimal.Decimal        `json:"total_expense"`
	Summary              models.SummaryData     `json:"summary"`
	Categories           []models.CategoryModel `json:"categories"`
}

// ActualTotalBalance is the money held across every category, the
// Unallocated pool included.
func (b *Budgeting) ActualTotalBalance() (decimal.Decimal, error) {
	o, err := b.Overview()
	if err != nil {
		return decimal.Zero, err
	}
	return o.ActualTotalBalance, nil
}

// UncategorizedBalance is the balance of the default category
func (b *Budgeting) UncategorizedBalance() (decimal.Decimal, error) {
	o, err := b.Overview()
	if err != nil {
		return decimal.Zero, err
	}
	return o.UncategorizedBalance, nil
}

// UnallocatedBalance is the money still available for funding categories
func (b *Budgeting) UnallocatedBalance() (decimal.Decimal, error) {
	o, err := b.Overview()
	if err != nil {
		return decimal.Zero, err
	}
	return o.UnallocatedBalance, nil
}

// TotalAllocated sums the allocations of every category except the pool
func (b *Budgeting) TotalAllocated() (decimal.Decimal, error) {
	o, err := b.Overview()
	if err != nil {
		return decimal.Zero, err
	}
	return o.TotalAllocated, nil
}

func (b *Budgeting) TotalIncome() (decimal.Decimal, error) {
	o, err := b.Overview()
	if err != nil {
		return decimal.Zero, err
	}
	return o.TotalIncome, nil
}

// TotalExpense sums every expense of the budget. The result is zero or negative.
func (b *Budgeting) TotalExpense() (decimal.Decimal, error) {
	o, err := b.Overview()
	if err != nil {
		return decimal.Zero, err
	}
	return o.TotalExpense, nil
}

// Summary folds the display snapshots of every category
func (b *Budgeting) Summary() (models.SummaryData, error) {
	o, err := b.Overview()
	if err != nil {
		return models.SummaryData{}, err
	}
	return o.Summary, nil
}

// Overview recomputes every aggregate from the store
func (b *Budgeting) Overview() (*Overview, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}

	views, err := b.loadCategoryModels(b.repos, budget)
	if err != nil {
		return nil, err
	}

	o := &Overview{
		Budget:               *budget,
		ActualTotalBalance:   decimal.Zero,
		UnallocatedBalance:   decimal.Zero,
		UncategorizedBalance: decimal.Zero,
		TotalAllocated:       decimal.Zero,
		TotalIncome:          decimal.Zero,
		TotalExpense:         decimal.Zero,
		Summary: models.SummaryData{
			TransferIn:   decimal.Zero,
			TransferOut:  decimal.Zero,
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
		},
		Categories: views,
	}

	for _, v := range views {
		o.ActualTotalBalance = o.ActualTotalBalance.Add(v.Balance())
		o.TotalIncome = o.TotalIncome.Add(v.Income)
		o.TotalExpense = o.TotalExpense.Add(v.Expense)
		o.Summary = o.Summary.Add(v.Summary())

		switch {
		case v.Category.IsUnallocated():
			o.UnallocatedBalance = v.Balance()
		case v.Category.IsUncategorized():
			o.UncategorizedBalance = v.Balance()
			o.TotalAllocated = o.TotalAllocated.Add(v.Allocated())
		default:
			o.TotalAllocated = o.TotalAllocated.Add(v.Allocated())
		}
	}

	o.ActualTotalBalance = money.Normalize(o.ActualTotalBalance)
	o.TotalIncome = money.Normalize(o.TotalIncome)
	o.TotalExpense = money.Normalize(o.TotalExpense)
	o.TotalAllocated = money.Normalize(o.TotalAllocated)
	return o, nil
}
