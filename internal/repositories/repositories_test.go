package repositories

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tmahmood/envelop-budget/internal/database"
	"github.com/tmahmood/envelop-budget/internal/models"
)

// ledgerFixture is a budget with its two built-in categories and one envelope
type ledgerFixture struct {
	budget   *models.Budget
	pool     *models.Category
	fallback *models.Category
	envelope *models.Category
}

func seedLedger(t *testing.T, db *database.DB, name string) ledgerFixture {
	t.Helper()
	repos := New(db.DB)

	budget := &models.Budget{Name: name, InitialAmount: decimal.NewFromInt(100)}
	require.NoError(t, repos.Budgets.Create(budget))

	f := ledgerFixture{
		budget: budget,
		pool: &models.Category{
			BudgetID:  budget.ID,
			Name:      models.UnallocatedCategory,
			Allocated: budget.InitialAmount,
			Kind:      models.CategoryKindUnallocated,
		},
		fallback: &models.Category{
			BudgetID: budget.ID,
			Name:     models.DefaultCategory,
			Kind:     models.CategoryKindUncategorized,
		},
		envelope: &models.Category{
			BudgetID:  budget.ID,
			Name:      "Groceries",
			Allocated: decimal.NewFromInt(40),
		},
	}
	require.NoError(t, repos.Categories.Create(f.pool))
	require.NoError(t, repos.Categories.Create(f.fallback))
	require.NoError(t, repos.Categories.Create(f.envelope))
	return f
}

func fakeTransaction(budgetID, categoryID uint) *models.Transaction {
	return &models.Transaction{
		BudgetID:   budgetID,
		CategoryID: categoryID,
		Amount:     decimal.NewFromFloat(gofakeit.Price(1, 200)).Round(2).Neg(),
		Payee:      gofakeit.Company(),
		Note:       gofakeit.Sentence(4),
	}
}
