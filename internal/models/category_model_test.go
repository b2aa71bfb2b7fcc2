package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestCategoryModel_Aggregates(t *testing.T) {
	groceries := Category{ID: 2, Name: "Groceries", Kind: CategoryKindEnvelope, Allocated: d(50)}
	transactions := []Transaction{
		{CategoryID: 2, Amount: d(20)},
		{CategoryID: 2, Amount: d(-12.5)},
		{CategoryID: 2, Amount: d(-0.1)},
		{CategoryID: 3, Amount: d(100)},
	}
	transfers := []Transfer{
		{FromCategoryID: 1, ToCategoryID: 2, Amount: d(30)},
		{FromCategoryID: 2, ToCategoryID: 3, Amount: d(5)},
		{FromCategoryID: 1, ToCategoryID: 3, Amount: d(7)},
	}

	m := NewCategoryModel(groceries, transactions, transfers)

	assert.Equal(t, "20.00", m.Income.StringFixed(2))
	assert.Equal(t, "-12.60", m.Expense.StringFixed(2))
	assert.Equal(t, "12.60", m.TotalExpense().StringFixed(2))
	assert.Equal(t, "30.00", m.TransferIn.StringFixed(2))
	assert.Equal(t, "5.00", m.TotalTransferOut().StringFixed(2))
	assert.Equal(t, "32.40", m.Balance().StringFixed(2))
	assert.Equal(t, "17.60", m.Shortfall().StringFixed(2))
	assert.False(t, m.IsFunded())
}

func TestCategoryModel_BalanceInvariant(t *testing.T) {
	pool := Category{ID: 1, Name: UnallocatedCategory, Kind: CategoryKindUnallocated, Allocated: d(100)}
	transactions := []Transaction{
		{CategoryID: 1, Amount: d(10.10)},
		{CategoryID: 1, Amount: d(-3.33)},
	}
	transfers := []Transfer{
		{FromCategoryID: 1, ToCategoryID: 2, Amount: d(40)},
		{FromCategoryID: 2, ToCategoryID: 1, Amount: d(1.5)},
	}

	m := NewCategoryModel(pool, transactions, transfers)

	expected := m.Allocated().Add(m.Income).Add(m.Expense).Add(m.TransferIn).Sub(m.TransferOut)
	assert.True(t, m.Balance().Equal(expected.Round(2)))
	assert.Equal(t, "68.27", m.Balance().StringFixed(2))
}

func TestCategoryModel_OpeningOnlyForPool(t *testing.T) {
	pool := NewCategoryModel(Category{ID: 1, Kind: CategoryKindUnallocated, Allocated: d(100)}, nil, nil)
	envelope := NewCategoryModel(Category{ID: 2, Kind: CategoryKindEnvelope, Allocated: d(50)}, nil, nil)

	assert.True(t, pool.Balance().Equal(d(100)))
	assert.True(t, pool.IsFunded())
	assert.True(t, envelope.Balance().IsZero())
	assert.True(t, envelope.Shortfall().Equal(d(50)))
}

func TestCategoryModel_SummaryAndIdentity(t *testing.T) {
	category := Category{ID: 4, Name: "Rent", Kind: CategoryKindEnvelope}
	m := NewCategoryModel(category, []Transaction{{CategoryID: 4, Amount: d(-800)}}, []Transfer{{FromCategoryID: 1, ToCategoryID: 4, Amount: d(900)}})
	other := NewCategoryModel(Category{ID: 4, Name: "Renamed"}, nil, nil)

	summary := m.Summary()
	assert.True(t, summary.TotalExpense.Equal(d(800)))
	assert.True(t, summary.TransferIn.Equal(d(900)))
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, m.SameCategory(other))

	total := summary.Add(SummaryData{TotalIncome: d(1), TransferOut: d(2), TransferIn: d(0), TotalExpense: d(0)})
	assert.True(t, total.TotalIncome.Equal(d(1)))
	assert.True(t, total.TransferOut.Equal(d(2)))
}

func TestTransactionModel_Display(t *testing.T) {
	category := NewCategoryModel(Category{ID: 2, Name: "Groceries"}, nil, nil)
	transaction := Transaction{
		CategoryID:  2,
		Amount:      d(-12.5),
		DateCreated: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	m := NewTransactionModel(transaction, category)

	assert.Equal(t, "Groceries", m.CategoryName())
	assert.Equal(t, "12.50", m.OnlyAmount())
	assert.Equal(t, "2024-01-02", m.DateCreated())
	assert.False(t, m.IsIncome())
}
