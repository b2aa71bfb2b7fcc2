package budgeting

import (
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tmahmood/envelop-budget/internal/database"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// FundTransferTestSuite covers FundFromUnallocated and TransferFunds
type FundTransferTestSuite struct {
	suite.Suite
	b *Budgeting
}

func (s *FundTransferTestSuite) SetupTest() {
	s.b = New(database.SetupTestDB(s.T()),
		WithLogger(discardLogger()),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestFundTransferTestSuite(t *testing.T) {
	suite.Run(t, new(FundTransferTestSuite))
}

func (s *FundTransferTestSuite) balances() map[string]decimal.Decimal {
	views, err := s.b.CategoryModels()
	require.NoError(s.T(), err)

	out := make(map[string]decimal.Decimal, len(views))
	for _, v := range views {
		out[v.Name()] = v.Balance()
	}
	return out
}

func (s *FundTransferTestSuite) totalBalance() decimal.Decimal {
	total, err := s.b.ActualTotalBalance()
	require.NoError(s.T(), err)
	return total
}

func (s *FundTransferTestSuite) assertSameBalances(before, after map[string]decimal.Decimal) {
	require.Len(s.T(), after, len(before))
	for name, b := range before {
		assert.True(s.T(), b.Equal(after[name]), "%s changed from %s to %s", name, b, after[name])
	}
}

func (s *FundTransferTestSuite) TestScenario_EmptyPoolOverFunds() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))
	_, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)

	before := s.balances()
	err = s.b.FundFromUnallocated("Groceries")
	assert.ErrorIs(s.T(), err, ErrOverFunding)
	s.assertSameBalances(before, s.balances())
}

func (s *FundTransferTestSuite) TestScenario_FundsGroceries() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))
	groceries, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.b.FundFromUnallocated("Groceries"))

	cm, err := s.b.GetCategoryModelByID(groceries.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(50).Equal(cm.Balance()), "got %s", cm.Balance())
	assert.True(s.T(), amt(50).Equal(cm.TotalTransferIn()))

	unallocated, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(50).Equal(unallocated), "got %s", unallocated)

	pool, err := s.b.CategoryByName(models.UnallocatedCategory)
	require.NoError(s.T(), err)
	poolModel, err := s.b.CategoryModel(*pool)
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(50).Equal(poolModel.TotalTransferOut()))
}

func (s *FundTransferTestSuite) TestAlreadyFunded_LeavesBalancesUnchanged() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))
	_, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)
	_, err = s.b.NewTransactionToCategory("Groceries").Income(amt(60)).Done()
	require.NoError(s.T(), err)

	before := s.balances()
	err = s.b.FundFromUnallocated("Groceries")
	assert.ErrorIs(s.T(), err, ErrAlreadyFunded)
	s.assertSameBalances(before, s.balances())

	// an envelope with nothing allocated is always funded
	_, err = s.b.NewCategory("Someday", amt(0))
	require.NoError(s.T(), err)
	assert.ErrorIs(s.T(), s.b.FundFromUnallocated("Someday"), ErrAlreadyFunded)
}

func (s *FundTransferTestSuite) TestOverFunding_LeavesBalancesUnchanged() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(40)))
	_, err := s.b.NewCategory("Rent", amt(40.01))
	require.NoError(s.T(), err)

	before := s.balances()
	err = s.b.FundFromUnallocated("Rent")
	assert.ErrorIs(s.T(), err, ErrOverFunding)
	s.assertSameBalances(before, s.balances())

	unallocated, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	assert.False(s.T(), unallocated.IsNegative())
}

func (s *FundTransferTestSuite) TestFund_MovesExactShortfall() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(200)))
	groceries, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)
	_, err = s.b.NewTransactionToCategory("Groceries").Expense(amt(12.34)).Done()
	require.NoError(s.T(), err)
	_, err = s.b.NewTransactionToCategory("Groceries").Income(amt(5.01)).Done()
	require.NoError(s.T(), err)

	before, err := s.b.GetCategoryModelByID(groceries.ID)
	require.NoError(s.T(), err)
	poolBefore, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	totalBefore := s.totalBalance()
	shortfall := before.Allocated().Sub(before.Balance())

	require.NoError(s.T(), s.b.FundFromUnallocated("Groceries"))

	after, err := s.b.GetCategoryModelByID(groceries.ID)
	require.NoError(s.T(), err)
	poolAfter, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)

	assert.True(s.T(), after.TotalTransferIn().Sub(before.TotalTransferIn()).Equal(shortfall))
	assert.True(s.T(), poolBefore.Sub(poolAfter).Equal(shortfall))
	assert.True(s.T(), after.Balance().Equal(after.Allocated()), "funding stops at the allocation")
	assert.True(s.T(), totalBefore.Equal(s.totalBalance()), "money is conserved")
}

func (s *FundTransferTestSuite) TestFund_UnknownAndPool() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))

	assert.ErrorIs(s.T(), s.b.FundFromUnallocated("Nope"), ErrCategoryNotFound)
	assert.ErrorIs(s.T(), s.b.FundFromUnallocated(models.UnallocatedCategory), ErrSameCategoryTransfer)
}

func (s *FundTransferTestSuite) TestFund_UncategorizedCoversOverspending() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))
	_, err := s.b.NewTransactionToCategory("").Expense(amt(30)).Done()
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.b.FundFromUnallocated(models.DefaultCategory))

	uncategorized, err := s.b.UncategorizedBalance()
	require.NoError(s.T(), err)
	assert.True(s.T(), uncategorized.IsZero(), "got %s", uncategorized)

	unallocated, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(70).Equal(unallocated))
}

func (s *FundTransferTestSuite) TestTransferFunds() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))
	_, err := s.b.NewCategory("Groceries", amt(60))
	require.NoError(s.T(), err)
	_, err = s.b.NewCategory("Fun", amt(20))
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.b.FundFromUnallocated("Groceries"))

	totalBefore := s.totalBalance()
	require.NoError(s.T(), s.b.TransferFunds("Groceries", "Fun", amt(15)))

	balances := s.balances()
	assert.True(s.T(), amt(45).Equal(balances["Groceries"]))
	assert.True(s.T(), amt(15).Equal(balances["Fun"]))
	assert.True(s.T(), totalBefore.Equal(s.totalBalance()))

	require.NoError(s.T(), s.b.TransferFunds("Fun", models.UnallocatedCategory, amt(15)))
	unallocated, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(55).Equal(unallocated))
}

func (s *FundTransferTestSuite) TestTransferFunds_Failures() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(10)))
	_, err := s.b.NewCategory("Fun", amt(20))
	require.NoError(s.T(), err)

	before := s.balances()

	assert.ErrorIs(s.T(), s.b.TransferFunds(models.UnallocatedCategory, "Fun", amt(10.01)), ErrOverFunding)
	assert.ErrorIs(s.T(), s.b.TransferFunds("Fun", "Fun", amt(1)), ErrSameCategoryTransfer)
	assert.ErrorIs(s.T(), s.b.TransferFunds("Fun", "Missing", amt(1)), ErrCategoryNotFound)
	assert.ErrorIs(s.T(), s.b.TransferFunds(models.UnallocatedCategory, "Fun", amt(0)), ErrInvalidTransaction)
	assert.ErrorIs(s.T(), s.b.TransferFunds(models.UnallocatedCategory, "Fun", amt(-5)), ErrInvalidTransaction)
	assert.ErrorIs(s.T(), s.b.TransferFunds(models.UnallocatedCategory, "Fun", decimal.New(1, 13)), ErrInvalidTransaction)

	s.assertSameBalances(before, s.balances())
}

// TestBalanceInvariant_RandomLedger replays random postings and checks every
// category against an independent fold of its raw records.
func (s *FundTransferTestSuite) TestBalanceInvariant_RandomLedger() {
	gofakeit.Seed(42)

	initial := amt(gofakeit.Float64Range(0, 500))
	require.NoError(s.T(), s.b.NewBudget("main", initial))

	names := []string{models.DefaultCategory}
	for i := 0; i < 4; i++ {
		name := gofakeit.BuzzWord() + " " + gofakeit.Noun()
		if _, err := s.b.NewCategory(name, amt(gofakeit.Float64Range(0, 150))); err != nil {
			continue
		}
		names = append(names, name)
	}

	for i := 0; i < 60; i++ {
		name := names[gofakeit.Number(0, len(names)-1)]
		amount := amt(gofakeit.Float64Range(0.01, 80))

		switch gofakeit.Number(0, 3) {
		case 0:
			_, err := s.b.NewTransactionToCategory(name).Payee(gofakeit.Company()).Income(amount).Done()
			require.NoError(s.T(), err)
		case 1:
			_, err := s.b.NewTransactionToCategory(name).Payee(gofakeit.Company()).Expense(amount).Done()
			require.NoError(s.T(), err)
		case 2:
			err := s.b.FundFromUnallocated(name)
			if err != nil {
				assert.True(s.T(), errorsIsAny(err, ErrAlreadyFunded, ErrOverFunding), "unexpected %v", err)
			}
		default:
			other := names[gofakeit.Number(0, len(names)-1)]
			err := s.b.TransferFunds(name, other, amount)
			if err != nil {
				assert.True(s.T(), errorsIsAny(err, ErrOverFunding, ErrSameCategoryTransfer), "unexpected %v", err)
			}
		}
	}

	transactions, err := s.b.Transactions()
	require.NoError(s.T(), err)
	views, err := s.b.CategoryModels()
	require.NoError(s.T(), err)

	income, expense := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}

	sum := decimal.Zero
	for _, v := range views {
		opening := decimal.Zero
		if v.Category.IsUnallocated() {
			opening = v.Allocated()
		}
		want := money.Sum(opening, v.Income, v.Expense, v.TransferIn, v.TransferOut.Neg())
		assert.True(s.T(), want.Equal(v.Balance()), "%s: want %s got %s", v.Name(), want, v.Balance())
		sum = sum.Add(v.Balance())
	}

	total := s.totalBalance()
	assert.True(s.T(), money.Sum(initial, income, expense).Equal(total), "total %s", total)
	assert.True(s.T(), money.Normalize(sum).Equal(total))

	unallocated, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	assert.False(s.T(), unallocated.IsNegative(), "pool never goes negative through funding")
}

func errorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
