package budgeting

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tmahmood/envelop-budget/internal/database"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

var fixedNow = time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC)

func amt(f float64) decimal.Decimal {
	return money.FromFloat(f)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// BudgetingTestSuite covers budget and category management
type BudgetingTestSuite struct {
	suite.Suite
	db *database.DB
	b  *Budgeting
}

func (s *BudgetingTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.b = New(s.db,
		WithLogger(discardLogger()),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestBudgetingTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetingTestSuite))
}

func (s *BudgetingTestSuite) TestNewBudget_CreatesDistinguishedCategories() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))

	current, err := s.b.CurrentBudget()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "main", current.Name)
	assert.True(s.T(), amt(100).Equal(current.InitialAmount))

	all, err := s.b.AllCategories()
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
	assert.Equal(s.T(), models.UnallocatedCategory, all[0].Name)
	assert.True(s.T(), all[0].IsUnallocated())
	assert.True(s.T(), amt(100).Equal(all[0].Allocated))
	assert.Equal(s.T(), models.DefaultCategory, all[1].Name)
	assert.True(s.T(), all[1].IsUncategorized())

	unallocated, err := s.b.UnallocatedBalance()
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(100).Equal(unallocated))
}

func (s *BudgetingTestSuite) TestNewBudget_Duplicate() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))

	err := s.b.NewBudget("main", amt(10))
	assert.ErrorIs(s.T(), err, ErrBudgetAlreadyExists)

	budgets, err := s.b.Budgets()
	require.NoError(s.T(), err)
	assert.Len(s.T(), budgets, 1)
}

func (s *BudgetingTestSuite) TestNewBudget_Invalid() {
	assert.ErrorIs(s.T(), s.b.NewBudget("  ", amt(10)), ErrInvalidBudget)
	assert.ErrorIs(s.T(), s.b.NewBudget("main", amt(-1)), ErrInvalidBudget)
	assert.ErrorIs(s.T(), s.b.NewBudget("main", decimal.RequireFromString("12345678901234567.89")), ErrInvalidBudget)

	_, err := s.b.CurrentBudget()
	assert.ErrorIs(s.T(), err, ErrBudgetNotFound)
}

func (s *BudgetingTestSuite) TestSetCurrentBudget() {
	require.NoError(s.T(), s.b.NewBudget("home", amt(10)))
	require.NoError(s.T(), s.b.NewBudget("work", amt(20)))
	_, err := s.b.NewCategory("Travel", amt(5))
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.b.SetCurrentBudget("home"))
	current, err := s.b.CurrentBudget()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "home", current.Name)

	_, err = s.b.CategoryByName("Travel")
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound, "categories are scoped to their budget")

	err = s.b.SetCurrentBudget("missing")
	assert.ErrorIs(s.T(), err, ErrBudgetNotFound)

	current, err = s.b.CurrentBudget()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "home", current.Name, "failed switch keeps the previous budget")
}

func (s *BudgetingTestSuite) TestOperations_WithoutCurrentBudget() {
	_, err := s.b.AllCategories()
	assert.ErrorIs(s.T(), err, ErrBudgetNotFound)

	_, err = s.b.NewCategory("Groceries", amt(50))
	assert.ErrorIs(s.T(), err, ErrBudgetNotFound)

	assert.ErrorIs(s.T(), s.b.FundFromUnallocated("Groceries"), ErrBudgetNotFound)

	_, err = s.b.TotalIncome()
	assert.ErrorIs(s.T(), err, ErrBudgetNotFound)

	_, err = s.b.NewTransactionToCategory("").Income(amt(5)).Done()
	assert.ErrorIs(s.T(), err, ErrInvalidTransaction)
}

func (s *BudgetingTestSuite) TestCategories_OrderAndPoolExclusion() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))
	for _, name := range []string{"Rent", "Groceries", "Fun"} {
		_, err := s.b.NewCategory(name, amt(10))
		require.NoError(s.T(), err)
	}

	all, err := s.b.AllCategories()
	require.NoError(s.T(), err)
	categories, err := s.b.Categories()
	require.NoError(s.T(), err)

	assert.Len(s.T(), all, 5)
	require.Len(s.T(), categories, 4)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
		assert.False(s.T(), c.IsUnallocated())
	}
	assert.Equal(s.T(), []string{models.DefaultCategory, "Rent", "Groceries", "Fun"}, names)

	for i := 1; i < len(all); i++ {
		assert.Greater(s.T(), all[i].ID, all[i-1].ID)
	}
}

func (s *BudgetingTestSuite) TestNewCategory_Validation() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))

	c, err := s.b.NewCategory("  Groceries ", amt(50.004))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Groceries", c.Name)
	assert.True(s.T(), amt(50).Equal(c.Allocated))
	assert.NotZero(s.T(), c.ID)

	_, err = s.b.NewCategory("Groceries", amt(10))
	assert.ErrorIs(s.T(), err, ErrCategoryAlreadyExists)

	_, err = s.b.NewCategory(models.UnallocatedCategory, amt(10))
	assert.ErrorIs(s.T(), err, ErrCategoryAlreadyExists)

	_, err = s.b.NewCategory("", amt(10))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)

	_, err = s.b.NewCategory("Debt", amt(-10))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)

	_, err = s.b.NewCategory("Mortgage", decimal.New(1, 13))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)

	_, err = s.b.UpdateCategory(c.ID, "Groceries", decimal.RequireFromString("12345678901234567.89"))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)
}

func (s *BudgetingTestSuite) TestNewCategory_NameLengthCountsCharacters() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))

	name := strings.Repeat("é", 60)
	c, err := s.b.NewCategory(name, amt(10))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), name, c.Name)

	_, err = s.b.NewCategory(strings.Repeat("é", 101), amt(10))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)
}

func (s *BudgetingTestSuite) TestUpdateCategory() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))
	groceries, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)
	_, err = s.b.NewCategory("Rent", amt(500))
	require.NoError(s.T(), err)

	updated, err := s.b.UpdateCategory(groceries.ID, "Food", amt(75))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), groceries.ID, updated.ID)
	assert.Equal(s.T(), "Food", updated.Name)
	assert.True(s.T(), amt(75).Equal(updated.Allocated))

	_, err = s.b.CategoryByName("Groceries")
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)

	_, err = s.b.UpdateCategory(groceries.ID, "Rent", amt(75))
	assert.ErrorIs(s.T(), err, ErrCategoryAlreadyExists)

	_, err = s.b.UpdateCategory(9999, "Other", amt(1))
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)
}

func (s *BudgetingTestSuite) TestUpdateCategory_DistinguishedCategories() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))
	pool, err := s.b.CategoryByName(models.UnallocatedCategory)
	require.NoError(s.T(), err)
	fallback, err := s.b.CategoryByName(models.DefaultCategory)
	require.NoError(s.T(), err)

	_, err = s.b.UpdateCategory(pool.ID, models.UnallocatedCategory, amt(1000))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)

	_, err = s.b.UpdateCategory(fallback.ID, "Misc", amt(0))
	assert.ErrorIs(s.T(), err, ErrInvalidCategory)

	updated, err := s.b.UpdateCategory(fallback.ID, models.DefaultCategory, amt(20))
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(20).Equal(updated.Allocated))
}

func (s *BudgetingTestSuite) TestGetCategoryModelByID() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))
	c, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)

	_, err = s.b.NewTransactionToCategory("Groceries").Income(amt(20)).Done()
	require.NoError(s.T(), err)

	cm, err := s.b.GetCategoryModelByID(c.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Groceries", cm.Name())
	assert.True(s.T(), amt(20).Equal(cm.Balance()))
	assert.True(s.T(), amt(30).Equal(cm.Shortfall()))

	viaRecord, err := s.b.CategoryModel(*c)
	require.NoError(s.T(), err)
	assert.True(s.T(), cm.SameCategory(viaRecord))
	assert.True(s.T(), cm.Balance().Equal(viaRecord.Balance()))

	_, err = s.b.GetCategoryModelByID(4242)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)
}

func (s *BudgetingTestSuite) TestStoreFailure_IsWrappedNotMapped() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))
	require.NoError(s.T(), s.db.Close())

	_, err := s.b.NewCategory("Groceries", amt(50))
	require.Error(s.T(), err)
	for _, domainErr := range []error{
		ErrBudgetNotFound, ErrCategoryNotFound, ErrCategoryAlreadyExists,
		ErrAlreadyFunded, ErrOverFunding, ErrInvalidTransaction, ErrInvalidCategory,
	} {
		assert.False(s.T(), errors.Is(err, domainErr), "store failure must not map onto %v", domainErr)
	}
}

func (s *BudgetingTestSuite) TestSubscribe_ReceivesCommittedEvents() {
	var mu sync.Mutex
	var got []EventKind
	unsubscribe := s.b.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.Kind)
	})

	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))
	_, err := s.b.NewCategory("Groceries", amt(50))
	require.NoError(s.T(), err)
	_, err = s.b.NewTransactionToCategory("Groceries").Expense(amt(5)).Done()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.b.FundFromUnallocated("Groceries"))

	// failures publish nothing
	assert.Error(s.T(), s.b.FundFromUnallocated("Groceries"))

	unsubscribe()
	require.NoError(s.T(), s.b.SetCurrentBudget("main"))

	assert.Equal(s.T(), []EventKind{
		EventBudgetCreated,
		EventCategoryCreated,
		EventTransactionCreated,
		EventFundsTransferred,
	}, got)
}

func (s *BudgetingTestSuite) TestSubscribe_ListenerMayCallBack() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(100)))

	var balance decimal.Decimal
	s.b.Subscribe(func(e Event) {
		if e.Kind == EventTransactionCreated {
			balance, _ = s.b.ActualTotalBalance()
		}
	})

	_, err := s.b.NewTransactionToCategory("").Income(amt(25)).Done()
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(125).Equal(balance))
}

func (s *BudgetingTestSuite) TestConcurrentPostings_AreSerialized() {
	require.NoError(s.T(), s.b.NewBudget("main", amt(0)))

	const workers = 8
	const perWorker = 5

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := s.b.NewTransactionToCategory("").Income(amt(1.25)).Done(); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.T().Errorf("unexpected error: %v", err)
	}

	transactions, err := s.b.Transactions()
	require.NoError(s.T(), err)
	assert.Len(s.T(), transactions, workers*perWorker)

	income, err := s.b.TotalIncome()
	require.NoError(s.T(), err)
	assert.True(s.T(), amt(50).Equal(income), "got %s", income)
}
