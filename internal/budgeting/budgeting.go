// Package budgeting is the envelope ledger engine. Budgeting owns the current
// budget's categories, transactions and transfers and is the only component
// that writes them. Every call is serialised behind one mutex and every
// mutation is committed to the record store before the call returns.
package budgeting

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tmahmood/envelop-budget/internal/database"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
	"github.com/tmahmood/envelop-budget/internal/repositories"
	"github.com/tmahmood/envelop-budget/internal/validation"
)

type Budgeting struct {
	mu       sync.Mutex
	db       *database.DB
	repos    *repositories.Repositories
	validate *validation.Validator
	logger   *slog.Logger
	metrics  MetricsRecorderInterface
	now      func() time.Time
	current  *models.Budget

	listenersMu  sync.Mutex
	listeners    []subscription
	nextListener int
}

// Option configures a Budgeting instance
type Option func(*Budgeting)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(b *Budgeting) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(metrics MetricsRecorderInterface) Option {
	return func(b *Budgeting) {
		if metrics != nil {
			b.metrics = metrics
		}
	}
}

// WithClock replaces the time source used for default transaction dates
func WithClock(now func() time.Time) Option {
	return func(b *Budgeting) {
		if now != nil {
			b.now = now
		}
	}
}

// New creates the engine over an established, migrated connection. No budget
// is current until NewBudget or SetCurrentBudget succeeds.
func New(db *database.DB, opts ...Option) *Budgeting {
	b := &Budgeting{
		db:       db,
		repos:    repositories.New(db.DB),
		validate: validation.GetValidator(),
		logger:   slog.Default(),
		metrics:  noopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBudget creates a budget holding initial unallocated funds, together with
// its Unallocated and Uncategorized categories, and makes it current.
func (b *Budgeting) NewBudget(name string, initial decimal.Decimal) error {
	b.mu.Lock()
	start := time.Now()
	budget, err := b.newBudget(name, initial)
	b.observe("new_budget", start, err)
	b.mu.Unlock()

	if err != nil {
		return err
	}
	b.publish(Event{Kind: EventBudgetCreated, BudgetID: budget.ID, Amount: budget.InitialAmount})
	return nil
}

func (b *Budgeting) newBudget(name string, initial decimal.Decimal) (*models.Budget, error) {
	name = strings.TrimSpace(name)
	initial = money.Normalize(initial)

	if name == "" {
		return nil, fmt.Errorf("%w: budget name is required", ErrInvalidBudget)
	}
	if initial.IsNegative() {
		return nil, fmt.Errorf("%w: initial amount cannot be negative", ErrInvalidBudget)
	}
	if err := b.validate.Var(initial, "max_amount"); err != nil {
		return nil, fmt.Errorf("%w: initial amount cannot exceed %s", ErrInvalidBudget, money.Format(money.MaxAmount))
	}

	if _, err := b.repos.Budgets.GetByName(name); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrBudgetAlreadyExists, name)
	} else if !errors.Is(err, repositories.ErrBudgetNotFound) {
		return nil, err
	}

	budget := &models.Budget{Name: name, InitialAmount: initial}
	err := b.db.Transaction(func(tx *gorm.DB) error {
		repos := b.repos.WithTx(tx)

		if err := repos.Budgets.Create(budget); err != nil {
			if errors.Is(err, repositories.ErrBudgetNameExists) {
				return fmt.Errorf("%w: %q", ErrBudgetAlreadyExists, name)
			}
			return err
		}

		pool := &models.Category{
			BudgetID:  budget.ID,
			Name:      models.UnallocatedCategory,
			Allocated: initial,
			Kind:      models.CategoryKindUnallocated,
		}
		if err := repos.Categories.Create(pool); err != nil {
			return err
		}

		fallback := &models.Category{
			BudgetID:  budget.ID,
			Name:      models.DefaultCategory,
			Allocated: decimal.Zero,
			Kind:      models.CategoryKindUncategorized,
		}
		return repos.Categories.Create(fallback)
	})
	if err != nil {
		b.logger.Error("failed to create budget", "budget", name, "error", err)
		return nil, err
	}

	b.current = budget
	b.logger.Info("budget created", "budget", name, "budget_id", budget.ID, "initial_amount", initial.String())
	return budget, nil
}

// SetCurrentBudget switches the active budget
func (b *Budgeting) SetCurrentBudget(name string) error {
	b.mu.Lock()
	budget, err := b.repos.Budgets.GetByName(strings.TrimSpace(name))
	if err != nil {
		b.mu.Unlock()
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return fmt.Errorf("%w: %q", ErrBudgetNotFound, name)
		}
		return err
	}
	b.current = budget
	b.mu.Unlock()

	b.logger.Debug("budget selected", "budget", budget.Name, "budget_id", budget.ID)
	b.publish(Event{Kind: EventBudgetSelected, BudgetID: budget.ID})
	return nil
}

// CurrentBudget returns a copy of the active budget
func (b *Budgeting) CurrentBudget() (*models.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}
	cp := *budget
	return &cp, nil
}

// Budgets lists every budget in the store
func (b *Budgeting) Budgets() ([]models.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.repos.Budgets.List()
}

// currentBudget must be called with mu held
func (b *Budgeting) currentBudget() (*models.Budget, error) {
	if b.current == nil {
		return nil, fmt.Errorf("%w: %w", ErrNoCurrentBudget, ErrBudgetNotFound)
	}
	return b.current, nil
}

func (b *Budgeting) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	b.metrics.IncrementCounter(metricOperation, map[string]string{
		"operation": operation,
		"status":    status,
	})
	b.metrics.RecordProcessingTime(metricOperationDuration, time.Since(start))
}

func (b *Budgeting) recordBalance(budget *models.Budget, m models.CategoryModel) {
	balance, _ := m.Balance().Float64()
	b.metrics.RecordGauge(metricCategoryBalance, balance, map[string]string{
		"budget":   budget.Name,
		"category": m.Name(),
	})
}
