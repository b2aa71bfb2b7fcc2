package budgeting

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
	"github.com/tmahmood/envelop-budget/internal/repositories"
)

const maxCategoryNameLength = 100

// AllCategories returns every category of the current budget, the
// Unallocated pool included, in creation order.
func (b *Budgeting) AllCategories() ([]models.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}
	return b.repos.Categories.ListByBudget(budget.ID)
}

// Categories returns the categories money can be assigned to: every category
// except the Unallocated pool, in creation order.
func (b *Budgeting) Categories() ([]models.Category, error) {
	all, err := b.AllCategories()
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.IsUnallocated() {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// CategoryModels returns the computed view of every category in creation order
func (b *Budgeting) CategoryModels() ([]models.CategoryModel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}
	return b.loadCategoryModels(b.repos, budget)
}

// NewCategory adds an envelope with the given allocation to the current budget
func (b *Budgeting) NewCategory(name string, allocated decimal.Decimal) (*models.Category, error) {
	b.mu.Lock()
	start := time.Now()
	category, err := b.newCategory(name, allocated)
	b.observe("new_category", start, err)
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	b.publish(Event{Kind: EventCategoryCreated, BudgetID: category.BudgetID, CategoryID: category.ID})
	return category, nil
}

func (b *Budgeting) newCategory(name string, allocated decimal.Decimal) (*models.Category, error) {
	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}

	name, allocated, err = b.normalizeCategoryInput(name, allocated)
	if err != nil {
		return nil, err
	}

	exists, err := b.repos.Categories.ExistsByName(budget.ID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrCategoryAlreadyExists, name)
	}

	category := &models.Category{
		BudgetID:  budget.ID,
		Name:      name,
		Allocated: allocated,
		Kind:      models.CategoryKindEnvelope,
	}
	if err := b.repos.Categories.Create(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNameExists) {
			return nil, fmt.Errorf("%w: %q", ErrCategoryAlreadyExists, name)
		}
		return nil, err
	}

	b.logger.Info("category created",
		"budget", budget.Name,
		"category", category.Name,
		"category_id", category.ID,
		"allocated", allocated.String(),
	)
	return category, nil
}

// UpdateCategory renames a category and changes its allocation. The two
// built-in categories keep their names and the Unallocated pool cannot be
// edited at all; its allocation is the budget's opening funds.
func (b *Budgeting) UpdateCategory(id uint, name string, allocated decimal.Decimal) (*models.Category, error) {
	b.mu.Lock()
	start := time.Now()
	category, err := b.updateCategory(id, name, allocated)
	b.observe("update_category", start, err)
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	b.publish(Event{Kind: EventCategoryUpdated, BudgetID: category.BudgetID, CategoryID: category.ID})
	return category, nil
}

func (b *Budgeting) updateCategory(id uint, name string, allocated decimal.Decimal) (*models.Category, error) {
	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}

	category, err := b.repos.Categories.GetByID(budget.ID, id)
	if err != nil {
		return nil, categoryLookupError(err, fmt.Sprintf("#%d", id))
	}

	name, allocated, err = b.normalizeCategoryInput(name, allocated)
	if err != nil {
		return nil, err
	}

	if category.IsUnallocated() {
		return nil, fmt.Errorf("%w: the %s pool cannot be edited", ErrInvalidCategory, models.UnallocatedCategory)
	}
	if category.IsDistinguished() && name != category.Name {
		return nil, fmt.Errorf("%w: %q cannot be renamed", ErrInvalidCategory, category.Name)
	}

	if name != category.Name {
		exists, err := b.repos.Categories.ExistsByName(budget.ID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %q", ErrCategoryAlreadyExists, name)
		}
	}

	category.Name = name
	category.Allocated = allocated
	if err := b.repos.Categories.Update(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNameExists) {
			return nil, fmt.Errorf("%w: %q", ErrCategoryAlreadyExists, name)
		}
		return nil, err
	}

	b.logger.Info("category updated",
		"budget", budget.Name,
		"category", category.Name,
		"category_id", category.ID,
		"allocated", allocated.String(),
	)
	return category, nil
}

// CategoryByName looks up a category of the current budget
func (b *Budgeting) CategoryByName(name string) (*models.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}

	category, err := b.repos.Categories.GetByName(budget.ID, strings.TrimSpace(name))
	if err != nil {
		return nil, categoryLookupError(err, name)
	}
	return category, nil
}

// GetCategoryModelByID computes the view of the category with the given id
func (b *Budgeting) GetCategoryModelByID(id uint) (models.CategoryModel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return models.CategoryModel{}, err
	}

	category, err := b.repos.Categories.GetByID(budget.ID, id)
	if err != nil {
		return models.CategoryModel{}, categoryLookupError(err, fmt.Sprintf("#%d", id))
	}
	return b.loadCategoryModel(b.repos, *category)
}

// CategoryModel computes the current view of category
func (b *Budgeting) CategoryModel(category models.Category) (models.CategoryModel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.loadCategoryModel(b.repos, category)
}

// TransactionModel binds transaction to the current view of its category
func (b *Budgeting) TransactionModel(transaction models.Transaction) (models.TransactionModel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	category, err := b.repos.Categories.GetByID(transaction.BudgetID, transaction.CategoryID)
	if err != nil {
		return models.TransactionModel{}, categoryLookupError(err, fmt.Sprintf("#%d", transaction.CategoryID))
	}

	cm, err := b.loadCategoryModel(b.repos, *category)
	if err != nil {
		return models.TransactionModel{}, err
	}
	return models.NewTransactionModel(transaction, cm), nil
}

// Transactions returns every transaction of the current budget, newest first
func (b *Budgeting) Transactions() ([]models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}
	return b.repos.Transactions.ListByBudget(budget.ID)
}

// CategoryTransactions returns the transactions posted to one category, newest first
func (b *Budgeting) CategoryTransactions(id uint) ([]models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	budget, err := b.currentBudget()
	if err != nil {
		return nil, err
	}

	if _, err := b.repos.Categories.GetByID(budget.ID, id); err != nil {
		return nil, categoryLookupError(err, fmt.Sprintf("#%d", id))
	}
	return b.repos.Transactions.ListByCategory(budget.ID, id)
}

func (b *Budgeting) loadCategoryModel(repos *repositories.Repositories, category models.Category) (models.CategoryModel, error) {
	transactions, err := repos.Transactions.ListByCategory(category.BudgetID, category.ID)
	if err != nil {
		return models.CategoryModel{}, err
	}
	transfers, err := repos.Transfers.ListByCategory(category.BudgetID, category.ID)
	if err != nil {
		return models.CategoryModel{}, err
	}
	return models.NewCategoryModel(category, transactions, transfers), nil
}

func (b *Budgeting) loadCategoryModels(repos *repositories.Repositories, budget *models.Budget) ([]models.CategoryModel, error) {
	categories, err := repos.Categories.ListByBudget(budget.ID)
	if err != nil {
		return nil, err
	}
	transactions, err := repos.Transactions.ListByBudget(budget.ID)
	if err != nil {
		return nil, err
	}
	transfers, err := repos.Transfers.ListByBudget(budget.ID)
	if err != nil {
		return nil, err
	}

	views := make([]models.CategoryModel, 0, len(categories))
	for _, c := range categories {
		views = append(views, models.NewCategoryModel(c, transactions, transfers))
	}
	return views, nil
}

func (b *Budgeting) normalizeCategoryInput(name string, allocated decimal.Decimal) (string, decimal.Decimal, error) {
	name = strings.TrimSpace(name)
	allocated = money.Normalize(allocated)

	if name == "" {
		return "", decimal.Zero, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return "", decimal.Zero, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidCategory, maxCategoryNameLength)
	}
	if allocated.IsNegative() {
		return "", decimal.Zero, fmt.Errorf("%w: allocation cannot be negative", ErrInvalidCategory)
	}
	if err := b.validate.Var(allocated, "max_amount"); err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: allocation cannot exceed %s", ErrInvalidCategory, money.Format(money.MaxAmount))
	}
	return name, allocated, nil
}

func categoryLookupError(err error, ref string) error {
	if errors.Is(err, repositories.ErrCategoryNotFound) {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, ref)
	}
	return fmt.Errorf("failed to load category %s: %w", ref, err)
}
