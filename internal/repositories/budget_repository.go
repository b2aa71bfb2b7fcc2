package repositories

import (
	"errors"
	"fmt"

	"github.com/tmahmood/envelop-budget/internal/models"

	"gorm.io/gorm"
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) WithTx(tx *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: tx}
}

// Create creates a new budget
func (r *budgetRepository) Create(budget *models.Budget) error {
	if budget == nil {
		return errors.New("budget cannot be nil")
	}

	if err := r.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return ErrBudgetNameExists
		}
		return fmt.Errorf("failed to create budget: %w", storeError(err))
	}

	return nil
}

// GetByID retrieves a budget by ID
func (r *budgetRepository) GetByID(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget by ID: %w", storeError(err))
	}
	return &budget, nil
}

// GetByName retrieves a budget by its unique name
func (r *budgetRepository) GetByName(name string) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("name = ?", name).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget by name: %w", storeError(err))
	}
	return &budget, nil
}

// List returns every budget in creation order
func (r *budgetRepository) List() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", storeError(err))
	}
	return budgets, nil
}
