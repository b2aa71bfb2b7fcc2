package repositories

import (
	"errors"
	"fmt"

	"github.com/tmahmood/envelop-budget/internal/models"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: tx}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return ErrCategoryNameExists
		}
		return fmt.Errorf("failed to create category: %w", storeError(err))
	}

	return nil
}

// Update saves name and allocation changes of an existing category
func (r *categoryRepository) Update(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return ErrCategoryNameExists
		}
		return fmt.Errorf("failed to update category: %w", storeError(err))
	}

	return nil
}

// GetByID retrieves a category of the budget by ID
func (r *categoryRepository) GetByID(budgetID, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("budget_id = ? AND id = ?", budgetID, id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", storeError(err))
	}
	return &category, nil
}

// GetByName retrieves a category of the budget by name
func (r *categoryRepository) GetByName(budgetID uint, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("budget_id = ? AND name = ?", budgetID, name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", storeError(err))
	}
	return &category, nil
}

// GetByKind retrieves the first category of the given kind
func (r *categoryRepository) GetByKind(budgetID uint, kind string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("budget_id = ? AND kind = ?", budgetID, kind).Order("id ASC").First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get %s category: %w", kind, err)
	}
	return &category, nil
}

// ListByBudget returns the budget's categories in creation order
func (r *categoryRepository) ListByBudget(budgetID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("budget_id = ?", budgetID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", storeError(err))
	}
	return categories, nil
}

// ExistsByName checks whether the budget already has a category with name
func (r *categoryRepository) ExistsByName(budgetID uint, name string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("budget_id = ? AND name = ?", budgetID, name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", storeError(err))
	}
	return count > 0, nil
}
