package repositories

import (
	"errors"
	"fmt"

	"github.com/tmahmood/envelop-budget/internal/models"

	"gorm.io/gorm"
)

var ErrTransferReferenceExists = errors.New("transfer with reference already exists")

// transferRepository implements TransferRepositoryInterface
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) TransferRepositoryInterface {
	return &transferRepository{db: db}
}

func (r *transferRepository) WithTx(tx *gorm.DB) TransferRepositoryInterface {
	return &transferRepository{db: tx}
}

// Create records a transfer posting
func (r *transferRepository) Create(transfer *models.Transfer) error {
	if transfer == nil {
		return errors.New("transfer cannot be nil")
	}

	if err := r.db.Create(transfer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return ErrTransferReferenceExists
		}
		return fmt.Errorf("failed to create transfer: %w", storeError(err))
	}

	return nil
}

// ListByBudget returns every transfer of the budget in posting order
func (r *transferRepository) ListByBudget(budgetID uint) ([]models.Transfer, error) {
	var transfers []models.Transfer
	if err := r.db.Where("budget_id = ?", budgetID).Order("id ASC").Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", storeError(err))
	}
	return transfers, nil
}

// ListByCategory returns transfers into or out of the category
func (r *transferRepository) ListByCategory(budgetID, categoryID uint) ([]models.Transfer, error) {
	var transfers []models.Transfer
	if err := r.db.Where("budget_id = ?", budgetID).
		Where("from_category_id = ? OR to_category_id = ?", categoryID, categoryID).
		Order("id ASC").
		Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to list category transfers: %w", storeError(err))
	}
	return transfers, nil
}
