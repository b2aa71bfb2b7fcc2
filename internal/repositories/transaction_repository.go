package repositories

import (
	"errors"
	"fmt"

	"github.com/tmahmood/envelop-budget/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository. There is
// deliberately no update method: posted transactions are immutable.
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: tx}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", storeError(err))
	}

	return nil
}

// GetByID retrieves a transaction of the budget by ID
func (r *transactionRepository) GetByID(budgetID, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("budget_id = ? AND id = ?", budgetID, id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", storeError(err))
	}
	return &transaction, nil
}

// ListByBudget returns the budget's transactions, newest first
func (r *transactionRepository) ListByBudget(budgetID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("budget_id = ?", budgetID).
		Order("date_created DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", storeError(err))
	}
	return transactions, nil
}

// ListByCategory returns the category's transactions, newest first
func (r *transactionRepository) ListByCategory(budgetID, categoryID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("budget_id = ? AND category_id = ?", budgetID, categoryID).
		Order("date_created DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list category transactions: %w", storeError(err))
	}
	return transactions, nil
}
