package repositories

import (
	"time"

	"github.com/tmahmood/envelop-budget/internal/models"

	"gorm.io/gorm"
)

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	WithTx(tx *gorm.DB) BudgetRepositoryInterface
	Create(budget *models.Budget) error
	GetByID(id uint) (*models.Budget, error)
	GetByName(name string) (*models.Budget, error)
	List() ([]models.Budget, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	WithTx(tx *gorm.DB) CategoryRepositoryInterface
	Create(category *models.Category) error
	Update(category *models.Category) error
	GetByID(budgetID, id uint) (*models.Category, error)
	GetByName(budgetID uint, name string) (*models.Category, error)
	GetByKind(budgetID uint, kind string) (*models.Category, error)
	ListByBudget(budgetID uint) ([]models.Category, error)
	ExistsByName(budgetID uint, name string) (bool, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	WithTx(tx *gorm.DB) TransactionRepositoryInterface
	Create(transaction *models.Transaction) error
	GetByID(budgetID, id uint) (*models.Transaction, error)
	ListByBudget(budgetID uint) ([]models.Transaction, error)
	ListByCategory(budgetID, categoryID uint) ([]models.Transaction, error)
}

// TransferRepositoryInterface defines the contract for transfer repository operations
type TransferRepositoryInterface interface {
	WithTx(tx *gorm.DB) TransferRepositoryInterface
	Create(transfer *models.Transfer) error
	ListByBudget(budgetID uint) ([]models.Transfer, error)
	ListByCategory(budgetID, categoryID uint) ([]models.Transfer, error)
}

// AuditLogRepositoryInterface defines the contract for the ledger audit trail
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	ListByBudget(budgetID uint, offset, limit int) ([]*models.AuditLog, int64, error)
	ListByAction(budgetID uint, action string, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}

// Repositories groups the ledger repositories so they can be scoped to one
// database transaction together.
type Repositories struct {
	Budgets      BudgetRepositoryInterface
	Categories   CategoryRepositoryInterface
	Transactions TransactionRepositoryInterface
	Transfers    TransferRepositoryInterface
}

// New creates the gorm backed repositories
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Budgets:      NewBudgetRepository(db),
		Categories:   NewCategoryRepository(db),
		Transactions: NewTransactionRepository(db),
		Transfers:    NewTransferRepository(db),
	}
}

// WithTx returns copies of every repository bound to tx
func (r *Repositories) WithTx(tx *gorm.DB) *Repositories {
	return &Repositories{
		Budgets:      r.Budgets.WithTx(tx),
		Categories:   r.Categories.WithTx(tx),
		Transactions: r.Transactions.WithTx(tx),
		Transfers:    r.Transfers.WithTx(tx),
	}
}
