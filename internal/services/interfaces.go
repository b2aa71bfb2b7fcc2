package services

import (
	"time"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/models"
)

// AuditServiceInterface defines the contract for the ledger activity trail
type AuditServiceInterface interface {
	CreateAuditLog(log *models.AuditLog) error
	Record(evt budgeting.Event)
	GetBudgetActivity(budgetID uint, action string, offset, limit int) ([]*models.AuditLog, int64, error)
	Prune(olderThan time.Duration) (int64, error)
}

// TransactionGeneratorInterface fills a budget with demo activity
type TransactionGeneratorInterface interface {
	Populate(b *budgeting.Budgeting, startDate, endDate time.Time) (*DemoReport, error)
	GetMerchantPool() []Merchant
	SelectRandomMerchant() Merchant
}

var (
	_ AuditServiceInterface         = (*AuditService)(nil)
	_ TransactionGeneratorInterface = (*TransactionGenerator)(nil)
)
