package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/tmahmood/envelop-budget/internal/models"

	"gorm.io/gorm"
)

// AuditLogRepository handles database operations for audit logs
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepositoryInterface {
	return &AuditLogRepository{
		db: db,
	}
}

// Create creates a new audit log entry
func (r *AuditLogRepository) Create(log *models.AuditLog) error {
	if log == nil {
		return errors.New("audit log cannot be nil")
	}

	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", storeError(err))
	}

	return nil
}

// ListByBudget retrieves a budget's audit logs, newest first
func (r *AuditLogRepository) ListByBudget(budgetID uint, offset, limit int) ([]*models.AuditLog, int64, error) {
	return r.list(r.db.Model(&models.AuditLog{}).Where("budget_id = ?", budgetID), offset, limit)
}

// ListByAction retrieves a budget's audit logs for one action, newest first
func (r *AuditLogRepository) ListByAction(budgetID uint, action string, offset, limit int) ([]*models.AuditLog, int64, error) {
	query := r.db.Model(&models.AuditLog{}).Where("budget_id = ? AND action = ?", budgetID, action)
	return r.list(query, offset, limit)
}

func (r *AuditLogRepository) list(query *gorm.DB, offset, limit int) ([]*models.AuditLog, int64, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var logs []*models.AuditLog
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", storeError(err))
	}

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get audit logs: %w", storeError(err))
	}

	return logs, total, nil
}

// DeleteOlderThan removes audit logs older than the specified duration
func (r *AuditLogRepository) DeleteOlderThan(duration time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-duration)

	result := r.db.Where("created_at < ?", cutoffTime).Delete(&models.AuditLog{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old audit logs: %w", storeError(result.Error))
	}

	return result.RowsAffected, nil
}
