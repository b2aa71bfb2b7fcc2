package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
	"github.com/tmahmood/envelop-budget/internal/repositories"
)

// AuditService keeps the append-only trail of committed ledger changes
type AuditService struct {
	repo   repositories.AuditLogRepositoryInterface
	logger *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

var (
	ErrInvalidAuditLog     = errors.New("invalid audit log")
	ErrInvalidBudgetID     = errors.New("invalid budget ID")
	ErrInvalidActivityType = errors.New("invalid activity type")
	ErrInvalidRetention    = errors.New("retention must be positive")
)

// ValidateActivityType validates that the action names a recorded ledger event
func ValidateActivityType(action string) error {
	switch budgeting.EventKind(action) {
	case budgeting.EventBudgetCreated,
		budgeting.EventCategoryCreated,
		budgeting.EventCategoryUpdated,
		budgeting.EventTransactionCreated,
		budgeting.EventFundsTransferred:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidActivityType, action)
	}
}

// CreateAuditLog creates a new audit log entry with validation
func (s *AuditService) CreateAuditLog(log *models.AuditLog) error {
	if log == nil {
		return ErrInvalidAuditLog
	}
	if log.BudgetID == 0 {
		return ErrInvalidBudgetID
	}

	if err := ValidateActivityType(log.Action); err != nil {
		return err
	}

	if err := s.repo.Create(log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// Attach records every ledger mutation of b from now on. The returned
// function stops recording.
func (s *AuditService) Attach(b *budgeting.Budgeting) func() {
	return b.Subscribe(s.Record)
}

// Record turns a ledger event into an audit log entry. Selecting a budget
// changes nothing and is not recorded. A failed write is logged, never
// propagated: the mutation it describes is already committed.
func (s *AuditService) Record(evt budgeting.Event) {
	if evt.Kind == budgeting.EventBudgetSelected {
		return
	}

	log := auditLogFor(evt)
	if err := s.CreateAuditLog(log); err != nil {
		s.logger.Warn("failed to record ledger activity",
			"action", evt.Kind,
			"budget_id", evt.BudgetID,
			"error", err,
		)
	}
}

// GetBudgetActivity retrieves a budget's activity, newest first. An empty
// action lists every kind.
func (s *AuditService) GetBudgetActivity(budgetID uint, action string, offset, limit int) ([]*models.AuditLog, int64, error) {
	if budgetID == 0 {
		return nil, 0, ErrInvalidBudgetID
	}

	if action == "" {
		return s.repo.ListByBudget(budgetID, offset, limit)
	}
	if err := ValidateActivityType(action); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByAction(budgetID, action, offset, limit)
}

// Prune deletes activity of every budget recorded more than olderThan ago
// and returns how many entries went.
func (s *AuditService) Prune(olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRetention, olderThan)
	}

	deleted, err := s.repo.DeleteOlderThan(olderThan)
	if err != nil {
		return 0, err
	}
	s.logger.Info("pruned ledger activity", "older_than", olderThan.String(), "deleted", deleted)
	return deleted, nil
}

func auditLogFor(evt budgeting.Event) *models.AuditLog {
	log := &models.AuditLog{
		BudgetID: evt.BudgetID,
		Action:   string(evt.Kind),
		Resource: resourceFor(evt.Kind),
	}

	switch evt.Kind {
	case budgeting.EventBudgetCreated:
		log.ResourceID = formatID(evt.BudgetID)
		log.SetMetadata("initial_amount", money.Format(evt.Amount))
	case budgeting.EventCategoryCreated, budgeting.EventCategoryUpdated:
		log.ResourceID = formatID(evt.CategoryID)
	case budgeting.EventTransactionCreated:
		log.ResourceID = formatID(evt.TransactionID)
		log.SetMetadata("category_id", evt.CategoryID)
		log.SetMetadata("amount", money.Format(evt.Amount))
	case budgeting.EventFundsTransferred:
		log.ResourceID = formatID(evt.TransferID)
		log.SetMetadata("from_category_id", evt.FromCategoryID)
		log.SetMetadata("to_category_id", evt.CategoryID)
		log.SetMetadata("amount", money.Format(evt.Amount))
	}

	return log
}

func resourceFor(kind budgeting.EventKind) string {
	if kind == budgeting.EventFundsTransferred {
		return models.AuditResourceTransfer
	}
	resource, _, _ := strings.Cut(string(kind), ".")
	return resource
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
