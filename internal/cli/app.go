package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/config"
	"github.com/tmahmood/envelop-budget/internal/database"
	apperrors "github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/repositories"
	"github.com/tmahmood/envelop-budget/internal/services"
)

// App carries what every command needs. The configured budget is selected
// on first use by a command that works inside a budget.
type App struct {
	Config   *config.Config
	DB       *database.DB
	Ledger   *budgeting.Budgeting
	Audit    *services.AuditService
	Registry *prometheus.Registry
	Logger   *slog.Logger

	// Generator builds the demo data generator for a seed
	Generator func(seed int64) services.TransactionGeneratorInterface

	budgetName string
	selected   bool
}

// Open connects to the configured store and builds the ledger over it
func Open(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.EstablishConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}
	return NewApp(cfg, db, logger), nil
}

// NewApp builds an App over an already migrated store
func NewApp(cfg *config.Config, db *database.DB, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	ledger := budgeting.New(db,
		budgeting.WithLogger(logger),
		budgeting.WithMetrics(budgeting.NewPrometheusMetrics(reg)),
	)
	audit := services.NewAuditService(repositories.NewAuditLogRepository(db.DB), logger)
	audit.Attach(ledger)

	return &App{
		Config:     cfg,
		DB:         db,
		Ledger:     ledger,
		Audit:      audit,
		Registry:   reg,
		Logger:     logger,
		Generator:  newGenerator,
		budgetName: cfg.App.BudgetName,
	}
}

func newGenerator(seed int64) services.TransactionGeneratorInterface {
	return services.NewTransactionGenerator(seed)
}

// UseBudget overrides the configured budget name
func (a *App) UseBudget(name string) {
	if name != "" {
		a.budgetName = name
		a.selected = false
	}
}

// Current returns the ledger with the configured budget selected. A budget
// that does not exist yet is created empty.
func (a *App) Current() (*budgeting.Budgeting, error) {
	if a.selected {
		return a.Ledger, nil
	}

	err := a.Ledger.SetCurrentBudget(a.budgetName)
	if errors.Is(err, budgeting.ErrBudgetNotFound) {
		a.Logger.Info("creating budget", "budget", a.budgetName)
		err = a.Ledger.NewBudget(a.budgetName, decimal.Zero)
	}
	if err != nil {
		return nil, err
	}

	a.selected = true
	return a.Ledger, nil
}

// Close releases the store
func (a *App) Close() error {
	return a.DB.Close()
}

// DumpMetrics writes every collected metric in the Prometheus text format
func (a *App) DumpMetrics(w io.Writer) error {
	families, err := a.Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	return nil
}

// Report prints err for a person and returns the process exit code: 1 for
// ledger rule violations, 2 for anything else.
func Report(w io.Writer, err error) int {
	return report(w, err, false)
}

// ReportJSON is Report for --json runs. The error is written as the same
// document the API returns.
func ReportJSON(w io.Writer, err error) int {
	return report(w, err, true)
}

func report(w io.Writer, err error, asJSON bool) int {
	if err == nil {
		return 0
	}

	resp := apperrors.ResponseFor(err, "")
	switch {
	case asJSON:
		data, jsonErr := resp.ToJSON()
		if jsonErr != nil {
			printError(w, resp.Error.Message)
			break
		}
		_, _ = fmt.Fprintln(w, string(data))
	case resp.IsServerError():
		printError(w, resp.Error.Message)
	default:
		printError(w, apperrors.UserMessage(err))
	}

	if resp.IsServerError() {
		return 2
	}
	return 1
}
