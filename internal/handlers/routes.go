package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/services"
)

// RegisterRoutes mounts the ledger API under /api/v1 plus the /health and
// /metrics endpoints. A nil gatherer serves the default registry; without an
// audit service /activity is not mounted.
func RegisterRoutes(e *echo.Echo, ledger *budgeting.Budgeting, audit services.AuditServiceInterface, db Pinger, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	health := NewHealthCheckHandler(db)
	e.GET("/health", health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	budgets := NewBudgetHandler(ledger)
	categories := NewCategoryHandler(ledger)
	transactions := NewTransactionHandler(ledger)
	transfers := NewTransferHandler(ledger)
	summary := NewSummaryHandler(ledger)

	api := e.Group("/api/v1")

	api.GET("/budgets", budgets.ListBudgets)
	api.POST("/budgets", budgets.CreateBudget)
	api.GET("/budgets/current", budgets.CurrentBudget)
	api.PUT("/budgets/current", budgets.SelectBudget)

	api.GET("/categories", categories.ListCategories)
	api.POST("/categories", categories.CreateCategory)
	api.POST("/categories/fund", categories.FundCategory)
	api.GET("/categories/:id", categories.GetCategory)
	api.PUT("/categories/:id", categories.UpdateCategory)
	api.GET("/categories/:id/transactions", categories.CategoryTransactions)

	api.GET("/transactions", transactions.ListTransactions)
	api.POST("/transactions", transactions.CreateTransaction)

	api.POST("/transfers", transfers.CreateTransfer)

	api.GET("/summary", summary.GetSummary)

	if audit != nil {
		activity := NewActivityHandler(ledger, audit)
		api.GET("/activity", activity.ListActivity)
	}
}
