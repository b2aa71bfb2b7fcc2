package cli

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/money"
)

type BudgetCmd struct {
	New  BudgetNewCmd  `cmd:"" help:"Open a new budget and make it current."`
	Use  BudgetUseCmd  `cmd:"" help:"Check that a budget exists and select it."`
	List BudgetListCmd `cmd:"" help:"List every budget."`
}

type BudgetNewCmd struct {
	Name    string `arg:"" help:"Budget name."`
	Initial string `help:"Money the budget starts with, held in Unallocated." default:"0"`
}

func (cmd *BudgetNewCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	initial, err := money.Parse(cmd.Initial)
	if err != nil {
		return fmt.Errorf("initial amount %q: %w", cmd.Initial, err)
	}

	if err := app.Ledger.NewBudget(cmd.Name, initial); err != nil {
		return err
	}
	current, err := app.Ledger.CurrentBudget()
	if err != nil {
		return err
	}

	if globals.JSON {
		return printJSON(ctx.Stdout, dto.NewBudgetResponse(*current, current.ID))
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Created budget %s with %s unallocated",
		nameStyle.Render(current.Name), money.Format(current.InitialAmount)))
	return nil
}

type BudgetUseCmd struct {
	Name string `arg:"" help:"Budget name."`
}

func (cmd *BudgetUseCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	if err := app.Ledger.SetCurrentBudget(cmd.Name); err != nil {
		return err
	}
	current, err := app.Ledger.CurrentBudget()
	if err != nil {
		return err
	}

	if globals.JSON {
		return printJSON(ctx.Stdout, dto.NewBudgetResponse(*current, current.ID))
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Using budget %s", nameStyle.Render(current.Name)))
	printInfof(ctx.Stdout, "Pass --budget-name %s or set BUDGET_NAME to keep using it", current.Name)
	return nil
}

type BudgetListCmd struct{}

func (cmd *BudgetListCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	budgets, err := app.Ledger.Budgets()
	if err != nil {
		return err
	}

	var currentID uint
	if current, err := app.Ledger.CurrentBudget(); err == nil {
		currentID = current.ID
	} else if !errors.Is(err, budgeting.ErrNoCurrentBudget) {
		return err
	}

	resp := dto.BudgetListResponse{Budgets: make([]dto.BudgetResponse, 0, len(budgets))}
	for _, b := range budgets {
		resp.Budgets = append(resp.Budgets, dto.NewBudgetResponse(b, currentID))
	}
	resp.Total = len(resp.Budgets)

	if globals.JSON {
		return printJSON(ctx.Stdout, resp)
	}
	if resp.Total == 0 {
		printInfof(ctx.Stdout, "No budgets yet. Create one with: budget new NAME")
		return nil
	}

	rows := make([][]string, 0, len(resp.Budgets))
	for _, b := range resp.Budgets {
		marker := ""
		if b.Current {
			marker = "*"
		}
		rows = append(rows, []string{marker, b.Name, b.InitialAmount, b.CreatedAt.Format("2006-01-02")})
	}
	renderTable(ctx.Stdout, []string{"", "Budget", "Initial", "Created"}, rows)
	return nil
}

func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return money.Parse(s)
}
