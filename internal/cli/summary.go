package cli

import (
	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/dto"
)

type SummaryCmd struct{}

func (cmd *SummaryCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}
	overview, err := ledger.Overview()
	if err != nil {
		return err
	}
	resp := dto.NewSummaryResponse(overview)

	if globals.JSON {
		return printJSON(ctx.Stdout, resp)
	}

	printInfof(ctx.Stdout, "Budget %s", nameStyle.Render(resp.Budget.Name))
	renderTable(ctx.Stdout, []string{"", "Amount"}, [][]string{
		{"Total balance", resp.ActualTotalBalance},
		{"Unallocated", resp.UnallocatedBalance},
		{"Uncategorized", resp.UncategorizedBalance},
		{"Allocated", resp.TotalAllocated},
		{"Income", resp.TotalIncome},
		{"Expense", resp.TotalExpense},
	})
	return nil
}
