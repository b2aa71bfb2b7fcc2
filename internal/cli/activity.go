package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/services"
)

type ActivityCmd struct {
	List  ActivityListCmd  `cmd:"" default:"withargs" help:"List recorded changes, newest first."`
	Prune ActivityPruneCmd `cmd:"" help:"Delete recorded changes older than a given age, across all budgets."`
}

type ActivityListCmd struct {
	Action string `help:"Only show one kind of change, e.g. transaction.created." short:"a"`
	Limit  int    `help:"Number of entries to show." default:"20" short:"l"`
}

func (cmd *ActivityListCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}
	budget, err := ledger.CurrentBudget()
	if err != nil {
		return err
	}

	filters := dto.ActivityFilters{Action: cmd.Action, Limit: cmd.Limit}
	logs, total, err := app.Audit.GetBudgetActivity(budget.ID, filters.Action, 0, filters.PageSize())
	if err != nil {
		return err
	}
	resp := dto.NewActivityListResponse(logs, total, filters)

	if globals.JSON {
		return printJSON(ctx.Stdout, resp)
	}
	if len(resp.Activity) == 0 {
		printInfof(ctx.Stdout, "No recorded activity")
		return nil
	}

	rows := make([][]string, 0, len(resp.Activity))
	for _, a := range resp.Activity {
		rows = append(rows, []string{
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			a.Action,
			a.Resource + " " + a.ResourceID,
			formatMetadata(a.Metadata),
		})
	}
	renderTable(ctx.Stdout, []string{"When", "Action", "Resource", "Details"}, rows)
	if total > int64(len(rows)) {
		printInfof(ctx.Stdout, "Showing %d of %d entries", len(rows), total)
	}
	return nil
}

type ActivityPruneCmd struct {
	OlderThan time.Duration `name:"older-than" required:"" help:"Age beyond which entries are deleted, e.g. 720h."`
}

func (cmd *ActivityPruneCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	deleted, err := app.Audit.Prune(cmd.OlderThan)
	if err != nil {
		return err
	}

	if globals.JSON {
		return printJSON(ctx.Stdout, struct {
			Deleted   int64  `json:"deleted"`
			OlderThan string `json:"older_than"`
		}{deleted, cmd.OlderThan.String()})
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Deleted %d activity entries older than %s", deleted, cmd.OlderThan))
	return nil
}

func formatMetadata(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}

type DemoCmd struct {
	Days int   `help:"Number of days of activity to generate, ending today." default:"30"`
	Seed int64 `help:"Seed for repeatable data; 0 picks one."`
}

func (cmd *DemoCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	if cmd.Days <= 0 {
		return services.ErrInvalidDemoRange
	}
	ledger, err := app.Current()
	if err != nil {
		return err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -cmd.Days)
	report, err := app.Generator(cmd.Seed).Populate(ledger, start, end)
	if err != nil {
		return err
	}

	if globals.JSON {
		return printJSON(ctx.Stdout, report)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Generated %d transactions over %d days", report.Transactions(), cmd.Days))
	renderTable(ctx.Stdout, []string{"", "Count"}, [][]string{
		{"New envelopes", fmt.Sprint(report.Envelopes)},
		{"Salaries", fmt.Sprint(report.Salaries)},
		{"Envelope fundings", fmt.Sprint(report.Fundings)},
		{"Purchases", fmt.Sprint(report.Purchases)},
		{"Refunds", fmt.Sprint(report.Refunds)},
	})
	return nil
}
