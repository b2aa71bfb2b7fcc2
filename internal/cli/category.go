package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

type CategoryCmd struct {
	New  CategoryNewCmd  `cmd:"" help:"Create an envelope."`
	Edit CategoryEditCmd `cmd:"" help:"Rename an envelope or change its allocation."`
	List CategoryListCmd `cmd:"" help:"List envelopes with their balances."`
	Show CategoryShowCmd `cmd:"" help:"Show one envelope and its transactions."`
}

type CategoryNewCmd struct {
	Name      string `arg:"" help:"Category name."`
	Allocated string `help:"Amount budgeted for the category." short:"a"`
}

func (cmd *CategoryNewCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	allocated, err := parseOptionalAmount(cmd.Allocated)
	if err != nil {
		return fmt.Errorf("allocated amount %q: %w", cmd.Allocated, err)
	}

	ledger, err := app.Current()
	if err != nil {
		return err
	}
	category, err := ledger.NewCategory(cmd.Name, allocated)
	if err != nil {
		return err
	}

	if globals.JSON {
		view, err := ledger.CategoryModel(*category)
		if err != nil {
			return err
		}
		return printJSON(ctx.Stdout, dto.NewCategoryResponse(view))
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Created category %s with %s allocated",
		nameStyle.Render(category.Name), money.Format(category.Allocated)))
	return nil
}

type CategoryEditCmd struct {
	Name      string `arg:"" help:"Current category name."`
	Rename    string `help:"New name." short:"r"`
	Allocated string `help:"New allocation." short:"a"`
}

func (cmd *CategoryEditCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}
	category, err := ledger.CategoryByName(cmd.Name)
	if err != nil {
		return err
	}

	name := category.Name
	if cmd.Rename != "" {
		name = cmd.Rename
	}
	allocated := category.Allocated
	if cmd.Allocated != "" {
		if allocated, err = money.Parse(cmd.Allocated); err != nil {
			return fmt.Errorf("allocated amount %q: %w", cmd.Allocated, err)
		}
	}

	updated, err := ledger.UpdateCategory(category.ID, name, allocated)
	if err != nil {
		return err
	}

	if globals.JSON {
		view, err := ledger.CategoryModel(*updated)
		if err != nil {
			return err
		}
		return printJSON(ctx.Stdout, dto.NewCategoryResponse(view))
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Updated category %s: %s allocated",
		nameStyle.Render(updated.Name), money.Format(updated.Allocated)))
	return nil
}

type CategoryListCmd struct {
	All bool `help:"Include the Unallocated pool."`
}

func (cmd *CategoryListCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}
	views, err := ledger.CategoryModels()
	if err != nil {
		return err
	}

	shown := make([]models.CategoryModel, 0, len(views))
	for _, v := range views {
		if cmd.All || !v.Category.IsUnallocated() {
			shown = append(shown, v)
		}
	}
	resp := dto.NewCategoryListResponse(shown)

	if globals.JSON {
		return printJSON(ctx.Stdout, resp)
	}

	rows := make([][]string, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		funded := ""
		if c.Funded {
			funded = successSymbol
		}
		rows = append(rows, []string{c.Name, c.Allocated, c.Balance, c.Shortfall, funded})
	}
	renderTable(ctx.Stdout, []string{"Category", "Allocated", "Balance", "Shortfall", "Funded"}, rows)
	return nil
}

type CategoryShowCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (cmd *CategoryShowCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}
	category, err := ledger.CategoryByName(cmd.Name)
	if err != nil {
		return err
	}
	view, err := ledger.CategoryModel(*category)
	if err != nil {
		return err
	}
	transactions, err := ledger.CategoryTransactions(category.ID)
	if err != nil {
		return err
	}

	names := map[uint]string{category.ID: category.Name}
	detail := struct {
		Category     dto.CategoryResponse        `json:"category"`
		Transactions dto.TransactionListResponse `json:"transactions"`
	}{
		Category:     dto.NewCategoryResponse(view),
		Transactions: dto.NewTransactionListResponse(transactions, names),
	}

	if globals.JSON {
		return printJSON(ctx.Stdout, detail)
	}

	c := detail.Category
	printInfof(ctx.Stdout, "%s (%s)", nameStyle.Render(c.Name), c.Kind)
	renderTable(ctx.Stdout,
		[]string{"Allocated", "Balance", "Income", "Expense", "In", "Out"},
		[][]string{{c.Allocated, c.Balance, c.Summary.TotalIncome, c.Summary.TotalExpense, c.Summary.TransferIn, c.Summary.TransferOut}},
	)
	renderTransactions(ctx.Stdout, detail.Transactions)
	return nil
}
