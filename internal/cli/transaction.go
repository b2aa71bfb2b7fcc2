package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

const dateLayout = "2006-01-02"

type PostingFlags struct {
	Amount   string `arg:"" help:"Amount, e.g. 12.50."`
	Category string `help:"Category to post to. Unknown or empty names post to Uncategorized." short:"c"`
	Payee    string `help:"Who was paid or who paid." short:"p"`
	Note     string `help:"Free text note." short:"n"`
	Date     string `help:"Date of the transaction (YYYY-MM-DD), defaults to now." short:"d"`
}

type IncomeCmd struct {
	PostingFlags `embed:""`
}

func (cmd *IncomeCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	return cmd.post(ctx, globals, app, true)
}

type ExpenseCmd struct {
	PostingFlags `embed:""`
}

func (cmd *ExpenseCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	return cmd.post(ctx, globals, app, false)
}

func (f *PostingFlags) post(ctx *kong.Context, globals *Globals, app *App, income bool) error {
	amount, err := money.Parse(f.Amount)
	if err != nil {
		return fmt.Errorf("%w: amount %q", budgeting.ErrInvalidTransaction, f.Amount)
	}

	ledger, err := app.Current()
	if err != nil {
		return err
	}

	tb := ledger.NewTransactionToCategory(f.Category).Payee(f.Payee).Note(f.Note)
	if f.Date != "" {
		when, err := time.ParseInLocation(dateLayout, f.Date, time.Local)
		if err != nil {
			return fmt.Errorf("%w: date %q is not YYYY-MM-DD", budgeting.ErrInvalidTransaction, f.Date)
		}
		tb = tb.DateCreated(when)
	}
	if income {
		tb = tb.Income(amount)
	} else {
		tb = tb.Expense(amount)
	}

	transaction, err := tb.Done()
	if err != nil {
		return err
	}
	tm, err := ledger.TransactionModel(*transaction)
	if err != nil {
		return err
	}

	if globals.JSON {
		names := map[uint]string{tm.Category.ID(): tm.CategoryName()}
		return printJSON(ctx.Stdout, dto.NewTransactionResponse(*transaction, names))
	}

	kind := "expense"
	if tm.IsIncome() {
		kind = "income"
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Recorded %s of %s in %s",
		kind, tm.OnlyAmount(), nameStyle.Render(tm.CategoryName())))
	printInfof(ctx.Stdout, "%s balance is now %s", tm.CategoryName(), money.Format(tm.Category.Balance()))
	return nil
}

type TransactionsCmd struct {
	Category string `help:"Only list transactions of this category." short:"c"`
}

func (cmd *TransactionsCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}

	var transactions []models.Transaction
	if cmd.Category != "" {
		category, err := ledger.CategoryByName(cmd.Category)
		if err != nil {
			return err
		}
		transactions, err = ledger.CategoryTransactions(category.ID)
		if err != nil {
			return err
		}
	} else {
		transactions, err = ledger.Transactions()
		if err != nil {
			return err
		}
	}

	categories, err := ledger.AllCategories()
	if err != nil {
		return err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	resp := dto.NewTransactionListResponse(transactions, names)

	if globals.JSON {
		return printJSON(ctx.Stdout, resp)
	}
	renderTransactions(ctx.Stdout, resp)
	return nil
}

func renderTransactions(w io.Writer, list dto.TransactionListResponse) {
	if list.Total == 0 {
		printInfof(w, "No transactions")
		return
	}

	rows := make([][]string, 0, len(list.Transactions))
	for _, t := range list.Transactions {
		rows = append(rows, []string{
			t.DateCreated.Format(dateLayout),
			t.CategoryName,
			t.Payee,
			t.Amount,
			t.Note,
		})
	}
	renderTable(w, []string{"Date", "Category", "Payee", "Amount", "Note"}, rows)
}
