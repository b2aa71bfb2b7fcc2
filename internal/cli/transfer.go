package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

type FundCmd struct {
	Name string `arg:"" help:"Category to fund."`
}

func (cmd *FundCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	ledger, err := app.Current()
	if err != nil {
		return err
	}
	if err := ledger.FundFromUnallocated(cmd.Name); err != nil {
		return err
	}
	return reportTransfer(ctx, globals, ledger, models.UnallocatedCategory, cmd.Name)
}

type TransferCmd struct {
	From   string `arg:"" help:"Source category."`
	To     string `arg:"" help:"Destination category."`
	Amount string `arg:"" help:"Amount to move."`
}

func (cmd *TransferCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	amount, err := money.Parse(cmd.Amount)
	if err != nil {
		return fmt.Errorf("%w: amount %q", budgeting.ErrInvalidTransaction, cmd.Amount)
	}

	ledger, err := app.Current()
	if err != nil {
		return err
	}
	if err := ledger.TransferFunds(cmd.From, cmd.To, amount); err != nil {
		return err
	}
	return reportTransfer(ctx, globals, ledger, cmd.From, cmd.To)
}

func reportTransfer(ctx *kong.Context, globals *Globals, ledger *budgeting.Budgeting, from, to string) error {
	fromView, err := viewByName(ledger, from)
	if err != nil {
		return err
	}
	toView, err := viewByName(ledger, to)
	if err != nil {
		return err
	}
	resp := dto.TransferResponse{
		From: dto.NewCategoryResponse(fromView),
		To:   dto.NewCategoryResponse(toView),
	}

	if globals.JSON {
		return printJSON(ctx.Stdout, resp)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Moved funds from %s to %s",
		nameStyle.Render(resp.From.Name), nameStyle.Render(resp.To.Name)))
	printInfof(ctx.Stdout, "%s: %s", resp.From.Name, resp.From.Balance)
	printInfof(ctx.Stdout, "%s: %s", resp.To.Name, resp.To.Balance)
	return nil
}

func viewByName(ledger *budgeting.Budgeting, name string) (models.CategoryModel, error) {
	category, err := ledger.CategoryByName(name)
	if err != nil {
		return models.CategoryModel{}, err
	}
	return ledger.CategoryModel(*category)
}
