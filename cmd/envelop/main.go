package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/cli"
	"github.com/tmahmood/envelop-budget/internal/config"
	"github.com/tmahmood/envelop-budget/internal/logging"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	commands struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	ctx := kong.Parse(&commands,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("envelop"),
		kong.Description("Envelope budgeting: allocate money to categories and track what is left."),
		kong.UsageOnError(),
		kong.Bind(&commands.Globals),
	)

	cfg := config.Load()
	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	app, err := cli.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(report(ctx, err))
	}
	app.UseBudget(commands.BudgetName)

	err = ctx.Run(app)
	if err != nil {
		logger.Debug("command failed", "command", ctx.Command(), "error", err)
	}
	if commands.Metrics {
		if dumpErr := app.DumpMetrics(ctx.Stderr); dumpErr != nil {
			logger.Error("failed to dump metrics", "error", dumpErr)
		}
	}
	if closeErr := app.Close(); closeErr != nil {
		logger.Warn("failed to close ledger store", "error", closeErr)
	}

	os.Exit(report(ctx, err))
}

func report(ctx *kong.Context, err error) int {
	if commands.JSON {
		return cli.ReportJSON(ctx.Stderr, err)
	}
	return cli.Report(ctx.Stderr, err)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
