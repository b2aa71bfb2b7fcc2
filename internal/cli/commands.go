package cli

// Globals defines global flags available to all commands.
type Globals struct {
	BudgetName string `name:"budget-name" help:"Budget to work on (defaults to BUDGET_NAME)." short:"b"`
	JSON       bool   `help:"Print results as JSON."`
	Metrics    bool   `help:"Dump collected Prometheus metrics to stderr after the command."`
}

type Commands struct {
	Globals

	Budget       BudgetCmd       `cmd:"" help:"Create, select and list budgets."`
	Category     CategoryCmd     `cmd:"" help:"Manage the envelopes of the current budget."`
	Income       IncomeCmd       `cmd:"" help:"Record money coming in."`
	Expense      ExpenseCmd      `cmd:"" help:"Record money going out."`
	Transactions TransactionsCmd `cmd:"" help:"List transactions, newest first."`
	Fund         FundCmd         `cmd:"" help:"Top a category up to its allocation from Unallocated."`
	Transfer     TransferCmd     `cmd:"" help:"Move money between two categories."`
	Summary      SummaryCmd      `cmd:"" help:"Show the budget overview."`
	Activity     ActivityCmd     `cmd:"" help:"Show or prune the recorded changes to the current budget."`
	Demo         DemoCmd         `cmd:"" help:"Fill the current budget with generated demo activity."`
	Serve        ServeCmd        `cmd:"" help:"Serve the JSON API."`
}
