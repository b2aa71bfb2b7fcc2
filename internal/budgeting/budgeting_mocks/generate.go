package budgeting_mocks

//go:generate mockgen -source=../metrics.go -destination=budgeting_mocks.go -package=budgeting_mocks
