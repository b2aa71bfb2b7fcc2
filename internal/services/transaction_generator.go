package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/models"
)

// Demo envelope names
const (
	CategoryGroceries      = "Groceries"
	CategoryDining         = "Dining"
	CategoryTransportation = "Transportation"
	CategoryBillsUtilities = "Bills & Utilities"
	CategoryEntertainment  = "Entertainment"
	CategoryHealthcare     = "Healthcare"
)

const (
	hoursInDay         = 24
	biWeeklyDays       = 14
	salaryHour         = 9
	businessHoursStart = 6
	businessHoursEnd   = 24
	maxDailyPurchases  = 3
	refundRate         = 0.05
)

var ErrInvalidDemoRange = errors.New("invalid date range: start date must be before end date")

// Merchant is a payee the generator posts purchases for
type Merchant struct {
	Name     string
	Category string
}

// DemoReport counts what Populate posted
type DemoReport struct {
	Envelopes int `json:"envelopes"`
	Salaries  int `json:"salaries"`
	Fundings  int `json:"fundings"`
	Purchases int `json:"purchases"`
	Refunds   int `json:"refunds"`
}

// Transactions is the number of postings created
func (r DemoReport) Transactions() int {
	return r.Salaries + r.Purchases + r.Refunds
}

// TransactionGenerator fills a budget with realistic demo activity through
// the ledger API, so every posting obeys the usual rules.
type TransactionGenerator struct {
	merchantPool []Merchant
	rng          *rand.Rand
	faker        *gofakeit.Faker
}

// NewTransactionGenerator creates a generator. Equal non-zero seeds produce
// equal activity; zero seeds from the clock.
func NewTransactionGenerator(seed int64) *TransactionGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &TransactionGenerator{
		merchantPool: initializeMerchantPool(),
		rng:          rand.New(rand.NewSource(seed)),
		faker:        gofakeit.New(seed),
	}
}

func initializeMerchantPool() []Merchant {
	return []Merchant{
		{"Walmart Supercenter", CategoryGroceries},
		{"Kroger", CategoryGroceries},
		{"Whole Foods Market", CategoryGroceries},
		{"Trader Joe's", CategoryGroceries},
		{"Aldi", CategoryGroceries},

		{"Starbucks", CategoryDining},
		{"Chipotle Mexican Grill", CategoryDining},
		{"Panera Bread", CategoryDining},
		{"Five Guys", CategoryDining},

		{"Uber", CategoryTransportation},
		{"Shell", CategoryTransportation},
		{"Chevron", CategoryTransportation},
		{"Metro Transit", CategoryTransportation},

		{"Verizon Wireless", CategoryBillsUtilities},
		{"Comcast Xfinity", CategoryBillsUtilities},
		{"Water Department", CategoryBillsUtilities},

		{"Netflix", CategoryEntertainment},
		{"Spotify", CategoryEntertainment},
		{"AMC Theaters", CategoryEntertainment},

		{"CVS Pharmacy", CategoryHealthcare},
		{"Walgreens", CategoryHealthcare},
	}
}

// demoAllocations are the monthly amounts budgeted per envelope
var demoAllocations = []struct {
	Name      string
	Allocated float64
}{
	{CategoryGroceries, 400},
	{CategoryDining, 150},
	{CategoryTransportation, 120},
	{CategoryBillsUtilities, 300},
	{CategoryEntertainment, 60},
	{CategoryHealthcare, 80},
}

// GetMerchantPool returns the merchant pool
func (g *TransactionGenerator) GetMerchantPool() []Merchant {
	return g.merchantPool
}

// SelectRandomMerchant selects a random merchant from the pool
func (g *TransactionGenerator) SelectRandomMerchant() Merchant {
	return g.merchantPool[g.rng.Intn(len(g.merchantPool))]
}

// GenerateAmount generates a realistic amount based on category
func (g *TransactionGenerator) GenerateAmount(category string) decimal.Decimal {
	minValue, maxValue := g.getAmountRange(category)
	amount := minValue + g.rng.Float64()*(maxValue-minValue)
	return decimal.NewFromFloat(amount).Round(2)
}

func (g *TransactionGenerator) getAmountRange(category string) (float64, float64) {
	ranges := map[string][2]float64{
		CategoryGroceries:      {15.00, 120.00},
		CategoryDining:         {8.00, 45.00},
		CategoryTransportation: {10.00, 60.00},
		CategoryBillsUtilities: {40.00, 120.00},
		CategoryEntertainment:  {10.00, 20.00},
		CategoryHealthcare:     {5.00, 60.00},
	}

	if r, exists := ranges[category]; exists {
		return r[0], r[1]
	}
	return 10.00, 100.00
}

// GenerateTimestamp generates a random timestamp during business hours of
// the day startDate falls on, never after endDate
func (g *TransactionGenerator) GenerateTimestamp(startDate, endDate time.Time) time.Time {
	hour := businessHoursStart + g.rng.Intn(businessHoursEnd-businessHoursStart)
	minute := g.rng.Intn(60)
	second := g.rng.Intn(60)

	timestamp := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), hour, minute, second, 0, time.UTC)
	if timestamp.After(endDate) {
		return endDate
	}
	return timestamp
}

// Populate posts a bi-weekly salary into the Unallocated pool, funds the
// demo envelopes after each payday and records daily purchases between
// startDate and endDate on the current budget of b.
func (g *TransactionGenerator) Populate(b *budgeting.Budgeting, startDate, endDate time.Time) (*DemoReport, error) {
	if !startDate.Before(endDate) {
		return nil, ErrInvalidDemoRange
	}

	report := &DemoReport{}
	if err := g.ensureEnvelopes(b, report); err != nil {
		return nil, err
	}

	employer := g.faker.Company()
	salary := decimal.NewFromInt(int64(g.faker.Number(18, 30)) * 100)

	day := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; day.Before(endDate); i++ {
		if i%biWeeklyDays == 0 {
			if err := g.payday(b, employer, salary, day, report); err != nil {
				return nil, err
			}
		}

		purchases := g.rng.Intn(maxDailyPurchases + 1)
		for n := 0; n < purchases; n++ {
			if err := g.purchase(b, day, endDate, report); err != nil {
				return nil, err
			}
		}

		day = day.Add(hoursInDay * time.Hour)
	}

	return report, nil
}

func (g *TransactionGenerator) ensureEnvelopes(b *budgeting.Budgeting, report *DemoReport) error {
	for _, envelope := range demoAllocations {
		_, err := b.NewCategory(envelope.Name, decimal.NewFromFloat(envelope.Allocated))
		switch {
		case err == nil:
			report.Envelopes++
		case errors.Is(err, budgeting.ErrCategoryAlreadyExists):
		default:
			return fmt.Errorf("failed to create envelope %q: %w", envelope.Name, err)
		}
	}
	return nil
}

func (g *TransactionGenerator) payday(b *budgeting.Budgeting, employer string, salary decimal.Decimal, day time.Time, report *DemoReport) error {
	paidAt := time.Date(day.Year(), day.Month(), day.Day(), salaryHour, 0, 0, 0, time.UTC)
	_, err := b.NewTransactionToCategory(models.UnallocatedCategory).
		Income(salary).
		Payee(employer).
		Note("Direct Deposit - Salary Payment").
		DateCreated(paidAt).
		Done()
	if err != nil {
		return fmt.Errorf("failed to post salary: %w", err)
	}
	report.Salaries++

	for _, envelope := range demoAllocations {
		err := b.FundFromUnallocated(envelope.Name)
		switch {
		case err == nil:
			report.Fundings++
		case errors.Is(err, budgeting.ErrAlreadyFunded), errors.Is(err, budgeting.ErrOverFunding):
		default:
			return fmt.Errorf("failed to fund %q: %w", envelope.Name, err)
		}
	}
	return nil
}

func (g *TransactionGenerator) purchase(b *budgeting.Budgeting, day, endDate time.Time, report *DemoReport) error {
	merchant := g.SelectRandomMerchant()
	amount := g.GenerateAmount(merchant.Category)
	builder := b.NewTransactionToCategory(merchant.Category).
		Payee(merchant.Name).
		DateCreated(g.GenerateTimestamp(day, endDate))

	refund := g.rng.Float64() < refundRate
	if refund {
		builder = builder.Income(amount).Note("Refund - " + merchant.Name)
	} else {
		builder = builder.Expense(amount).Note("Purchase at " + merchant.Name)
	}

	if _, err := builder.Done(); err != nil {
		return fmt.Errorf("failed to post purchase at %s: %w", merchant.Name, err)
	}
	if refund {
		report.Refunds++
	} else {
		report.Purchases++
	}
	return nil
}
