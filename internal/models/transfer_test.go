package models

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TransferTestSuite is the test suite for Transfer model
type TransferTestSuite struct {
	suite.Suite
	db *gorm.DB
}

// SetupTest runs before each test
func (s *TransferTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	sqlDB, err := db.DB()
	require.NoError(s.T(), err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&Transfer{})
	require.NoError(s.T(), err)

	s.db = db
}

// TearDownTest runs after each test
func (s *TransferTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// TestTransferTestSuite runs the test suite
func TestTransferTestSuite(t *testing.T) {
	suite.Run(t, new(TransferTestSuite))
}

func (s *TransferTestSuite) newTransfer() *Transfer {
	return &Transfer{
		BudgetID:       1,
		FromCategoryID: 1,
		ToCategoryID:   2,
		Amount:         decimal.NewFromFloat(50),
		Note:           gofakeit.Sentence(4),
	}
}

// TestTransfer_BeforeCreate_GeneratesReference tests reference generation
func (s *TransferTestSuite) TestTransfer_BeforeCreate_GeneratesReference() {
	transfer := s.newTransfer()

	require.NoError(s.T(), s.db.Create(transfer).Error)
	assert.NotZero(s.T(), transfer.ID)
	assert.Contains(s.T(), transfer.Reference, "TRF-")
	assert.False(s.T(), transfer.CreatedAt.IsZero())
}

// TestTransfer_Validate_SameCategory tests that a category cannot fund itself
func (s *TransferTestSuite) TestTransfer_Validate_SameCategory() {
	transfer := s.newTransfer()
	transfer.ToCategoryID = transfer.FromCategoryID

	err := s.db.Create(transfer).Error
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrSameCategoryTransfer)
}

// TestTransfer_Validate_Amount tests that amounts must be positive
func (s *TransferTestSuite) TestTransfer_Validate_Amount() {
	for _, amount := range []float64{0, -10} {
		transfer := s.newTransfer()
		transfer.Amount = decimal.NewFromFloat(amount)
		assert.ErrorIs(s.T(), transfer.Validate(), ErrInvalidTransferAmount)
	}
}

// TestTransfer_Involves tests category membership
func (s *TransferTestSuite) TestTransfer_Involves() {
	transfer := s.newTransfer()

	assert.True(s.T(), transfer.Involves(1))
	assert.True(s.T(), transfer.Involves(2))
	assert.False(s.T(), transfer.Involves(3))
}
