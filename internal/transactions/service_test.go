package transactions

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/internal/ledger"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

func setupTransactionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "transactions.db")), &gorm.Config{})
	require.NoError(t, err)

	buyers := `
CREATE TABLE IF NOT EXISTS buyers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  id_number TEXT NOT NULL UNIQUE,
  uid TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT,
  address TEXT,
  occupation TEXT,
  budget NUMERIC NOT NULL,
  total_spent NUMERIC NOT NULL DEFAULT 0,
  remaining_balance NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	transactions := `
CREATE TABLE IF NOT EXISTS transactions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  buyer_id INTEGER NOT NULL,
  plot_ids TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(buyers).Error)
	require.NoError(t, db.Exec(transactions).Error)
	return db
}

func newTransactionsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	ledgerSvc, err := ledger.NewService(ledger.NewRepository(db))
	require.NoError(t, err)
	svc, err := NewService(NewRepository(db), ledgerSvc)
	require.NoError(t, err)
	return svc
}

func newTestBuyer(t *testing.T, db *gorm.DB, name, idNumber, budget string) *models.Buyer {
	t.Helper()

	b := decimal.RequireFromString(budget)
	buyer := &models.Buyer{
		Name:             name,
		IDNumber:         idNumber,
		UID:              strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + idNumber,
		Phone:            "+254700111222",
		Email:            "buyer@example.com",
		Budget:           b,
		TotalSpent:       decimal.Zero,
		RemainingBalance: b,
	}
	require.NoError(t, db.Create(buyer).Error)
	return buyer
}

func TestCreateTransactionChargesLedger(t *testing.T) {
	db := setupTransactionsTestDB(t)
	svc := newTransactionsService(t, db)
	buyer := newTestBuyer(t, db, "Jane Wanjiru", "30415162", "100000")

	created, err := svc.Create(context.Background(), CreateTransactionInput{
		BuyerID:     buyer.ID,
		PlotIDs:     []string{"5", "12"},
		TotalAmount: decimal.RequireFromString("65800"),
	})
	require.NoError(t, err)

	assert.Equal(t, enums.PaymentStatusPending, created.PaymentStatus)
	assert.Equal(t, "5,12", created.PlotIDs)
	assert.Equal(t, "Jane Wanjiru", created.BuyerName)

	var stored models.Buyer
	require.NoError(t, db.First(&stored, "id = ?", buyer.ID).Error)
	assert.True(t, stored.TotalSpent.Equal(decimal.RequireFromString("65800")))
	assert.True(t, stored.RemainingBalance.Equal(decimal.RequireFromString("34200")))
}

func TestCreateTransactionPreservesPlotIDOrderAndDuplicates(t *testing.T) {
	db := setupTransactionsTestDB(t)
	svc := newTransactionsService(t, db)
	buyer := newTestBuyer(t, db, "Jane Wanjiru", "30415162", "500000")

	created, err := svc.Create(context.Background(), CreateTransactionInput{
		BuyerID:     buyer.ID,
		PlotIDs:     []string{"5", "12", "5"},
		TotalAmount: decimal.RequireFromString("197400"),
	})
	require.NoError(t, err)

	// splitting on commas round-trips the submitted sequence exactly
	assert.Equal(t, []string{"5", "12", "5"}, strings.Split(created.PlotIDs, ","))
}

func TestCreateTransactionMissingFields(t *testing.T) {
	db := setupTransactionsTestDB(t)
	svc := newTransactionsService(t, db)

	_, err := svc.Create(context.Background(), CreateTransactionInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "buyer_id")
	assert.Contains(t, details, "plot_ids")
	assert.Contains(t, details, "total_amount")
}

func TestListTransactionsFilters(t *testing.T) {
	db := setupTransactionsTestDB(t)
	svc := newTransactionsService(t, db)
	jane := newTestBuyer(t, db, "Jane Wanjiru", "30415162", "500000")
	peter := newTestBuyer(t, db, "Peter Otieno", "11223344", "200000")

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		BuyerID: jane.ID, PlotIDs: []string{"1"}, TotalAmount: decimal.RequireFromString("65800"),
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CreateTransactionInput{
		BuyerID: peter.ID, PlotIDs: []string{"2"}, TotalAmount: decimal.RequireFromString("65800"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), second.ID, "paid")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(context.Background(), ListInput{BuyerID: &jane.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Jane Wanjiru", mine[0].BuyerName)

	paid, err := svc.List(context.Background(), ListInput{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, peter.ID, paid[0].BuyerID)

	_, err = svc.List(context.Background(), ListInput{Status: "bogus"})
	assert.NotNil(t, pkgerrors.As(err))
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := setupTransactionsTestDB(t)
	svc := newTransactionsService(t, db)
	buyer := newTestBuyer(t, db, "Jane Wanjiru", "30415162", "100000")

	created, err := svc.Create(context.Background(), CreateTransactionInput{
		BuyerID: buyer.ID, PlotIDs: []string{"1"}, TotalAmount: decimal.RequireFromString("65800"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "bogus")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// stored status unchanged
	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPending, got.PaymentStatus)
}

func TestGetTransactionNotFound(t *testing.T) {
	db := setupTransactionsTestDB(t)
	svc := newTransactionsService(t, db)

	_, err := svc.Get(context.Background(), 12345)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
