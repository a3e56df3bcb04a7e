package payments

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/internal/ledger"
	"github.com/plotdesk/plotdesk-backend/internal/transactions"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type paymentsHarness struct {
	db           *gorm.DB
	payments     Service
	transactions transactions.Service
}

func setupPaymentsHarness(t *testing.T) *paymentsHarness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "payments.db")), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS buyers (
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
);`,
		`CREATE TABLE IF NOT EXISTS transactions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  buyer_id INTEGER NOT NULL,
  plot_ids TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS payments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  transaction_id INTEGER NOT NULL,
  buyer_id INTEGER NOT NULL,
  amount NUMERIC NOT NULL,
  method TEXT NOT NULL,
  reference TEXT,
  paid_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	ledgerSvc, err := ledger.NewService(ledger.NewRepository(db))
	require.NoError(t, err)
	txSvc, err := transactions.NewService(transactions.NewRepository(db), ledgerSvc)
	require.NoError(t, err)
	paySvc, err := NewService(NewRepository(db), txSvc, ledgerSvc)
	require.NoError(t, err)

	return &paymentsHarness{db: db, payments: paySvc, transactions: txSvc}
}

func (h *paymentsHarness) seedPurchase(t *testing.T, budget, total string) *transactions.TransactionWithBuyer {
	t.Helper()

	b := decimal.RequireFromString(budget)
	buyer := &models.Buyer{
		Name:             "Jane Wanjiru",
		IDNumber:         "30415162",
		UID:              "jane-wanjiru-30415162",
		Phone:            "+254700111222",
		Budget:           b,
		TotalSpent:       decimal.Zero,
		RemainingBalance: b,
	}
	require.NoError(t, h.db.Create(buyer).Error)

	tx, err := h.transactions.Create(context.Background(), transactions.CreateTransactionInput{
		BuyerID:     buyer.ID,
		PlotIDs:     []string{"7"},
		TotalAmount: decimal.RequireFromString(total),
	})
	require.NoError(t, err)
	return tx
}

func TestCreatePaymentCreditsLedgerAndMarksPartial(t *testing.T) {
	h := setupPaymentsHarness(t)
	tx := h.seedPurchase(t, "100000", "65800")

	payment, err := h.payments.Create(context.Background(), CreatePaymentInput{
		TransactionID: tx.ID,
		Amount:        decimal.RequireFromString("30000"),
		Method:        "mobile_money",
		Reference:     "MPESA-QX12",
	})
	require.NoError(t, err)
	assert.Equal(t, tx.BuyerID, payment.BuyerID)
	assert.Equal(t, enums.PaymentMethodMobileMoney, payment.Method)

	var buyer models.Buyer
	require.NoError(t, h.db.First(&buyer, "id = ?", tx.BuyerID).Error)
	assert.True(t, buyer.TotalSpent.Equal(decimal.RequireFromString("35800")))
	assert.True(t, buyer.RemainingBalance.Equal(decimal.RequireFromString("64200")))

	updated, err := h.transactions.Get(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPartial, updated.PaymentStatus)
}

func TestPaymentsRollTransactionToPaid(t *testing.T) {
	h := setupPaymentsHarness(t)
	tx := h.seedPurchase(t, "100000", "65800")

	for _, amount := range []string{"30000", "35800"} {
		_, err := h.payments.Create(context.Background(), CreatePaymentInput{
			TransactionID: tx.ID,
			Amount:        decimal.RequireFromString(amount),
			Method:        "cash",
		})
		require.NoError(t, err)
	}

	updated, err := h.transactions.Get(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, updated.PaymentStatus)

	// fully repaid, spend back to zero
	var buyer models.Buyer
	require.NoError(t, h.db.First(&buyer, "id = ?", tx.BuyerID).Error)
	assert.True(t, buyer.TotalSpent.IsZero())
	assert.True(t, buyer.RemainingBalance.Equal(buyer.Budget))
}

func TestCreatePaymentUnknownTransaction(t *testing.T) {
	h := setupPaymentsHarness(t)

	_, err := h.payments.Create(context.Background(), CreatePaymentInput{
		TransactionID: 999,
		Amount:        decimal.RequireFromString("1000"),
		Method:        "cash",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreatePaymentValidation(t *testing.T) {
	h := setupPaymentsHarness(t)

	_, err := h.payments.Create(context.Background(), CreatePaymentInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "transaction_id")
	assert.Contains(t, details, "amount")
	assert.Contains(t, details, "method")

	tx := h.seedPurchase(t, "100000", "65800")
	_, err = h.payments.Create(context.Background(), CreatePaymentInput{
		TransactionID: tx.ID,
		Amount:        decimal.RequireFromString("1000"),
		Method:        "barter",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListPaymentsFilters(t *testing.T) {
	h := setupPaymentsHarness(t)
	tx := h.seedPurchase(t, "500000", "131600")

	for _, ref := range []string{"R1", "R2"} {
		_, err := h.payments.Create(context.Background(), CreatePaymentInput{
			TransactionID: tx.ID,
			Amount:        decimal.RequireFromString("10000"),
			Method:        "bank_transfer",
			Reference:     ref,
		})
		require.NoError(t, err)
	}

	byTx, err := h.payments.List(context.Background(), ListFilters{TransactionID: &tx.ID})
	require.NoError(t, err)
	assert.Len(t, byTx, 2)

	byBuyer, err := h.payments.List(context.Background(), ListFilters{BuyerID: &tx.BuyerID})
	require.NoError(t, err)
	assert.Len(t, byBuyer, 2)

	other := uint(4242)
	none, err := h.payments.List(context.Background(), ListFilters{BuyerID: &other})
	require.NoError(t, err)
	assert.Empty(t, none)
}
