// Package ledger keeps buyer spend totals consistent with the transactions
// and payments recorded against them.
package ledger

import "github.com/shopspring/decimal"

// Totals is the pure form of the ledger arithmetic. The repository executes
// the same rules as store-evaluated UPDATE expressions; Totals mirrors them
// for computation and tests.
type Totals struct {
	Budget     decimal.Decimal
	TotalSpent decimal.Decimal
}

// ApplyCharge adds a transaction amount to the spend total.
func (t Totals) ApplyCharge(amount decimal.Decimal) Totals {
	t.TotalSpent = t.TotalSpent.Add(amount)
	return t
}

// ApplyCredit subtracts a payment amount from the spend total, floored at
// zero.
func (t Totals) ApplyCredit(amount decimal.Decimal) Totals {
	next := t.TotalSpent.Sub(amount)
	if next.IsNegative() {
		next = decimal.Zero
	}
	t.TotalSpent = next
	return t
}

// RemainingBalance is always derived, never independently set.
func (t Totals) RemainingBalance() decimal.Decimal {
	return t.Budget.Sub(t.TotalSpent)
}
