package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/pkg/enums"
)

// Payment records money received against a transaction. Rows are immutable
// once written. BuyerID is denormalized from the transaction so ledger
// updates and per-buyer listings avoid a join.
type Payment struct {
	ID            uint                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TransactionID uint                `gorm:"column:transaction_id;not null" json:"transaction_id"`
	BuyerID       uint                `gorm:"column:buyer_id;not null" json:"buyer_id"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	Method        enums.PaymentMethod `gorm:"column:method;not null" json:"method"`
	Reference     string              `gorm:"column:reference" json:"reference"`
	PaidAt        time.Time           `gorm:"column:paid_at;autoCreateTime" json:"paid_at"`
}
