package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/pkg/enums"
)

// Transaction records one purchase event covering one or more plots. PlotIDs
// is the comma-joined id list exactly as submitted: order preserved, no
// dedup, so splitting on commas round-trips the original sequence.
type Transaction struct {
	ID            uint                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BuyerID       uint                `gorm:"column:buyer_id;not null" json:"buyer_id"`
	PlotIDs       string              `gorm:"column:plot_ids;not null" json:"plot_ids"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(14,2);not null" json:"total_amount"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;not null;default:pending" json:"payment_status"`
	Notes         string              `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
