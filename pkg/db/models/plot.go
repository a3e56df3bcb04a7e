package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/pkg/enums"
)

// Plot is one sellable unit of land. The inventory is fixed at seed time; rows
// are only ever updated, never inserted or deleted by request handling.
// BuyerID and SoldDate are set together when a sale completes; plots marked
// sold by the demo seed carry neither.
type Plot struct {
	ID       uint             `gorm:"column:id;primaryKey" json:"id"`
	Status   enums.PlotStatus `gorm:"column:status;not null;default:available" json:"status"`
	Price    decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	BuyerID  *uint            `gorm:"column:buyer_id" json:"buyer_id"`
	SoldDate *time.Time       `gorm:"column:sold_date" json:"sold_date"`
}
