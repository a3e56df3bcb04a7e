package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buyer is a person who may purchase plots, tracked with a budget ledger.
// TotalSpent and RemainingBalance are maintained exclusively by the ledger
// update; RemainingBalance is always Budget - TotalSpent.
type Buyer struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"column:name;not null" json:"name"`
	IDNumber   string `gorm:"column:id_number;uniqueIndex:idx_buyers_id_number;not null" json:"id_number"`
	UID        string `gorm:"column:uid;not null" json:"uid"`
	Phone      string `gorm:"column:phone;not null" json:"phone"`
	Email      string `gorm:"column:email" json:"email"`
	Address    string `gorm:"column:address" json:"address"`
	Occupation string `gorm:"column:occupation" json:"occupation"`

	Budget           decimal.Decimal `gorm:"column:budget;type:numeric(14,2);not null" json:"budget"`
	TotalSpent       decimal.Decimal `gorm:"column:total_spent;type:numeric(14,2);not null;default:0" json:"total_spent"`
	RemainingBalance decimal.Decimal `gorm:"column:remaining_balance;type:numeric(14,2);not null;default:0" json:"remaining_balance"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
