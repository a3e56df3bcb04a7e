package transactions

import "github.com/plotdesk/plotdesk-backend/pkg/db/models"

// TransactionWithBuyer is a transaction row joined with the buyer display
// fields the listing views need.
type TransactionWithBuyer struct {
	models.Transaction `gorm:"embedded"`

	BuyerName  string `gorm:"column:buyer_name" json:"buyer_name"`
	BuyerEmail string `gorm:"column:buyer_email" json:"buyer_email"`
	BuyerPhone string `gorm:"column:buyer_phone" json:"buyer_phone"`
}
