package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
)

// ListFilters narrows a payment listing.
type ListFilters struct {
	BuyerID       *uint
	TransactionID *uint
}

// Repository handles installment-payment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new payment row.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

// List returns payments newest first, optionally filtered.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).Order("paid_at DESC, id DESC")
	if filters.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filters.BuyerID)
	}
	if filters.TransactionID != nil {
		query = query.Where("transaction_id = ?", *filters.TransactionID)
	}

	var rows []models.Payment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumForTransaction totals every payment recorded against one transaction.
func (r *Repository) SumForTransaction(ctx context.Context, transactionID uint) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("transaction_id = ?", transactionID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
