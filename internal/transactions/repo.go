package transactions

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
)

// ListFilters narrows a transaction listing.
type ListFilters struct {
	BuyerID       *uint
	PaymentStatus *enums.PaymentStatus
}

// Repository handles transaction persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to transaction operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new transaction row.
func (r *Repository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

// List returns transactions joined with buyer display fields, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]TransactionWithBuyer, error) {
	query := r.joined(ctx).Order("transactions.created_at DESC")
	if filters.BuyerID != nil {
		query = query.Where("transactions.buyer_id = ?", *filters.BuyerID)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("transactions.payment_status = ?", *filters.PaymentStatus)
	}

	var rows []TransactionWithBuyer
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one transaction with buyer fields joined.
func (r *Repository) FindByID(ctx context.Context, id uint) (*TransactionWithBuyer, error) {
	var row TransactionWithBuyer
	res := r.joined(ctx).Where("transactions.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// UpdateStatus changes the payment status and reports how many rows matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, status enums.PaymentStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("payment_status", status)
	return res.RowsAffected, res.Error
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions").
		Select("transactions.*, buyers.name AS buyer_name, buyers.email AS buyer_email, buyers.phone AS buyer_phone").
		Joins("LEFT JOIN buyers ON buyers.id = transactions.buyer_id")
}
