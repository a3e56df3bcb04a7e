package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
)

// Repository applies ledger updates to buyer rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Charge(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error)
	Credit(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error)
	FindBuyer(ctx context.Context, buyerID uint) (*models.Buyer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Charge adds amount to total_spent and rederives remaining_balance. The
// arithmetic runs inside one UPDATE so concurrent writers against the same
// buyer cannot lose each other's contribution; both SET expressions read the
// pre-update column values.
func (r *repository) Charge(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Buyer{}).
		Where("id = ?", buyerID).
		Updates(map[string]any{
			"total_spent":       gorm.Expr("total_spent + ?", amount),
			"remaining_balance": gorm.Expr("budget - (total_spent + ?)", amount),
		})
	return res.RowsAffected, res.Error
}

// Credit subtracts amount from total_spent, floored at zero. The CASE
// expression is portable across both backends.
func (r *repository) Credit(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
	floored := "CASE WHEN total_spent > ? THEN total_spent - ? ELSE 0 END"
	res := r.db.WithContext(ctx).
		Model(&models.Buyer{}).
		Where("id = ?", buyerID).
		Updates(map[string]any{
			"total_spent":       gorm.Expr(floored, amount, amount),
			"remaining_balance": gorm.Expr("budget - ("+floored+")", amount, amount),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindBuyer(ctx context.Context, buyerID uint) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "id = ?", buyerID).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}
