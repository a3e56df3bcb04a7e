package buyers

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
)

// Repository handles buyer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to buyer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new buyer row.
func (r *Repository) Create(ctx context.Context, buyer *models.Buyer) error {
	if buyer == nil {
		return fmt.Errorf("buyer is required")
	}
	return r.db.WithContext(ctx).Create(buyer).Error
}

// List returns all buyers, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Buyer, error) {
	var buyers []models.Buyer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&buyers).Error; err != nil {
		return nil, err
	}
	return buyers, nil
}

// FindByID loads a buyer by its surrogate id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

// FindByIDNumber loads a buyer by the external identity credential.
func (r *Repository) FindByIDNumber(ctx context.Context, idNumber string) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "id_number = ?", idNumber).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

// UpdateContact overwrites the named contact fields and reports how many rows
// matched. Ledger fields are never touched here.
func (r *Repository) UpdateContact(ctx context.Context, id uint, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Buyer{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}
