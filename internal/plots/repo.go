package plots

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
)

// Repository handles plot persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to plot operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns plots ordered by id, optionally restricted to one status.
func (r *Repository) List(ctx context.Context, status *enums.PlotStatus) ([]models.Plot, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var plots []models.Plot
	if err := query.Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

// FindByID loads a single plot.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Plot, error) {
	var plot models.Plot
	if err := r.db.WithContext(ctx).First(&plot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plot, nil
}

// UpdateStatus applies a status change to one plot with a single conditional
// UPDATE and reports how many rows matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Plot{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// BulkUpdateStatus applies one status change across many ids. Missing ids are
// skipped; the returned count is the number of rows actually changed.
func (r *Repository) BulkUpdateStatus(ctx context.Context, ids []uint, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Plot{}).
		Where("id IN ?", ids).
		Updates(updates)
	return res.RowsAffected, res.Error
}

type statusAggregate struct {
	Status enums.PlotStatus
	Count  int64
	Value  decimal.Decimal
}

// Aggregate returns per-status counts and price sums in one grouped query.
func (r *Repository) Aggregate(ctx context.Context) ([]statusAggregate, error) {
	var rows []statusAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Plot{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(price), 0) AS value").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
