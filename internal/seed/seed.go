// Package seed populates the fixed plot inventory on first boot.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/config"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
)

// demoSoldPlotIDs mirrors the demo dataset shipped with the product: a
// handful of plots pre-marked sold so the dashboard has something to show.
var demoSoldPlotIDs = []uint{7, 12, 23, 31, 45, 58, 64, 77, 89, 101, 133, 158, 190}

// Plots inserts the full inventory if the plots table is empty. Re-running
// against a populated table is a no-op, so boot-time seeding is idempotent.
func Plots(ctx context.Context, db *gorm.DB, cfg config.SeedConfig) (int, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Plot{}).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("counting plots: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	price, err := decimal.NewFromString(cfg.PlotPrice)
	if err != nil {
		return 0, fmt.Errorf("parsing plot price %q: %w", cfg.PlotPrice, err)
	}

	sold := make(map[uint]bool, len(demoSoldPlotIDs))
	for _, id := range demoSoldPlotIDs {
		sold[id] = true
	}

	plots := make([]models.Plot, 0, cfg.PlotCount)
	for i := 1; i <= cfg.PlotCount; i++ {
		plot := models.Plot{
			ID:     uint(i),
			Status: enums.PlotStatusAvailable,
			Price:  price,
		}
		// Demo-sold plots have no buyer on record, so sold_date stays nil
		// too: both fields are only ever set together by a real sale.
		if sold[plot.ID] {
			plot.Status = enums.PlotStatusSold
		}
		plots = append(plots, plot)
	}

	if err := db.WithContext(ctx).CreateInBatches(plots, 100).Error; err != nil {
		return 0, fmt.Errorf("inserting plots: %w", err)
	}
	return len(plots), nil
}
