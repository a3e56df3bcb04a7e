package plots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type plotRepository interface {
	List(ctx context.Context, status *enums.PlotStatus) ([]models.Plot, error)
	FindByID(ctx context.Context, id uint) (*models.Plot, error)
	UpdateStatus(ctx context.Context, id uint, updates map[string]any) (int64, error)
	BulkUpdateStatus(ctx context.Context, ids []uint, updates map[string]any) (int64, error)
	Aggregate(ctx context.Context) ([]statusAggregate, error)
}

// Service exposes plot inventory operations.
type Service interface {
	List(ctx context.Context, statusFilter string) ([]models.Plot, error)
	Get(ctx context.Context, id uint) (*models.Plot, error)
	Update(ctx context.Context, id uint, input UpdatePlotInput) (*models.Plot, error)
	BulkUpdate(ctx context.Context, input BulkUpdatePlotsInput) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo plotRepository
}

// NewService builds a plot service with the provided repository.
func NewService(repo plotRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plot repository required")
	}
	return &service{repo: repo}, nil
}

// UpdatePlotInput captures a single-plot status change.
type UpdatePlotInput struct {
	Status  string
	BuyerID *uint
}

// BulkUpdatePlotsInput captures a status change across a set of plots.
type BulkUpdatePlotsInput struct {
	IDs     []uint
	Status  string
	BuyerID *uint
}

// Stats aggregates the inventory for the dashboard view.
type Stats struct {
	Total          int64           `json:"total"`
	Available      int64           `json:"available"`
	Sold           int64           `json:"sold"`
	TotalValue     decimal.Decimal `json:"total_value"`
	SoldValue      decimal.Decimal `json:"sold_value"`
	AvailableValue decimal.Decimal `json:"available_value"`
}

func (s *service) List(ctx context.Context, statusFilter string) ([]models.Plot, error) {
	var status *enums.PlotStatus
	if statusFilter != "" {
		parsed, err := enums.ParsePlotStatus(statusFilter)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		status = &parsed
	}

	plots, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list plots")
	}
	return plots, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Plot, error) {
	plot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load plot")
	}
	return plot, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdatePlotInput) (*models.Plot, error) {
	updates, err := resolveStatusChange(input.Status, input.BuyerID)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.UpdateStatus(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update plot")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
	}
	return s.Get(ctx, id)
}

func (s *service) BulkUpdate(ctx context.Context, input BulkUpdatePlotsInput) (int64, error) {
	if len(input.IDs) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "plot ids are required")
	}

	updates, err := resolveStatusChange(input.Status, input.BuyerID)
	if err != nil {
		return 0, err
	}

	affected, err := s.repo.BulkUpdateStatus(ctx, input.IDs, updates)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bulk update plots")
	}
	return affected, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	rows, err := s.repo.Aggregate(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate plots")
	}

	stats := &Stats{
		TotalValue:     decimal.Zero,
		SoldValue:      decimal.Zero,
		AvailableValue: decimal.Zero,
	}
	for _, row := range rows {
		stats.Total += row.Count
		stats.TotalValue = stats.TotalValue.Add(row.Value)
		switch row.Status {
		case enums.PlotStatusSold:
			stats.Sold += row.Count
			stats.SoldValue = stats.SoldValue.Add(row.Value)
		default:
			stats.Available += row.Count
			stats.AvailableValue = stats.AvailableValue.Add(row.Value)
		}
	}
	return stats, nil
}

// resolveStatusChange validates the requested status and derives the column
// updates. Marking a plot sold with a buyer stamps buyer_id and sold_date;
// moving a plot out of sold clears both, keeping the "buyer set iff sold"
// invariant intact.
func resolveStatusChange(rawStatus string, requestedBuyer *uint) (map[string]any, error) {
	status, err := enums.ParsePlotStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid plot status")
	}

	updates := map[string]any{"status": status}
	switch {
	case status == enums.PlotStatusSold && requestedBuyer != nil:
		updates["buyer_id"] = *requestedBuyer
		updates["sold_date"] = time.Now().UTC()
	case status != enums.PlotStatusSold:
		updates["buyer_id"] = nil
		updates["sold_date"] = nil
	}
	return updates, nil
}
