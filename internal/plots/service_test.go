package plots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type fakePlotRepo struct {
	updateFn func(ctx context.Context, id uint, updates map[string]any) (int64, error)
	bulkFn   func(ctx context.Context, ids []uint, updates map[string]any) (int64, error)
}

func (f *fakePlotRepo) List(ctx context.Context, status *enums.PlotStatus) ([]models.Plot, error) {
	return nil, nil
}

func (f *fakePlotRepo) FindByID(ctx context.Context, id uint) (*models.Plot, error) {
	return &models.Plot{ID: id}, nil
}

func (f *fakePlotRepo) UpdateStatus(ctx context.Context, id uint, updates map[string]any) (int64, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, updates)
	}
	return 1, nil
}

func (f *fakePlotRepo) BulkUpdateStatus(ctx context.Context, ids []uint, updates map[string]any) (int64, error) {
	if f.bulkFn != nil {
		return f.bulkFn(ctx, ids, updates)
	}
	return int64(len(ids)), nil
}

func (f *fakePlotRepo) Aggregate(ctx context.Context) ([]statusAggregate, error) {
	return nil, nil
}

func TestServiceUpdateRejectsUnknownStatus(t *testing.T) {
	svc, err := NewService(&fakePlotRepo{})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 1, UpdatePlotInput{Status: "reserved"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateNotFound(t *testing.T) {
	repo := &fakePlotRepo{
		updateFn: func(ctx context.Context, id uint, updates map[string]any) (int64, error) {
			return 0, nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 999, UpdatePlotInput{Status: "available"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceBulkUpdateRequiresIDs(t *testing.T) {
	svc, err := NewService(&fakePlotRepo{})
	require.NoError(t, err)

	_, err = svc.BulkUpdate(context.Background(), BulkUpdatePlotsInput{Status: "available"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceListRejectsBadFilter(t *testing.T) {
	svc, err := NewService(&fakePlotRepo{})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), "everything")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateSoldCarriesBuyerColumns(t *testing.T) {
	var captured map[string]any
	repo := &fakePlotRepo{
		updateFn: func(ctx context.Context, id uint, updates map[string]any) (int64, error) {
			captured = updates
			return 1, nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	buyerID := uint(5)
	_, err = svc.Update(context.Background(), 1, UpdatePlotInput{Status: "sold", BuyerID: &buyerID})
	require.NoError(t, err)

	assert.Equal(t, enums.PlotStatusSold, captured["status"])
	assert.EqualValues(t, 5, captured["buyer_id"])
	assert.Contains(t, captured, "sold_date")
}
