package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type fakeRepository struct {
	chargeFn func(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error)
	creditFn func(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error)
	findFn   func(ctx context.Context, buyerID uint) (*models.Buyer, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Charge(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
	if f.chargeFn != nil {
		return f.chargeFn(ctx, buyerID, amount)
	}
	return 1, nil
}

func (f *fakeRepository) Credit(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
	if f.creditFn != nil {
		return f.creditFn(ctx, buyerID, amount)
	}
	return 1, nil
}

func (f *fakeRepository) FindBuyer(ctx context.Context, buyerID uint) (*models.Buyer, error) {
	if f.findFn != nil {
		return f.findFn(ctx, buyerID)
	}
	return &models.Buyer{ID: buyerID}, nil
}

func TestServiceChargeReturnsReloadedBuyer(t *testing.T) {
	var chargedBuyer uint
	var chargedAmount decimal.Decimal
	repo := &fakeRepository{
		chargeFn: func(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
			chargedBuyer = buyerID
			chargedAmount = amount
			return 1, nil
		},
		findFn: func(ctx context.Context, buyerID uint) (*models.Buyer, error) {
			return &models.Buyer{
				ID:               buyerID,
				TotalSpent:       decimal.RequireFromString("65800"),
				RemainingBalance: decimal.RequireFromString("34200"),
			}, nil
		},
	}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	buyer, err := svc.Charge(context.Background(), 7, decimal.RequireFromString("65800"))
	if err != nil {
		t.Fatalf("Charge error: %v", err)
	}
	if chargedBuyer != 7 || !chargedAmount.Equal(decimal.RequireFromString("65800")) {
		t.Fatalf("repository called with buyer=%d amount=%s", chargedBuyer, chargedAmount)
	}
	if !buyer.TotalSpent.Equal(decimal.RequireFromString("65800")) {
		t.Fatalf("unexpected totals on returned buyer: %+v", buyer)
	}
}

func TestServiceChargeValidation(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if _, err := svc.Charge(context.Background(), 0, decimal.NewFromInt(100)); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing buyer, got %v", err)
	}
	if _, err := svc.Charge(context.Background(), 1, decimal.Zero); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if _, err := svc.Credit(context.Background(), 1, decimal.NewFromInt(-5)); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
}

func TestServiceChargeUnknownBuyer(t *testing.T) {
	repo := &fakeRepository{
		chargeFn: func(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
			return 0, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Charge(context.Background(), 99, decimal.NewFromInt(100))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceCreditRepositoryFailure(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &fakeRepository{
		creditFn: func(ctx context.Context, buyerID uint, amount decimal.Decimal) (int64, error) {
			return 0, boom
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Credit(context.Background(), 1, decimal.NewFromInt(100))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
