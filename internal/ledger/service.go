package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

// Service keeps buyer spend/remaining-balance fields consistent with the
// transactions and payments recorded against the buyer.
type Service interface {
	Charge(ctx context.Context, buyerID uint, amount decimal.Decimal) (*models.Buyer, error)
	Credit(ctx context.Context, buyerID uint, amount decimal.Decimal) (*models.Buyer, error)
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Charge(ctx context.Context, buyerID uint, amount decimal.Decimal) (*models.Buyer, error) {
	if err := validateInput(buyerID, amount); err != nil {
		return nil, err
	}

	affected, err := s.repo.Charge(ctx, buyerID, amount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply ledger charge")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
	}
	return s.reload(ctx, buyerID)
}

func (s *service) Credit(ctx context.Context, buyerID uint, amount decimal.Decimal) (*models.Buyer, error) {
	if err := validateInput(buyerID, amount); err != nil {
		return nil, err
	}

	affected, err := s.repo.Credit(ctx, buyerID, amount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply ledger credit")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
	}
	return s.reload(ctx, buyerID)
}

func (s *service) reload(ctx context.Context, buyerID uint) (*models.Buyer, error) {
	buyer, err := s.repo.FindBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload buyer totals")
	}
	return buyer, nil
}

func validateInput(buyerID uint, amount decimal.Decimal) error {
	if buyerID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer id is required")
	}
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return nil
}
