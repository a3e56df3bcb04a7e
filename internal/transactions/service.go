package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/internal/ledger"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type transactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, filters ListFilters) ([]TransactionWithBuyer, error)
	FindByID(ctx context.Context, id uint) (*TransactionWithBuyer, error)
	UpdateStatus(ctx context.Context, id uint, status enums.PaymentStatus) (int64, error)
}

// Service exposes purchase-transaction operations.
type Service interface {
	List(ctx context.Context, input ListInput) ([]TransactionWithBuyer, error)
	Get(ctx context.Context, id uint) (*TransactionWithBuyer, error)
	Create(ctx context.Context, input CreateTransactionInput) (*TransactionWithBuyer, error)
	UpdateStatus(ctx context.Context, id uint, rawStatus string) (*TransactionWithBuyer, error)
}

type service struct {
	repo   transactionRepository
	ledger ledger.Service
}

// NewService builds a transaction service.
func NewService(repo transactionRepository, ledgerSvc ledger.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &service{repo: repo, ledger: ledgerSvc}, nil
}

// ListInput carries the optional listing filters in their raw request form.
type ListInput struct {
	BuyerID *uint
	Status  string
}

// CreateTransactionInput captures one purchase event. PlotIDs arrive already
// normalized to a string slice; order and duplicates are preserved verbatim.
type CreateTransactionInput struct {
	BuyerID     uint
	PlotIDs     []string
	TotalAmount decimal.Decimal
	Notes       string
}

func (s *service) List(ctx context.Context, input ListInput) ([]TransactionWithBuyer, error) {
	filters := ListFilters{BuyerID: input.BuyerID}
	if input.Status != "" {
		status, err := enums.ParsePaymentStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status filter")
		}
		filters.PaymentStatus = &status
	}

	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uint) (*TransactionWithBuyer, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load transaction")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateTransactionInput) (*TransactionWithBuyer, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		BuyerID:       input.BuyerID,
		PlotIDs:       strings.Join(input.PlotIDs, ","),
		TotalAmount:   input.TotalAmount,
		PaymentStatus: enums.PaymentStatusPending,
		Notes:         input.Notes,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create transaction")
	}

	// The insert and the ledger update are two sequential statements, not one
	// store transaction; a ledger failure surfaces to the caller and the
	// inserted row stands.
	if _, err := s.ledger.Charge(ctx, input.BuyerID, input.TotalAmount); err != nil {
		return nil, err
	}

	return s.Get(ctx, tx.ID)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, rawStatus string) (*TransactionWithBuyer, error) {
	status, err := enums.ParsePaymentStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update transaction status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}
	return s.Get(ctx, id)
}

func validateCreateInput(input CreateTransactionInput) error {
	missing := map[string]string{}
	if input.BuyerID == 0 {
		missing["buyer_id"] = "is required"
	}
	if len(input.PlotIDs) == 0 {
		missing["plot_ids"] = "is required"
	}
	if input.TotalAmount.IsZero() || input.TotalAmount.IsNegative() {
		missing["total_amount"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required transaction fields").WithDetails(missing)
	}
	return nil
}
