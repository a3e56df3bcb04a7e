package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/internal/ledger"
	"github.com/plotdesk/plotdesk-backend/internal/transactions"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, filters ListFilters) ([]models.Payment, error)
	SumForTransaction(ctx context.Context, transactionID uint) (decimal.Decimal, error)
}

// Service exposes installment-payment operations.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]models.Payment, error)
	Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error)
}

type service struct {
	repo         paymentRepository
	transactions transactions.Service
	ledger       ledger.Service
}

// NewService builds a payment service.
func NewService(repo paymentRepository, txSvc transactions.Service, ledgerSvc ledger.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if txSvc == nil {
		return nil, fmt.Errorf("transaction service required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &service{repo: repo, transactions: txSvc, ledger: ledgerSvc}, nil
}

// CreatePaymentInput records one installment against a transaction. The buyer
// is resolved from the transaction, never taken from the request.
type CreatePaymentInput struct {
	TransactionID uint
	Amount        decimal.Decimal
	Method        string
	Reference     string
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Payment, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list payments")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	method, err := validateCreateInput(input)
	if err != nil {
		return nil, err
	}

	parent, err := s.transactions.Get(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TransactionID: parent.ID,
		BuyerID:       parent.BuyerID,
		Amount:        input.Amount,
		Method:        method,
		Reference:     input.Reference,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
	}

	// A recorded installment releases committed spend back to the buyer.
	if _, err := s.ledger.Credit(ctx, parent.BuyerID, input.Amount); err != nil {
		return nil, err
	}

	if err := s.rollStatusForward(ctx, parent); err != nil {
		return nil, err
	}
	return payment, nil
}

// rollStatusForward recomputes the parent transaction's payment status from the
// running payment total: paid once installments cover the amount, partial
// otherwise. Terminal failed transactions are left alone.
func (s *service) rollStatusForward(ctx context.Context, parent *transactions.TransactionWithBuyer) error {
	if parent.PaymentStatus == enums.PaymentStatusFailed {
		return nil
	}

	total, err := s.repo.SumForTransaction(ctx, parent.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum payments")
	}

	next := enums.PaymentStatusPartial
	if total.GreaterThanOrEqual(parent.TotalAmount) {
		next = enums.PaymentStatusPaid
	}
	if next == parent.PaymentStatus {
		return nil
	}

	_, err = s.transactions.UpdateStatus(ctx, parent.ID, next.String())
	return err
}

func validateCreateInput(input CreatePaymentInput) (enums.PaymentMethod, error) {
	missing := map[string]string{}
	if input.TransactionID == 0 {
		missing["transaction_id"] = "is required"
	}
	if input.Amount.IsZero() || input.Amount.IsNegative() {
		missing["amount"] = "is required"
	}
	if input.Method == "" {
		missing["method"] = "is required"
	}
	if len(missing) > 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing required payment fields").WithDetails(missing)
	}

	method, err := enums.ParsePaymentMethod(input.Method)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	return method, nil
}
