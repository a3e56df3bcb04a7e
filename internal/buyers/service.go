package buyers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plotdesk/plotdesk-backend/pkg/db"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

type buyerRepository interface {
	Create(ctx context.Context, buyer *models.Buyer) error
	List(ctx context.Context) ([]models.Buyer, error)
	FindByID(ctx context.Context, id uint) (*models.Buyer, error)
	FindByIDNumber(ctx context.Context, idNumber string) (*models.Buyer, error)
	UpdateContact(ctx context.Context, id uint, updates map[string]any) (int64, error)
}

// Service exposes buyer operations.
type Service interface {
	List(ctx context.Context) ([]models.Buyer, error)
	Get(ctx context.Context, id uint) (*models.Buyer, error)
	Create(ctx context.Context, input CreateBuyerInput) (*models.Buyer, error)
	Update(ctx context.Context, id uint, input UpdateBuyerInput) (*models.Buyer, error)
	FindOrCreateByIDNumber(ctx context.Context, input CreateBuyerInput) (*models.Buyer, error)
}

type service struct {
	repo buyerRepository
}

// NewService builds a buyer service with the provided repository.
func NewService(repo buyerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("buyer repository required")
	}
	return &service{repo: repo}, nil
}

// CreateBuyerInput captures the fields accepted at buyer creation.
type CreateBuyerInput struct {
	Name       string
	IDNumber   string
	Phone      string
	Email      string
	Address    string
	Occupation string
	Budget     decimal.Decimal
}

// UpdateBuyerInput overwrites the buyer contact fields. Budget and the ledger
// fields are not updatable through this path.
type UpdateBuyerInput struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	Occupation string
}

func (s *service) List(ctx context.Context) ([]models.Buyer, error) {
	buyers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list buyers")
	}
	return buyers, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Buyer, error) {
	buyer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load buyer")
	}
	return buyer, nil
}

func (s *service) Create(ctx context.Context, input CreateBuyerInput) (*models.Buyer, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	buyer := &models.Buyer{
		Name:             strings.TrimSpace(input.Name),
		IDNumber:         strings.TrimSpace(input.IDNumber),
		UID:              DeriveUID(input.Name, input.IDNumber),
		Phone:            strings.TrimSpace(input.Phone),
		Email:            strings.TrimSpace(input.Email),
		Address:          strings.TrimSpace(input.Address),
		Occupation:       strings.TrimSpace(input.Occupation),
		Budget:           input.Budget,
		TotalSpent:       decimal.Zero,
		RemainingBalance: input.Budget,
	}

	if err := s.repo.Create(ctx, buyer); err != nil {
		if db.IsUniqueViolation(err, "idx_buyers_id_number") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a buyer with this id number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create buyer")
	}
	return buyer, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateBuyerInput) (*models.Buyer, error) {
	updates := map[string]any{
		"name":       strings.TrimSpace(input.Name),
		"phone":      strings.TrimSpace(input.Phone),
		"email":      strings.TrimSpace(input.Email),
		"address":    strings.TrimSpace(input.Address),
		"occupation": strings.TrimSpace(input.Occupation),
	}

	affected, err := s.repo.UpdateContact(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update buyer")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
	}
	return s.Get(ctx, id)
}

// FindOrCreateByIDNumber backs the purchase flow: a returning buyer is looked
// up by id number, a new one is created.
func (s *service) FindOrCreateByIDNumber(ctx context.Context, input CreateBuyerInput) (*models.Buyer, error) {
	idNumber := strings.TrimSpace(input.IDNumber)
	if idNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id_number is required")
	}

	buyer, err := s.repo.FindByIDNumber(ctx, idNumber)
	if err == nil {
		return buyer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup buyer")
	}
	return s.Create(ctx, input)
}

func validateCreateInput(input CreateBuyerInput) error {
	missing := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		missing["name"] = "is required"
	}
	if strings.TrimSpace(input.IDNumber) == "" {
		missing["id_number"] = "is required"
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing["phone"] = "is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		missing["email"] = "is required"
	}
	if input.Budget.IsZero() || input.Budget.IsNegative() {
		missing["budget"] = "is required"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required buyer fields").WithDetails(missing)
	}
	return nil
}
