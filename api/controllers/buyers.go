package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/api/responses"
	"github.com/plotdesk/plotdesk-backend/api/validators"
	buyersvc "github.com/plotdesk/plotdesk-backend/internal/buyers"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
)

func ListBuyers(svc buyersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyers, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buyers)
	}
}

func GetBuyer(svc buyersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUint(chi.URLParam(r, "buyerId"), "buyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buyer)
	}
}

type createBuyerRequest struct {
	Name       string `json:"name" validate:"required"`
	IDNumber   string `json:"id_number" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Budget     string `json:"budget" validate:"required"`
}

func (r createBuyerRequest) toCreateInput() (buyersvc.CreateBuyerInput, error) {
	budget, err := decimal.NewFromString(strings.TrimSpace(r.Budget))
	if err != nil {
		return buyersvc.CreateBuyerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid budget")
	}
	return buyersvc.CreateBuyerInput{
		Name:       strings.TrimSpace(r.Name),
		IDNumber:   strings.TrimSpace(r.IDNumber),
		Phone:      strings.TrimSpace(r.Phone),
		Email:      strings.TrimSpace(r.Email),
		Address:    strings.TrimSpace(r.Address),
		Occupation: strings.TrimSpace(r.Occupation),
		Budget:     budget,
	}, nil
}

func CreateBuyer(svc buyersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBuyerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyer, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, buyer)
	}
}

type updateBuyerRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address,omitempty"`
	Occupation string `json:"occupation,omitempty"`
}

func UpdateBuyer(svc buyersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUint(chi.URLParam(r, "buyerId"), "buyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBuyerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyer, err := svc.Update(r.Context(), id, buyersvc.UpdateBuyerInput{
			Name:       strings.TrimSpace(payload.Name),
			Phone:      strings.TrimSpace(payload.Phone),
			Email:      strings.TrimSpace(payload.Email),
			Address:    strings.TrimSpace(payload.Address),
			Occupation: strings.TrimSpace(payload.Occupation),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buyer)
	}
}
