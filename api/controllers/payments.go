package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/api/responses"
	"github.com/plotdesk/plotdesk-backend/api/validators"
	paysvc "github.com/plotdesk/plotdesk-backend/internal/payments"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
)

// ListPayments supports optional ?buyer_id= and ?transaction_id= filters.
func ListPayments(svc paysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, err := validators.ParseQueryUint(r, "buyer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transactionID, err := validators.ParseQueryUint(r, "transaction_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), paysvc.ListFilters{
			BuyerID:       buyerID,
			TransactionID: transactionID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type createPaymentRequest struct {
	TransactionID uint            `json:"transaction_id" validate:"required,min=1"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Method        string          `json:"method" validate:"required"`
	Reference     string          `json:"reference,omitempty"`
}

func CreatePayment(svc paysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), paysvc.CreatePaymentInput{
			TransactionID: payload.TransactionID,
			Amount:        payload.Amount,
			Method:        strings.TrimSpace(payload.Method),
			Reference:     strings.TrimSpace(payload.Reference),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}
