package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/plotdesk/plotdesk-backend/api/responses"
	"github.com/plotdesk/plotdesk-backend/api/validators"
	buyersvc "github.com/plotdesk/plotdesk-backend/internal/buyers"
	txsvc "github.com/plotdesk/plotdesk-backend/internal/transactions"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
)

// ListTransactions supports optional ?buyer_id= and ?status= filters.
func ListTransactions(svc txsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, err := validators.ParseQueryUint(r, "buyer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), txsvc.ListInput{
			BuyerID: buyerID,
			Status:  strings.TrimSpace(r.URL.Query().Get("status")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetTransaction(svc txsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUint(chi.URLParam(r, "transactionId"), "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

type createTransactionRequest struct {
	BuyerID     uint                `json:"buyer_id,omitempty" validate:"omitempty,min=1"`
	Buyer       *createBuyerRequest `json:"buyer,omitempty"`
	PlotIDs     plotIDList          `json:"plot_ids" validate:"required"`
	TotalAmount decimal.Decimal     `json:"total_amount" validate:"required"`
	Notes       string              `json:"notes,omitempty"`
}

// CreateTransaction records a purchase. The buyer is referenced by id, or
// supplied inline on a first purchase and resolved by id_number lookup-or-create.
func CreateTransaction(svc txsvc.Service, buyerSvc buyersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyerID := payload.BuyerID
		if buyerID == 0 {
			if payload.Buyer == nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "buyer_id or buyer is required"))
				return
			}
			input, err := payload.Buyer.toCreateInput()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			buyer, err := buyerSvc.FindOrCreateByIDNumber(r.Context(), input)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			buyerID = buyer.ID
		}

		row, err := svc.Create(r.Context(), txsvc.CreateTransactionInput{
			BuyerID:     buyerID,
			PlotIDs:     payload.PlotIDs,
			TotalAmount: payload.TotalAmount,
			Notes:       strings.TrimSpace(payload.Notes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

type updateTransactionStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

func UpdateTransactionStatus(svc txsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUint(chi.URLParam(r, "transactionId"), "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTransactionStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.UpdateStatus(r.Context(), id, strings.TrimSpace(payload.PaymentStatus))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// plotIDList accepts the plot id field in the shapes clients actually send:
// an array of numbers, an array of strings, or a single scalar. Order and
// duplicates are kept as submitted.
type plotIDList []string

func (p *plotIDList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*p = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			value, err := scalarToString(item)
			if err != nil {
				return err
			}
			out = append(out, value)
		}
		*p = out
		return nil
	}

	value, err := scalarToString(data)
	if err != nil {
		return err
	}
	*p = []string{value}
	return nil
}

func scalarToString(data []byte) (string, error) {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		return strings.TrimSpace(asString), nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		return asNumber.String(), nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "plot_ids entries must be numbers or strings")
}
