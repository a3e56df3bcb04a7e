package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plotdesk/plotdesk-backend/api/responses"
	"github.com/plotdesk/plotdesk-backend/api/validators"
	plotsvc "github.com/plotdesk/plotdesk-backend/internal/plots"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
)

// ListPlots returns the full inventory, optionally filtered by ?status=.
func ListPlots(svc plotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plots, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plots)
	}
}

func GetPlot(svc plotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUint(chi.URLParam(r, "plotId"), "plotId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plot, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plot)
	}
}

type updatePlotRequest struct {
	Status  string `json:"status" validate:"required"`
	BuyerID *uint  `json:"buyer_id,omitempty"`
}

func UpdatePlot(svc plotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUint(chi.URLParam(r, "plotId"), "plotId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePlotRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plot, err := svc.Update(r.Context(), id, plotsvc.UpdatePlotInput{
			Status:  payload.Status,
			BuyerID: payload.BuyerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plot)
	}
}

type bulkUpdatePlotsRequest struct {
	PlotIDs []uint `json:"plot_ids" validate:"required,min=1,dive,min=1"`
	Status  string `json:"status" validate:"required"`
	BuyerID *uint  `json:"buyer_id,omitempty"`
}

// BulkUpdatePlots applies one status change across a set of plots. Unknown
// ids are skipped; the response reports how many rows changed.
func BulkUpdatePlots(svc plotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkUpdatePlotsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.BulkUpdate(r.Context(), plotsvc.BulkUpdatePlotsInput{
			IDs:     payload.PlotIDs,
			Status:  payload.Status,
			BuyerID: payload.BuyerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"updated": updated})
	}
}

func PlotStats(svc plotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
