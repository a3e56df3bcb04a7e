package controllers

import (
	"net/http"

	"github.com/plotdesk/plotdesk-backend/api/responses"
	"github.com/plotdesk/plotdesk-backend/pkg/config"
	"github.com/plotdesk/plotdesk-backend/pkg/db"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
	"github.com/plotdesk/plotdesk-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PlotDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the store and, when wired, redis. The redis pinger is nil
// on deployments that run without the idempotency guard.
func HealthReady(cfg *config.Config, logg *logger.Logger, store db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PlotDesk-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok"}

		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "store not wired"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unreachable"))
			return
		}

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
