package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plotdesk/plotdesk-backend/api/controllers"
	"github.com/plotdesk/plotdesk-backend/api/middleware"
	buyersvc "github.com/plotdesk/plotdesk-backend/internal/buyers"
	paysvc "github.com/plotdesk/plotdesk-backend/internal/payments"
	plotsvc "github.com/plotdesk/plotdesk-backend/internal/plots"
	txsvc "github.com/plotdesk/plotdesk-backend/internal/transactions"
	"github.com/plotdesk/plotdesk-backend/pkg/config"
	"github.com/plotdesk/plotdesk-backend/pkg/db"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
	"github.com/plotdesk/plotdesk-backend/pkg/metrics"
	pkgredis "github.com/plotdesk/plotdesk-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. RedisClient and
// IdempotencyStore are nil when redis is not configured.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	RedisPinger      pkgredis.Pinger
	IdempotencyStore pkgredis.IdempotencyStore

	Plots        plotsvc.Service
	Buyers       buyersvc.Service
	Transactions txsvc.Service
	Payments     paysvc.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
		middleware.CORS(deps.Config.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.RedisPinger))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.IdempotencyStore, deps.Logger))

		r.Route("/plots", func(r chi.Router) {
			r.Get("/", controllers.ListPlots(deps.Plots, deps.Logger))
			r.Get("/stats", controllers.PlotStats(deps.Plots, deps.Logger))
			r.Patch("/bulk", controllers.BulkUpdatePlots(deps.Plots, deps.Logger))
			r.Get("/{plotId}", controllers.GetPlot(deps.Plots, deps.Logger))
			r.Patch("/{plotId}", controllers.UpdatePlot(deps.Plots, deps.Logger))
		})

		r.Route("/buyers", func(r chi.Router) {
			r.Get("/", controllers.ListBuyers(deps.Buyers, deps.Logger))
			r.Post("/", controllers.CreateBuyer(deps.Buyers, deps.Logger))
			r.Get("/{buyerId}", controllers.GetBuyer(deps.Buyers, deps.Logger))
			r.Put("/{buyerId}", controllers.UpdateBuyer(deps.Buyers, deps.Logger))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.ListTransactions(deps.Transactions, deps.Logger))
			r.Post("/", controllers.CreateTransaction(deps.Transactions, deps.Buyers, deps.Logger))
			r.Get("/{transactionId}", controllers.GetTransaction(deps.Transactions, deps.Logger))
			r.Patch("/{transactionId}/status", controllers.UpdateTransactionStatus(deps.Transactions, deps.Logger))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.ListPayments(deps.Payments, deps.Logger))
			r.Post("/", controllers.CreatePayment(deps.Payments, deps.Logger))
		})
	})

	return r
}
