package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ujenzihq/ujenzipay-backend/api/controllers"
	"github.com/ujenzihq/ujenzipay-backend/api/middleware"
	"github.com/ujenzihq/ujenzipay-backend/internal/payments"
	"github.com/ujenzihq/ujenzipay-backend/pkg/config"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db"
	"github.com/ujenzihq/ujenzipay-backend/pkg/logger"
	pkgredis "github.com/ujenzihq/ujenzipay-backend/pkg/redis"
)

// NewRouter wires middleware, controllers, and the metrics endpoint.
// idempotencyStore may be nil, which disables the replay guard.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	paymentService payments.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, dbP))
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore, logg))

			r.Get("/", controllers.PaymentsList(paymentService, logg))
			r.Get("/insights", controllers.PaymentsInsights(paymentService, logg))
			r.Get("/{recordID}", controllers.PaymentsGet(paymentService, logg))
			r.Post("/{recordID}/approve", controllers.PaymentsApprove(paymentService, logg))
			r.Post("/{recordID}/reject", controllers.PaymentsReject(paymentService, logg))
			r.Post("/{recordID}/pay", controllers.PaymentsPay(paymentService, logg))
		})
	})

	return r
}
