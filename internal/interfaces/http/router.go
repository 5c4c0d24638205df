package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/metrics"
)

// NewRouter builds the full route tree. m may be nil in tests.
func NewRouter(h *Handler, m *metrics.Metrics, logger logging.Logger) nethttp.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))
	if m != nil {
		r.Use(requestMetrics(m))
	}

	r.Get("/healthz", h.health)
	if m != nil {
		r.Method(nethttp.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.startSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/messages", h.postMessage)
				r.Get("/case", h.getCase)
				r.Post("/reset", h.resetSession)
				r.Get("/prediction", h.getPrediction)
				r.Post("/documents", h.postDocument)
				r.Post("/documents/confirm", h.confirmDocument)
			})
		})
		r.Route("/grounds", func(r chi.Router) {
			r.Get("/", h.listGrounds)
			r.Get("/search", h.searchGrounds)
			r.Get("/{id}", h.getGround)
		})
		r.Post("/predictions", h.postPrediction)
		r.Post("/outcomes", h.postOutcome)
	})

	return r
}
