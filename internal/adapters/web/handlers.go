package web

import (
	"net/http"

	"textile-finance/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
	logger *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, maxBodyBytes int64, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxBodyBytes))

	r.Get("/api/health", h.health)
	r.Get("/api/schema/{name}", h.schema)

	r.Route("/api/commissions", func(r chi.Router) {
		r.Post("/calculate", h.calculateCommission)
		r.Post("/post", h.postCommission)
	})

	r.Route("/api/landed-cost", func(r chi.Router) {
		r.Post("/calculate", h.calculateLandedCost)
		r.Post("/classify", h.classifyCostLine)
	})

	r.Post("/api/profit/analyze", h.analyzeProfit)

	r.Route("/api/fx", func(r chi.Router) {
		r.Post("/revalue", h.revalue)
		r.Post("/post", h.postFx)
	})

	r.Route("/api/ledger", func(r chi.Router) {
		r.Get("/balances", h.balances)
		r.Post("/postings/{id}/cancel", h.cancelPosting)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
