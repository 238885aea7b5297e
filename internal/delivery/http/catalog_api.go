package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/metrics"
	"github.com/Rafa37412/CeFoods/internal/service"
)

// CatalogHandler serves the catalog API.
type CatalogHandler struct {
	catalog *service.CatalogService
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

func NewCatalogHandler(catalog *service.CatalogService, m *metrics.Metrics, log *zap.SugaredLogger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, metrics: m, log: log}
}

// Routes builds the catalog API router.
func (h *CatalogHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(EnableCORS)
	if h.metrics != nil {
		r.Use(h.metrics.Instrument)
		r.Handle("/metrics", h.metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api", h.handleRoot)
	r.Get("/api/products", h.handleGetProducts)
	return r
}

func (h *CatalogHandler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CeFoods catalog API"})
}

func (h *CatalogHandler) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetProducts(r.Context())
	if err != nil {
		h.log.Errorw("Failed to get products", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"})
		return
	}
	writeJSON(w, http.StatusOK, newProductViews(products))
}
