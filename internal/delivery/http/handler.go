package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/app"
	"github.com/Rafa37412/CeFoods/internal/metrics"
)

// Handler serves the storefront JSON API.
type Handler struct {
	app     *app.App
	metrics *metrics.Metrics
	limiter *RateLimiter
	log     *zap.SugaredLogger

	// mu runs commerce requests one at a time.
	mu sync.Mutex
}

func NewHandler(a *app.App, m *metrics.Metrics, limiter *RateLimiter, log *zap.SugaredLogger) *Handler {
	return &Handler{app: a, metrics: m, limiter: limiter, log: log}
}

// Routes builds the storefront router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(EnableCORS)
	if h.metrics != nil {
		r.Use(h.metrics.Instrument)
		r.Handle("/metrics", h.metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.Handler)
		}

		// The remote read never touches local state.
		r.Get("/catalog/remote", h.handleRemoteProducts)

		r.Group(func(r chi.Router) {
			r.Use(h.serialize)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", h.handleCurrent)
				r.Post("/register", h.handleRegister)
				r.Post("/login", h.handleLogin)
				r.Post("/logout", h.handleLogout)
				r.Patch("/profile", h.handleUpdateProfile)
				r.Post("/deposit", h.handleDeposit)
				r.Post("/withdraw", h.handleWithdraw)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.handleGetCart)
				r.Delete("/", h.handleClearCart)
				r.Post("/items", h.handleAddItem)
				r.Put("/items/{id}", h.handleSetQuantity)
				r.Delete("/items/{id}", h.handleRemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", h.handleStartCheckout)
				r.Get("/", h.handleGetCheckout)
				r.Post("/ratings/{id}", h.handleRate)
				r.Post("/next", h.handleNext)
				r.Post("/prev", h.handlePrev)
				r.Post("/skip", h.handleSkip)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/products", h.handleGetProducts)
				r.Get("/products/{id}", h.handleGetProduct)
				r.Get("/categories", h.handleGetCategories)
				r.Get("/stores", h.handleGetStores)
				r.Get("/stores/{id}", h.handleGetStore)
				r.Get("/search", h.handleSearch)
			})

			r.Post("/stores", h.handleOpenStore)
			r.Post("/stores/mine/products", h.handleAddProduct)
		})
	})
	return r
}

func (h *Handler) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// EnableCORS is a middleware to allow the React frontend to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
