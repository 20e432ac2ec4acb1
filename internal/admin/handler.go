package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kitium-ai/modelrouter/internal/metrics"
	"github.com/kitium-ai/modelrouter/internal/router"
	"github.com/kitium-ai/modelrouter/internal/strategy"
)

// Controller is the administrative surface the API exposes. A router of any
// result type satisfies it.
type Controller interface {
	GetProviderHealth() []router.ProviderHealth
	GetAvailableProviderCount() int
	GetUnavailableProviders() []string
	ResetProvider(name string)
	ResetAll()
	SetStrategy(kind strategy.Kind)
	Strategy() strategy.Kind
}

// Handler serves the admin and observability API.
type Handler struct {
	logger     *slog.Logger
	controller Controller
	collector  *metrics.Collector
}

func NewHandler(logger *slog.Logger, controller Controller, collector *metrics.Collector) *Handler {
	return &Handler{
		logger:     logger,
		controller: controller,
		collector:  collector,
	}
}

// Routes assembles the chi router for the admin API.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", h.handleHealthz)
	r.Get("/status", h.handleStatus)
	r.Get("/providers/health", h.handleProviderHealth)
	r.Post("/providers/{name}/reset", h.handleResetProvider)
	r.Post("/reset", h.handleResetAll)
	r.Get("/strategy", h.handleGetStrategy)
	r.Put("/strategy", h.handleSetStrategy)

	if h.collector != nil {
		r.Get("/metrics", h.collector.Handler(func() string {
			return h.controller.Strategy().String()
		}))
	}

	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"strategy":              h.controller.Strategy().String(),
		"available_providers":   h.controller.GetAvailableProviderCount(),
		"unavailable_providers": h.controller.GetUnavailableProviders(),
	})
}

func (h *Handler) handleProviderHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.GetProviderHealth())
}

func (h *Handler) handleResetProvider(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.controller.ResetProvider(name)
	h.logger.Info("Provider breaker reset", slog.String("provider", name))
	writeJSON(w, http.StatusOK, map[string]string{"reset": name})
}

func (h *Handler) handleResetAll(w http.ResponseWriter, r *http.Request) {
	h.controller.ResetAll()
	h.logger.Info("All provider breakers reset")
	writeJSON(w, http.StatusOK, map[string]string{"reset": "all"})
}

func (h *Handler) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"strategy": h.controller.Strategy().String(),
	})
}

func (h *Handler) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Strategy string `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	kind, err := strategy.ParseKind(body.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.controller.SetStrategy(kind)
	h.logger.Info("Strategy changed", slog.String("strategy", kind.String()))
	writeJSON(w, http.StatusOK, map[string]string{"strategy": kind.String()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
