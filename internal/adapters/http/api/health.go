package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves the Prometheus exposition of a registry.
type HealthHandler struct {
	handler http.Handler
}

// NewHealthHandler creates a health handler for the given gatherer.
func NewHealthHandler(g prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{handler: promhttp.HandlerFor(g, promhttp.HandlerOpts{})}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
