package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pinecresthq/be-portal-retention/internal/database"
	"github.com/pinecresthq/be-portal-retention/internal/logger"
)

// OpsHandler serves the daemon's operational endpoints. Member-facing
// routes live in the portal services; this daemon exposes only health
// and metrics.
type OpsHandler struct {
	db  *database.DB
	log *logger.Logger
}

// NewOpsHandler creates a new ops handler.
func NewOpsHandler(db *database.DB, log *logger.Logger) *OpsHandler {
	return &OpsHandler{db: db, log: log}
}

// Routes returns the ops mux.
func (h *OpsHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Health reports readiness: 200 when the database answers a ping within
// two seconds, 503 otherwise.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Health check failed: database unreachable")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unhealthy"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
