package handlers

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// PendingCounter reports the notification outbox backlog.
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// HealthHandler reports liveness and, when an outbox is configured, its
// backlog.
type HealthHandler struct {
	outbox PendingCounter
}

// NewHealthHandler creates a health handler. outbox may be nil.
func NewHealthHandler(outbox PendingCounter) *HealthHandler {
	return &HealthHandler{outbox: outbox}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if h.outbox == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	pending, err := h.outbox.CountPending(ctx)
	if err != nil {
		log.WithError(err).Warn("Outbox health check failed")
		resp["status"] = "degraded"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp["outboxPending"] = pending
	writeJSON(w, http.StatusOK, resp)
}
