package handler

import (
	"context"
	"net/http"
	"time"

	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server is running"))
}

// Health reports 503 while the database does not answer a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if h.db == nil {
		utils.WriteJSONError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := h.db.PingContext(ctx); err != nil {
		logger.FromCtx(r.Context()).Warn("health check failed", zap.Error(err))
		utils.WriteJSONError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
