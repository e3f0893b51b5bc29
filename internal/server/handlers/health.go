package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"uqm-starseed/internal/shared/database"
	"uqm-starseed/internal/shared/redis"
	"uqm-starseed/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
}

type HealthHandler struct {
	db  *database.DB
	rdb *redis.Client
	now func() time.Time
}

// NewHealthHandler reports on the save-slot database and, when configured,
// the preview cache. rdb may be nil.
func NewHealthHandler(db *database.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, now: time.Now}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "disconnected"
	if err := h.db.PingContext(ctx); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	cacheStatus := "memory"
	if h.rdb != nil {
		cacheStatus = "redis"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis ping failed", "error", err)
			cacheStatus = "redis unreachable"
		}
	}

	status := "healthy"
	if dbStatus != "connected" {
		status = "degraded"
	}

	resp := HealthResponse{
		Status:    status,
		Timestamp: h.now().Format(time.RFC3339),
		Database:  dbStatus,
		Cache:     cacheStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
