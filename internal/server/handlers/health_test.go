package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxIdleConns: 1}}
	db, err := database.Open(cfg)
	require.NoError(t, err)

	h := NewHealthHandler(db, nil)
	h.now = func() time.Time { return time.Date(2155, 2, 17, 0, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, HealthResponse{
		Status:    "healthy",
		Timestamp: "2155-02-17T00:00:00Z",
		Database:  "connected",
		Cache:     "memory",
	}, resp)

	require.NoError(t, db.Close())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "disconnected", resp.Database)
}
