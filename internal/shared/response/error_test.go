package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapsTypeToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errors.NotFoundf("save slot %s not found", "abc"), http.StatusNotFound},
		{"validation", errors.Validation("seed must be numeric"), http.StatusBadRequest},
		{"timeout", errors.WrapTimeout("seed unusable", nil), http.StatusUnprocessableEntity},
		{"corrupt", errors.Corruptf("checksum mismatch"), http.StatusUnprocessableEntity},
		{"method", errors.MethodNotAllowed("PUT"), http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/saves/abc", nil)

			Error(rec, req, logger.Discard(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, string(errors.GetType(tt.err)), body.Error)
			assert.Equal(t, tt.status, body.Code)
		})
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"seed": 16807})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"seed":16807}`, rec.Body.String())
}
