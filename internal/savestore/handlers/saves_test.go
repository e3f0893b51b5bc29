package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uqm-starseed/internal/savestore"
	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	slots map[string]savestore.Slot
	files map[string][]byte
}

func (m *memoryStore) List(ctx context.Context) ([]savestore.Slot, error) {
	out := []savestore.Slot{}
	for _, s := range m.slots {
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (*savestore.Slot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, errors.NotFoundf("save slot %s not found", id)
	}
	return &s, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.slots[id]; !ok {
		return errors.NotFoundf("save slot %s not found", id)
	}
	delete(m.slots, id)
	return nil
}

func (m *memoryStore) Export(ctx context.Context, id string, w io.Writer) (*savestore.Slot, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, ok := m.files[id]
	if !ok {
		return nil, errors.Corruptf("save slot %s checksum mismatch", id)
	}
	_, err = w.Write(data)
	return s, err
}

func newMux(t *testing.T) (*http.ServeMux, *memoryStore, string) {
	t.Helper()
	id := uuid.NewString()
	store := &memoryStore{
		slots: map[string]savestore.Slot{
			id: {ID: id, Name: "Starbase", Seed: 42, GameDate: "2155-02-17", CreatedAt: time.Unix(0, 0).UTC()},
		},
		files: map[string][]byte{id: []byte("save bytes")},
	}

	h := NewSavesHandler(store)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/saves", h.ListSaves)
	mux.HandleFunc("/api/saves/{id}", h.Slot)
	mux.HandleFunc("/api/saves/{id}/file", h.Download)
	return mux, store, id
}

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestListSaves(t *testing.T) {
	mux, _, id := newMux(t)

	rec := serve(mux, http.MethodGet, "/api/saves")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, id, resp.Slots[0].ID)
	assert.Equal(t, "Starbase", resp.Slots[0].Name)

	rec = serve(mux, http.MethodPost, "/api/saves")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetAndDeleteSlot(t *testing.T) {
	mux, store, id := newMux(t)

	rec := serve(mux, http.MethodGet, "/api/saves/"+id)
	require.Equal(t, http.StatusOK, rec.Code)
	var slot savestore.Slot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&slot))
	assert.Equal(t, uint32(42), slot.Seed)

	rec = serve(mux, http.MethodDelete, "/api/saves/"+id)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.slots)

	rec = serve(mux, http.MethodGet, "/api/saves/"+id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp response.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, http.StatusNotFound, errResp.Code)
}

func TestSlotRejects(t *testing.T) {
	mux, _, id := newMux(t)
	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"bad id", http.MethodGet, "/api/saves/not-a-uuid", http.StatusBadRequest},
		{"bad method", http.MethodPut, "/api/saves/" + id, http.StatusMethodNotAllowed},
		{"download bad method", http.MethodDelete, "/api/saves/" + id + "/file", http.StatusMethodNotAllowed},
		{"download unknown", http.MethodGet, "/api/saves/" + uuid.NewString() + "/file", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, tt.method, tt.path)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestDownload(t *testing.T) {
	mux, store, id := newMux(t)

	rec := serve(mux, http.MethodGet, "/api/saves/"+id+"/file")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), id+".sav")
	assert.Equal(t, "save bytes", rec.Body.String())

	delete(store.files, id)
	rec = serve(mux, http.MethodGet, "/api/saves/"+id+"/file")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
