package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"uqm-starseed/internal/savestore"
	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/response"
)

type SlotStore interface {
	List(ctx context.Context) ([]savestore.Slot, error)
	Get(ctx context.Context, id string) (*savestore.Slot, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string, w io.Writer) (*savestore.Slot, error)
}

type SavesHandler struct {
	store SlotStore
}

func NewSavesHandler(store SlotStore) *SavesHandler {
	return &SavesHandler{store: store}
}

type ListResponse struct {
	Slots []savestore.Slot `json:"slots"`
	Count int              `json:"count"`
}

func slotID(r *http.Request) (string, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return "", errors.Validation("slot id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errors.WrapValidation("invalid slot id", err)
	}
	return id.String(), nil
}

func (h *SavesHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "saves_list")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	slots, err := h.store.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, ListResponse{Slots: slots, Count: len(slots)})
}

// Slot serves GET and DELETE on a single slot
func (h *SavesHandler) Slot(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "saves_slot")

	id, err := slotID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		slot, err := h.store.Get(r.Context(), id)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		response.Success(w, http.StatusOK, slot)
	case http.MethodDelete:
		if err := h.store.Delete(r.Context(), id); err != nil {
			response.Error(w, r, logger, err)
			return
		}
		logger.Info("Save slot deleted", "slot_id", id)
		w.WriteHeader(http.StatusNoContent)
	default:
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}

// Download streams the raw save file of a slot
func (h *SavesHandler) Download(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "saves_download")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := slotID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	// buffered so a corrupt slot still gets a JSON error
	var buf bytes.Buffer
	slot, err := h.store.Export(r.Context(), id, &buf)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slot.ID+".sav"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
