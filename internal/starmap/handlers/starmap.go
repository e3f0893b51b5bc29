package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/response"
	"uqm-starseed/internal/starmap"
)

type Previewer interface {
	Preview(ctx context.Context, seed uint32, seedType string) (*starmap.Preview, error)
}

type Seeder interface {
	Seed(ctx context.Context, req starmap.Request) (*starmap.Result, error)
}

type StarmapHandler struct {
	previews Previewer
	seeder   Seeder
}

func NewStarmapHandler(previews Previewer, seeder Seeder) *StarmapHandler {
	return &StarmapHandler{previews: previews, seeder: seeder}
}

type VerifyResponse struct {
	Seed      uint32   `json:"seed"`
	Requested uint32   `json:"requested"`
	Type      string   `json:"type"`
	Valid     bool     `json:"valid"`
	Problems  []string `json:"problems,omitempty"`
}

// parseSeedRequest reads the {seed} path value and the optional ?type=
func parseSeedRequest(r *http.Request) (uint32, string, error) {
	raw := r.PathValue("seed")
	if raw == "" {
		return 0, "", errors.Validation("seed is required")
	}
	seed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, "", errors.WrapValidation("invalid seed format", err)
	}

	seedType := r.URL.Query().Get("type")
	switch seedType {
	case "", config.SeedTypeStar, config.SeedTypeMRQ, config.SeedTypeNone:
	default:
		return 0, "", errors.Validationf("unknown seed type %q", seedType)
	}
	return uint32(seed), seedType, nil
}

func (h *StarmapHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "starmap_preview")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	seed, seedType, err := parseSeedRequest(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	pv, err := h.previews.Preview(r.Context(), seed, seedType)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, pv)
}

func (h *StarmapHandler) GetVerify(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "starmap_verify")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	seed, seedType, err := parseSeedRequest(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	res, err := h.seeder.Seed(r.Context(), starmap.Request{Seed: seed, Type: seedType})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	resp := VerifyResponse{
		Seed:      res.Galaxy.Seed,
		Requested: res.Requested,
		Type:      res.Galaxy.Type,
		Valid:     true,
	}
	if verr := starmap.Verify(res.Galaxy); verr != nil {
		resp.Valid = false
		resp.Problems = strings.Split(verr.Error(), "\n")
	}

	response.Success(w, http.StatusOK, resp)
}
