// Package savestore keeps save files in the save_slots table. Blobs are
// lz4 compressed when configured and carry a blake3 checksum of the
// stored bytes.
package savestore

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"uqm-starseed/internal/save"
	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/errors"
)

// Game is a session that can write and read save files
type Game interface {
	Save(w io.Writer, name string) error
	Load(ctx context.Context, r io.Reader) error
}

type Service struct {
	repo     *Repository
	cfg      config.PersistenceConfig
	autosave *rate.Limiter
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(repo *Repository, cfg config.PersistenceConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing save slot service",
		"compress", cfg.Compress,
		"autosave_interval", cfg.AutosaveInterval)

	return &Service{
		repo:     repo,
		cfg:      cfg,
		autosave: rate.NewLimiter(rate.Every(cfg.AutosaveInterval), max(cfg.AutosaveBurst, 1)),
		now:      time.Now,
		logger:   logger.With("component", "savestore_service"),
	}
}

// encode builds a slot around raw save bytes
func (s *Service) encode(name string, raw []byte) (*Slot, []byte, error) {
	sum, err := save.ReadSummary(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}

	blob := raw
	if s.cfg.Compress {
		if blob, err = compressLZ4(raw); err != nil {
			return nil, nil, errors.WrapInternal("compress save", err)
		}
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	slot := &Slot{
		ID:         uuid.NewString(),
		Name:       name,
		Seed:       sum.SIS.Seed,
		Activity:   sum.Activity,
		GameDate:   sum.Date.String(),
		Summary:    newSlotSummary(&sum),
		Compressed: s.cfg.Compress,
		Checksum:   checksum(blob),
		RawSize:    len(raw),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return slot, blob, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Validation("save name is required")
	}
	if len(name) >= save.SaveNameSize {
		return "", errors.Validationf("save name is longer than %d bytes", save.SaveNameSize-1)
	}
	return name, nil
}

// Save writes the game into a new slot
func (s *Service) Save(ctx context.Context, name string, g Game) (*Slot, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.Save(&buf, name); err != nil {
		return nil, err
	}
	slot, blob, err := s.encode(name, buf.Bytes())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, slot, blob); err != nil {
		return nil, err
	}

	s.logger.Info("Game saved",
		"operation", "save",
		"slot_id", slot.ID,
		"raw_size", slot.RawSize,
		"stored_size", len(blob))
	return slot, nil
}

// Import stores a save file produced elsewhere
func (s *Service) Import(ctx context.Context, name string, r io.Reader) (*Slot, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapValidation("read save file", err)
	}
	slot, blob, err := s.encode(name, raw)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, slot, blob); err != nil {
		return nil, err
	}
	return slot, nil
}

// Autosave overwrites the autosave slot unless one was written too
// recently. The bool reports whether a save happened.
func (s *Service) Autosave(ctx context.Context, g Game) (*Slot, bool, error) {
	logger := s.logger.With("operation", "autosave")

	if !s.autosave.AllowN(s.now(), 1) {
		logger.Debug("Autosave throttled")
		return nil, false, nil
	}

	var buf bytes.Buffer
	if err := g.Save(&buf, AutosaveName); err != nil {
		return nil, false, err
	}
	slot, blob, err := s.encode(AutosaveName, buf.Bytes())
	if err != nil {
		return nil, false, err
	}

	if err := s.repo.UpsertByName(ctx, slot, blob); err != nil {
		return nil, false, err
	}

	logger.Info("Autosaved", "slot_id", slot.ID)
	return slot, true, nil
}

// open returns the verified raw save bytes of a slot
func (s *Service) open(ctx context.Context, id string) (*Slot, []byte, error) {
	slot, blob, err := s.repo.GetWithBlob(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if got := checksum(blob); got != slot.Checksum {
		return nil, nil, errors.Corruptf("save slot %s checksum mismatch", id)
	}

	raw := blob
	if slot.Compressed {
		if raw, err = decompressLZ4(blob, slot.RawSize); err != nil {
			return nil, nil, errors.WrapCorrupt("decompress save", err)
		}
	}
	if len(raw) != slot.RawSize {
		return nil, nil, errors.Corruptf("save slot %s is %d bytes, expected %d", id, len(raw), slot.RawSize)
	}
	return slot, raw, nil
}

// Load verifies a slot and loads it into the game
func (s *Service) Load(ctx context.Context, id string, g Game) (*Slot, error) {
	slot, raw, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Load(ctx, bytes.NewReader(raw)); err != nil {
		return nil, err
	}

	s.logger.Info("Game loaded", "operation", "load", "slot_id", id, "seed", slot.Seed)
	return slot, nil
}

// Export writes the raw save file of a slot
func (s *Service) Export(ctx context.Context, id string, w io.Writer) (*Slot, error) {
	slot, raw, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(raw); err != nil {
		return nil, errors.WrapInternal("write save file", err)
	}
	return slot, nil
}

// ExportFile copies a slot into the save directory and returns the path
func (s *Service) ExportFile(ctx context.Context, id string) (string, error) {
	if err := os.MkdirAll(s.cfg.SaveDir, 0o755); err != nil {
		return "", errors.WrapInternal("create save directory", err)
	}

	var buf bytes.Buffer
	if _, err := s.Export(ctx, id, &buf); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.SaveDir, id+".sav")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.WrapInternal("write save file", err)
	}
	return path, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Slot, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Slot, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
