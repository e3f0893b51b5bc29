package savestore

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"uqm-starseed/internal/save"
	"uqm-starseed/internal/shared/database"
	"uqm-starseed/internal/shared/errors"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing save slot repository")

	return &Repository{
		db:     db,
		logger: logger.With("component", "savestore_repository"),
	}
}

const slotColumns = `id, name, seed, activity, game_date, summary, compressed, checksum, raw_size, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(row scanner, extra ...any) (*Slot, error) {
	var (
		slot      Slot
		seed      int64
		activity  int64
		summary   string
		createdAt int64
		updatedAt int64
	)
	dest := append([]any{
		&slot.ID,
		&slot.Name,
		&seed,
		&activity,
		&slot.GameDate,
		&summary,
		&slot.Compressed,
		&slot.Checksum,
		&slot.RawSize,
		&createdAt,
		&updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(summary), &slot.Summary); err != nil {
		return nil, errors.WrapCorrupt("slot summary", err)
	}
	slot.Seed = uint32(seed)
	slot.Activity = save.Activity(activity)
	slot.CreatedAt = time.UnixMilli(createdAt).UTC()
	slot.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &slot, nil
}

func (r *Repository) Insert(ctx context.Context, slot *Slot, blob []byte) error {
	return r.insert(ctx, r.db, slot, blob)
}

func (r *Repository) insert(ctx context.Context, ex database.Executor, slot *Slot, blob []byte) error {
	logger := r.logger.With("operation", "insert", "slot_id", slot.ID, "name", slot.Name)
	logger.Debug("Inserting save slot", "size_bytes", len(blob))

	summary, err := json.Marshal(slot.Summary)
	if err != nil {
		return errors.WrapInternal("encode slot summary", err)
	}

	query := `
		INSERT INTO save_slots (` + slotColumns + `, blob)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = ex.ExecContext(ctx, query,
		slot.ID,
		slot.Name,
		int64(slot.Seed),
		int64(slot.Activity),
		slot.GameDate,
		string(summary),
		slot.Compressed,
		slot.Checksum,
		slot.RawSize,
		slot.CreatedAt.UnixMilli(),
		slot.UpdatedAt.UnixMilli(),
		blob,
	)
	if err != nil {
		logger.Error("Failed to insert save slot", "error", err)
		return fmt.Errorf("failed to insert save slot: %w", err)
	}

	logger.Info("Save slot stored")
	return nil
}

// replace overwrites the contents of an existing slot, keeping its id and
// creation time
func (r *Repository) replace(ctx context.Context, ex database.Executor, slot *Slot, blob []byte) error {
	logger := r.logger.With("operation", "replace", "slot_id", slot.ID)

	summary, err := json.Marshal(slot.Summary)
	if err != nil {
		return errors.WrapInternal("encode slot summary", err)
	}

	query := `
		UPDATE save_slots
		SET seed = $1, activity = $2, game_date = $3, summary = $4, compressed = $5,
			checksum = $6, raw_size = $7, updated_at = $8, blob = $9
		WHERE id = $10
	`
	res, err := ex.ExecContext(ctx, query,
		int64(slot.Seed),
		int64(slot.Activity),
		slot.GameDate,
		string(summary),
		slot.Compressed,
		slot.Checksum,
		slot.RawSize,
		slot.UpdatedAt.UnixMilli(),
		blob,
		slot.ID,
	)
	if err != nil {
		logger.Error("Failed to replace save slot", "error", err)
		return fmt.Errorf("failed to replace save slot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundf("save slot %s not found", slot.ID)
	}

	logger.Debug("Save slot replaced", "size_bytes", len(blob))
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Slot, error) {
	logger := r.logger.With("operation", "get", "slot_id", id)

	query := `SELECT ` + slotColumns + ` FROM save_slots WHERE id = $1`
	slot, err := scanSlot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			logger.Debug("Save slot not found")
			return nil, errors.NotFoundf("save slot %s not found", id)
		}
		logger.Error("Database error getting save slot", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return slot, nil
}

// GetWithBlob returns a slot and its stored bytes
func (r *Repository) GetWithBlob(ctx context.Context, id string) (*Slot, []byte, error) {
	logger := r.logger.With("operation", "get_blob", "slot_id", id)

	query := `SELECT ` + slotColumns + `, blob FROM save_slots WHERE id = $1`
	var blob []byte
	slot, err := scanSlot(r.db.QueryRowContext(ctx, query, id), &blob)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			logger.Debug("Save slot not found")
			return nil, nil, errors.NotFoundf("save slot %s not found", id)
		}
		logger.Error("Database error reading save slot", "error", err)
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	return slot, blob, nil
}

// findByName returns the most recently updated slot with the name, or nil
func (r *Repository) findByName(ctx context.Context, ex database.Executor, name string) (*Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM save_slots WHERE name = $1 ORDER BY updated_at DESC LIMIT 1`
	slot, err := scanSlot(ex.QueryRowContext(ctx, query, name))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Database error finding save slot", "operation", "find_by_name", "name", name, "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return slot, nil
}

// UpsertByName stores slot under its name in one transaction. An existing
// slot of that name is overwritten and lends slot its id and creation time.
func (r *Repository) UpsertByName(ctx context.Context, slot *Slot, blob []byte) error {
	logger := r.logger.With("operation", "upsert", "name", slot.Name)

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", "error", err)
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	prev, err := r.findByName(ctx, tx, slot.Name)
	if err != nil {
		return err
	}
	if prev == nil {
		err = r.insert(ctx, tx, slot, blob)
	} else {
		slot.ID = prev.ID
		slot.CreatedAt = prev.CreatedAt
		err = r.replace(ctx, tx, slot, blob)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit save slot", "error", err)
		return fmt.Errorf("failed to commit save slot: %w", err)
	}
	return nil
}

// List returns every slot, most recent first
func (r *Repository) List(ctx context.Context) ([]Slot, error) {
	logger := r.logger.With("operation", "list")

	query := `SELECT ` + slotColumns + ` FROM save_slots ORDER BY updated_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query save slots", "error", err)
		return nil, fmt.Errorf("failed to query save slots: %w", err)
	}
	defer rows.Close()

	slots := []Slot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			logger.Error("Failed to scan save slot row", "error", err)
			return nil, fmt.Errorf("failed to scan save slot: %w", err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating save slots: %w", err)
	}

	logger.Debug("Save slots listed", "count", len(slots))
	return slots, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	logger := r.logger.With("operation", "delete", "slot_id", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM save_slots WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete save slot", "error", err)
		return fmt.Errorf("failed to delete save slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete save slot: %w", err)
	}
	if n == 0 {
		return errors.NotFoundf("save slot %s not found", id)
	}

	logger.Info("Save slot deleted")
	return nil
}
