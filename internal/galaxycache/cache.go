// Package galaxycache keeps seeded galaxy previews so the same seed is
// never solved twice. Redis backs it when configured; otherwise previews
// live in process memory.
package galaxycache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/redis"
	"uqm-starseed/internal/starmap"

	goredis "github.com/redis/go-redis/v9"
)

// Seeder produces galaxies; *starmap.Service is one
type Seeder interface {
	Seed(ctx context.Context, req starmap.Request) (*starmap.Result, error)
}

type entry struct {
	preview *starmap.Preview
	expires time.Time
}

type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	seeder Seeder
	logger *slog.Logger

	mu  sync.Mutex
	mem map[string]entry
	now func() time.Time
}

// New builds a cache in front of seeder. A nil client keeps everything in
// memory.
func New(rdb *redis.Client, seeder Seeder, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		rdb:    rdb,
		ttl:    ttl,
		seeder: seeder,
		logger: logger.With("component", "galaxy_cache"),
		mem:    make(map[string]entry),
		now:    time.Now,
	}
}

func Key(seed uint32, seedType string) string {
	return fmt.Sprintf("starmap:preview:%d:%s", seed, seedType)
}

// Preview returns the preview for a new game on seed, seeding it on a miss.
// Cache failures are logged and fall through to the seeder.
func (c *Cache) Preview(ctx context.Context, seed uint32, seedType string) (*starmap.Preview, error) {
	key := Key(seed, seedType)
	logger := c.logger.With("operation", "preview", "key", key)

	if pv, ok := c.get(ctx, key); ok {
		logger.Debug("Preview cache hit")
		return pv, nil
	}

	res, err := c.seeder.Seed(ctx, starmap.Request{Seed: seed, Type: seedType})
	if err != nil {
		return nil, err
	}
	pv := starmap.NewPreview(res)
	c.set(ctx, key, pv)
	logger.Debug("Preview cached", "used_seed", pv.Seed)
	return pv, nil
}

// Invalidate drops a cached preview
func (c *Cache) Invalidate(ctx context.Context, seed uint32, seedType string) error {
	key := Key(seed, seedType)
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			c.logger.Warn("Failed to delete cached preview", "key", key, "error", err)
			return errors.WrapExternal("delete cached preview", err)
		}
		return nil
	}
	c.mu.Lock()
	delete(c.mem, key)
	c.mu.Unlock()
	return nil
}

func (c *Cache) get(ctx context.Context, key string) (*starmap.Preview, bool) {
	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case stderrors.Is(err, goredis.Nil):
			return nil, false
		case err != nil:
			c.logger.Warn("Redis get failed, seeding instead", "key", key, "error", err)
			return nil, false
		}
		var pv starmap.Preview
		if err := json.Unmarshal(data, &pv); err != nil {
			c.logger.Warn("Dropping undecodable cached preview", "key", key, "error", err)
			return nil, false
		}
		return &pv, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.mem[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.mem, key)
		return nil, false
	}
	return e.preview, true
}

func (c *Cache) set(ctx context.Context, key string, pv *starmap.Preview) {
	if c.rdb != nil {
		data, err := json.Marshal(pv)
		if err != nil {
			c.logger.Error("Failed to encode preview", "key", key, "error", err)
			return
		}
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Redis set failed", "key", key, "error", err)
		}
		return
	}

	c.mu.Lock()
	c.mem[key] = entry{preview: pv, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
