package galaxycache

import (
	"context"
	"testing"
	"time"

	apperrors "uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/logger"
	"uqm-starseed/internal/shared/redis"
	"uqm-starseed/internal/starmap"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSeeder struct {
	calls int
}

func (s *countingSeeder) Seed(_ context.Context, req starmap.Request) (*starmap.Result, error) {
	s.calls++
	g := &starmap.Galaxy{Seed: req.Seed, Type: req.Type, Stars: starmap.DefaultStarmap()}
	starmap.DefaultPlot(g)
	starmap.DefaultQuasispace(g)
	return &starmap.Result{Galaxy: g, Requested: req.Seed, Attempts: 1}, nil
}

func TestKey(t *testing.T) {
	assert.Equal(t, "starmap:preview:42:mrq", Key(42, "mrq"))
}

func TestMemoryCacheHit(t *testing.T) {
	seeder := &countingSeeder{}
	c := New(nil, seeder, time.Minute, logger.Discard())
	ctx := context.Background()

	a, err := c.Preview(ctx, 7, "star")
	require.NoError(t, err)
	b, err := c.Preview(ctx, 7, "star")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, seeder.calls)

	_, err = c.Preview(ctx, 7, "mrq")
	require.NoError(t, err)
	assert.Equal(t, 2, seeder.calls)
}

func TestMemoryCacheExpires(t *testing.T) {
	seeder := &countingSeeder{}
	c := New(nil, seeder, time.Minute, logger.Discard())
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := c.Preview(ctx, 1, "star")
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = c.Preview(ctx, 1, "star")
	require.NoError(t, err)
	assert.Equal(t, 2, seeder.calls)
}

func TestInvalidate(t *testing.T) {
	seeder := &countingSeeder{}
	c := New(nil, seeder, time.Minute, logger.Discard())
	ctx := context.Background()

	_, _ = c.Preview(ctx, 3, "star")
	require.NoError(t, c.Invalidate(ctx, 3, "star"))
	_, _ = c.Preview(ctx, 3, "star")
	assert.Equal(t, 2, seeder.calls)
}

func TestUnreachableRedisFallsBackToSeeding(t *testing.T) {
	rdb := &redis.Client{Client: goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})}
	defer rdb.Close()

	seeder := &countingSeeder{}
	c := New(rdb, seeder, time.Minute, logger.Discard())

	pv, err := c.Preview(context.Background(), 5, "none")
	require.NoError(t, err)
	assert.Equal(t, uint32(5), pv.Seed)
	assert.Equal(t, 1, seeder.calls)

	err = c.Invalidate(context.Background(), 5, "none")
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.GetType(err))
}
