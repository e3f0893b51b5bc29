package starmap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqm-starseed/internal/shared/config"
	apperrors "uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/logger"
)

func seedingConfig() config.SeedingConfig {
	return config.SeedingConfig{
		DefaultSeed:      16807,
		SeedType:         config.SeedTypeStar,
		NewGameBudget:    5 * time.Second,
		LoadBudget:       10 * time.Second,
		NewGameRetries:   3,
		StarFactor:       DefaultStarFactor,
		RelatedThreshold: DefaultRelatedThreshold,
	}
}

func newTestService(t *testing.T, cfg config.SeedingConfig) *Service {
	t.Helper()
	svc, err := NewService(cfg, logger.Discard())
	require.NoError(t, err)
	return svc
}

func TestServiceSeedTypes(t *testing.T) {
	svc := newTestService(t, seedingConfig())
	ctx := context.Background()

	for _, typ := range []string{config.SeedTypeStar, config.SeedTypeMRQ, config.SeedTypeNone} {
		t.Run(typ, func(t *testing.T) {
			res, err := svc.Seed(ctx, Request{Seed: 77, Type: typ})
			require.NoError(t, err)
			g := res.Galaxy
			assert.Equal(t, typ, g.Type)
			assert.Equal(t, uint32(77), res.Requested)
			assert.Equal(t, int(NumPlots), g.Plots.Placed())
			assert.Equal(t, g.Plots[Arilou].At.Point, g.Portals[ArilouPortal].Hyper)
			for i, pt := range g.Portals {
				assert.True(t, pt.Star.Valid(), "portal %d", i)
				assert.NotZero(t, g.Stars[pt.Star].Prefix, "portal %d", i)
			}
		})
	}
}

func TestServiceNoneIsReferenceLayout(t *testing.T) {
	svc := newTestService(t, seedingConfig())
	res, err := svc.Seed(context.Background(), Request{Seed: 1, Type: config.SeedTypeNone})
	require.NoError(t, err)

	for p := Sol; p < NumPlots; p++ {
		assert.Equal(t, canon[p].At, res.Galaxy.Plots[p].At.Point, "%s", p)
	}
	assert.Equal(t, riftPoint, res.Galaxy.Plots[Arilou].At.Point)
	assert.Equal(t, defaultHyperPoints[0], res.Galaxy.Portals[0].Hyper)
}

func TestServiceLoadingIsRepeatable(t *testing.T) {
	svc := newTestService(t, seedingConfig())
	ctx := context.Background()

	a, err := svc.Seed(ctx, Request{Seed: 555, Loading: true})
	require.NoError(t, err)
	b, err := svc.Seed(ctx, Request{Seed: 555, Loading: true})
	require.NoError(t, err)

	assert.Equal(t, uint32(555), a.Galaxy.Seed)
	assert.Equal(t, a.Galaxy.Plots, b.Galaxy.Plots)
	assert.Equal(t, a.Galaxy.Stars, b.Galaxy.Stars)
	assert.Equal(t, a.Galaxy.Portals, b.Galaxy.Portals)
}

func TestServiceSeedReportsProgress(t *testing.T) {
	svc := newTestService(t, seedingConfig())

	var last Progress
	_, err := svc.Seed(context.Background(), Request{Seed: 9, Progress: func(p Progress) { last = p }})
	require.NoError(t, err)
	assert.Equal(t, 1, last.Attempt)
	assert.Equal(t, int(NumPlots), last.Placed)
}

func impossibleConstraints(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constraints.yaml")
	data := []byte("replace: true\nconstraints:\n  - {a: sol, b: shofixti, min: 14143}\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestServiceTimeout(t *testing.T) {
	cfg := seedingConfig()
	cfg.ConstraintsPath = impossibleConstraints(t)
	cfg.NewGameBudget = 20 * time.Millisecond
	cfg.NewGameRetries = 2
	svc := newTestService(t, cfg)

	var seeds []uint32
	_, err := svc.Seed(context.Background(), Request{Seed: 40, Progress: func(p Progress) {
		if p.Placed == 0 {
			seeds = append(seeds, p.Seed)
		}
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Equal(t, apperrors.ErrorTypeTimeout, apperrors.GetType(err))
	// a new game moves on to the next seed
	assert.Equal(t, []uint32{40, 41}, seeds)
}

func TestServiceCancelled(t *testing.T) {
	svc := newTestService(t, seedingConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Seed(ctx, Request{Seed: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceRejectsUnknownType(t *testing.T) {
	svc := newTestService(t, seedingConfig())
	_, err := svc.Seed(context.Background(), Request{Seed: 3, Type: "chaos"})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

func TestNewServiceBadOverrides(t *testing.T) {
	cfg := seedingConfig()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "nope.yaml")
	_, err := NewService(cfg, logger.Discard())
	assert.Error(t, err)
}

func TestNewServiceRejectsSharedStarFactor(t *testing.T) {
	cfg := seedingConfig()
	cfg.StarFactor = 251
	_, err := NewService(cfg, logger.Discard())
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	cfg.StarFactor = 2
	_, err = NewService(cfg, logger.Discard())
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
}

func TestPreview(t *testing.T) {
	svc := newTestService(t, seedingConfig())
	res, err := svc.Seed(context.Background(), Request{Seed: 12})
	require.NoError(t, err)

	pv := NewPreview(res)
	assert.Equal(t, res.Galaxy.Seed, pv.Seed)
	assert.Len(t, pv.Stars, NumSolarSystems)
	assert.Len(t, pv.Plots, int(NumPlots))
	assert.Len(t, pv.Portals, NumPortals)

	hosted := 0
	for _, s := range pv.Stars {
		assert.NotEmpty(t, s.Name)
		if s.Plot != "" {
			hosted++
		}
	}
	assert.Equal(t, int(NumPlots)-1, hosted)
}
