package session

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/save"
	"uqm-starseed/internal/shared/config"
	apperrors "uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/logger"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"
)

func testConfig() *config.Config {
	return &config.Config{
		Seeding: config.SeedingConfig{
			DefaultSeed:      16807,
			SeedType:         config.SeedTypeStar,
			NewGameBudget:    5 * time.Second,
			LoadBudget:       10 * time.Second,
			NewGameRetries:   3,
			StarFactor:       starmap.DefaultStarFactor,
			RelatedThreshold: starmap.DefaultRelatedThreshold,
		},
		Persistence: config.PersistenceConfig{
			MaxStateFileSize: 1 << 20,
		},
	}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(testConfig(), logger.Discard())
	require.NoError(t, err)
	return s
}

func startedSession(t *testing.T, seed uint32) *Session {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.StartNewGame(context.Background(), seed))
	return s
}

func TestStartNewGame(t *testing.T) {
	s := startedSession(t, 42)

	require.NotNil(t, s.Galaxy)
	require.NotNil(t, s.Game)
	assert.NoError(t, starmap.Verify(s.Galaxy))
	assert.Equal(t, s.Galaxy.Seed, s.Game.SIS.Seed)
	assert.Equal(t, save.InHyperspace, s.Game.Global.CurrentActivity)

	sol, ok := s.Galaxy.PlotPoint(starmap.Sol)
	require.True(t, ok)
	assert.Equal(t, sol.X, s.Game.SIS.LogX)
	assert.Equal(t, sol.Y, s.Game.SIS.LogY)

	assert.Equal(t, 4*len(s.Galaxy.Stars), s.Game.Files.Length(statefile.StarInfoFile))
	assert.Nil(t, s.Game.Star)
}

func TestNewGameReleasesPreviousGroups(t *testing.T) {
	s := startedSession(t, 42)
	old := s.Game
	require.Positive(t, old.Files.Length(statefile.RandomGroupFile))

	require.NoError(t, s.StartNewGame(context.Background(), 43))
	assert.NotSame(t, old, s.Game)
	assert.Zero(t, old.Files.Length(statefile.RandomGroupFile))
	assert.Zero(t, old.Files.Length(statefile.DefinedGroupFile))
	assert.Positive(t, s.Game.Files.Length(statefile.RandomGroupFile))
}

func TestStartNewGameMovesFleets(t *testing.T) {
	s := startedSession(t, 42)

	moved := 0
	ref := fleet.DefaultRoster()
	for i := range s.Game.Roster {
		if s.Game.Roster[i].Loc != ref[i].Loc {
			moved++
		}
	}
	assert.Positive(t, moved)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := startedSession(t, 100)
	b := startedSession(t, 200)

	assert.NotEqual(t, a.Galaxy.Plots, b.Galaxy.Plots)
	assert.NotSame(t, a.Game.Files, b.Game.Files)
	assert.NotSame(t, a.Game.RNG, b.Game.RNG)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := startedSession(t, 42)
	solStar, ok := s.Galaxy.StarAt(starmap.Sol)
	require.True(t, ok)
	require.NoError(t, s.EnterStar(s.Galaxy.Plots[starmap.Sol].Star, nil))
	s.Game.SIS.ResUnits = 3100
	s.Game.Clock.MoveDays(40)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf, "Before Sol"))

	loaded := newSession(t)
	require.NoError(t, loaded.Load(context.Background(), bytes.NewReader(buf.Bytes())))

	assert.Equal(t, s.Galaxy.Seed, loaded.Galaxy.Seed)
	assert.Equal(t, s.Galaxy.Plots, loaded.Galaxy.Plots)
	assert.Equal(t, s.Galaxy.Stars, loaded.Galaxy.Stars)
	assert.Equal(t, s.Game.SIS, loaded.Game.SIS)
	assert.Equal(t, s.Game.Clock.Now(), loaded.Game.Clock.Now())

	require.NotNil(t, loaded.Game.Star)
	assert.Equal(t, solStar.Point, loaded.Game.Star.Point)
	assert.Equal(t, uint16(s.Galaxy.Plots[starmap.Sol].Star), loaded.Game.Groups.StarIndex)

	for i := range s.Game.Roster {
		assert.Equal(t, s.Game.Roster[i].Loc, loaded.Game.Roster[i].Loc, "race %d", i)
	}
}

func TestLoadFailureKeepsCurrentGame(t *testing.T) {
	s := startedSession(t, 42)
	galaxy, game := s.Galaxy, s.Game

	err := s.Load(context.Background(), bytes.NewReader([]byte("not a save")))
	require.Error(t, err)
	assert.Same(t, galaxy, s.Galaxy)
	assert.Same(t, game, s.Game)
}

func TestSaveWithoutGame(t *testing.T) {
	s := newSession(t)
	err := s.Save(&bytes.Buffer{}, "empty")
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetType(err))
}

func TestEnterAndLeaveStar(t *testing.T) {
	s := startedSession(t, 7)

	err := s.EnterStar(starmap.StarRef(len(s.Galaxy.Stars)), nil)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	require.NoError(t, s.EnterStar(3, nil))
	assert.Equal(t, s.Galaxy.Stars[3], *s.Game.Star)
	assert.Equal(t, uint16(3), s.Game.Groups.StarIndex)
	assert.Equal(t, save.InInterplanetary, s.Game.Global.CurrentActivity)

	s.LeaveStar()
	assert.Nil(t, s.Game.Star)
	assert.Equal(t, save.InHyperspace, s.Game.Global.CurrentActivity)
}

func TestPreviewLeavesSessionAlone(t *testing.T) {
	s := startedSession(t, 42)
	before := s.Galaxy.Plots

	res, err := s.Preview(context.Background(), 43, config.SeedTypeMRQ)
	require.NoError(t, err)
	assert.Equal(t, config.SeedTypeMRQ, res.Galaxy.Type)
	assert.Equal(t, before, s.Galaxy.Plots)
	assert.NotSame(t, res.Galaxy, s.Galaxy)
}
