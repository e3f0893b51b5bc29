package starmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqm-starseed/internal/random"
)

func TestDefaultStarmap(t *testing.T) {
	stars := DefaultStarmap()
	require.Len(t, stars, NumSolarSystems)

	hosts := map[Plot]int{}
	names := map[[2]uint8]int{}
	for i, s := range stars {
		assert.True(t, s.X >= 0 && s.X <= MaxX && s.Y >= 0 && s.Y <= MaxY, "star %d off the map", i)
		if s.HasPlot() {
			hosts[s.Index]++
			assert.Equal(t, canon[s.Index].At, s.Point)
		}
		key := [2]uint8{s.Prefix, s.Postfix}
		if prev, dup := names[key]; dup {
			t.Errorf("stars %d and %d are both %q", prev, i, s.Name())
		}
		names[key] = i
		assert.NotZero(t, s.Postfix, "star %d has no name", i)
		assert.LessOrEqual(t, int(s.Prefix), NumPrefixes)
	}
	assert.Len(t, hosts, int(NumPlots)-1)
	for p, n := range hosts {
		assert.Equal(t, 1, n, "%s", p)
	}
}

func TestDefaultStarmapSpacing(t *testing.T) {
	stars := DefaultStarmap()
	for i := range stars {
		for j := i + 1; j < len(stars); j++ {
			assert.GreaterOrEqual(t, stars[i].DistSq(stars[j].Point), int64(starSpacing*starSpacing),
				"%s and %s", stars[i].Name(), stars[j].Name())
		}
	}
}

func TestDefaultStarmapIsACopy(t *testing.T) {
	a := DefaultStarmap()
	a[0].X = -5
	b := DefaultStarmap()
	assert.NotEqual(t, a[0].X, b[0].X)
}

func TestSeedStarmap(t *testing.T) {
	a := DefaultStarmap()
	b := DefaultStarmap()
	SeedStarmap(a, random.New(7))
	SeedStarmap(b, random.New(7))
	assert.Equal(t, a, b)

	ref := DefaultStarmap()
	for i := range a {
		assert.Equal(t, NoPlot, a[i].Index)
		assert.Equal(t, ref[i].Point, a[i].Point)
		assert.Equal(t, ref[i].Prefix, a[i].Prefix)
		assert.Equal(t, ref[i].Postfix, a[i].Postfix)
		assert.Contains(t, []uint8{DwarfStar, GiantStar}, a[i].Size())
		assert.Less(t, a[i].Color(), numStarColors)
	}
}

func TestStarNames(t *testing.T) {
	tests := []struct {
		name string
		star Star
		want string
	}{
		{"alpha", Star{Prefix: 1, Postfix: 1}, "Alpha Andromedae"},
		{"omega", Star{Prefix: 24, Postfix: 88}, "Omega Vulpeculae"},
		{"two words", Star{Prefix: 3, Postfix: 13}, "Gamma Canum Venaticorum"},
		{"lone", Star{Postfix: numConstellations + 1}, "Sol"},
		{"unnamed", Star{Postfix: 250}, "Star 250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.star.Name())
		})
	}
}

func TestSolIsLone(t *testing.T) {
	g := &Galaxy{Stars: DefaultStarmap()}
	DefaultPlot(g)
	sol, ok := g.StarAt(Sol)
	require.True(t, ok)
	assert.Equal(t, "Sol", sol.Name())
	assert.Zero(t, sol.Prefix)
}
