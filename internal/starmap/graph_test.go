package starmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyGraph() *Graph {
	g := &Graph{}
	g.Reset()
	return g
}

func TestSetPlotLengthWeights(t *testing.T) {
	g := emptyGraph()

	g.SetPlotLength(Sol, StartColony, 0, 1000)
	want := int(MaxPlot - 1000)
	assert.Equal(t, want, g[Sol].Weight)
	assert.Equal(t, want, g[StartColony].Weight)
	assert.Equal(t, g[Sol].Dist[StartColony], g[StartColony].Dist[Sol])

	// replacing a constraint takes the old weight back out first
	g.SetPlotLength(Sol, StartColony, 500, 0)
	assert.Equal(t, 500, g[Sol].Weight)
	assert.Equal(t, 500, g[StartColony].Weight)

	g.SetPlotLength(Sol, Samatra, 3000, 0)
	assert.Equal(t, 3500, g[Sol].Weight)
	assert.Equal(t, 3000, g[Samatra].Weight)

	g.SetPlotLength(Sol, StartColony, 0, 0)
	assert.Equal(t, 3000, g[Sol].Weight)
	assert.Zero(t, g[StartColony].Weight)
}

func TestSetPlotLengthClamps(t *testing.T) {
	g := emptyGraph()
	g.SetPlotLength(Vux, Maidens, -50, 99999)

	c := g[Vux].Dist[Maidens]
	assert.Equal(t, MinPlot, c.Min)
	assert.Equal(t, MaxPlot, c.Max)
	assert.False(t, c.Bound())
	assert.Zero(t, g[Vux].Weight)
}

func TestDefaultConstraintsAreDistinctPairs(t *testing.T) {
	cs := DefaultConstraints()
	seen := map[[2]Plot]bool{}
	for _, c := range cs {
		key := [2]Plot{min(c.A, c.B), max(c.A, c.B)}
		require.False(t, seen[key], "%s-%s listed twice", c.A, c.B)
		seen[key] = true
	}

	g := emptyGraph()
	InitPlot(g)
	assert.Len(t, g.Constraints(), len(cs))
	assert.Zero(t, g.Placed())
}

func TestReferenceLayoutMeetsDefaultConstraints(t *testing.T) {
	g := &Galaxy{Stars: DefaultStarmap()}
	DefaultPlot(g)
	g.Plots.Apply(DefaultConstraints())

	assert.Equal(t, int(NumPlots), g.Plots.Placed())
	assert.NoError(t, Verify(g))
}

func TestInitMelnormeRainbow(t *testing.T) {
	g := &Galaxy{Stars: DefaultStarmap()}
	InitMelnormeRainbow(g)

	for p := Plot(0); p < NumPlots; p++ {
		loose := p.IsMelnorme() || p.IsRainbow()
		assert.Equal(t, !loose, g.Plots[p].At.Valid, "%s", p)
	}
	assert.Equal(t, int(NumPlots)-19, g.Plots.Placed())
	assert.Equal(t, scatterSpacing, int(g.Plots[Melnorme0].Dist[Melnorme8].Min))
	assert.False(t, g.Plots[Melnorme0].Dist[Rainbow0].Bound())

	for i, s := range g.Stars {
		if s.Index.IsMelnorme() || s.Index.IsRainbow() {
			t.Fatalf("star %d still hosts %s", i, s.Index)
		}
	}
}
