package starmap

// Distance band every constraint is clamped into. MaxPlot exceeds the
// diagonal of the map, so a max of MaxPlot never binds.
const (
	MinPlot int32 = 0
	MaxPlot int32 = 14143
)

// Graph is the plot map: where every plot sits plus the symmetric
// constraint table between plots.
type Graph [NumPlots]PlotLocation

// PlotConstraint names one edge of the constraint graph. A zero Max means
// unconstrained above Min.
type PlotConstraint struct {
	A   Plot  `yaml:"a"`
	B   Plot  `yaml:"b"`
	Min int32 `yaml:"min"`
	Max int32 `yaml:"max"`
}

func clampPlot(v int32) int32 {
	switch {
	case v < MinPlot:
		return MinPlot
	case v > MaxPlot:
		return MaxPlot
	}
	return v
}

// SetPlotLength constrains the distance between a and b. The weight the
// pair contributed before is taken back out of both plots first.
func (g *Graph) SetPlotLength(a, b Plot, min, max int32) {
	if max == 0 {
		max = MaxPlot
	}
	c := Constraint{Min: clampPlot(min), Max: clampPlot(max)}

	old := g[a].Dist[b].Weight()
	g[a].Weight -= old
	g[b].Weight -= old

	g[a].Dist[b] = c
	g[b].Dist[a] = c

	w := c.Weight()
	g[a].Weight += w
	g[b].Weight += w
}

// Apply adds every constraint in cs
func (g *Graph) Apply(cs []PlotConstraint) {
	for _, c := range cs {
		g.SetPlotLength(c.A, c.B, c.Min, c.Max)
	}
}

// Reset unplaces every plot and drops every constraint
func (g *Graph) Reset() {
	for p := range g {
		g[p] = PlotLocation{Star: NoStar}
		for q := range g[p].Dist {
			g[p].Dist[q] = Constraint{Min: MinPlot, Max: MaxPlot}
		}
	}
}

// Placed reports how many plots hold a coordinate
func (g *Graph) Placed() int {
	n := 0
	for p := range g {
		if g[p].At.Valid {
			n++
		}
	}
	return n
}

// Constraints lists the bound edges, each pair once
func (g *Graph) Constraints() []PlotConstraint {
	var out []PlotConstraint
	for a := Plot(0); a < NumPlots; a++ {
		for b := a + 1; b < NumPlots; b++ {
			if c := g[a].Dist[b]; c.Bound() {
				out = append(out, PlotConstraint{A: a, B: b, Min: c.Min, Max: c.Max})
			}
		}
	}
	return out
}

var homeworlds = []Plot{
	Spathi, ZoqFot, Pkunk, Utwig, Supox, Yehat, Vux, Orz, Thradd, Ilwrath,
	Mycon, Druuge, Syreen, Chmmr, TalkingPet, Slylandro, Androsynth,
	Shofixti, Burvixese,
}

// homeworldSpacing keeps two homeworlds from sharing a neighbourhood
const homeworldSpacing = 600

func isHomeworld(p Plot) bool {
	for _, h := range homeworlds {
		if h == p {
			return true
		}
	}
	return false
}

// DefaultConstraints is the constraint graph of a fully seeded map
func DefaultConstraints() []PlotConstraint {
	var cs []PlotConstraint
	near := func(a, b Plot, max int32) { cs = append(cs, PlotConstraint{A: a, B: b, Max: max}) }
	far := func(a, b Plot, min int32) { cs = append(cs, PlotConstraint{A: a, B: b, Min: min}) }

	near(Sol, StartColony, 1000)
	far(Sol, Samatra, 3000)
	far(Arilou, Sol, 2000)
	near(Vux, Maidens, 800)
	near(Vux, VuxBeast, 800)
	near(Spathi, Algolites, 800)
	near(Spathi, SpathiMonument, 800)
	for p := ZoqColony0; p <= ZoqColony3; p++ {
		near(ZoqFot, p, 1000)
	}
	near(ZoqFot, ZoqScout, 1500)
	for _, p := range []Plot{SunDevice, EggCase0, EggCase1, EggCase2} {
		near(Mycon, p, 1500)
	}
	near(Mycon, MyconTrap, 2500)
	near(Orz, TaaloProtector, 800)
	near(Utwig, Bomb, 1200)
	cs = append(cs, PlotConstraint{A: Utwig, B: Supox, Min: homeworldSpacing, Max: 1800})
	near(Thradd, AquaHelix, 800)
	near(Chmmr, MotherArk, 1500)
	for p := Urquan0; p <= Kohrah2; p++ {
		near(Samatra, p, 1200)
	}
	near(Samatra, DestroyedStarbase, 1500)
	near(Androsynth, ExcavationSite, 1200)

	cs = append(cs, scatterConstraints()...)

	for i, a := range homeworlds {
		for _, b := range homeworlds[i+1:] {
			// already bounded closer together
			if (a == Utwig && b == Supox) || (a == Supox && b == Utwig) {
				continue
			}
			far(a, b, homeworldSpacing)
		}
	}
	return cs
}

// scatterSpacing keeps the trading posts and rainbow worlds spread out
const scatterSpacing = 1500

func scatterConstraints() []PlotConstraint {
	var cs []PlotConstraint
	spread := func(first, last Plot) {
		for a := first; a <= last; a++ {
			for b := a + 1; b <= last; b++ {
				cs = append(cs, PlotConstraint{A: a, B: b, Min: scatterSpacing})
			}
		}
	}
	spread(Melnorme0, Melnorme8)
	spread(Rainbow0, Rainbow9)
	return cs
}

// InitPlot builds the graph for a fully seeded map: nothing placed, every
// constraint in place.
func InitPlot(g *Graph) {
	g.Reset()
	g.Apply(DefaultConstraints())
}

// InitMelnormeRainbow keeps the default layout but sets the trading posts
// and rainbow worlds loose, constrained only to stay apart.
func InitMelnormeRainbow(gal *Galaxy) {
	DefaultPlot(gal)
	for p := Melnorme0; p <= Rainbow9; p++ {
		if !p.IsMelnorme() && !p.IsRainbow() {
			continue
		}
		gal.unplace(p)
	}
	gal.Plots.Apply(scatterConstraints())
}

// DefaultPlot places every plot on the star the catalog hosts it on, with
// no constraints. Stars must still carry their catalog plot indices.
func DefaultPlot(gal *Galaxy) {
	gal.Plots.Reset()
	gal.Plots[Arilou].At = Some(riftPoint)
	for i := range gal.Stars {
		if p := gal.Stars[i].Index; p != NoPlot && p < NumPlots {
			gal.place(p, StarRef(i))
		}
	}
}

func (g *Galaxy) place(p Plot, ref StarRef) {
	g.Plots[p].At = Some(g.Stars[ref].Point)
	g.Plots[p].Star = ref
	g.Stars[ref].Index = p
}

func (g *Galaxy) unplace(p Plot) {
	if ref := g.Plots[p].Star; ref.Valid() && int(ref) < len(g.Stars) && g.Stars[ref].Index == p {
		g.Stars[ref].Index = NoPlot
	}
	g.Plots[p].clear()
}
