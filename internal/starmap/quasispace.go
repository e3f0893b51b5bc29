package starmap

import (
	"uqm-starseed/internal/random"
)

const (
	portalTries     = 64
	portalClearance = 200
	portalSpacing   = 1000
)

// ArilouPortal is the portal slot that leads to the Arilou homeworld
const ArilouPortal = NumVortices

var arilouQuasi = Point{X: 5000, Y: 5000}

// quasiPoints ring the Arilou homeworld in quasispace and never move
var quasiPoints = [NumVortices]Point{
	{5420, 5000}, {5384, 5171}, {5281, 5312}, {5130, 5399}, {4956, 5418},
	{4790, 5364}, {4660, 5247}, {4589, 5087}, {4589, 4913}, {4660, 4753},
	{4790, 4636}, {4956, 4582}, {5130, 4601}, {5281, 4688}, {5384, 4829},
}

var defaultHyperPoints = [NumVortices]Point{
	{1150, 5900}, {7600, 3900}, {8700, 6500}, {3200, 1000}, {6200, 9000},
	{300, 7800}, {9500, 900}, {4300, 7700}, {1800, 4600}, {7000, 7500},
	{5300, 2100}, {2400, 9900}, {8200, 5200}, {600, 2200}, {9600, 9600},
}

// DefaultQuasispace links every vortex to its reference hyperspace exit
func DefaultQuasispace(g *Galaxy) {
	for i := range defaultHyperPoints {
		g.Portals[i] = Portal{Hyper: defaultHyperPoints[i], Quasi: quasiPoints[i]}
		g.Portals[i].Star = g.FindNearestConstellation(defaultHyperPoints[i])
	}
	setArilouPortal(g)
}

// SeedQuasispace rolls a hyperspace exit for every vortex, clear of stars
// and of the other exits. The Arilou portal follows the rift.
func SeedQuasispace(g *Galaxy, rng *random.Context) {
	for i := 0; i < NumVortices; i++ {
		var at Point
		for try := 0; try < portalTries; try++ {
			rv := rng.Random()
			at = Point{
				X: int32(random.LoWord(rv) % (MaxX + 1)),
				Y: int32(random.HiWord(rv) % (MaxY + 1)),
			}
			if portalClear(g, i, at) {
				break
			}
		}
		g.Portals[i] = Portal{Hyper: at, Quasi: quasiPoints[i], Star: g.FindNearestConstellation(at)}
	}
	setArilouPortal(g)
}

func portalClear(g *Galaxy, n int, at Point) bool {
	if near := g.FindNearestStar(at); near.Valid() && g.Stars[near].DistSq(at) < portalClearance*portalClearance {
		return false
	}
	for i := 0; i < n; i++ {
		if g.Portals[i].Hyper.DistSq(at) < portalSpacing*portalSpacing {
			return false
		}
	}
	return true
}

func setArilouPortal(g *Galaxy) {
	at := riftPoint
	if p := g.Plots[Arilou].At; p.Valid {
		at = p.Point
	}
	g.Portals[ArilouPortal] = Portal{Hyper: at, Quasi: arilouQuasi, Star: g.FindNearestConstellation(at)}
}
