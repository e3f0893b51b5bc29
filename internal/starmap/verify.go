package starmap

import (
	"errors"
	"fmt"
)

// Verify re-checks a finished galaxy as a whole: every plot placed, every
// constraint met from both sides, and no star shared between plots.
func Verify(g *Galaxy) error {
	var errs []error

	owner := make(map[StarRef]Plot, NumPlots)
	for p := Plot(0); p < NumPlots; p++ {
		loc := &g.Plots[p]
		if !loc.At.Valid {
			errs = append(errs, fmt.Errorf("%s is not placed", p))
			continue
		}
		if p == Arilou {
			if loc.Star.Valid() {
				errs = append(errs, fmt.Errorf("%s sits on star %d", p, loc.Star))
			}
			continue
		}

		star, ok := g.StarAt(p)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s has no star", p))
			continue
		case star.Index != p:
			errs = append(errs, fmt.Errorf("%s: star %d claims %s", p, loc.Star, star.Index))
		case star.Point != loc.At.Point:
			errs = append(errs, fmt.Errorf("%s is at %v but its star is at %v", p, loc.At.Point, star.Point))
		}
		if prev, dup := owner[loc.Star]; dup {
			errs = append(errs, fmt.Errorf("%s and %s share star %d", prev, p, loc.Star))
		}
		owner[loc.Star] = p
	}

	for i := range g.Stars {
		p := g.Stars[i].Index
		if p != NoPlot && (p >= NumPlots || g.Plots[p].Star != StarRef(i)) {
			errs = append(errs, fmt.Errorf("star %d claims %s without hosting it", i, p))
		}
	}

	for a := Plot(0); a < NumPlots; a++ {
		for b := a + 1; b < NumPlots; b++ {
			c := g.Plots[a].Dist[b]
			if !c.Bound() || !g.Plots[a].At.Valid || !g.Plots[b].At.Valid {
				continue
			}
			d := g.Plots[a].At.DistSq(g.Plots[b].At.Point)
			if d < int64(c.Min)*int64(c.Min) || (c.Max < MaxPlot && d > int64(c.Max)*int64(c.Max)) {
				errs = append(errs, fmt.Errorf("%s-%s distance² %d outside [%d, %d]", a, b, d, c.Min, c.Max))
			}
		}
	}

	return errors.Join(errs...)
}
