package starmap

import (
	"log/slog"
	"time"

	"uqm-starseed/internal/random"
)

const (
	// DefaultStarFactor is coprime with NumSolarSystems, so stepping by it
	// visits every slot exactly once
	DefaultStarFactor = 97
	// DefaultRelatedThreshold is the pair weight at which a failure deeper
	// in the search is worth retrying here
	DefaultRelatedThreshold = 600

	riftCells     = 10
	riftCellSize  = 1000
	riftCellStep  = 7
	riftClearance = 150
)

// Solver places every unplaced plot of a galaxy by weighted backtracking.
// A zero Budget never times out.
type Solver struct {
	Galaxy           *Galaxy
	RNG              *random.Context
	Budget           time.Duration
	StarFactor       int
	RelatedThreshold int

	// Consistent reports whether p may stay where it was just put
	Consistent func(g *Galaxy, p Plot) bool
	// Related reports whether a failure of f should be retried while p moves
	Related func(g *Galaxy, p, f Plot) bool
	// Progress sees the number of placed plots each time it reaches a new high
	Progress func(placed int)
	Now      func() time.Time
	Logger   *slog.Logger
	// Done aborts the search like a spent budget once closed
	Done <-chan struct{}

	// Attempts counts top-level passes of the last SeedPlot
	Attempts int

	start  time.Time
	stride int
	last   Plot
	resume bool
	fixed  [NumPlots]bool
	placed int
	best   int
}

func NewSolver(g *Galaxy, rng *random.Context) *Solver {
	return &Solver{
		Galaxy:           g,
		RNG:              rng,
		StarFactor:       DefaultStarFactor,
		RelatedThreshold: DefaultRelatedThreshold,
	}
}

// CheckValid checks p against every placed plot it is bound to. Only p's
// own constraints are looked at.
func CheckValid(g *Galaxy, p Plot) bool {
	at := g.Plots[p].At
	if !at.Valid {
		return false
	}
	for q := Plot(0); q < NumPlots; q++ {
		if q == p || !g.Plots[q].At.Valid {
			continue
		}
		c := g.Plots[p].Dist[q]
		if !c.Bound() {
			continue
		}
		d := at.DistSq(g.Plots[q].At.Point)
		if d < int64(c.Min)*int64(c.Min) {
			return false
		}
		if c.Max < MaxPlot && d > int64(c.Max)*int64(c.Max) {
			return false
		}
	}
	return true
}

func (s *Solver) related(p, f Plot) bool {
	if s.Related != nil {
		return s.Related(s.Galaxy, p, f)
	}
	return s.Galaxy.Plots[p].Dist[f].Weight() >= s.RelatedThreshold
}

func (s *Solver) consistent(p Plot) bool {
	if s.Consistent != nil {
		return s.Consistent(s.Galaxy, p)
	}
	return CheckValid(s.Galaxy, p)
}

func (s *Solver) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Solver) expired() bool {
	select {
	case <-s.Done:
		return true
	default:
	}
	return s.Budget > 0 && s.now().Sub(s.start) > s.Budget
}

// NextPlot picks the plot to place next: the last one tried if it is still
// loose, else the heaviest loose plot. NumPlots means nothing is left.
func (s *Solver) NextPlot() Plot {
	plots := &s.Galaxy.Plots
	if s.resume && !plots[s.last].At.Valid {
		return s.last
	}
	next := NumPlots
	for p := Plot(0); p < NumPlots; p++ {
		if plots[p].At.Valid {
			continue
		}
		if next == NumPlots || plots[p].Weight > plots[next].Weight {
			next = p
		}
	}
	return next
}

// SeedPlot runs the search to completion. The result is Success with every
// plot placed, or Home when the budget ran out, in which case no plot is
// left placed and no star claims one.
func (s *Solver) SeedPlot() Plot {
	logger := s.logger().With("operation", "SeedPlot")
	s.start = s.now()
	s.resume = false
	s.Attempts = 0

	g := s.Galaxy
	s.stride = CoprimeFactor(s.StarFactor, len(g.Stars))
	if s.stride != s.StarFactor {
		logger.Warn("Star factor shares a divisor with the star count",
			"star_factor", s.StarFactor, "stars", len(g.Stars), "stride", s.stride)
	}
	for p := Plot(0); p < NumPlots; p++ {
		s.fixed[p] = g.Plots[p].At.Valid
		if ref := g.Plots[p].Star; s.fixed[p] && ref.Valid() {
			g.Stars[ref].Index = p
			s.Plotify(p)
		}
	}
	s.placed = g.Plots.Placed()
	s.best = s.placed

	for {
		s.Attempts++
		res := s.seed()
		switch res {
		case Success:
			logger.Debug("Plots seeded", "attempts", s.Attempts, "elapsed", s.now().Sub(s.start))
			return Success
		case Home:
			logger.Info("Seeding budget exhausted", "attempts", s.Attempts, "budget", s.Budget)
			s.clearAll()
			return Home
		}

		// the failing plot goes first next time
		g.Plots[res].Weight += int(MaxPlot)
		s.last, s.resume = res, true
		for p := Plot(0); p < NumPlots; p++ {
			if !s.fixed[p] {
				g.unplace(p)
			}
		}
		s.placed = g.Plots.Placed()
		logger.Debug("Retrying with heavier plot", "plot", res, "weight", g.Plots[res].Weight)
	}
}

func (s *Solver) clearAll() {
	g := s.Galaxy
	for p := range g.Plots {
		g.Plots[p].clear()
	}
	for i := range g.Stars {
		g.Stars[i].Index = NoPlot
	}
}

func (s *Solver) logger() *slog.Logger {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "starmap_solver")
}

func (s *Solver) commit() {
	s.placed++
	if s.placed > s.best {
		s.best = s.placed
		if s.Progress != nil {
			s.Progress(s.placed)
		}
	}
}

func (s *Solver) retract(p Plot) {
	s.Galaxy.unplace(p)
	s.placed--
}

// settle decides what a finished recursion means for p's loop. done
// reports that res must be returned as is.
func (s *Solver) settle(p, res Plot) (done bool) {
	switch res {
	case Success:
		s.Plotify(p)
		return true
	case Home:
		s.retract(p)
		return true
	}
	s.retract(p)
	return !s.related(p, res)
}

func (s *Solver) seed() Plot {
	if s.expired() {
		return Home
	}
	p := s.NextPlot()
	if p == NumPlots {
		return Success
	}
	s.last, s.resume = p, true

	if p == Arilou {
		return s.seedRift(p)
	}

	g := s.Galaxy
	n := len(g.Stars)
	if n == 0 {
		return p
	}
	r := int(s.RNG.Random() % uint32(n))
	for i := 0; i < n; i++ {
		slot := StarRef((r + i*s.stride) % n)
		if g.Stars[slot].Index != NoPlot {
			continue
		}
		g.place(p, slot)
		s.commit()
		if !s.consistent(p) {
			s.retract(p)
			continue
		}
		if res := s.seed(); s.settle(p, res) {
			return res
		}
	}
	return p
}

// seedRift places the rift at a free point of the map rather than on a
// star, walking the coarse grid in the same strided order.
func (s *Solver) seedRift(p Plot) Plot {
	g := s.Galaxy
	const cells = riftCells * riftCells
	r := int(s.RNG.Random() % cells)
	for i := 0; i < cells; i++ {
		cell := (r + i*riftCellStep) % cells
		rv := s.RNG.Random()
		at := Point{
			X: min(int32(cell%riftCells*riftCellSize)+int32(random.LoWord(rv)%riftCellSize), MaxX),
			Y: min(int32(cell/riftCells*riftCellSize)+int32(random.HiWord(rv)%riftCellSize), MaxY),
		}
		if near := g.FindNearestStar(at); near.Valid() && g.Stars[near].DistSq(at) < riftClearance*riftClearance {
			continue
		}

		g.Plots[p].At = Some(at)
		g.Plots[p].Star = NoStar
		s.commit()
		if !s.consistent(p) {
			s.retract(p)
			continue
		}
		if res := s.seed(); s.settle(p, res) {
			return res
		}
	}
	return p
}

// CoprimeFactor returns the smallest stride not below factor that is coprime
// with n, so stepping by it from any start visits each of n slots once.
func CoprimeFactor(factor, n int) int {
	if n <= 1 {
		return 1
	}
	factor = max(factor, 1)
	for gcd(factor, n) != 1 {
		factor++
	}
	return factor
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
