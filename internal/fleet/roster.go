package fleet

import (
	"math"

	"uqm-starseed/internal/random"
	"uqm-starseed/internal/starmap"
)

func makeup(min, max uint8) uint8 { return max<<4 | min }

func strength(n int) uint16 { return uint16(n / SphereRadiusIncrement * 2) }

var center = starmap.Point{X: starmap.MaxX >> 1, Y: starmap.MaxY >> 1}

type template struct {
	crew, energy uint8
	strength     uint16
	loc          starmap.Point
	makeup       uint8
	percent      uint8
	homeworld    starmap.Plot
	home         starmap.Plot
}

const noPlot = starmap.NumPlots

var templates = [NumRaces]template{
	Arilou:      {6, 20, strength(250), starmap.Point{X: 438, Y: 6372}, makeup(1, 5), 2, noPlot, starmap.Arilou},
	Chmmr:       {42, 42, 0, starmap.Point{}, 0, 0, noPlot, starmap.Chmmr},
	Human:       {18, 18, 0, starmap.Point{X: 1752, Y: 1450}, 0, 0, noPlot, starmap.Sol},
	Orz:         {16, 20, strength(333), starmap.Point{X: 3608, Y: 2637}, makeup(1, 5), 20, starmap.Orz, starmap.Orz},
	Pkunk:       {8, 12, strength(666), starmap.Point{X: 502, Y: 401}, makeup(1, 5), 20, starmap.Pkunk, starmap.Pkunk},
	Shofixti:    {6, 4, 0, starmap.Point{}, 0, 0, noPlot, starmap.Shofixti},
	Spathi:      {30, 10, strength(1000), starmap.Point{X: 2549, Y: 3600}, makeup(1, 5), 10, starmap.Spathi, starmap.Spathi},
	Supox:       {12, 16, strength(333), starmap.Point{X: 7468, Y: 9246}, makeup(1, 5), 20, starmap.Supox, starmap.Supox},
	Thraddash:   {8, 24, strength(833), starmap.Point{X: 2535, Y: 8358}, makeup(1, 5), 20, starmap.Thradd, starmap.Thradd},
	Utwig:       {20, 20, strength(666), starmap.Point{X: 8534, Y: 8797}, makeup(1, 5), 20, starmap.Utwig, starmap.Utwig},
	Vux:         {20, 40, strength(900), starmap.Point{X: 4412, Y: 1558}, makeup(1, 5), 20, starmap.Vux, starmap.Vux},
	Yehat:       {20, 10, strength(750), starmap.Point{X: 4970, Y: 40}, makeup(1, 5), 40, starmap.Yehat, starmap.Yehat},
	Melnorme:    {20, 42, InfiniteRadius, center, makeup(1, 1), 0, noPlot, starmap.Melnorme1},
	Druuge:      {14, 32, strength(1400), starmap.Point{X: 9500, Y: 2792}, makeup(1, 5), 20, starmap.Druuge, starmap.Druuge},
	Ilwrath:     {22, 16, strength(1410), starmap.Point{X: 48, Y: 1700}, makeup(1, 5), 60, starmap.Ilwrath, starmap.Ilwrath},
	Mycon:       {20, 40, strength(1070), starmap.Point{X: 6392, Y: 2200}, makeup(1, 5), 20, starmap.Mycon, starmap.Mycon},
	Slylandro:   {12, 20, InfiniteRadius, starmap.Point{X: 333, Y: 9812}, makeup(1, 1), 5, noPlot, starmap.Slylandro},
	Umgah:       {10, 30, strength(833), starmap.Point{X: 1798, Y: 6000}, makeup(1, 5), 20, starmap.Umgah, starmap.Umgah},
	Urquan:      {42, 42, strength(2666), starmap.Point{X: 5750, Y: 6000}, makeup(1, 5), 40, noPlot, starmap.Samatra},
	ZoqFotPik:   {10, 10, strength(320), starmap.Point{X: 3761, Y: 5333}, makeup(1, 5), 0, starmap.ZoqFot, starmap.ZoqFot},
	Syreen:      {12, 16, 0, starmap.Point{}, 0, 0, noPlot, starmap.Syreen},
	BlackUrquan: {42, 42, strength(2666), starmap.Point{X: 6000, Y: 6250}, makeup(1, 5), 40, noPlot, starmap.Samatra},
	YehatRebel:  {20, 10, strength(750), starmap.Point{X: 4970, Y: 40}, makeup(1, 5), 40, noPlot, starmap.Yehat},
	UrquanDrone: {42, 42, 0, starmap.Point{}, 0, 0, noPlot, noPlot},
	Androsynth:  {20, 24, InfiniteRadius, center, 0, 0, noPlot, starmap.Androsynth},
	Chenjesu:    {36, 30, 0, starmap.Point{}, 0, 0, noPlot, starmap.Chmmr},
	Mmrnmhrm:    {20, 10, 0, starmap.Point{}, 0, 0, noPlot, starmap.MotherArk},
}

// Roster is the table of race fleets indexed by Race
type Roster []FleetInfo

// DefaultRoster returns the fleets as they stand at the start of a game
func DefaultRoster() Roster {
	r := make(Roster, NumRaces)
	for i, t := range templates {
		f := &r[i]
		f.Race = Race(i)
		f.AlliedState = BadGuy
		f.CrewLevel = uint16(t.crew)
		f.MaxCrew = uint16(t.crew)
		f.MaxEnergy = t.energy
		f.ActualStrength = t.strength
		f.KnownLoc = t.loc
		f.Loc = t.loc
		f.GrowthErrTerm = 255 >> 1
		f.FuncIndex = NoFunction
		f.MeleeIcon = uint8(i)
		f.EncounterMakeup = t.makeup
		f.EncounterPercent = t.percent
		f.Homeworld = t.homeworld
		f.HasHomeworld = t.homeworld != noPlot
		f.HomePlot = t.home
	}
	r[YehatRebel].ActualStrength = 0
	return r
}

// Get returns the fleet of a race, or nil for an unknown race
func (r Roster) Get(race Race) *FleetInfo {
	if int(race) >= len(r) {
		return nil
	}
	return &r[race]
}

// Clone builds a fresh ship from the race template and picks a captain
// name not already used by the same race in queue. A zero crew takes the
// template crew.
func (r Roster) Clone(rng *random.Context, queue []ShipFragment, race Race, crew uint16) (ShipFragment, bool) {
	t := r.Get(race)
	if t == nil {
		return ShipFragment{}, false
	}

	frag := ShipFragment{
		Race:      race,
		CrewLevel: t.CrewLevel,
		MaxCrew:   t.MaxCrew,
		MaxEnergy: t.MaxEnergy,
	}
	if crew != 0 {
		frag.CrewLevel = crew
	}
	if race != Samatra {
		frag.CaptainIndex = nameCaptain(rng, queue, race)
	}
	return frag, true
}

func nameCaptain(rng *random.Context, queue []ShipFragment, race Race) uint8 {
	used := 0
	for _, s := range queue {
		if s.Race == race {
			used++
		}
	}
	for {
		name := uint8(rng.Random() % NumCaptainNames)
		// every name is taken; duplicates are unavoidable
		if used >= NumCaptainNames {
			return name
		}
		taken := false
		for _, s := range queue {
			if s.Race == race && s.CaptainIndex == name {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
	}
}

// SeedFleets moves every race's sphere of influence next to its home plot
// in a seeded galaxy. Races whose home plot is not placed keep their
// template location.
func (r Roster) SeedFleets(plots PlotLocator) {
	for i := range r {
		f := &r[i]
		if f.HomePlot == noPlot || f.Race == YehatRebel {
			continue
		}
		loc, ok := seedLocation(f, plots)
		if !ok {
			continue
		}
		f.KnownLoc = loc
		f.Loc = loc
	}
}

func starSeed(p starmap.Point) uint32 {
	return uint32(uint16(p.X)) | uint32(uint16(p.Y))<<16
}

// jitter leans towards small offsets: the square root of a uniform value
// is mostly near its maximum
func jitter(str uint16, v uint16) int32 {
	return int32(int(str) * (SphereRadiusIncrement / 2) * (255 - int(math.Sqrt(float64(v)))) / 256 * 2 / 3)
}

func sign(b bool) int32 {
	if b {
		return 1
	}
	return -1
}

func seedLocation(f *FleetInfo, plots PlotLocator) (starmap.Point, bool) {
	home, ok := plots.PlotPoint(f.HomePlot)
	if !ok {
		return starmap.Point{}, false
	}

	rng := random.New(starSeed(home))
	rx := uint16(rng.Random())
	ry := uint16(rng.Random())

	half := func(v uint16) int32 { return sign(v%2 != 0) }
	fifthX := sign(uint32(rx)*uint32(ry)%10 != 0)
	fifthY := sign((uint32(rx)+uint32(ry))%5 != 0)

	// toward and away take the other plot's coordinates; a missing plot
	// collapses to the home point
	at := func(p starmap.Plot) starmap.Point {
		pt, ok := plots.PlotPoint(p)
		if !ok {
			return home
		}
		return pt
	}
	toward := func(p starmap.Plot) (int32, int32) {
		o := at(p)
		return sign(home.X < o.X), sign(home.Y < o.Y)
	}
	away := func(p starmap.Plot) (int32, int32) {
		o := at(p)
		return sign(home.X > o.X), sign(home.Y > o.Y)
	}
	str := f.ActualStrength
	jx, jy := jitter(str, rx), jitter(str, ry)

	loc := home
	switch f.Race {
	case Arilou:
	case Chmmr:
		tx, ty := toward(starmap.MotherArk)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Orz:
		tx, ty := toward(starmap.TaaloProtector)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Pkunk:
		ax, ay := away(starmap.Ilwrath)
		loc = starmap.Point{X: home.X + ax*fifthX*jx, Y: home.Y + ay*fifthY*jy}
	case Shofixti:
		tx, ty := toward(starmap.Yehat)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Supox:
		tx, ty := toward(starmap.Utwig)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Thraddash:
		tx, ty := toward(starmap.AquaHelix)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Utwig:
		tx, ty := toward(starmap.Supox)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Yehat:
		tx, ty := toward(starmap.Shofixti)
		loc = starmap.Point{X: home.X + tx*fifthX*jx, Y: home.Y + ty*fifthY*jy}
	case Melnorme, Slylandro, Androsynth:
		// infinite spheres never move
		return f.KnownLoc, true
	case Ilwrath:
		target := at(starmap.Pkunk)
		visit := random.New(starSeed(target))
		rx += uint16(visit.Random() % 2)
		ry += uint16(visit.Random() % 2)
		jx, jy = jitter(str, rx), jitter(str, ry)
		w := warpath(target, home, 1400)
		tx, ty := toward(starmap.Pkunk)
		loc = starmap.Point{X: w.X + tx*jx, Y: w.Y + ty*jy}
	case Mycon:
		sun, e0, e1, e2 := at(starmap.SunDevice), at(starmap.EggCase0), at(starmap.EggCase1), at(starmap.EggCase2)
		dx := sign(home.X*2 < sun.X+e2.X/2+e1.X/3+e0.X/6)
		dy := sign(home.Y*2 < sun.Y+e2.Y/2+e1.Y/3+e0.Y/6)
		loc = starmap.Point{X: home.X + dx*jx, Y: home.Y + dy*jy}
	case Urquan:
		loc = starmap.Point{X: home.X + half(ry)*jx/2, Y: home.Y + half(rx) + jy/2}
	case BlackUrquan:
		loc = starmap.Point{X: home.X - half(rx)*jitter(str, ry)/2, Y: home.Y + half(ry) + jitter(str, rx)/2}
	case ZoqFotPik:
		ax, ay := away(starmap.Samatra)
		full := int32(int(f.ActualStrength) * SphereRadiusIncrement / 2)
		loc = starmap.Point{X: home.X + ax*(full-jx)/2, Y: home.Y + ay*(full-jy)/2}
	case Mmrnmhrm:
		loc = starmap.Point{X: home.X + half(rx)*jitter(str, ry), Y: home.Y + half(ry)*jitter(str, rx)}
	default:
		loc = starmap.Point{X: home.X + half(rx)*jx, Y: home.Y + half(ry)*jy}
	}

	return clampUniverse(loc), true
}

// warpath is the point dist units from target in the direction of home
func warpath(target, home starmap.Point, dist float64) starmap.Point {
	dx := float64(home.X - target.X)
	dy := float64(home.Y - target.Y)
	d := math.Sqrt(dx*dx + dy*dy)
	if d == 0 {
		return target
	}
	return starmap.Point{
		X: target.X + int32(dist*dx/d),
		Y: target.Y + int32(dist*dy/d),
	}
}

func clampUniverse(p starmap.Point) starmap.Point {
	p.X = min(max(p.X, 0), starmap.MaxX-1)
	p.Y = min(max(p.Y, 0), starmap.MaxY-1)
	return p
}
