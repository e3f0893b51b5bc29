package starmap

import (
	"fmt"
	"strings"
)

// Universe bounds in hyperspace units
const (
	MaxX = 9999
	MaxY = 9999

	NumSolarSystems = 502
	NumVortices     = 15
	NumPortals      = NumVortices + 1
)

type Point struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

// DistSq is the squared distance between two points
func (p Point) DistSq(o Point) int64 {
	dx := int64(p.X - o.X)
	dy := int64(p.Y - o.Y)
	return dx*dx + dy*dy
}

// OptPoint is a coordinate that may be unassigned
type OptPoint struct {
	Point
	Valid bool
}

func Some(p Point) OptPoint { return OptPoint{Point: p, Valid: true} }

// Sentinel returns the raw on-disk encoding of an unassigned point
func (o OptPoint) Sentinel() Point {
	if !o.Valid {
		return Point{X: -1, Y: -1}
	}
	return o.Point
}

// StarRef is a weak index into Galaxy.Stars; NoStar when unset
type StarRef int

const NoStar StarRef = -1

func (r StarRef) Valid() bool { return r >= 0 }

// Star sizes and colors packed into Star.Type
const (
	DwarfStar uint8 = iota
	GiantStar
	SuperGiantStar
	numStarSizes
)

const (
	BlueBody uint8 = iota
	GreenBody
	OrangeBody
	RedBody
	WhiteBody
	YellowBody
	numStarColors
)

const (
	starOwnerMask  = 0x07
	starTypeShift  = 3
	starColorShift = 5
	starTypeMask   = 0x18
	starColorMask  = 0xE0
)

func MakeStar(size, color, owner uint8) uint8 {
	return (size<<starTypeShift)&starTypeMask |
		(color<<starColorShift)&starColorMask |
		owner&starOwnerMask
}

type Star struct {
	Point   `yaml:",inline"`
	Type    uint8 `json:"type" yaml:"type"`
	Index   Plot  `json:"plot" yaml:"plot"`
	Prefix  uint8 `json:"prefix" yaml:"prefix"`
	Postfix uint8 `json:"postfix" yaml:"postfix"`
}

func (s Star) Size() uint8  { return (s.Type & starTypeMask) >> starTypeShift }
func (s Star) Color() uint8 { return (s.Type & starColorMask) >> starColorShift }
func (s Star) Owner() uint8 { return s.Type & starOwnerMask }

// HasPlot reports whether a plot occupies the star
func (s Star) HasPlot() bool { return s.Index != NoPlot }

// Plot identifies a narratively significant location. The zero value is
// both the Arilou rift and, in Star.Index, the "no plot" marker; the rift
// never occupies a star slot so the two never collide.
type Plot uint8

const (
	Arilou Plot = iota
	Sol
	Shofixti
	Maidens
	StartColony
	Spathi
	ZoqFot
	Melnorme0
	Melnorme1
	Melnorme2
	Melnorme3
	Melnorme4
	Melnorme5
	Melnorme6
	Melnorme7
	Melnorme8
	TalkingPet
	Chmmr
	Syreen
	Burvixese
	Slylandro
	Druuge
	Bomb
	AquaHelix
	SunDevice
	TaaloProtector
	ShipVault
	UrquanWreck
	VuxBeast
	Samatra
	ZoqScout
	Mycon
	EggCase0
	EggCase1
	EggCase2
	Pkunk
	Utwig
	Supox
	Yehat
	Vux
	Orz
	Thradd
	Rainbow0
	Rainbow1
	Rainbow2
	Rainbow3
	Rainbow4
	Rainbow5
	Rainbow6
	Rainbow7
	Rainbow8
	Rainbow9
	Ilwrath
	Androsynth
	MyconTrap
	Urquan0
	Urquan1
	Urquan2
	Kohrah0
	Kohrah1
	Kohrah2
	DestroyedStarbase
	MotherArk
	ZoqColony0
	ZoqColony1
	ZoqColony2
	ZoqColony3
	Algolites
	SpathiMonument
	ExcavationSite

	// NumPlots doubles as the success result of a seeding run
	NumPlots
	// Home is the timeout result of a seeding run
	Home = NumPlots + 1

	NoPlot  Plot = 0
	Umgah        = TalkingPet
	Success      = NumPlots
)

var plotNames = [NumPlots]string{
	"arilou", "sol", "shofixti", "maidens", "start_colony", "spathi", "zoqfot",
	"melnorme0", "melnorme1", "melnorme2", "melnorme3", "melnorme4",
	"melnorme5", "melnorme6", "melnorme7", "melnorme8",
	"talking_pet", "chmmr", "syreen", "burvixese", "slylandro", "druuge",
	"bomb", "aqua_helix", "sun_device", "taalo_protector", "ship_vault",
	"urquan_wreck", "vux_beast", "samatra", "zoq_scout", "mycon",
	"egg_case0", "egg_case1", "egg_case2", "pkunk", "utwig", "supox",
	"yehat", "vux", "orz", "thradd",
	"rainbow0", "rainbow1", "rainbow2", "rainbow3", "rainbow4",
	"rainbow5", "rainbow6", "rainbow7", "rainbow8", "rainbow9",
	"ilwrath", "androsynth", "mycon_trap",
	"urquan0", "urquan1", "urquan2", "kohrah0", "kohrah1", "kohrah2",
	"destroyed_starbase", "mother_ark",
	"zoq_colony0", "zoq_colony1", "zoq_colony2", "zoq_colony3",
	"algolites", "spathi_monument", "excavation_site",
}

func (p Plot) String() string {
	switch {
	case p < NumPlots:
		return plotNames[p]
	case p == Home:
		return "timeout"
	}
	return fmt.Sprintf("plot(%d)", uint8(p))
}

// ParsePlot accepts the identifiers produced by Plot.String
func ParsePlot(s string) (Plot, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range plotNames {
		if name == s {
			return Plot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown plot %q", s)
}

func (p Plot) IsMelnorme() bool { return p >= Melnorme0 && p <= Melnorme8 }

func (p Plot) IsRainbow() bool { return p >= Rainbow0 && p <= Rainbow9 }

// Constraint bounds the distance between two plots. Distances are stored
// unsquared and compared squared.
type Constraint struct {
	Min int32 `json:"min" yaml:"min"`
	Max int32 `json:"max" yaml:"max"`
}

// Bound reports whether the constraint restricts placement at all
func (c Constraint) Bound() bool {
	return c.Min > MinPlot || c.Max < MaxPlot
}

// Weight is the priority a constraint contributes to both of its plots
func (c Constraint) Weight() int {
	if !c.Bound() {
		return 0
	}
	return int(c.Min) + int(MaxPlot-c.Max)
}

type PlotLocation struct {
	At     OptPoint
	Star   StarRef
	Weight int
	Dist   [NumPlots]Constraint
}

func (pl *PlotLocation) clear() {
	pl.At = OptPoint{}
	pl.Star = NoStar
}

type Portal struct {
	Hyper Point   `json:"hyper"`
	Quasi Point   `json:"quasi"`
	Star  StarRef `json:"star"`
}

// Galaxy is the complete output of a seeding run
type Galaxy struct {
	Seed    uint32
	Type    string
	Stars   []Star
	Plots   Graph
	Portals [NumPortals]Portal
}

// StarAt returns the star occupied by a plot
func (g *Galaxy) StarAt(p Plot) (*Star, bool) {
	ref := g.Plots[p].Star
	if !ref.Valid() || int(ref) >= len(g.Stars) {
		return nil, false
	}
	return &g.Stars[ref], true
}

// PlotPoint implements the fleet plot locator
func (g *Galaxy) PlotPoint(p Plot) (Point, bool) {
	if p >= NumPlots || !g.Plots[p].At.Valid {
		return Point{}, false
	}
	return g.Plots[p].At.Point, true
}

// Clone deep copies the galaxy
func (g *Galaxy) Clone() *Galaxy {
	c := *g
	c.Stars = append([]Star(nil), g.Stars...)
	return &c
}

// FindNearestStar returns the star closest to p
func (g *Galaxy) FindNearestStar(p Point) StarRef {
	best := NoStar
	var bestD int64
	for i := range g.Stars {
		d := g.Stars[i].DistSq(p)
		if best == NoStar || d < bestD {
			best, bestD = StarRef(i), d
		}
	}
	return best
}

// FindNearestConstellation only considers stars carrying a Greek prefix
func (g *Galaxy) FindNearestConstellation(p Point) StarRef {
	best := NoStar
	var bestD int64
	for i := range g.Stars {
		if g.Stars[i].Prefix == 0 {
			continue
		}
		d := g.Stars[i].DistSq(p)
		if best == NoStar || d < bestD {
			best, bestD = StarRef(i), d
		}
	}
	return best
}
