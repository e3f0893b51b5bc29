package fleet

import "uqm-starseed/internal/starmap"

// Race is the ship/race index used by every queue and persisted record
type Race uint8

const (
	Arilou Race = iota
	Chmmr
	Human
	Orz
	Pkunk
	Shofixti
	Spathi
	Supox
	Thraddash
	Utwig
	Vux
	Yehat
	Melnorme
	Druuge
	Ilwrath
	Mycon
	Slylandro
	Umgah
	Urquan
	ZoqFotPik
	Syreen
	BlackUrquan
	YehatRebel
	UrquanDrone

	// NumAvailableRaces is the number of races that can be encountered
	NumAvailableRaces

	Samatra = UrquanDrone
)

// Extinct species kept for the war-era map
const (
	Androsynth Race = NumAvailableRaces + iota
	Chenjesu
	Mmrnmhrm

	NumRaces
)

var raceNames = [NumRaces]string{
	"arilou", "chmmr", "human", "orz", "pkunk", "shofixti", "spathi",
	"supox", "thraddash", "utwig", "vux", "yehat", "melnorme", "druuge",
	"ilwrath", "mycon", "slylandro", "umgah", "urquan", "zoqfotpik",
	"syreen", "black_urquan", "yehat_rebel", "urquan_drone",
	"androsynth", "chenjesu", "mmrnmhrm",
}

func (r Race) String() string {
	if r < NumRaces {
		return raceNames[r]
	}
	return "unknown"
}

// Allied states
const (
	DeadGuy uint16 = iota
	GoodGuy
	BadGuy
	CanBuild
)

const (
	MaxCrewSize           = 42
	MaxEnergySize         = 42
	SphereRadiusIncrement = 11
	InfiniteRadius        = 0xFFFF
	NumCaptainNames       = 16
	NoFunction            = 0xFF
)

// ShipFragment is one ship of a queue or a persisted battle group
type ShipFragment struct {
	Race         Race   `json:"race"`
	CaptainIndex uint8  `json:"captain"`
	Index        uint8  `json:"index"`
	CrewLevel    uint16 `json:"crew"`
	MaxCrew      uint16 `json:"max_crew"`
	EnergyLevel  uint8  `json:"energy"`
	MaxEnergy    uint8  `json:"max_energy"`
}

// FleetInfo is the per-race template and sphere-of-influence tracker. The
// fields after DestLoc are static race data and are not saved.
type FleetInfo struct {
	Race           Race
	AlliedState    uint16
	DaysLeft       uint8
	GrowthFract    uint8
	CrewLevel      uint16
	MaxCrew        uint16
	Growth         uint8
	MaxEnergy      uint8
	Loc            starmap.Point
	ActualStrength uint16
	KnownStrength  uint16
	KnownLoc       starmap.Point
	GrowthErrTerm  uint8
	FuncIndex      uint8
	DestLoc        starmap.Point

	MeleeIcon uint8
	// EncounterMakeup packs the guaranteed ship count in the low nibble
	// and the maximum in the high nibble
	EncounterMakeup  uint8
	EncounterPercent uint8
	Homeworld        starmap.Plot
	HasHomeworld     bool
	HomePlot         starmap.Plot
}

// SphereRadius is the encounter radius in universe units; ok is false when
// the race has no sphere of influence.
func (f *FleetInfo) SphereRadius() (radius int, ok bool) {
	switch f.ActualStrength {
	case 0:
		return 0, false
	case InfiniteRadius:
		return (starmap.MaxX + 1) << 1, true
	}
	return int(f.ActualStrength) * SphereRadiusIncrement >> 1, true
}

// MinShips and MaxShips decode EncounterMakeup
func (f *FleetInfo) MinShips() int { return int(f.EncounterMakeup & 0x0F) }
func (f *FleetInfo) MaxShips() int { return int(f.EncounterMakeup >> 4) }

// PlotLocator resolves plot coordinates of a seeded galaxy
type PlotLocator interface {
	PlotPoint(p starmap.Plot) (starmap.Point, bool)
}
