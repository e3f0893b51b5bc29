// Package save composes and parses the chunked save-file format
package save

import (
	"log/slog"

	"uqm-starseed/internal/clock"
	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/gamestate"
	"uqm-starseed/internal/grpinfo"
	"uqm-starseed/internal/random"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"
)

// Chunk tags
const (
	SaveFileTag    uint32 = 0x01534d55
	SummaryTag     uint32 = 0x6d6d7553
	GlobalStateTag uint32 = 0x74536c47
	GameStateTag   uint32 = 0x74536d47
	EventsTag      uint32 = 0x73747645
	EncountersTag  uint32 = 0x74636e45
	RaceQTag       uint32 = 0x51636152
	IPGroupQTag    uint32 = 0x51704749
	NPCShipQTag    uint32 = 0x5163704e
	ShipQTag       uint32 = 0x51706853
	StarTag        uint32 = 0x72617453
	ScanTag        uint32 = 0x6e616353
	BattleGroupTag uint32 = 0x70477442
	GroupListTag   uint32 = 0x73707247
)

const (
	NumModuleSlots       = 16
	NumDriveSlots        = 11
	NumJetSlots          = 8
	NumElementCategories = 8
	NumModules           = 20
	SISNameSize          = 16
	MaxBuiltShips        = 12
	MaxExclusiveDevices  = 12
	SaveNameSize         = 64
	MaxHyperShips        = 7
	FuelCostRU           = 20

	summarySize     = 160
	globalStateSize = 75
	shipEntrySize   = 11
	raceEntrySize   = 30
	ipEntrySize     = 13
	listEntrySize   = 14
	encounterSize   = 65
	eventSize       = 5
	starDescSize    = 8
)

// Activity is the current-activity word: the low byte names the activity,
// the high byte carries transition flags.
type Activity uint16

const (
	SuperMelee Activity = iota
	InLastBattle
	InEncounter
	InHyperspace
	InInterplanetary
	WonLastBattle
	// summary-only activities
	InQuasispace
	InPlanetOrbit
	InStarbase
)

const (
	CheckPause          Activity = 1 << 8
	InBattle            Activity = 1 << 9
	StartEncounter      Activity = 1 << 10
	StartInterplanetary Activity = 1 << 11
	CheckLoad           Activity = 1 << 12
	CheckRestart        Activity = 1 << 13
	CheckAbort          Activity = 1 << 14
)

func (a Activity) Base() Activity { return a & 0xFF }

func (a Activity) Has(flag Activity) bool { return a&flag != 0 }

// SISState is the flagship: position, cargo, fittings and names
type SISState struct {
	LogX, LogY       int32
	ResUnits         uint32
	FuelOnBoard      uint32
	CrewEnlisted     uint16
	TotalElementMass uint16
	TotalBioMass     uint16
	ModuleSlots      [NumModuleSlots]uint8
	DriveSlots       [NumDriveSlots]uint8
	JetSlots         [NumJetSlots]uint8
	NumLanders       uint8
	ElementAmounts   [NumElementCategories]uint16
	ShipName         string
	CommanderName    string
	PlanetName       string
	// Seed is the starmap seed the game was started with
	Seed uint32
}

type Extent struct {
	Width, Height int16
}

type Velocity struct {
	TravelAngle uint16
	Vector      Extent
	Fract       Extent
	Error       Extent
	Incr        Extent
}

type Point16 struct {
	X, Y int16
}

// GlobalState is the fixed-size part of the global game state
type GlobalState struct {
	GlobFlags       uint8
	CrewCost        uint8
	FuelCost        uint8
	ModuleCost      [NumModules]uint8
	ElementWorth    [NumElementCategories]uint8
	CurrentActivity Activity
	Autopilot       Point16
	IPLocation      Point16
	ShipOrigin      Point16
	ShipFacing      uint16
	IPPlanet        uint8
	InOrbit         uint8
	Velocity        Velocity
}

// DefaultGlobalState carries the costs of a new game
func DefaultGlobalState() GlobalState {
	return GlobalState{
		CrewCost: 3,
		FuelCost: FuelCostRU,
		ModuleCost: [NumModules]uint8{
			1000 / 40, 2500 / 40, 500 / 40, 500 / 40, 4000 / 40, 1500 / 40,
			2000 / 40, 1000 / 40, 2000 / 40, 3000 / 40, 4000 / 40,
			2000 / 40, 3000 / 40, 4000 / 40, 5000 / 40, 6000 / 40, 7000 / 40,
			8000 / 40, 9000 / 40, 10000 / 40,
		},
		ElementWorth: [NumElementCategories]uint8{1, 2, 3, 4, 5, 6, 8, 16},
	}
}

type BriefShip struct {
	Race      uint8
	CrewLevel uint16
	MaxCrew   uint16
	MaxEnergy uint8
}

// Encounter is a hyperspace encounter globe
type Encounter struct {
	TransitionState int16
	Origin          Point16
	Radius          uint16
	Loc             Point16
	Race            uint8
	NumShips        uint8
	Flags           uint8
	Ships           [MaxHyperShips]BriefShip
	LogX, LogY      int32
}

// Summary is what the load menu shows without loading the game
type Summary struct {
	SIS        SISState
	Activity   Activity
	Flags      uint8
	Date       clock.Date
	MCreditLo  uint8
	MCreditHi  uint8
	NumShips   uint8
	NumDevices uint8
	ShipList   [MaxBuiltShips]uint8
	DeviceList [MaxExclusiveDevices]uint8
	SaveName   string
}

// Credits is the Melnorme credit balance
func (s *Summary) Credits() uint16 {
	return uint16(s.MCreditHi)<<8 | uint16(s.MCreditLo)
}

// Game is everything a save captures. The pointers are owned by the
// session; Load mutates them in place.
type Game struct {
	SIS    SISState
	Global GlobalState
	Clock  *clock.Clock
	State  *gamestate.State
	Roster fleet.Roster
	Groups *grpinfo.Manager
	Files  *statefile.Store
	RNG    *random.Context

	BuiltShips []fleet.ShipFragment
	Encounters []Encounter
	// Star is the current star descriptor, nil outside any system
	Star *starmap.Star

	// Summary helpers; PlanetName may be nil
	PlanetName    func() string
	InQuasiSpace  bool
	InPlanetOrbit bool

	// NextActivity is the activity a loaded game resumes with
	NextActivity Activity

	Logger *slog.Logger
}
