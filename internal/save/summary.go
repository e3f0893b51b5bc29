package save

import (
	"uqm-starseed/internal/gamestate"
)

// Device identifies an exclusive device shown in the save summary
type Device uint8

const (
	PortalSpawner Device = iota
	TalkingPet
	UtwigBomb
	SunEfficiency
	RosySphere
	AquaHelix
	ClearSpindle
	Ultron0
	Ultron1
	Ultron2
	Ultron3
	Maidens
	UmgahHyperwave
	BurvixHyperwave
	DataPlate1
	DataPlate2
	DataPlate3
	TaaloProtector
	EggCasing0
	EggCasing1
	EggCasing2
	SyreenShuttle
	VuxBeast
	DestructCode
	UrquanWarp
	Artifact2
	Artifact3
	LunarBase

	NumDevices
)

const samatraName = "Sa-Matra"

func flag(s *gamestate.State, name string) bool {
	return s.Get(name) != 0
}

// InventoryDevices lists the devices on board in enum order
func InventoryDevices(s *gamestate.State, max int) []Device {
	var out []Device
	for d := Device(0); d < NumDevices && len(out) < max; d++ {
		var have bool
		switch d {
		case PortalSpawner:
			have = flag(s, "PORTAL_SPAWNER_ON_SHIP")
		case TalkingPet:
			have = flag(s, "TALKING_PET_ON_SHIP")
		case UtwigBomb:
			have = flag(s, "UTWIG_BOMB_ON_SHIP")
		case SunEfficiency:
			have = flag(s, "SUN_DEVICE_ON_SHIP")
		case RosySphere:
			have = flag(s, "ROSY_SPHERE_ON_SHIP")
		case AquaHelix:
			have = flag(s, "AQUA_HELIX_ON_SHIP")
		case ClearSpindle:
			have = flag(s, "CLEAR_SPINDLE_ON_SHIP")
		case Ultron0, Ultron1, Ultron2, Ultron3:
			have = s.Get("ULTRON_CONDITION") == uint32(d-Ultron0)+1
		case Maidens:
			have = flag(s, "MAIDENS_ON_SHIP")
		case UmgahHyperwave:
			have = flag(s, "UMGAH_BROADCASTERS_ON_SHIP")
		case BurvixHyperwave:
			have = flag(s, "BURV_BROADCASTERS_ON_SHIP")
		case TaaloProtector:
			have = flag(s, "TAALO_PROTECTOR_ON_SHIP")
		case EggCasing0:
			have = flag(s, "EGG_CASE0_ON_SHIP")
		case EggCasing1:
			have = flag(s, "EGG_CASE1_ON_SHIP")
		case EggCasing2:
			have = flag(s, "EGG_CASE2_ON_SHIP")
		case SyreenShuttle:
			have = flag(s, "SYREEN_SHUTTLE_ON_SHIP")
		case VuxBeast:
			have = flag(s, "VUX_BEAST_ON_SHIP")
		case UrquanWarp:
			have = flag(s, "PORTAL_KEY_ON_SHIP")
		case Artifact2:
			have = flag(s, "WIMBLIS_TRIDENT_ON_SHIP")
		case Artifact3:
			have = flag(s, "GLOWING_ROD_ON_SHIP")
		case LunarBase:
			have = flag(s, "MOONBASE_ON_SHIP")
		}
		// data plates and the destruct code never show
		if have {
			out = append(out, d)
		}
	}
	return out
}

// landerFlags packs the lander upgrades into the summary flag byte
func landerFlags(s *gamestate.State) uint8 {
	f := uint8(s.Get("LANDER_SHIELDS"))
	if flag(s, "IMPROVED_LANDER_SPEED") {
		f |= 1 << 4
	}
	if flag(s, "IMPROVED_LANDER_CARGO") {
		f |= 1 << 5
	}
	if flag(s, "IMPROVED_LANDER_SHOT") {
		f |= 1 << 6
	}
	if s.Get("CHMMR_BOMB_STATE") >= 2 {
		f |= 1 << 7
	}
	return f
}

// PrepareSummary captures the load-menu view of the game. The SIS copy
// carries the resolved planet name so the live state stays untouched.
func (g *Game) PrepareSummary(name string) Summary {
	sum := Summary{SIS: g.SIS}

	act := g.Global.CurrentActivity.Base()
	switch act {
	case InHyperspace:
		if g.InQuasiSpace {
			act = InQuasispace
		}
	case InInterplanetary:
		if g.PlanetName != nil {
			sum.SIS.PlanetName = g.PlanetName()
		}
		switch {
		case g.State.Get("GLOBAL_FLAGS_AND_DATA") == 0xFF:
			act = InStarbase
		case g.InPlanetOrbit:
			act = InPlanetOrbit
		}
	case InLastBattle:
		sum.SIS.PlanetName = samatraName
	}
	sum.Activity = act

	sum.MCreditLo = uint8(g.State.Get("MELNORME_CREDIT0"))
	sum.MCreditHi = uint8(g.State.Get("MELNORME_CREDIT1"))

	for _, s := range g.BuiltShips {
		if int(sum.NumShips) == MaxBuiltShips {
			break
		}
		sum.ShipList[sum.NumShips] = uint8(s.Race)
		sum.NumShips++
	}

	for _, d := range InventoryDevices(g.State, MaxExclusiveDevices) {
		sum.DeviceList[sum.NumDevices] = uint8(d)
		sum.NumDevices++
	}

	sum.Flags = landerFlags(g.State)
	if g.Clock != nil {
		sum.Date = g.Clock.Now()
	}

	if len(name) >= SaveNameSize {
		name = name[:SaveNameSize-1]
	}
	sum.SaveName = name
	return sum
}
