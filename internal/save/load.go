package save

import (
	"errors"
	"fmt"
	"io"
	"os"

	"uqm-starseed/internal/clock"
	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/grpinfo"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"
)

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

// ReadSummary reads only the summary at the head of a save
func ReadSummary(r io.Reader) (Summary, error) {
	return readSummary(NewReader(r))
}

// ReadSummaryFile is ReadSummary on a file path
func ReadSummaryFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()
	return ReadSummary(f)
}

func readSummary(r *Reader) (Summary, error) {
	var s Summary
	if tag := r.U32(); r.Err() != nil || tag != SaveFileTag {
		return s, ErrNotSaveFile
	}
	tag, size, ok := r.NextChunk()
	if !ok || tag != SummaryTag {
		return s, corrupt("summary chunk missing")
	}
	if size < summarySize {
		return s, corrupt("summary chunk too small (%d bytes)", size)
	}

	readSIS(r, &s.SIS)
	s.Activity = Activity(r.U8())
	s.Flags = r.U8()
	s.Date.Day = r.U8()
	s.Date.Month = r.U8()
	s.Date.Year = r.U16()
	s.MCreditLo = r.U8()
	s.MCreditHi = r.U8()
	s.NumShips = r.U8()
	s.NumDevices = r.U8()
	r.A8(s.ShipList[:])
	r.A8(s.DeviceList[:])

	nameSize := int64(size) - summarySize
	keep := min(nameSize, SaveNameSize-1)
	name := make([]byte, keep)
	r.A8(name)
	r.Skip(nameSize - keep)
	s.SaveName = string(name)

	if err := r.Err(); err != nil {
		return s, corrupt("summary: %v", err)
	}
	return s, nil
}

func readSIS(r *Reader, s *SISState) {
	s.LogX = r.S32()
	s.LogY = r.S32()
	s.ResUnits = r.U32()
	s.FuelOnBoard = r.U32()
	s.CrewEnlisted = r.U16()
	s.TotalElementMass = r.U16()
	s.TotalBioMass = r.U16()
	r.A8(s.ModuleSlots[:])
	r.A8(s.DriveSlots[:])
	r.A8(s.JetSlots[:])
	s.NumLanders = r.U8()
	r.A16(s.ElementAmounts[:])
	s.ShipName = r.Str(SISNameSize)
	s.CommanderName = r.Str(SISNameSize)
	s.PlanetName = r.Str(SISNameSize)
	s.Seed = r.U32()
}

// Load replaces the game with the save read from r. Missing queue chunks
// leave their queues empty; unknown chunks are skipped.
func Load(r io.Reader, g *Game) error {
	logger := g.log().With("operation", "Load")
	sr := NewReader(r)

	sum, err := readSummary(sr)
	if err != nil {
		return err
	}
	g.SIS = sum.SIS

	g.Clock.Events.Clear()
	g.Encounters = nil
	g.BuiltShips = nil
	if g.Groups != nil {
		g.Groups.IPGroups = nil
		g.Groups.NPCShips = nil
	}
	prev := g.Global.CurrentActivity

	if err := readGlobalState(sr, g); err != nil {
		return err
	}
	if err := readGameState(sr, g); err != nil {
		return err
	}

	g.NextActivity = g.Global.CurrentActivity
	g.Global.CurrentActivity = prev

	groupsReset := false
	for {
		tag, size, ok := sr.NextChunk()
		if !ok {
			if err := sr.Err(); err != nil {
				return corrupt("chunk header: %v", err)
			}
			break
		}
		n := int64(size)

		switch tag {
		case RaceQTag:
			readRaceQueue(sr, n, g.Roster)
		case ShipQTag:
			g.BuiltShips = readShipQueue(sr, n, g, g.BuiltShips)
		case NPCShipQTag:
			if g.Groups == nil {
				sr.Skip(n)
				break
			}
			g.Groups.NPCShips = readShipQueue(sr, n, g, g.Groups.NPCShips)
		case IPGroupQTag:
			if g.Groups == nil {
				sr.Skip(n)
				break
			}
			readIPGroupQueue(sr, n, g)
		case EventsTag:
			readEvents(sr, n, g.Clock)
		case EncountersTag:
			g.Encounters = readEncounters(sr, n)
		case ScanTag:
			if err := readScanInfo(sr, n, g.Files); err != nil {
				return err
			}
		case StarTag:
			g.Star = readStar(sr, n)
		case GroupListTag, BattleGroupTag:
			if g.Groups == nil {
				logger.Warn("Group chunk without a group manager", "tag", fmt.Sprintf("%08x", tag))
				sr.Skip(n)
				break
			}
			if !groupsReset {
				if err := g.Groups.InitGroupInfo(true); err != nil {
					return err
				}
				g.Groups.BattleGroupRef = grpinfo.RandomGroups
				groupsReset = true
			}
			if tag == GroupListTag {
				err = loadGroupList(sr, n, g)
			} else {
				err = loadBattleGroup(sr, n, g)
			}
			switch {
			case errors.Is(err, statefile.ErrNoSpace):
				return err
			case err != nil:
				return corrupt("group chunk: %v", err)
			}
		default:
			logger.Warn("Skipping unknown chunk", "tag", fmt.Sprintf("%08x", tag), "size", size)
			sr.Skip(n)
		}

		if err := sr.Err(); err != nil {
			return corrupt("chunk %08x: %v", tag, err)
		}
	}

	if !g.NextActivity.Has(StartEncounter) && g.NextActivity.Base() == InInterplanetary {
		g.NextActivity |= StartInterplanetary
	}
	return nil
}

// LoadFile is Load on a file path
func LoadFile(path string, g *Game) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(f, g)
}

func readPoint(r *Reader) Point16 {
	return Point16{X: r.S16(), Y: r.S16()}
}

func readExtent(r *Reader) Extent {
	return Extent{Width: r.S16(), Height: r.S16()}
}

func readGlobalState(r *Reader, g *Game) error {
	tag, size, ok := r.NextChunk()
	if !ok || tag != GlobalStateTag {
		return corrupt("global state chunk missing")
	}
	if size != globalStateSize {
		return corrupt("global state is %d bytes", size)
	}

	var gs GlobalState
	gs.GlobFlags = r.U8()
	gs.CrewCost = r.U8()
	gs.FuelCost = r.U8()
	r.A8(gs.ModuleCost[:])
	r.A8(gs.ElementWorth[:])
	gs.CurrentActivity = Activity(r.U16())

	var d clock.Date
	d.Day = r.U8()
	d.Month = r.U8()
	d.Year = r.U16()
	tick := int16(r.U16())
	dayTicks := int16(r.U16())

	gs.Autopilot = readPoint(r)
	gs.IPLocation = readPoint(r)
	gs.ShipOrigin = readPoint(r)
	gs.ShipFacing = r.U16()
	gs.IPPlanet = r.U8()
	gs.InOrbit = r.U8()

	gs.Velocity.TravelAngle = r.U16()
	gs.Velocity.Vector = readExtent(r)
	gs.Velocity.Fract = readExtent(r)
	gs.Velocity.Error = readExtent(r)
	gs.Velocity.Incr = readExtent(r)

	if err := r.Err(); err != nil {
		return corrupt("global state: %v", err)
	}
	// the fuel cost never changes; anything else is not a save of ours
	if gs.FuelCost != FuelCostRU {
		return corrupt("unexpected fuel cost %d", gs.FuelCost)
	}

	g.Global = gs
	g.Clock.Date = d
	g.Clock.TickCount = tick
	g.Clock.DayInTicks = dayTicks
	return nil
}

func readGameState(r *Reader, g *Game) error {
	tag, size, ok := r.NextChunk()
	if !ok || tag != GameStateTag {
		return corrupt("game state chunk missing")
	}
	if size < 4 {
		return corrupt("game state chunk too small (%d bytes)", size)
	}
	n := r.U32()
	if n > size-4 {
		return corrupt("game state declares %d bytes in a %d byte chunk", n, size)
	}
	bits := make([]byte, n)
	r.A8(bits)
	r.Skip(int64(size - 4 - n))
	if err := r.Err(); err != nil {
		return corrupt("game state: %v", err)
	}
	if err := g.State.Deserialize(bits); err != nil {
		return corrupt("game state: %v", err)
	}
	return nil
}

func readRaceQueue(r *Reader, size int64, roster fleet.Roster) {
	count := size / raceEntrySize
	for i := int64(0); i < count; i++ {
		idx := int(r.U16())
		var f fleet.FleetInfo
		f.AlliedState = r.U16()
		f.DaysLeft = r.U8()
		f.GrowthFract = r.U8()
		f.CrewLevel = r.U16()
		f.MaxCrew = r.U16()
		f.Growth = r.U8()
		f.MaxEnergy = r.U8()
		f.Loc = starmap.Point{X: int32(r.S16()), Y: int32(r.S16())}
		f.ActualStrength = r.U16()
		f.KnownStrength = r.U16()
		f.KnownLoc = starmap.Point{X: int32(r.S16()), Y: int32(r.S16())}
		f.GrowthErrTerm = r.U8()
		f.FuncIndex = r.U8()
		f.DestLoc = starmap.Point{X: int32(r.S16()), Y: int32(r.S16())}

		if idx >= len(roster) {
			continue
		}
		dst := &roster[idx]
		dst.AlliedState = f.AlliedState
		dst.DaysLeft = f.DaysLeft
		dst.GrowthFract = f.GrowthFract
		dst.CrewLevel = f.CrewLevel
		dst.MaxCrew = f.MaxCrew
		dst.Growth = f.Growth
		dst.MaxEnergy = f.MaxEnergy
		dst.Loc = f.Loc
		dst.ActualStrength = f.ActualStrength
		dst.KnownStrength = f.KnownStrength
		dst.KnownLoc = f.KnownLoc
		dst.GrowthErrTerm = f.GrowthErrTerm
		dst.FuncIndex = f.FuncIndex
		dst.DestLoc = f.DestLoc
	}
	r.Skip(size - count*raceEntrySize)
}

func readShipQueue(r *Reader, size int64, g *Game, q []fleet.ShipFragment) []fleet.ShipFragment {
	count := size / shipEntrySize
	for i := int64(0); i < count; i++ {
		race := fleet.Race(r.U16())
		captain := r.U8()
		fragRace := fleet.Race(r.U8())
		index := r.U8()
		crew := r.U16()
		maxCrew := r.U16()
		energy := r.U8()
		maxEnergy := r.U8()

		s, ok := g.Roster.Clone(g.RNG, q, race, 0)
		if !ok {
			g.log().Warn("Dropping ship of unknown race", "operation", "Load", "race", race)
			continue
		}
		s.CaptainIndex = captain
		s.Race = fragRace
		s.Index = index
		s.CrewLevel = crew
		s.MaxCrew = maxCrew
		s.EnergyLevel = energy
		s.MaxEnergy = maxEnergy
		q = append(q, s)
	}
	r.Skip(size - count*shipEntrySize)
	return q
}

func readIPGroupEntry(r *Reader) grpinfo.IPGroup {
	var g grpinfo.IPGroup
	g.GroupCounter = r.U16()
	g.Race = fleet.Race(r.U8())
	g.SysLoc = r.U8()
	g.Task = r.U8()
	g.InSystem = r.U8() != 0
	g.DestLoc = r.U8()
	g.OrbitPos = r.U8()
	g.GroupID = r.U8()
	g.Loc = starmap.Point{X: int32(r.S16()), Y: int32(r.S16())}
	return g
}

func readIPGroupQueue(r *Reader, size int64, g *Game) {
	m := g.Groups
	count := size / ipEntrySize
	for i := int64(0); i < count; i++ {
		ip := readIPGroupEntry(r)
		if !m.BuildGroup(&m.IPGroups, ip.Race) {
			continue
		}
		last := &m.IPGroups[len(m.IPGroups)-1]
		ip.MeleeIcon = last.MeleeIcon
		*last = ip
	}
	r.Skip(size - count*ipEntrySize)
}

func readEvents(r *Reader, size int64, c *clock.Clock) {
	count := size / eventSize
	for i := int64(0); i < count; i++ {
		var ev clock.Event
		ev.Date.Day = r.U8()
		ev.Date.Month = r.U8()
		ev.Date.Year = r.U16()
		ev.FuncIndex = r.U8()
		c.Events.Append(ev)
	}
	r.Skip(size - count*eventSize)
}

func readEncounters(r *Reader, size int64) []Encounter {
	count := size / encounterSize
	out := make([]Encounter, 0, count)
	for i := int64(0); i < count; i++ {
		var e Encounter
		e.TransitionState = r.S16()
		e.Origin = readPoint(r)
		e.Radius = r.U16()
		e.Loc = readPoint(r)
		e.Race = r.U8()
		e.NumShips = r.U8()
		e.Flags = r.U8()
		for j := range e.Ships {
			e.Ships[j].Race = r.U8()
			e.Ships[j].CrewLevel = r.U16()
			e.Ships[j].MaxCrew = r.U16()
			e.Ships[j].MaxEnergy = r.U8()
		}
		e.LogX = r.S32()
		e.LogY = r.S32()
		out = append(out, e)
	}
	r.Skip(size - count*encounterSize)
	return out
}

func readScanInfo(r *Reader, size int64, files *statefile.Store) error {
	if size%4 != 0 {
		return corrupt("scan info is %d bytes", size)
	}
	data := make([]byte, size)
	r.A8(data)
	if err := r.Err(); err != nil {
		return corrupt("scan info: %v", err)
	}
	return files.Restore(statefile.StarInfoFile, data)
}

func readStar(r *Reader, size int64) *starmap.Star {
	var s starmap.Star
	s.X = int32(r.S16())
	s.Y = int32(r.S16())
	s.Type = r.U8()
	s.Index = starmap.Plot(r.U8())
	s.Prefix = r.U8()
	s.Postfix = r.U8()
	r.Skip(size - starDescSize)
	return &s
}
