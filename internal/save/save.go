package save

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/grpinfo"
	"uqm-starseed/internal/statefile"
)

var (
	ErrNotSaveFile = errors.New("not a save file")
	ErrCorrupt     = errors.New("corrupt save file")
)

// Save writes the whole game as a chunked save file. Queues that are empty
// produce no chunk.
func Save(w io.Writer, g *Game, name string) error {
	act := g.Global.CurrentActivity
	if g.Groups != nil && act.Base() == InInterplanetary &&
		!act.Has(StartEncounter|StartInterplanetary) {
		g.Groups.PutGroupInfo(grpinfo.RandomGroups, grpinfo.GroupSaveIP)
	}

	// taken before anything else; resolving the planet name is a side trip
	sum := g.PrepareSummary(name)

	sw := NewWriter(w)
	sw.U32(SaveFileTag)
	writeSummary(sw, &sum)
	writeGlobalState(sw, g)
	writeGameState(sw, g)
	g.Global.InOrbit = 0

	writeRaceQueue(sw, g.Roster)
	if !act.Has(StartInterplanetary) && g.Groups != nil {
		switch {
		case act.Has(StartEncounter):
			writeShipQueue(sw, NPCShipQTag, g.Groups.NPCShips)
		case act.Base() == InInterplanetary:
			writeIPGroupQueue(sw, g.Groups.IPGroups)
		}
	}
	writeShipQueue(sw, ShipQTag, g.BuiltShips)
	writeEvents(sw, g)
	writeEncounters(sw, g.Encounters)
	writeScanInfo(sw, g.Files)
	if err := writeGroups(sw, g); err != nil {
		return err
	}
	writeStar(sw, g)

	if err := sw.Err(); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// SaveFile saves into path and removes the file again when any write fails
func SaveFile(path string, g *Game, name string) (err error) {
	logger := g.log().With("operation", "SaveFile", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			logger.Error("Save failed, removing partial file", "error", err)
			_ = os.Remove(path)
		}
	}()

	return Save(f, g, name)
}

func (g *Game) log() *slog.Logger {
	l := g.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "save")
}

func writeSummary(w *Writer, s *Summary) {
	w.Chunk(SummaryTag, summarySize+len(s.SaveName))
	writeSIS(w, &s.SIS)
	w.U8(uint8(s.Activity))
	w.U8(s.Flags)
	w.U8(s.Date.Day)
	w.U8(s.Date.Month)
	w.U16(s.Date.Year)
	w.U8(s.MCreditLo)
	w.U8(s.MCreditHi)
	w.U8(s.NumShips)
	w.U8(s.NumDevices)
	w.A8(s.ShipList[:])
	w.A8(s.DeviceList[:])
	w.A8([]byte(s.SaveName))
}

func writeSIS(w *Writer, s *SISState) {
	w.S32(s.LogX)
	w.S32(s.LogY)
	w.U32(s.ResUnits)
	w.U32(s.FuelOnBoard)
	w.U16(s.CrewEnlisted)
	w.U16(s.TotalElementMass)
	w.U16(s.TotalBioMass)
	w.A8(s.ModuleSlots[:])
	w.A8(s.DriveSlots[:])
	w.A8(s.JetSlots[:])
	w.U8(s.NumLanders)
	w.A16(s.ElementAmounts[:])
	w.Str(s.ShipName, SISNameSize)
	w.Str(s.CommanderName, SISNameSize)
	w.Str(s.PlanetName, SISNameSize)
	w.U32(s.Seed)
}

func writePoint(w *Writer, p Point16) {
	w.S16(p.X)
	w.S16(p.Y)
}

func writeExtent(w *Writer, e Extent) {
	w.S16(e.Width)
	w.S16(e.Height)
}

func writeGlobalState(w *Writer, g *Game) {
	gs := &g.Global
	w.Chunk(GlobalStateTag, globalStateSize)
	w.U8(gs.GlobFlags)
	w.U8(gs.CrewCost)
	w.U8(gs.FuelCost)
	w.A8(gs.ModuleCost[:])
	w.A8(gs.ElementWorth[:])
	w.U16(uint16(gs.CurrentActivity))

	w.U8(g.Clock.Day)
	w.U8(g.Clock.Month)
	w.U16(g.Clock.Year)
	w.U16(uint16(g.Clock.TickCount))
	w.U16(uint16(g.Clock.DayInTicks))

	writePoint(w, gs.Autopilot)
	writePoint(w, gs.IPLocation)
	writePoint(w, gs.ShipOrigin)
	w.U16(gs.ShipFacing)
	w.U8(gs.IPPlanet)
	w.U8(gs.InOrbit)

	w.U16(gs.Velocity.TravelAngle)
	writeExtent(w, gs.Velocity.Vector)
	writeExtent(w, gs.Velocity.Fract)
	writeExtent(w, gs.Velocity.Error)
	writeExtent(w, gs.Velocity.Incr)
}

func writeGameState(w *Writer, g *Game) {
	bits := g.State.Serialize()
	w.Chunk(GameStateTag, 4+len(bits))
	w.U32(uint32(len(bits)))
	w.A8(bits)
}

func writeRaceQueue(w *Writer, roster fleet.Roster) {
	n := min(len(roster), int(fleet.NumAvailableRaces))
	if n == 0 {
		return
	}
	w.Chunk(RaceQTag, n*raceEntrySize)
	for i := 0; i < n; i++ {
		f := &roster[i]
		w.U16(uint16(i))
		w.U16(f.AlliedState)
		w.U8(f.DaysLeft)
		w.U8(f.GrowthFract)
		w.U16(f.CrewLevel)
		w.U16(f.MaxCrew)
		w.U8(f.Growth)
		w.U8(f.MaxEnergy)
		w.S16(int16(f.Loc.X))
		w.S16(int16(f.Loc.Y))
		w.U16(f.ActualStrength)
		w.U16(f.KnownStrength)
		w.S16(int16(f.KnownLoc.X))
		w.S16(int16(f.KnownLoc.Y))
		w.U8(f.GrowthErrTerm)
		w.U8(f.FuncIndex)
		w.S16(int16(f.DestLoc.X))
		w.S16(int16(f.DestLoc.Y))
	}
}

func writeShipQueue(w *Writer, tag uint32, q []fleet.ShipFragment) {
	if len(q) == 0 {
		return
	}
	w.Chunk(tag, len(q)*shipEntrySize)
	for i := range q {
		s := &q[i]
		w.U16(uint16(s.Race))
		w.U8(s.CaptainIndex)
		w.U8(uint8(s.Race))
		w.U8(s.Index)
		w.U16(s.CrewLevel)
		w.U16(s.MaxCrew)
		w.U8(s.EnergyLevel)
		w.U8(s.MaxEnergy)
	}
}

func writeIPGroupQueue(w *Writer, q []grpinfo.IPGroup) {
	if len(q) == 0 {
		return
	}
	w.Chunk(IPGroupQTag, len(q)*ipEntrySize)
	for i := range q {
		writeIPGroupEntry(w, &q[i])
	}
}

func writeIPGroupEntry(w *Writer, g *grpinfo.IPGroup) {
	w.U16(g.GroupCounter)
	w.U8(uint8(g.Race))
	w.U8(g.SysLoc)
	w.U8(g.Task)
	if g.InSystem {
		w.U8(1)
	} else {
		w.U8(0)
	}
	w.U8(g.DestLoc)
	w.U8(g.OrbitPos)
	w.U8(g.GroupID)
	w.S16(int16(g.Loc.X))
	w.S16(int16(g.Loc.Y))
}

func writeEvents(w *Writer, g *Game) {
	events := g.Clock.Events.Events()
	if len(events) == 0 {
		return
	}
	w.Chunk(EventsTag, len(events)*eventSize)
	for _, ev := range events {
		w.U8(ev.Date.Day)
		w.U8(ev.Date.Month)
		w.U16(ev.Date.Year)
		w.U8(ev.FuncIndex)
	}
}

func writeEncounters(w *Writer, q []Encounter) {
	if len(q) == 0 {
		return
	}
	w.Chunk(EncountersTag, len(q)*encounterSize)
	for i := range q {
		e := &q[i]
		w.S16(e.TransitionState)
		writePoint(w, e.Origin)
		w.U16(e.Radius)
		writePoint(w, e.Loc)
		w.U8(e.Race)
		w.U8(e.NumShips)
		w.U8(e.Flags)
		for _, s := range e.Ships {
			w.U8(s.Race)
			w.U16(s.CrewLevel)
			w.U16(s.MaxCrew)
			w.U8(s.MaxEnergy)
		}
		w.S32(e.LogX)
		w.S32(e.LogY)
	}
}

func writeScanInfo(w *Writer, files *statefile.Store) {
	data := files.Snapshot(statefile.StarInfoFile)
	if len(data) == 0 {
		return
	}
	w.Chunk(ScanTag, len(data))
	w.A8(data)
}

func writeStar(w *Writer, g *Game) {
	if g.Star == nil {
		return
	}
	s := g.Star
	w.Chunk(StarTag, starDescSize)
	w.S16(int16(s.X))
	w.S16(int16(s.Y))
	w.U8(s.Type)
	w.U8(uint8(s.Index))
	w.U8(s.Prefix)
	w.U8(s.Postfix)
}
