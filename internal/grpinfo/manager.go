// Package grpinfo persists battle groups: the ambient groups generated for
// the solar system being visited (random store) and the scripted
// encounter groups (defined store).
package grpinfo

import (
	"log/slog"
	"math"

	"uqm-starseed/internal/clock"
	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/gamestate"
	"uqm-starseed/internal/random"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"
)

const (
	stationRadius  = 1600
	maxRevolutions = 5
	groupTTLDays   = 7
)

// SolarSystem is the planet layout of the system being visited
type SolarSystem interface {
	NumPlanets() int
	// PlanetOuterLocation is where planet i sits on the outer system map
	PlanetOuterLocation(i int) starmap.Point
}

// Manager is the group persistence context of one game session
type Manager struct {
	files  *statefile.Store
	clock  *clock.Clock
	rng    *random.Context
	roster fleet.Roster
	state  *gamestate.State
	logger *slog.Logger

	// StarIndex identifies the current star in group headers
	StarIndex uint16
	// StarPlot is the plot of the current star, NoPlot when it has none
	StarPlot starmap.Plot
	StarLoc  starmap.Point
	System   SolarSystem
	// Extended enables the extended-campaign encounter rules
	Extended bool

	IPGroups       []IPGroup
	NPCShips       []fleet.ShipFragment
	BattleGroupRef Store
	LastEncGroup   uint8
}

func NewManager(files *statefile.Store, clk *clock.Clock, rng *random.Context,
	roster fleet.Roster, state *gamestate.State, logger *slog.Logger) *Manager {
	return &Manager{
		files:     files,
		clock:     clk,
		rng:       rng,
		roster:    roster,
		state:     state,
		logger:    logger.With("component", "grpinfo"),
		StarIndex: unknownStarIndex,
	}
}

// Roster exposes the race templates used to clone group ships
func (m *Manager) Roster() fleet.Roster { return m.roster }

// EnterSystem records the star the group stores are keyed on
func (m *Manager) EnterSystem(index uint16, star starmap.Star, sys SolarSystem) {
	m.StarIndex = index
	m.StarPlot = star.Index
	m.StarLoc = star.Point
	m.System = sys
}

// InitGroupInfo wipes the random store; on the first call of a game the
// defined store is reset as well.
func (m *Manager) InitGroupInfo(firstTime bool) error {
	f, err := m.files.Open(statefile.RandomGroupFile, "wb")
	if err != nil {
		return err
	}
	gh := EmptyHeader()
	ok := WriteHeader(f, &gh)
	f.Close()
	if !ok {
		return statefile.ErrNoSpace
	}

	if firstTime {
		f, err = m.files.Open(statefile.DefinedGroupFile, "wb")
		if err != nil {
			return err
		}
		ok = f.WriteU8(0)
		f.Close()
		if !ok {
			return statefile.ErrNoSpace
		}
	}
	return nil
}

func (m *Manager) UninitGroupInfo() {
	m.files.Delete(statefile.RandomGroupFile)
	m.files.Delete(statefile.DefinedGroupFile)
}

// BuildGroup appends an empty group of the race; false for unknown races
func (m *Manager) BuildGroup(queue *[]IPGroup, race fleet.Race) bool {
	info := m.roster.Get(race)
	if info == nil {
		m.logger.Warn("Unknown race for group", "operation", "BuildGroup", "race", race)
		return false
	}
	*queue = append(*queue, IPGroup{Race: race, MeleeIcon: info.MeleeIcon})
	return true
}

// BuildGroups rolls the ambient groups for the current system from the
// spheres of influence around it and loads them as interplanetary groups.
func (m *Manager) BuildGroups() bool {
	logger := m.logger.With("operation", "BuildGroups", "star", m.StarIndex)

	n := min(len(m.roster), int(fleet.NumAvailableRaces))
	percent := make([]int, n)
	homeworld := make([]starmap.Plot, n)
	hasHome := make([]bool, n)
	for i := 0; i < n; i++ {
		f := &m.roster[i]
		percent[i] = int(f.EncounterPercent)
		homeworld[i], hasHome[i] = f.Homeworld, f.HasHomeworld
	}

	if int(fleet.Slylandro) < n {
		percent[fleet.Slylandro] *= int(m.state.Get("SLYLANDRO_MULTIPLIER"))
	}
	if mission := m.state.Get("UTWIG_SUPOX_MISSION"); mission > 1 && mission < 5 {
		hasHome[fleet.Utwig] = false
		hasHome[fleet.Supox] = false
	}
	if m.Extended && m.StarPlot == starmap.ZoqFot {
		percent[fleet.Urquan] = 0
		percent[fleet.BlackUrquan] = 0
	}

	best, bestPercent := -1, 0
	for idx := 0; idx < n; idx++ {
		f := &m.roster[idx]
		radius, ok := f.SphereRadius()
		if !ok || percent[idx] == 0 {
			continue
		}

		if m.StarPlot != starmap.NoPlot && hasHome[idx] && homeworld[idx] == m.StarPlot {
			best = idx
			bestPercent = 70
			if f.Race == fleet.Spathi || f.Race == fleet.Supox {
				bestPercent = 2
			}
			break
		}

		dx := abs(int(m.StarLoc.X - f.Loc.X))
		dy := abs(int(m.StarLoc.Y - f.Loc.Y))
		if dx >= radius || dy >= radius {
			continue
		}
		d2 := dx*dx + dy*dy
		if d2 >= radius*radius {
			continue
		}

		chance := percent[idx]
		if f.ActualStrength != fleet.InfiniteRadius {
			chance = 70 - isqrt(d2)*60/radius
		}

		rv := m.rng.Random()
		if int(random.LoWord(rv))%100 < chance &&
			(bestPercent == 0 || int(random.HiWord(rv))%(chance+bestPercent) < chance) {
			if f.ActualStrength == fleet.InfiniteRadius {
				chance = 4
			}
			best, bestPercent = idx, chance
		}
	}

	if best >= 0 && bestPercent > 1 {
		f := &m.roster[best]
		numGroups := int(uint16(m.rng.Random()))%(bestPercent>>1) + 1
		switch {
		case numGroups > MaxBattleGroups:
			numGroups = MaxBattleGroups
		case numGroups < 5 && hasHome[best] && homeworld[best] == m.StarPlot:
			numGroups = 5
		}

		logger.Debug("Generating ambient groups", "race", f.Race, "groups", numGroups, "percent", bestPercent)

		for which := 1; which <= numGroups; which++ {
			for i := f.MaxShips(); i > 0; i-- {
				if i <= f.MinShips() || uint16(m.rng.Random())%100 < 50 {
					if s, ok := m.roster.Clone(m.rng, m.NPCShips, f.Race, 0); ok {
						m.NPCShips = append(m.NPCShips, s)
					}
				}
			}
			m.PutGroupInfo(RandomGroups, Group(which))
			m.NPCShips = nil
		}
	}

	return m.GetGroupInfo(RandomGroups, GroupInitIP)
}

func (m *Manager) now() clock.Date { return m.clock.Now() }

// GetGroupInfo loads a record. GroupInitIP loads every group of the header
// as an interplanetary group; GroupList reloads the saved group list after
// an encounter; a slot number loads that group's ships for battle.
func (m *Manager) GetGroupInfo(store Store, group Group) bool {
	logger := m.logger.With("operation", "GetGroupInfo", "store", store.Offset, "group", group)

	f, err := m.files.Open(store.fileID(group), "r+b")
	if err != nil {
		logger.Warn("Failed to open group file", "error", err)
		return false
	}
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	offset := store.Offset
	if store.IsRandom() || group == GroupList {
		offset = 0
	}
	if f.Seek(int64(offset), statefile.SeekSet) != nil {
		return false
	}
	gh, ok := ReadHeader(f)
	if !ok {
		logger.Warn("Group header missing or truncated")
		return false
	}

	if group == GroupInitIP {
		if store.IsRandom() && !m.currentRandomGroups(&gh) {
			logger.Debug("Discarding stale random groups",
				"header_star", gh.StarIndex, "star", m.StarIndex, "date", gh.Date.String())
			// the store is reopened truncated, so close our handle first
			f.Close()
			f = nil
			if err := m.InitGroupInfo(false); err != nil {
				logger.Error("Failed to reset random groups", "error", err)
			}
			return false
		}
		return m.initIPGroups(f, store, &gh)
	}

	if int(group) > NumSavedGroups || gh.GroupOffset[group] == 0 {
		return false
	}

	if group == GroupList {
		shipsLeft := len(m.NPCShips)

		_ = f.Seek(int64(gh.GroupOffset[0]), statefile.SeekSet)
		last, _ := f.ReadU8()
		m.LastEncGroup = last
		if last != 0 {
			if !m.BattleGroupRef.IsRandom() {
				m.PutGroupInfo(m.BattleGroupRef, Group(last))
			} else {
				m.flush(f, &gh, 0, Group(last))
			}
		}
		m.NPCShips = nil

		m.IPGroups = m.IPGroups[:0]
		_ = f.Seek(int64(gh.GroupOffset[0])+1, statefile.SeekSet)
		count, _ := f.ReadU8()
		for ; count > 0; count-- {
			race, ok := f.ReadU8()
			if !ok {
				break
			}
			g, ok := ReadIPGroup(f)
			if !ok {
				break
			}
			if g.GroupID == last && shipsLeft == 0 {
				continue
			}
			if !m.BuildGroup(&m.IPGroups, fleet.Race(race)) {
				continue
			}
			icon := m.IPGroups[len(m.IPGroups)-1].MeleeIcon
			g.MeleeIcon = icon
			m.IPGroups[len(m.IPGroups)-1] = g
		}
		return len(m.IPGroups) > 0
	}

	m.LastEncGroup = uint8(group)
	if !store.IsRandom() {
		m.PutGroupInfo(RandomGroups, GroupList)
	} else {
		m.flush(f, &gh, 0, GroupList)
	}
	m.IPGroups = nil
	m.NPCShips = nil

	_ = f.Seek(int64(gh.GroupOffset[group])+1, statefile.SeekSet)
	count, _ := f.ReadU8()
	for ; count > 0; count-- {
		race, ok := f.ReadU8()
		if !ok {
			break
		}
		s, ok := m.roster.Clone(m.rng, m.NPCShips, fleet.Race(race), 0)
		frag, read := ReadShipFragment(f)
		if !read {
			break
		}
		if !ok {
			continue
		}
		s.CaptainIndex = frag.CaptainIndex
		s.Race = frag.Race
		s.Index = frag.Index
		s.CrewLevel = frag.CrewLevel
		s.MaxCrew = frag.MaxCrew
		s.EnergyLevel = frag.EnergyLevel
		s.MaxEnergy = frag.MaxEnergy
		m.NPCShips = append(m.NPCShips, s)
	}
	return len(m.NPCShips) > 0
}

// currentRandomGroups reports whether the random store belongs to the
// current star and has not expired
func (m *Manager) currentRandomGroups(gh *GroupHeader) bool {
	_, fresh := clock.ValidateEvent(clock.AbsoluteEvent, gh.Date, m.now())
	return gh.StarIndex == m.StarIndex && fresh
}

func (m *Manager) initIPGroups(f *statefile.File, store Store, gh *GroupHeader) bool {
	m.IPGroups = nil

	numPlanets := 1
	if m.System != nil {
		numPlanets = max(m.System.NumPlanets(), 1)
	}

	for slot := 1; slot <= int(gh.NumGroups) && slot <= NumSavedGroups; slot++ {
		if gh.GroupOffset[slot] == 0 {
			continue
		}
		_ = f.Seek(int64(gh.GroupOffset[slot]), statefile.SeekSet)
		race, ok := f.ReadU8()
		if !ok {
			continue
		}
		if n, ok := f.ReadU8(); !ok || n == 0 {
			continue
		}
		if !m.BuildGroup(&m.IPGroups, fleet.Race(race)) {
			continue
		}

		g := &m.IPGroups[len(m.IPGroups)-1]
		g.GroupID = uint8(slot)
		g.InSystem = true

		rv := m.rng.Random()
		task := random.LoByte(random.LoWord(rv)) % OnStation
		if task == Flee {
			task = OnStation
		}
		g.OrbitPos = normalizeFacing(random.LoByte(random.HiWord(rv)))

		loc := uint8(numPlanets)
		if loc == 1 && task == Explore {
			task = InOrbit
		} else {
			loc = random.HiByte(random.LoWord(rv))%uint8(numPlanets) + 1
		}
		g.DestLoc = loc

		rv = m.rng.Random()
		g.Loc.X = int32(random.LoWord(rv)%10000) - 5000
		g.Loc.Y = int32(random.HiWord(rv)%10000) - 5000

		g.GroupCounter = 0
		switch task {
		case Explore:
			g.GroupCounter = (uint16(m.rng.Random()) % maxRevolutions) << facingShift
		case OnStation:
			var org starmap.Point
			if m.System != nil {
				org = m.System.PlanetOuterLocation(int(loc) - 1)
			}
			angle := facingToAngle(int(g.OrbitPos) + 1)
			g.Loc.X = org.X + cosine(angle, stationRadius)
			g.Loc.Y = org.Y + sine(angle, stationRadius)
			loc = 0
		}
		g.Task = task
		g.SysLoc = loc
	}

	if !store.IsRandom() {
		if err := m.InitGroupInfo(false); err != nil {
			m.logger.Error("Failed to reset random groups", "operation", "GetGroupInfo", "error", err)
		}
		return len(m.IPGroups) > 0
	}
	// GetGroupInfo only gets here with a current random store
	return true
}

// PutGroupInfo writes a record and returns the store it landed in, which
// differs from the argument only for NewDefinedGroups.
func (m *Manager) PutGroupInfo(store Store, group Group) Store {
	logger := m.logger.With("operation", "PutGroupInfo", "store", store.Offset, "group", group)

	f, err := m.files.Open(store.fileID(group), "r+b")
	if err != nil {
		logger.Error("Failed to open group file", "error", err)
		return store
	}
	defer f.Close()

	offset := store.Offset
	switch {
	case store.Kind == RandomStore || group == GroupList:
		offset = 0
	case store.Kind == NewDefinedStore:
		offset = uint32(f.Length())
		_ = f.Seek(int64(offset), statefile.SeekSet)
		empty := EmptyHeader()
		if !WriteHeader(f, &empty) {
			logger.Error("Failed to allocate group header")
			return store
		}
		store = DefinedGroups(offset)
	}

	if group != GroupList {
		_ = f.Seek(int64(offset), statefile.SeekSet)
		if group == GroupSaveIP {
			m.LastEncGroup = 0
			group = GroupList
		}
	} else {
		_ = f.Seek(0, statefile.SeekSet)
	}

	gh, ok := ReadHeader(f)
	if !ok {
		gh = EmptyHeader()
	}
	gh.Date = clock.Relative(m.now(), 0, groupTTLDays, 0)
	gh.StarIndex = m.StarIndex

	m.flush(f, &gh, offset, group)
	return store
}

func (m *Manager) flush(f *statefile.File, gh *GroupHeader, offset uint32, group Group) {
	if group == GroupList {
		if gh.GroupOffset[0] == 0 {
			gh.GroupOffset[0] = uint32(f.Length())
		}

		kept := m.IPGroups[:0]
		for _, g := range m.IPGroups {
			if g.InSystem {
				kept = append(kept, g)
				continue
			}
			// departed groups are written back empty
			if !m.BattleGroupRef.IsRandom() {
				m.PutGroupInfo(m.BattleGroupRef, Group(g.GroupID))
			} else {
				m.flush(f, gh, 0, Group(g.GroupID))
			}
			if int(g.GroupID) <= NumSavedGroups {
				gh.GroupOffset[g.GroupID] = 0
			}
		}
		m.IPGroups = kept
	} else if int(group) > NumSavedGroups {
		m.logger.Warn("Group slot out of range", "operation", "flush", "group", group)
		return
	} else if uint8(group) > gh.NumGroups {
		gh.NumGroups = uint8(group)
		gh.GroupOffset[group] = uint32(f.Length())
	} else if gh.GroupOffset[group] == 0 {
		gh.GroupOffset[group] = uint32(f.Length())
	}

	_ = f.Seek(int64(offset), statefile.SeekSet)
	if !WriteHeader(f, gh) {
		m.logger.Error("Failed to write group header", "operation", "flush", "offset", offset)
		return
	}

	if group == GroupList {
		_ = f.Seek(int64(gh.GroupOffset[0]), statefile.SeekSet)
		f.WriteU8(m.LastEncGroup)
		f.WriteU8(uint8(len(m.IPGroups)))
		for i := range m.IPGroups {
			f.WriteU8(uint8(m.IPGroups[i].Race))
			WriteIPGroup(f, &m.IPGroups[i])
		}
		return
	}

	var race uint8
	if len(m.NPCShips) > 0 {
		race = uint8(m.NPCShips[0].Race)
	}
	_ = f.Seek(int64(gh.GroupOffset[group]), statefile.SeekSet)
	f.WriteU8(race)
	f.WriteU8(uint8(len(m.NPCShips)))
	for i := range m.NPCShips {
		f.WriteU8(uint8(m.NPCShips[i].Race))
		WriteShipFragment(f, &m.NPCShips[i])
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isqrt(v int) int {
	return int(math.Sqrt(float64(v)))
}
