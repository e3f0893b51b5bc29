package grpinfo

import (
	"encoding/binary"

	"uqm-starseed/internal/clock"
	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"
)

const (
	// NumSavedGroups is the number of numbered slots a header can address
	NumSavedGroups = 64
	// MaxBattleGroups caps the number of generated ambient groups
	MaxBattleGroups = 32

	headerSize       = 4 + 2 + 2 + 4*(NumSavedGroups+1)
	fragmentSize     = 16
	ipGroupSize      = 16
	unknownStarIndex = 0xFFFF
)

// StoreKind selects which state file a group operation targets
type StoreKind uint8

const (
	RandomStore StoreKind = iota
	DefinedStore
	NewDefinedStore
)

// Store addresses a group header: the random store always lives at
// offset 0, defined headers at their recorded offset.
type Store struct {
	Kind   StoreKind
	Offset uint32
}

var (
	RandomGroups     = Store{Kind: RandomStore}
	NewDefinedGroups = Store{Kind: NewDefinedStore}
)

func DefinedGroups(offset uint32) Store {
	return Store{Kind: DefinedStore, Offset: offset}
}

// StoreFromOffset decodes a persisted offset; zero means the random store
func StoreFromOffset(offset uint32) Store {
	if offset == 0 {
		return RandomGroups
	}
	return DefinedGroups(offset)
}

func (s Store) IsRandom() bool { return s.Kind == RandomStore }

func (s Store) fileID(group Group) statefile.ID {
	if s.Kind != RandomStore && group != GroupList {
		return statefile.DefinedGroupFile
	}
	return statefile.RandomGroupFile
}

// Group selects the record inside a header
type Group uint8

const (
	GroupList Group = 0
	// GroupInitIP and GroupSaveIP share a value; the first is only
	// meaningful to GetGroupInfo and the second to PutGroupInfo.
	GroupInitIP Group = 0xFF
	GroupSaveIP Group = 0xFF
)

// Tasks an interplanetary group can be on
const (
	InOrbit uint8 = iota
	Explore
	Flee
	OnStation
)

// IPGroup is an ambient group moving inside the current solar system
type IPGroup struct {
	Race         fleet.Race    `json:"race"`
	GroupCounter uint16        `json:"counter"`
	SysLoc       uint8         `json:"sys_loc"`
	Task         uint8         `json:"task"`
	InSystem     bool          `json:"in_system"`
	DestLoc      uint8         `json:"dest_loc"`
	OrbitPos     uint8         `json:"orbit_pos"`
	GroupID      uint8         `json:"group_id"`
	Loc          starmap.Point `json:"loc"`
	MeleeIcon    uint8         `json:"-"`
}

// GroupHeader prefixes both group stores
type GroupHeader struct {
	NumGroups   uint8
	Date        clock.Date
	StarIndex   uint16
	GroupOffset [NumSavedGroups + 1]uint32
}

func EmptyHeader() GroupHeader {
	return GroupHeader{StarIndex: unknownStarIndex}
}

func ReadHeader(f *statefile.File) (GroupHeader, bool) {
	var buf [headerSize]byte
	if f.Read(buf[:], headerSize, 1) != 1 {
		return GroupHeader{}, false
	}

	le := binary.LittleEndian
	gh := GroupHeader{
		NumGroups: buf[0],
		Date:      clock.Date{Day: buf[1], Month: buf[2], Year: le.Uint16(buf[6:])},
		StarIndex: le.Uint16(buf[4:]),
	}
	for i := range gh.GroupOffset {
		gh.GroupOffset[i] = le.Uint32(buf[8+4*i:])
	}
	return gh, true
}

func WriteHeader(f *statefile.File, gh *GroupHeader) bool {
	var buf [headerSize]byte
	le := binary.LittleEndian
	buf[0] = gh.NumGroups
	buf[1] = gh.Date.Day
	buf[2] = gh.Date.Month
	le.PutUint16(buf[4:], gh.StarIndex)
	le.PutUint16(buf[6:], gh.Date.Year)
	for i, off := range gh.GroupOffset {
		le.PutUint32(buf[8+4*i:], off)
	}
	return f.Write(buf[:], headerSize, 1) == 1
}

// ship fragment record: link words, captain, race, variant, crew and
// energy levels; the rest is padding
func ReadShipFragment(f *statefile.File) (fleet.ShipFragment, bool) {
	var buf [fragmentSize]byte
	if f.Read(buf[:], fragmentSize, 1) != 1 {
		return fleet.ShipFragment{}, false
	}

	return fleet.ShipFragment{
		CaptainIndex: buf[2],
		Race:         fleet.Race(buf[6]),
		Index:        buf[7],
		CrewLevel:    uint16(buf[8]),
		MaxCrew:      uint16(buf[9]),
		EnergyLevel:  buf[10],
		MaxEnergy:    buf[11],
	}, true
}

func WriteShipFragment(f *statefile.File, s *fleet.ShipFragment) bool {
	var buf [fragmentSize]byte
	buf[2] = s.CaptainIndex
	buf[6] = uint8(s.Race)
	buf[7] = s.Index
	buf[8] = uint8(s.CrewLevel)
	buf[9] = uint8(s.MaxCrew)
	buf[10] = s.EnergyLevel
	buf[11] = s.MaxEnergy
	return f.Write(buf[:], fragmentSize, 1) == 1
}

func ReadIPGroup(f *statefile.File) (IPGroup, bool) {
	var buf [ipGroupSize]byte
	if f.Read(buf[:], ipGroupSize, 1) != 1 {
		return IPGroup{}, false
	}

	le := binary.LittleEndian
	return IPGroup{
		GroupCounter: le.Uint16(buf[4:]),
		Race:         fleet.Race(buf[6]),
		SysLoc:       buf[7] & 0x0F,
		Task:         buf[7] >> 4,
		InSystem:     buf[8] != 0,
		DestLoc:      buf[10] & 0x0F,
		OrbitPos:     buf[10] >> 4,
		GroupID:      buf[11],
		// coordinates are stored as signed 16-bit values
		Loc: starmap.Point{
			X: int32(int16(le.Uint16(buf[12:]))),
			Y: int32(int16(le.Uint16(buf[14:]))),
		},
	}, true
}

func WriteIPGroup(f *statefile.File, g *IPGroup) bool {
	var buf [ipGroupSize]byte
	le := binary.LittleEndian
	le.PutUint16(buf[4:], g.GroupCounter)
	buf[6] = uint8(g.Race)
	buf[7] = g.SysLoc&0x0F | g.Task<<4
	if g.InSystem {
		buf[8] = 1
	}
	buf[10] = g.DestLoc&0x0F | g.OrbitPos<<4
	buf[11] = g.GroupID
	le.PutUint16(buf[12:], uint16(int16(g.Loc.X)))
	le.PutUint16(buf[14:], uint16(int16(g.Loc.Y)))
	return f.Write(buf[:], ipGroupSize, 1) == 1
}
