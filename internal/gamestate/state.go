package gamestate

import (
	"fmt"
	"log/slog"
)

// NumEncounterGroups is the number of scripted encounters that own a
// battle group in the defined group store
const NumEncounterGroups = 14

var groupOffsetFields = [NumEncounterGroups + 1]string{
	"",
	"SHOFIXTI_GRPOFFS",
	"ZOQFOT_GRPOFFS",
	"MELNORME0_GRPOFFS",
	"MELNORME1_GRPOFFS",
	"MELNORME2_GRPOFFS",
	"MELNORME3_GRPOFFS",
	"MELNORME4_GRPOFFS",
	"MELNORME5_GRPOFFS",
	"MELNORME6_GRPOFFS",
	"MELNORME7_GRPOFFS",
	"MELNORME8_GRPOFFS",
	"URQUAN_PROBE_GRPOFFS",
	"COLONY_GRPOFFS",
	"SAMATRA_GRPOFFS",
}

// State holds the live value of every named game-state entry
type State struct {
	values []uint32
	widths []uint8
	index  map[string]int
	fields []Field
}

func New() *State {
	s := &State{index: make(map[string]int, len(gameFields))}

	for _, def := range gameFields {
		if def.name == "" {
			s.fields = append(s.fields, Revision(def.width))
			continue
		}

		i := len(s.values)
		s.values = append(s.values, 0)
		s.widths = append(s.widths, def.width)
		s.index[def.name] = i
		s.fields = append(s.fields, Field{
			Name:  def.name,
			Width: def.width,
			Get:   func() uint32 { return s.values[i] },
			Set:   func(v uint32) { s.values[i] = v },
		})
	}
	return s
}

// Fields is the bound schema used by Serialize and Deserialize
func (s *State) Fields() []Field {
	return s.fields
}

func (s *State) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get panics on unknown names; they are programming errors
func (s *State) Get(name string) uint32 {
	i, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("gamestate: unknown field %q", name))
	}
	return s.values[i]
}

func (s *State) Set(name string, v uint32) {
	i, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("gamestate: unknown field %q", name))
	}
	s.values[i] = v
}

// Width returns the declared bit width of a field
func (s *State) Width(name string) uint8 {
	return s.widths[s.index[name]]
}

// Reset zeroes every value
func (s *State) Reset() {
	clear(s.values)
}

func (s *State) Serialize() []byte {
	return Serialize(s.fields)
}

// Deserialize picks the revision from the buffer length
func (s *State) Deserialize(buf []byte) error {
	rev := RevisionByBytes(s.fields, len(buf))
	if rev < 0 {
		slog.Warn("Game state size matches no revision, reading as current",
			"component", "gamestate", "bytes", len(buf))
	}
	return Deserialize(s.fields, buf, rev)
}

// BattleGroupOffset returns the defined-store offset of an encounter's
// battle group, 0 when it has none
func (s *State) BattleGroupOffset(encounter int) uint32 {
	if encounter < 1 || encounter > NumEncounterGroups {
		return 0
	}
	return s.Get(groupOffsetFields[encounter])
}

func (s *State) SetBattleGroupOffset(encounter int, offset uint32) {
	if encounter < 1 || encounter > NumEncounterGroups {
		slog.Warn("Invalid encounter for battle group offset",
			"component", "gamestate", "encounter", encounter)
		return
	}
	s.Set(groupOffsetFields[encounter], offset)
}
