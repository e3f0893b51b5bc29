package save

import (
	"fmt"

	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/gamestate"
	"uqm-starseed/internal/grpinfo"
	"uqm-starseed/internal/statefile"
)

type storedShip struct {
	race uint8
	frag fleet.ShipFragment
}

type storedGroup struct {
	icon  uint8
	ships []storedShip
}

// writeGroups copies the group stores into GROUP_LIST and BATTLE_GROUP
// chunks: the random store first, then every defined encounter that owns
// a header.
func writeGroups(w *Writer, g *Game) error {
	if g.Files.Length(statefile.RandomGroupFile) > 0 {
		f, err := g.Files.Open(statefile.RandomGroupFile, "rb")
		if err != nil {
			return fmt.Errorf("open random groups: %w", err)
		}
		if gh, ok := grpinfo.ReadHeader(f); ok {
			writeGroupList(w, f, &gh)
			writeBattleGroup(w, f, 0, 0, false)
		}
		f.Close()
	}

	if g.Files.Length(statefile.DefinedGroupFile) > 0 {
		f, err := g.Files.Open(statefile.DefinedGroupFile, "rb")
		if err != nil {
			return fmt.Errorf("open defined groups: %w", err)
		}
		for enc := 1; enc <= gamestate.NumEncounterGroups; enc++ {
			off := g.State.BattleGroupOffset(enc)
			if off == 0 {
				continue
			}
			current := g.Groups != nil && g.Groups.BattleGroupRef == grpinfo.DefinedGroups(off)
			writeBattleGroup(w, f, uint32(enc), off, current)
		}
		f.Close()
	}
	return w.Err()
}

func writeGroupList(w *Writer, f *statefile.File, gh *grpinfo.GroupHeader) {
	// no list was ever flushed
	if gh.GroupOffset[0] == 0 {
		return
	}
	if f.Seek(int64(gh.GroupOffset[0]), statefile.SeekSet) != nil {
		return
	}
	last, _ := f.ReadU8()
	count, _ := f.ReadU8()

	type entry struct {
		race  uint8
		group grpinfo.IPGroup
	}
	entries := make([]entry, 0, count)
	for ; count > 0; count-- {
		race, ok := f.ReadU8()
		if !ok {
			break
		}
		ip, ok := grpinfo.ReadIPGroup(f)
		if !ok {
			break
		}
		entries = append(entries, entry{race: race, group: ip})
	}

	w.Chunk(GroupListTag, 1+len(entries)*listEntrySize)
	w.U8(last)
	for i := range entries {
		w.U8(entries[i].race)
		writeIPGroupEntry(w, &entries[i].group)
	}
}

func readStoredGroup(f *statefile.File, offset uint32) storedGroup {
	var sg storedGroup
	// an unwritten slot is an empty group
	if offset == 0 || f.Seek(int64(offset), statefile.SeekSet) != nil {
		return sg
	}
	sg.icon, _ = f.ReadU8()
	n, _ := f.ReadU8()
	for ; n > 0; n-- {
		race, ok := f.ReadU8()
		if !ok {
			break
		}
		frag, ok := grpinfo.ReadShipFragment(f)
		if !ok {
			break
		}
		sg.ships = append(sg.ships, storedShip{race: race, frag: frag})
	}
	return sg
}

func writeBattleGroup(w *Writer, f *statefile.File, enc, offset uint32, current bool) {
	if f.Seek(int64(offset), statefile.SeekSet) != nil {
		return
	}
	gh, ok := grpinfo.ReadHeader(f)
	if !ok {
		return
	}

	groups := make([]storedGroup, 0, gh.NumGroups)
	size := 12
	for i := 1; i <= int(gh.NumGroups) && i <= grpinfo.NumSavedGroups; i++ {
		sg := readStoredGroup(f, gh.GroupOffset[i])
		groups = append(groups, sg)
		size += 2 + len(sg.ships)*10
	}

	w.Chunk(BattleGroupTag, size)
	w.U32(enc)
	if current {
		w.U8(1)
	} else {
		w.U8(0)
	}
	w.U16(gh.StarIndex)
	w.U8(gh.Date.Day)
	w.U8(gh.Date.Month)
	w.U16(gh.Date.Year)
	w.U8(uint8(len(groups)))
	for _, sg := range groups {
		w.U8(sg.icon)
		w.U8(uint8(len(sg.ships)))
		for _, s := range sg.ships {
			w.U8(s.race)
			w.U8(s.frag.CaptainIndex)
			w.U8(uint8(s.frag.Race))
			w.U8(s.frag.Index)
			w.U16(s.frag.CrewLevel)
			w.U16(s.frag.MaxCrew)
			w.U8(s.frag.EnergyLevel)
			w.U8(s.frag.MaxEnergy)
		}
	}
}

func loadGroupList(r *Reader, size int64, g *Game) error {
	f, err := g.Files.Open(statefile.RandomGroupFile, "r+b")
	if err != nil {
		return err
	}
	defer f.Close()

	gh, ok := grpinfo.ReadHeader(f)
	if !ok {
		gh = grpinfo.EmptyHeader()
	}
	gh.GroupOffset[0] = uint32(f.Length())
	_ = f.Seek(0, statefile.SeekSet)
	if !grpinfo.WriteHeader(f, &gh) {
		return statefile.ErrNoSpace
	}

	last := r.U8()
	count := (size - 1) / listEntrySize
	_ = f.Seek(int64(gh.GroupOffset[0]), statefile.SeekSet)
	f.WriteU8(last)
	f.WriteU8(uint8(count))
	for i := int64(0); i < count; i++ {
		race := r.U8()
		ip := readIPGroupEntry(r)
		f.WriteU8(race)
		if !grpinfo.WriteIPGroup(f, &ip) {
			return statefile.ErrNoSpace
		}
	}
	r.Skip(size - 1 - count*listEntrySize)
	return r.Err()
}

func loadBattleGroup(r *Reader, size int64, g *Game) error {
	logger := g.log().With("operation", "loadBattleGroup")

	enc := r.U32()
	current := r.U8() != 0
	size -= 5

	id := statefile.RandomGroupFile
	if enc != 0 {
		id = statefile.DefinedGroupFile
	}
	f, err := g.Files.Open(id, "r+b")
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		offset uint32
		gh     grpinfo.GroupHeader
	)
	if enc != 0 {
		offset = uint32(f.Length())
	} else {
		var ok bool
		if gh, ok = grpinfo.ReadHeader(f); !ok {
			gh = grpinfo.EmptyHeader()
		}
		current = false
	}

	gh.StarIndex = r.U16()
	gh.Date.Day = r.U8()
	gh.Date.Month = r.U8()
	gh.Date.Year = r.U16()
	gh.NumGroups = r.U8()
	size -= 7

	_ = f.Seek(int64(offset), statefile.SeekSet)
	if !grpinfo.WriteHeader(f, &gh) {
		return statefile.ErrNoSpace
	}

	for i := 1; i <= int(gh.NumGroups); i++ {
		icon := r.U8()
		n := r.U8()
		size -= 2

		at := uint32(f.Length())
		if i <= grpinfo.NumSavedGroups {
			gh.GroupOffset[i] = at
		}
		_ = f.Seek(int64(at), statefile.SeekSet)
		f.WriteU8(icon)
		f.WriteU8(n)
		for j := 0; j < int(n); j++ {
			race := r.U8()
			var s fleet.ShipFragment
			s.CaptainIndex = r.U8()
			s.Race = fleet.Race(r.U8())
			s.Index = r.U8()
			s.CrewLevel = r.U16()
			s.MaxCrew = r.U16()
			s.EnergyLevel = r.U8()
			s.MaxEnergy = r.U8()
			size -= 10

			f.WriteU8(race)
			if !grpinfo.WriteShipFragment(f, &s) {
				return statefile.ErrNoSpace
			}
		}
		if r.Err() != nil {
			return r.Err()
		}
	}

	_ = f.Seek(int64(offset), statefile.SeekSet)
	if !grpinfo.WriteHeader(f, &gh) {
		return statefile.ErrNoSpace
	}

	if enc != 0 {
		g.State.SetBattleGroupOffset(int(enc), offset)
		if current && g.Groups != nil {
			g.Groups.BattleGroupRef = grpinfo.DefinedGroups(offset)
		}
	}

	if size != 0 {
		logger.Warn("Battle group chunk size mismatch", "encounter", enc, "remaining", size)
		r.Skip(size)
	}
	return r.Err()
}
