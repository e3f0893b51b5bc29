package save

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"uqm-starseed/internal/clock"
	"uqm-starseed/internal/fleet"
	"uqm-starseed/internal/gamestate"
	"uqm-starseed/internal/grpinfo"
	"uqm-starseed/internal/random"
	"uqm-starseed/internal/shared/logger"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/internal/statefile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type twoPlanets struct{}

func (twoPlanets) NumPlanets() int { return 2 }

func (twoPlanets) PlanetOuterLocation(i int) starmap.Point {
	return starmap.Point{X: int32(i+1) * 800, Y: 300}
}

func newGame(t *testing.T) *Game {
	t.Helper()
	l := logger.Discard()
	files := statefile.NewStore(0, l)
	clk := clock.New()
	rng := random.New(7)
	roster := fleet.DefaultRoster()
	state := gamestate.New()
	groups := grpinfo.NewManager(files, clk, rng, roster, state, l)
	require.NoError(t, groups.InitGroupInfo(true))

	return &Game{
		SIS: SISState{
			LogX: 17520, LogY: 14500, ResUnits: 1200, FuelOnBoard: 5000,
			CrewEnlisted: 14, NumLanders: 2,
			ShipName: "Vindicator", CommanderName: "Zelnick", Seed: 16807,
		},
		Global: DefaultGlobalState(),
		Clock:  clk,
		State:  state,
		Roster: roster,
		Groups: groups,
		Files:  files,
		RNG:    rng,
		Logger: l,
	}
}

// chunkTags lists the tags of a save in file order
func chunkTags(t *testing.T, data []byte) []uint32 {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 4)
	require.Equal(t, SaveFileTag, binary.LittleEndian.Uint32(data))

	var tags []uint32
	for off := 4; off < len(data); {
		require.LessOrEqual(t, off+8, len(data), "truncated chunk header")
		tags = append(tags, binary.LittleEndian.Uint32(data[off:]))
		off += 8 + int(binary.LittleEndian.Uint32(data[off+4:]))
	}
	return tags
}

func saveBytes(t *testing.T, g *Game, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, g, name))
	return buf.Bytes()
}

func addShips(t *testing.T, g *Game, q *[]fleet.ShipFragment, race fleet.Race, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		s, ok := g.Roster.Clone(g.RNG, *q, race, 0)
		require.True(t, ok)
		s.Index = uint8(i)
		*q = append(*q, s)
	}
}

func TestSaveOmitsEmptyQueues(t *testing.T) {
	g := newGame(t)
	g.Global.CurrentActivity = InHyperspace

	tags := chunkTags(t, saveBytes(t, g, "empty"))
	assert.Equal(t, []uint32{SummaryTag, GlobalStateTag, GameStateTag, RaceQTag}, tags[:4])
	for _, tag := range []uint32{ShipQTag, NPCShipQTag, IPGroupQTag, EventsTag, EncountersTag, ScanTag, StarTag, GroupListTag} {
		assert.NotContains(t, tags, tag)
	}

	addShips(t, g, &g.BuiltShips, fleet.Human, 1)
	assert.Contains(t, chunkTags(t, saveBytes(t, g, "one ship")), ShipQTag)
}

func TestSaveChunkSizes(t *testing.T) {
	g := newGame(t)
	g.Global.CurrentActivity = InHyperspace
	addShips(t, g, &g.BuiltShips, fleet.Human, 3)

	data := saveBytes(t, g, "sizes")
	assert.Equal(t, uint32(summarySize+len("sizes")), binary.LittleEndian.Uint32(data[8:]))

	off := 4
	for off < len(data) {
		tag := binary.LittleEndian.Uint32(data[off:])
		size := binary.LittleEndian.Uint32(data[off+4:])
		switch tag {
		case GlobalStateTag:
			assert.Equal(t, uint32(globalStateSize), size)
		case ShipQTag:
			assert.Equal(t, uint32(3*shipEntrySize), size)
		case RaceQTag:
			assert.Equal(t, uint32(int(fleet.NumAvailableRaces)*raceEntrySize), size)
		}
		off += 8 + int(size)
	}
	assert.Equal(t, len(data), off)
}

func TestQueueChoiceFollowsActivity(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		want     uint32
		absent   []uint32
	}{
		{"encounter", InHyperspace | StartEncounter, NPCShipQTag, []uint32{IPGroupQTag}},
		{"interplanetary", InInterplanetary, IPGroupQTag, []uint32{NPCShipQTag}},
		{"arriving", InInterplanetary | StartInterplanetary, 0, []uint32{IPGroupQTag, NPCShipQTag}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t)
			g.Groups.EnterSystem(17, starmap.Star{}, twoPlanets{})
			addShips(t, g, &g.Groups.NPCShips, fleet.Vux, 2)
			g.Groups.PutGroupInfo(grpinfo.RandomGroups, 1)
			g.Groups.NPCShips = nil
			require.True(t, g.Groups.GetGroupInfo(grpinfo.RandomGroups, grpinfo.GroupInitIP))
			addShips(t, g, &g.Groups.NPCShips, fleet.Vux, 2)

			g.Global.CurrentActivity = tt.activity
			tags := chunkTags(t, saveBytes(t, g, tt.name))
			if tt.want != 0 {
				assert.Contains(t, tags, tt.want)
			}
			for _, tag := range tt.absent {
				assert.NotContains(t, tags, tag)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := newGame(t)
	src.Global.CurrentActivity = InHyperspace
	src.Global.GlobFlags = 3
	src.Global.Autopilot = Point16{X: 1000, Y: -1}
	src.Global.IPLocation = Point16{X: -200, Y: 300}
	src.Global.ShipFacing = 9
	src.Global.InOrbit = 1
	src.Global.Velocity = Velocity{TravelAngle: 12, Vector: Extent{3, -4}, Incr: Extent{-1, 1}}
	src.SIS.ModuleSlots[0] = 4
	src.SIS.ElementAmounts[7] = 900

	src.Clock.Date = clock.Date{Day: 3, Month: 5, Year: 2157}
	src.Clock.TickCount = 12
	src.Clock.DayInTicks = 40
	src.Clock.Events.Insert(clock.Event{Date: clock.Date{Day: 9, Month: 6, Year: 2157}, FuncIndex: 4})
	src.Clock.Events.Insert(clock.Event{Date: clock.Date{Day: 1, Month: 6, Year: 2157}, FuncIndex: 11})

	src.State.Set("CHMMR_BOMB_STATE", 2)
	src.State.Set("MELNORME_CREDIT0", 77)

	src.Roster[fleet.Vux].AlliedState = fleet.GoodGuy
	src.Roster[fleet.Vux].Loc = starmap.Point{X: 4000, Y: 1500}
	src.Roster[fleet.Spathi].FuncIndex = 3

	addShips(t, src, &src.BuiltShips, fleet.Human, 2)
	src.BuiltShips[1].CrewLevel = 7

	src.Encounters = []Encounter{{
		TransitionState: -3, Origin: Point16{10, 20}, Radius: 500, Loc: Point16{-5, 6},
		Race: uint8(fleet.Ilwrath), NumShips: 2, Flags: 1,
		Ships: [MaxHyperShips]BriefShip{{Race: uint8(fleet.Ilwrath), CrewLevel: 22, MaxCrew: 22, MaxEnergy: 16}},
		LogX:  123456, LogY: -654321,
	}}

	src.Star = &starmap.Star{Point: starmap.Point{X: 1752, Y: 1450}, Type: starmap.MakeStar(starmap.DwarfStar, starmap.YellowBody, 0), Index: starmap.Sol, Prefix: 1, Postfix: 20}
	require.NoError(t, src.Files.InitPlanetInfo(4))

	// one ambient group and one scripted encounter group
	src.Groups.EnterSystem(17, *src.Star, twoPlanets{})
	addShips(t, src, &src.Groups.NPCShips, fleet.Ilwrath, 3)
	src.Groups.PutGroupInfo(grpinfo.RandomGroups, 1)
	src.Groups.NPCShips = nil
	addShips(t, src, &src.Groups.NPCShips, fleet.Shofixti, 2)
	defined := append([]fleet.ShipFragment(nil), src.Groups.NPCShips...)
	store := src.Groups.PutGroupInfo(grpinfo.NewDefinedGroups, 1)
	src.Groups.NPCShips = nil
	src.State.SetBattleGroupOffset(3, store.Offset)
	src.Groups.BattleGroupRef = store

	data := saveBytes(t, src, "round trip")
	assert.Zero(t, src.Global.InOrbit)
	assert.Contains(t, chunkTags(t, data), BattleGroupTag)

	dst := newGame(t)
	dst.Global.CurrentActivity = SuperMelee
	require.NoError(t, Load(bytes.NewReader(data), dst))

	assert.Equal(t, src.SIS, dst.SIS)
	assert.Equal(t, SuperMelee, dst.Global.CurrentActivity)
	assert.Equal(t, InHyperspace, dst.NextActivity)
	wantGlobal := src.Global
	wantGlobal.CurrentActivity = SuperMelee
	wantGlobal.InOrbit = 1
	assert.Equal(t, wantGlobal, dst.Global)

	assert.Equal(t, src.Clock.Date, dst.Clock.Date)
	assert.Equal(t, src.Clock.TickCount, dst.Clock.TickCount)
	assert.Equal(t, src.Clock.DayInTicks, dst.Clock.DayInTicks)
	assert.Equal(t, src.Clock.Events.Events(), dst.Clock.Events.Events())

	assert.Equal(t, src.State.Serialize(), dst.State.Serialize())
	assert.Equal(t, src.Roster[fleet.Vux].Loc, dst.Roster[fleet.Vux].Loc)
	assert.Equal(t, fleet.GoodGuy, dst.Roster[fleet.Vux].AlliedState)
	assert.Equal(t, uint8(3), dst.Roster[fleet.Spathi].FuncIndex)

	assert.Equal(t, src.BuiltShips, dst.BuiltShips)
	assert.Equal(t, src.Encounters, dst.Encounters)
	assert.Equal(t, src.Star, dst.Star)

	for _, id := range []statefile.ID{statefile.StarInfoFile, statefile.RandomGroupFile, statefile.DefinedGroupFile} {
		assert.Equal(t, src.Files.Snapshot(id), dst.Files.Snapshot(id), "state file %d", id)
	}

	assert.Equal(t, store, dst.Groups.BattleGroupRef)
	assert.Equal(t, store.Offset, dst.State.BattleGroupOffset(3))
	require.True(t, dst.Groups.GetGroupInfo(store, 1))
	assert.Equal(t, defined, dst.Groups.NPCShips)
}

func TestInterplanetaryRoundTrip(t *testing.T) {
	src := newGame(t)
	src.Groups.EnterSystem(17, starmap.Star{}, twoPlanets{})
	addShips(t, src, &src.Groups.NPCShips, fleet.Mycon, 2)
	want := append([]fleet.ShipFragment(nil), src.Groups.NPCShips...)
	src.Groups.PutGroupInfo(grpinfo.RandomGroups, 1)
	src.Groups.NPCShips = nil
	require.True(t, src.Groups.GetGroupInfo(grpinfo.RandomGroups, grpinfo.GroupInitIP))
	require.Len(t, src.Groups.IPGroups, 1)

	src.Global.CurrentActivity = InInterplanetary
	data := saveBytes(t, src, "in system")
	tags := chunkTags(t, data)
	assert.Contains(t, tags, GroupListTag)
	assert.Contains(t, tags, IPGroupQTag)

	dst := newGame(t)
	require.NoError(t, Load(bytes.NewReader(data), dst))
	assert.Equal(t, InInterplanetary|StartInterplanetary, dst.NextActivity)
	assert.Equal(t, src.Groups.IPGroups, dst.Groups.IPGroups)
	assert.True(t, dst.Groups.BattleGroupRef.IsRandom())

	require.True(t, dst.Groups.GetGroupInfo(grpinfo.RandomGroups, 1))
	assert.Equal(t, want, dst.Groups.NPCShips)
}

func TestSummary(t *testing.T) {
	g := newGame(t)
	g.Global.CurrentActivity = InInterplanetary
	g.PlanetName = func() string { return "Earth" }
	g.State.Set("GLOBAL_FLAGS_AND_DATA", 0xFF)
	g.State.Set("MELNORME_CREDIT0", 0x34)
	g.State.Set("MELNORME_CREDIT1", 0x12)
	g.State.Set("PORTAL_SPAWNER_ON_SHIP", 1)
	g.State.Set("ULTRON_CONDITION", 3)
	g.State.Set("MOONBASE_ON_SHIP", 1)
	g.State.Set("LANDER_SHIELDS", 5)
	g.State.Set("IMPROVED_LANDER_SPEED", 1)
	g.State.Set("CHMMR_BOMB_STATE", 2)
	addShips(t, g, &g.BuiltShips, fleet.Human, 14)

	name := strings.Repeat("x", 100)
	sum := g.PrepareSummary(name)
	assert.Equal(t, InStarbase, sum.Activity)
	assert.Equal(t, "Earth", sum.SIS.PlanetName)
	assert.Empty(t, g.SIS.PlanetName)
	assert.Equal(t, uint16(0x1234), sum.Credits())
	assert.Equal(t, uint8(MaxBuiltShips), sum.NumShips)
	assert.Equal(t, uint8(3), sum.NumDevices)
	assert.Equal(t, []uint8{uint8(PortalSpawner), uint8(Ultron2), uint8(LunarBase)}, sum.DeviceList[:3])
	assert.Equal(t, uint8(5|1<<4|1<<7), sum.Flags)
	assert.Len(t, sum.SaveName, SaveNameSize-1)

	got, err := ReadSummary(bytes.NewReader(saveBytes(t, g, name)))
	require.NoError(t, err)
	assert.Equal(t, sum, got)
}

func TestSummaryActivityRemap(t *testing.T) {
	g := newGame(t)

	g.Global.CurrentActivity = InHyperspace
	g.InQuasiSpace = true
	assert.Equal(t, InQuasispace, g.PrepareSummary("").Activity)

	g.Global.CurrentActivity = InInterplanetary
	g.InPlanetOrbit = true
	assert.Equal(t, InPlanetOrbit, g.PrepareSummary("").Activity)

	g.Global.CurrentActivity = InLastBattle
	sum := g.PrepareSummary("")
	assert.Equal(t, InLastBattle, sum.Activity)
	assert.Equal(t, "Sa-Matra", sum.SIS.PlanetName)
}

func TestLoadRejectsDamagedFiles(t *testing.T) {
	g := newGame(t)
	g.Global.CurrentActivity = InHyperspace
	good := saveBytes(t, g, "good")

	err := Load(strings.NewReader("definitely not a save"), newGame(t))
	assert.ErrorIs(t, err, ErrNotSaveFile)

	err = Load(bytes.NewReader(good[:len(good)-5]), newGame(t))
	assert.ErrorIs(t, err, ErrCorrupt)

	g.Global.FuelCost = 19
	err = Load(bytes.NewReader(saveBytes(t, g, "bad fuel")), newGame(t))
	assert.ErrorIs(t, err, ErrCorrupt)

	// a tag with no size after it
	err = Load(bytes.NewReader(append(append([]byte(nil), good...), 1, 2, 3, 4)), newGame(t))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadSkipsUnknownChunks(t *testing.T) {
	g := newGame(t)
	g.Global.CurrentActivity = InHyperspace
	addShips(t, g, &g.BuiltShips, fleet.Human, 1)
	data := saveBytes(t, g, "extra")

	extra := []byte{0xEF, 0xBE, 0xAD, 0xDE, 3, 0, 0, 0, 9, 9, 9}
	data = append(append([]byte(nil), data...), extra...)

	dst := newGame(t)
	require.NoError(t, Load(bytes.NewReader(data), dst))
	assert.Equal(t, g.BuiltShips, dst.BuiltShips)
}

type failAfter struct {
	left int
}

var errDiskFull = errors.New("disk full")

func (f *failAfter) Write(p []byte) (int, error) {
	if len(p) > f.left {
		n := f.left
		f.left = 0
		return n, errDiskFull
	}
	f.left -= len(p)
	return len(p), nil
}

func TestWriterErrorIsSticky(t *testing.T) {
	w := NewWriter(&failAfter{left: 5})
	require.NoError(t, w.U32(1))
	assert.ErrorIs(t, w.U16(2), errDiskFull)
	assert.Equal(t, int64(5), w.Written())

	assert.ErrorIs(t, w.U8(3), errDiskFull)
	assert.ErrorIs(t, w.Str("abc", 8), errDiskFull)
	assert.Equal(t, int64(5), w.Written())

	g := newGame(t)
	assert.ErrorIs(t, Save(&failAfter{left: 100}, g, "short"), errDiskFull)
}

func TestSaveFile(t *testing.T) {
	g := newGame(t)
	g.Global.CurrentActivity = InHyperspace
	path := filepath.Join(t.TempDir(), "saves", "slot0")

	require.NoError(t, SaveFile(path, g, "file"))
	sum, err := ReadSummaryFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file", sum.SaveName)

	dst := newGame(t)
	require.NoError(t, LoadFile(path, dst))
	assert.Equal(t, g.SIS, dst.SIS)
}
