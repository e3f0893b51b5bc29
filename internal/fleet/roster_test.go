package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqm-starseed/internal/random"
	"uqm-starseed/internal/starmap"
)

type plotMap map[starmap.Plot]starmap.Point

func (m plotMap) PlotPoint(p starmap.Plot) (starmap.Point, bool) {
	pt, ok := m[p]
	return pt, ok
}

func TestDefaultRoster(t *testing.T) {
	r := DefaultRoster()
	require.Len(t, r, int(NumRaces))

	spathi := r.Get(Spathi)
	assert.Equal(t, uint16(30), spathi.CrewLevel)
	assert.Equal(t, uint8(10), spathi.MaxEnergy)
	assert.Equal(t, uint16(1000/11*2), spathi.ActualStrength)
	assert.Equal(t, BadGuy, spathi.AlliedState)
	assert.Equal(t, uint8(NoFunction), spathi.FuncIndex)
	assert.Equal(t, 1, spathi.MinShips())
	assert.Equal(t, 5, spathi.MaxShips())
	assert.True(t, spathi.HasHomeworld)
	assert.Equal(t, starmap.Spathi, spathi.Homeworld)

	assert.Zero(t, r.Get(YehatRebel).ActualStrength)
	assert.False(t, r.Get(Human).HasHomeworld)
	assert.Nil(t, r.Get(NumRaces))
}

func TestSphereRadius(t *testing.T) {
	r := DefaultRoster()

	_, ok := r.Get(Chmmr).SphereRadius()
	assert.False(t, ok)

	radius, ok := r.Get(Melnorme).SphereRadius()
	assert.True(t, ok)
	assert.Equal(t, (starmap.MaxX+1)<<1, radius)

	radius, ok = r.Get(Vux).SphereRadius()
	assert.True(t, ok)
	assert.Equal(t, int(900/11*2)*11>>1, radius)
}

func TestCloneUsesTemplate(t *testing.T) {
	r := DefaultRoster()
	rng := random.New(7)

	frag, ok := r.Clone(rng, nil, Urquan, 0)
	require.True(t, ok)
	assert.Equal(t, Urquan, frag.Race)
	assert.Equal(t, uint16(42), frag.CrewLevel)
	assert.Equal(t, uint16(42), frag.MaxCrew)
	assert.Zero(t, frag.EnergyLevel)
	assert.Equal(t, uint8(42), frag.MaxEnergy)

	frag, ok = r.Clone(rng, nil, Urquan, 3)
	require.True(t, ok)
	assert.Equal(t, uint16(3), frag.CrewLevel)

	_, ok = r.Clone(rng, nil, NumRaces, 0)
	assert.False(t, ok)
}

func TestCloneAvoidsDuplicateCaptains(t *testing.T) {
	r := DefaultRoster()
	rng := random.New(99)

	var queue []ShipFragment
	for i := 0; i < NumCaptainNames; i++ {
		frag, ok := r.Clone(rng, queue, Spathi, 0)
		require.True(t, ok)
		queue = append(queue, frag)
	}

	seen := map[uint8]bool{}
	for _, s := range queue {
		assert.False(t, seen[s.CaptainIndex], "captain %d reused", s.CaptainIndex)
		seen[s.CaptainIndex] = true
	}
}

func TestSamatraHasNoCaptain(t *testing.T) {
	frag, ok := DefaultRoster().Clone(random.New(1), nil, Samatra, 0)
	require.True(t, ok)
	assert.Zero(t, frag.CaptainIndex)
}

func TestSeedFleets(t *testing.T) {
	plots := plotMap{
		starmap.Spathi:    {X: 5000, Y: 5000},
		starmap.Arilou:    {X: 100, Y: 200},
		starmap.Vux:       {X: 10, Y: 9990},
		starmap.Melnorme1: {X: 3000, Y: 3000},
	}

	r := DefaultRoster()
	r.SeedFleets(plots)

	assert.Equal(t, starmap.Point{X: 100, Y: 200}, r.Get(Arilou).Loc)

	spathi := r.Get(Spathi)
	assert.Equal(t, spathi.Loc, spathi.KnownLoc)
	limit := int32(spathi.ActualStrength) * SphereRadiusIncrement / 2
	assert.LessOrEqual(t, abs(spathi.Loc.X-5000), limit)
	assert.LessOrEqual(t, abs(spathi.Loc.Y-5000), limit)

	vux := r.Get(Vux)
	assert.True(t, vux.Loc.X >= 0 && vux.Loc.X < starmap.MaxX)
	assert.True(t, vux.Loc.Y >= 0 && vux.Loc.Y < starmap.MaxY)

	// not placed: keeps the template location
	assert.Equal(t, starmap.Point{X: 3608, Y: 2637}, r.Get(Orz).Loc)
	// infinite spheres stay put
	assert.Equal(t, center, r.Get(Melnorme).Loc)
}

func TestSeedFleetsDeterministic(t *testing.T) {
	plots := plotMap{starmap.Thradd: {X: 2500, Y: 8000}, starmap.AquaHelix: {X: 2000, Y: 7000}}

	a, b := DefaultRoster(), DefaultRoster()
	a.SeedFleets(plots)
	b.SeedFleets(plots)
	assert.Equal(t, a, b)
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
