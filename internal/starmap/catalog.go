package starmap

import (
	"sync"

	"uqm-starseed/internal/random"
)

type canonEntry struct {
	At    Point
	Size  uint8
	Color uint8
}

// canon is the reference map: where each plot sits when nothing is seeded
// and the size and colour its star is restored to once a plot lands.
var canon = [NumPlots]canonEntry{
	Arilou: {riftPoint, DwarfStar, BlueBody},
	Sol:               {Point{1752, 1450}, DwarfStar, YellowBody},
	Shofixti:          {Point{2910, 2040}, DwarfStar, RedBody},
	Maidens:           {Point{4110, 1380}, DwarfStar, GreenBody},
	StartColony:       {Point{2280, 1210}, GiantStar, RedBody},
	Spathi:            {Point{2416, 3687}, DwarfStar, OrangeBody},
	ZoqFot:            {Point{4000, 5437}, GiantStar, OrangeBody},
	Melnorme0:         {Point{1000, 2500}, SuperGiantStar, GreenBody},
	Melnorme1:         {Point{6000, 600}, SuperGiantStar, BlueBody},
	Melnorme2:         {Point{9000, 4500}, SuperGiantStar, RedBody},
	Melnorme3:         {Point{5500, 8000}, SuperGiantStar, OrangeBody},
	Melnorme4:         {Point{2500, 8800}, SuperGiantStar, YellowBody},
	Melnorme5:         {Point{7500, 2000}, SuperGiantStar, WhiteBody},
	Melnorme6:         {Point{3500, 7000}, SuperGiantStar, GreenBody},
	Melnorme7:         {Point{8500, 7600}, SuperGiantStar, BlueBody},
	Melnorme8:         {Point{300, 4200}, SuperGiantStar, RedBody},
	TalkingPet:        {Point{1945, 6060}, GiantStar, RedBody},
	Chmmr:             {Point{5800, 2900}, DwarfStar, BlueBody},
	Syreen:            {Point{5500, 1300}, DwarfStar, WhiteBody},
	Burvixese:         {Point{4700, 9650}, GiantStar, RedBody},
	Slylandro:         {Point{390, 9750}, DwarfStar, YellowBody},
	Druuge:            {Point{9500, 2700}, GiantStar, OrangeBody},
	Bomb:              {Point{8100, 9350}, DwarfStar, OrangeBody},
	AquaHelix:         {Point{2770, 8250}, DwarfStar, GreenBody},
	SunDevice:         {Point{6650, 2590}, DwarfStar, YellowBody},
	TaaloProtector:    {Point{3820, 2950}, DwarfStar, BlueBody},
	ShipVault:         {Point{4650, 6350}, GiantStar, WhiteBody},
	UrquanWreck:       {Point{2800, 5300}, DwarfStar, RedBody},
	VuxBeast:          {Point{4250, 1870}, DwarfStar, OrangeBody},
	Samatra:           {Point{5940, 6100}, GiantStar, RedBody},
	ZoqScout:          {Point{3850, 4600}, DwarfStar, GreenBody},
	Mycon:             {Point{6600, 2070}, GiantStar, OrangeBody},
	EggCase0:          {Point{7000, 1800}, DwarfStar, RedBody},
	EggCase1:          {Point{7400, 2500}, DwarfStar, BlueBody},
	EggCase2:          {Point{6950, 3100}, DwarfStar, WhiteBody},
	Pkunk:             {Point{480, 420}, DwarfStar, BlueBody},
	Utwig:             {Point{8630, 8740}, GiantStar, YellowBody},
	Supox:             {Point{7470, 9200}, DwarfStar, GreenBody},
	Yehat:             {Point{4960, 100}, GiantStar, WhiteBody},
	Vux:               {Point{4500, 1600}, GiantStar, BlueBody},
	Orz:               {Point{3700, 2500}, DwarfStar, WhiteBody},
	Thradd:            {Point{2535, 8358}, GiantStar, OrangeBody},
	Rainbow0:          {Point{850, 3100}, DwarfStar, BlueBody},
	Rainbow1:          {Point{1600, 7700}, DwarfStar, BlueBody},
	Rainbow2:          {Point{3300, 3400}, DwarfStar, BlueBody},
	Rainbow3:          {Point{4900, 4300}, DwarfStar, BlueBody},
	Rainbow4:          {Point{6500, 4700}, DwarfStar, BlueBody},
	Rainbow5:          {Point{7900, 6000}, DwarfStar, BlueBody},
	Rainbow6:          {Point{9300, 7300}, DwarfStar, BlueBody},
	Rainbow7:          {Point{5600, 9200}, DwarfStar, BlueBody},
	Rainbow8:          {Point{2000, 9600}, DwarfStar, BlueBody},
	Rainbow9:          {Point{8800, 1200}, DwarfStar, BlueBody},
	Ilwrath:           {Point{230, 1700}, GiantStar, RedBody},
	Androsynth:        {Point{3100, 3900}, DwarfStar, YellowBody},
	MyconTrap:         {Point{5700, 3200}, GiantStar, GreenBody},
	Urquan0:           {Point{5800, 6500}, DwarfStar, RedBody},
	Urquan1:           {Point{6300, 5700}, DwarfStar, OrangeBody},
	Urquan2:           {Point{5300, 5800}, DwarfStar, RedBody},
	Kohrah0:           {Point{6200, 6500}, DwarfStar, WhiteBody},
	Kohrah1:           {Point{5600, 5500}, DwarfStar, BlueBody},
	Kohrah2:           {Point{6500, 6100}, DwarfStar, WhiteBody},
	DestroyedStarbase: {Point{5250, 6450}, DwarfStar, WhiteBody},
	MotherArk:         {Point{5000, 3400}, GiantStar, GreenBody},
	ZoqColony0:        {Point{3500, 5700}, DwarfStar, OrangeBody},
	ZoqColony1:        {Point{4400, 5900}, DwarfStar, YellowBody},
	ZoqColony2:        {Point{4300, 5000}, DwarfStar, RedBody},
	ZoqColony3:        {Point{3600, 5100}, DwarfStar, GreenBody},
	Algolites:         {Point{2200, 3400}, DwarfStar, RedBody},
	SpathiMonument:    {Point{2700, 3900}, DwarfStar, WhiteBody},
	ExcavationSite:    {Point{3300, 4200}, DwarfStar, OrangeBody},
}

// riftPoint is the reference location of the Arilou dimensional rift
var riftPoint = Point{X: 438, Y: 6372}

// Catalog layout. The filler stars are generated from a fixed seed so the
// reference map is identical on every run.
const (
	catalogSeed       = 0x5EED
	numConstellations = 88
	clusterRadius     = 400
	clusterJoin       = 700
	clusterTries      = 50
	starSpacing       = 60
)

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     []Star
)

// DefaultStarmap returns a fresh copy of the reference catalog. Plot stars
// carry their plot in Index.
func DefaultStarmap() []Star {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = buildCatalog()
	})
	return append([]Star(nil), defaultCatalog...)
}

func clampCoord(v, hi int32) int32 {
	switch {
	case v < 0:
		return 0
	case v > hi:
		return hi
	}
	return v
}

func tooClose(stars []Star, p Point, r int64) bool {
	for i := range stars {
		if stars[i].DistSq(p) < r*r {
			return true
		}
	}
	return false
}

func buildCatalog() []Star {
	rng := random.New(catalogSeed)
	stars := make([]Star, 0, NumSolarSystems)

	for p := Sol; p < NumPlots; p++ {
		c := canon[p]
		stars = append(stars, Star{Point: c.At, Type: MakeStar(c.Size, c.Color, 0), Index: p})
	}

	var centers []Point
	counts := map[uint8]uint8{}
	for c := uint8(1); c <= numConstellations && len(stars) < NumSolarSystems; c++ {
		rv := rng.Random()
		center := Point{
			X: int32(random.LoWord(rv) % 10000),
			Y: int32(random.HiWord(rv) % 10000),
		}
		centers = append(centers, center)

		n := 3 + rng.Random()%5
		var k uint8
		for tries := 0; uint32(k) < n && len(stars) < NumSolarSystems && tries < clusterTries; tries++ {
			rv = rng.Random()
			at := Point{
				X: clampCoord(center.X+int32(random.LoWord(rv)%(2*clusterRadius+1))-clusterRadius, MaxX),
				Y: clampCoord(center.Y+int32(random.HiWord(rv)%(2*clusterRadius+1))-clusterRadius, MaxY),
			}
			if tooClose(stars, at, starSpacing) {
				continue
			}
			rv = rng.Random()
			size := DwarfStar
			if random.LoWord(rv)%4 == 0 {
				size = GiantStar
			}
			k++
			stars = append(stars, Star{
				Point:   at,
				Type:    MakeStar(size, uint8(random.HiWord(rv)%uint16(numStarColors)), 0),
				Prefix:  k,
				Postfix: c,
			})
		}
		counts[c] = k
	}

	// Sol keeps its own name; every other plot star joins a nearby
	// constellation when one has room
	lone := uint8(numConstellations)
	for i := range stars {
		if stars[i].Index != Sol {
			continue
		}
		lone++
		stars[i].Postfix = lone
	}
	for i := range stars {
		s := &stars[i]
		if s.Index == NoPlot || s.Postfix != 0 {
			continue
		}
		best := -1
		var bestD int64
		for j, c := range centers {
			if d := s.DistSq(c); best < 0 || d < bestD {
				best, bestD = j, d
			}
		}
		if c := uint8(best + 1); best >= 0 && bestD < clusterJoin*clusterJoin && counts[c] < NumPrefixes {
			counts[c]++
			s.Prefix = counts[c]
			s.Postfix = c
			continue
		}
		lone++
		s.Postfix = lone
	}
	return stars
}

// SeedStarmap clears every plot and rolls a fresh size and colour for
// each star. Positions and names are untouched.
func SeedStarmap(stars []Star, rng *random.Context) {
	for i := range stars {
		s := &stars[i]
		s.Index = NoPlot
		rv := rng.Random()
		size := DwarfStar
		if random.LoWord(rv)%4 == 0 {
			size = GiantStar
		}
		s.Type = MakeStar(size, uint8(random.HiWord(rv)%uint16(numStarColors)), s.Owner())
	}
}
