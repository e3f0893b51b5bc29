package statefile

const (
	MineralScan = iota
	EnergyScan
	BiologicalScan

	NumScanTypes
)

const (
	offsetSize     = 4
	ScanRecordSize = 4*NumScanTypes + NumScanTypes*32
)

// ScanRecord remembers which surface nodes of one world were already taken
type ScanRecord struct {
	RetrieveMask       [NumScanTypes]uint32
	PartiallyScavenged [NumScanTypes][32]uint8
}

// PlanetLoc addresses one world: Moon 0 is the planet, 1.. its moons
type PlanetLoc struct {
	Star   int
	Planet int
	Moon   int
}

// SystemLayout lists the moon count of every planet of a system
type SystemLayout []int

// InitPlanetInfo writes an empty offset for every star
func (s *Store) InitPlanetInfo(numStars int) error {
	f, err := s.Open(StarInfoFile, "wb")
	if err != nil {
		return err
	}
	defer f.Close()

	for i := 0; i < numStars; i++ {
		if !f.WriteU32(0) {
			return ErrNoSpace
		}
	}
	return nil
}

// UninitPlanetInfo releases the scan-info file
func (s *Store) UninitPlanetInfo() {
	s.Delete(StarInfoFile)
}

// GetPlanetInfo returns a zero record for systems never scanned
func (s *Store) GetPlanetInfo(loc PlanetLoc, layout SystemLayout) ScanRecord {
	var rec ScanRecord

	f, err := s.Open(StarInfoFile, "rb")
	if err != nil {
		return rec
	}
	defer f.Close()

	if f.Seek(int64(loc.Star*offsetSize), SeekSet) != nil {
		return rec
	}
	offset, ok := f.ReadU32()
	if !ok || offset == 0 {
		return rec
	}

	if f.Seek(int64(recordOffset(offset, loc, layout)), SeekSet) != nil {
		return rec
	}
	readScanRecord(f, &rec)
	return rec
}

// PutPlanetInfo allocates zeroed records for the whole system on first use,
// then stores rec for the addressed world.
func (s *Store) PutPlanetInfo(loc PlanetLoc, layout SystemLayout, rec ScanRecord) error {
	f, err := s.Open(StarInfoFile, "r+b")
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Seek(int64(loc.Star*offsetSize), SeekSet); err != nil {
		return err
	}
	offset, _ := f.ReadU32()

	if offset == 0 {
		offset = uint32(f.Length())

		if err := f.Seek(int64(loc.Star*offsetSize), SeekSet); err != nil {
			return err
		}
		if !f.WriteU32(offset) {
			return ErrNoSpace
		}

		if err := f.Seek(int64(offset), SeekSet); err != nil {
			return err
		}
		for _, moons := range layout {
			if !f.WriteZeros((moons + 1) * ScanRecordSize) {
				return ErrNoSpace
			}
		}
	}

	if err := f.Seek(int64(recordOffset(offset, loc, layout)), SeekSet); err != nil {
		return err
	}
	if !writeScanRecord(f, &rec) {
		return ErrNoSpace
	}
	return nil
}

func recordOffset(base uint32, loc PlanetLoc, layout SystemLayout) int {
	offset := int(base)
	for i := 0; i < loc.Planet && i < len(layout); i++ {
		offset += (layout[i] + 1) * ScanRecordSize
	}
	return offset + loc.Moon*ScanRecordSize
}

func readScanRecord(f *File, rec *ScanRecord) {
	for i := range rec.RetrieveMask {
		rec.RetrieveMask[i], _ = f.ReadU32()
	}
	for i := range rec.PartiallyScavenged {
		f.Read(rec.PartiallyScavenged[i][:], 1, 32)
	}
}

func writeScanRecord(f *File, rec *ScanRecord) bool {
	for _, mask := range rec.RetrieveMask {
		if !f.WriteU32(mask) {
			return false
		}
	}
	for i := range rec.PartiallyScavenged {
		if f.Write(rec.PartiallyScavenged[i][:], 1, 32) != 32 {
			return false
		}
	}
	return true
}
