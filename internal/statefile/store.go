// Package statefile emulates three small growable files in memory so the
// group and scan-info record code can use ordinary seek/read/write idioms
// without touching disk until an explicit save.
package statefile

import (
	"errors"
	"log/slog"
	"math"
)

type ID int

const (
	StarInfoFile ID = iota
	RandomGroupFile
	DefinedGroupFile

	numFiles
)

const (
	SeekSet = iota
	SeekCur
	SeekEnd
)

var (
	ErrNoSpace      = errors.New("state file allocation failed")
	ErrNegativeSeek = errors.New("negative seek offset")
	ErrUnknownFile  = errors.New("unknown state file")
)

const (
	numSolarSystems = 502
	starHint        = numSolarSystems*4 + 3800*12
	randomHint      = 4 * 1024
	definedHint     = 10 * 1024
)

var fileNames = [numFiles]string{"STARINFO", "RANDGRPINFO", "DEFGRPINFO"}

var sizeHints = [numFiles]int{starHint, randomHint, definedHint}

// Store owns the three state files of one session
type Store struct {
	files   [numFiles]*File
	maxSize int
	logger  *slog.Logger
}

// NewStore limits every file to maxSize bytes; zero means unlimited
func NewStore(maxSize int, logger *slog.Logger) *Store {
	if maxSize <= 0 {
		maxSize = math.MaxInt32
	}

	s := &Store{maxSize: maxSize, logger: logger.With("component", "statefile")}
	for id := range s.files {
		s.files[id] = &File{
			store:    s,
			name:     fileNames[id],
			sizeHint: sizeHints[id],
		}
	}
	return s
}

// Open never refuses a second opener; modes starting with 'w' discard the
// logical contents but keep the allocation.
func (s *Store) Open(id ID, mode string) (*File, error) {
	if id < 0 || id >= numFiles {
		return nil, ErrUnknownFile
	}

	f := s.files[id]
	f.openCount++
	if f.openCount > 1 {
		s.logger.Warn("State file opened more than once",
			"file", f.name, "open_count", f.openCount)
	}

	if f.data == nil {
		if f.sizeHint > s.maxSize {
			f.openCount--
			return nil, ErrNoSpace
		}
		f.data = make([]byte, f.sizeHint)
	}

	switch {
	case len(mode) > 0 && mode[0] == 'w':
		f.used = 0
	case len(mode) > 0 && mode[0] == 'r':
	default:
		s.logger.Warn("State file opened with unsupported mode", "file", f.name, "mode", mode)
	}

	f.ptr = 0
	return f, nil
}

// Delete frees the storage of a file
func (s *Store) Delete(id ID) {
	if id < 0 || id >= numFiles {
		return
	}

	f := s.files[id]
	if f.openCount != 0 {
		s.logger.Warn("State file deleted while open", "file", f.name, "open_count", f.openCount)
	}
	f.used = 0
	f.ptr = 0
	f.data = nil
}

// Snapshot copies the logical contents of a file
func (s *Store) Snapshot(id ID) []byte {
	f := s.files[id]
	out := make([]byte, f.used)
	copy(out, f.data[:f.used])
	return out
}

// Restore replaces the contents of a file
func (s *Store) Restore(id ID, data []byte) error {
	f, err := s.Open(id, "wb")
	if err != nil {
		return err
	}
	defer f.Close()

	if len(data) > 0 && f.Write(data, len(data), 1) != 1 {
		return ErrNoSpace
	}
	return nil
}

// Length returns the logical length of a file without opening it
func (s *Store) Length(id ID) int {
	return s.files[id].used
}
