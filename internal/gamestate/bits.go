// Package gamestate packs the named game-state values into the variable
// width bit stream stored in the GAME_STATE chunk of a save.
package gamestate

import (
	"errors"
	"log/slog"
)

// ErrShortBuffer is returned when a buffer cannot hold the schema
var ErrShortBuffer = errors.New("game state buffer shorter than schema")

// Field binds one schema entry to its storage. A field with an empty name
// and a non-zero width is a revision marker carrying the revision number.
type Field struct {
	Name  string
	Width uint8
	Get   func() uint32
	Set   func(uint32)
}

// Revision returns a marker introducing revision rev
func Revision(rev uint8) Field {
	return Field{Width: rev}
}

func (f Field) IsMarker() bool {
	return f.Name == ""
}

func bitmask(width uint8) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<width - 1
}

// TotalBits sums the widths up to the first marker newer than rev; a
// negative rev counts every field.
func TotalBits(schema []Field, rev int) int {
	total := 0
	for _, f := range schema {
		if !f.IsMarker() {
			total += int(f.Width)
		} else if rev >= 0 && int(f.Width) > rev {
			break
		}
	}
	return total
}

// RevisionByBytes finds the revision whose packed size is exactly n bytes,
// or -1 when none is.
func RevisionByBytes(schema []Field, n int) int {
	rev := 0
	total := 0
	for _, f := range schema {
		if !f.IsMarker() {
			total += int(f.Width)
			continue
		}
		if (total+7)>>3 >= n {
			break
		}
		rev = int(f.Width)
	}

	if (total+7)>>3 != n {
		return -1
	}
	return rev
}

type bitWriter struct {
	buf       []byte
	rest      uint32
	restCount uint
}

func (w *bitWriter) put(value uint8, count uint) {
	w.rest |= uint32(value&(1<<count-1)) << w.restCount
	w.restCount += count
	if w.restCount >= 8 {
		w.buf = append(w.buf, byte(w.rest))
		w.rest >>= 8
		w.restCount -= 8
	}
}

// Serialize packs every field, least significant byte first and each
// byte low bit first. Values wider than their field are masked.
func Serialize(schema []Field) []byte {
	totalBits := TotalBits(schema, -1)
	w := &bitWriter{buf: make([]byte, 0, (totalBits+7)/8)}

	for _, f := range schema {
		if f.IsMarker() {
			continue
		}

		value := f.Get()
		if value > bitmask(f.Width) {
			slog.Warn("Game state value does not fit its field",
				"component", "gamestate", "field", f.Name, "value", value, "width", f.Width)
		}

		bits := uint(f.Width)
		for bits >= 8 {
			w.put(uint8(value), 8)
			value >>= 8
			bits -= 8
		}
		if bits > 0 {
			w.put(uint8(value), bits)
		}
	}

	if w.restCount > 0 {
		w.put(0, 8-w.restCount)
	}
	return w.buf
}

type bitReader struct {
	buf []byte
	pos int
	bit uint
}

func (r *bitReader) get(count uint) uint32 {
	cur := uint32(r.buf[r.pos])
	if count <= 8-r.bit {
		v := (cur >> r.bit) & (1<<count - 1)
		if count == 8-r.bit {
			r.pos++
			r.bit = 0
		} else {
			r.bit += count
		}
		return v
	}

	next := uint32(r.buf[r.pos+1])
	v := ((cur >> r.bit) | (next << (8 - r.bit))) & (1<<count - 1)
	r.pos++
	r.bit += count - 8
	return v
}

// Deserialize restores every field from buf as written by revision rev.
// Fields behind a marker newer than rev are set to zero. Nothing is set
// when buf is too short.
func Deserialize(schema []Field, buf []byte, rev int) error {
	if len(buf)*8 < TotalBits(schema, rev) {
		slog.Error("Corrupt game state: fewer bytes than expected",
			"component", "gamestate", "bytes", len(buf), "revision", rev)
		return ErrShortBuffer
	}

	r := &bitReader{buf: buf}
	matchRev := true
	for _, f := range schema {
		if f.IsMarker() {
			if rev >= 0 && int(f.Width) > rev {
				matchRev = false
			}
			continue
		}

		var value uint32
		if matchRev {
			left := uint(f.Width)
			for left >= 8 {
				value |= r.get(8) << (uint(f.Width) - left)
				left -= 8
			}
			if left > 0 {
				value |= r.get(left) << (uint(f.Width) - left)
			}
		}
		f.Set(value)
	}
	return nil
}
