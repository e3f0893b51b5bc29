package statefile

import "encoding/binary"

type File struct {
	store     *Store
	name      string
	sizeHint  int
	openCount int
	data      []byte
	used      int
	ptr       int
}

// Read copies whole items from the current position up to the logical end
// and returns how many were read.
func (f *File) Read(buf []byte, itemSize, itemCount int) int {
	if itemSize <= 0 || itemCount <= 0 {
		return 0
	}

	bytes := itemSize * itemCount
	if bytes > len(buf) {
		bytes = len(buf) - len(buf)%itemSize
	}

	if f.ptr >= f.used {
		return 0
	}
	if f.ptr+bytes > f.used {
		bytes = f.used - f.ptr
		bytes -= bytes % itemSize
	}

	if bytes > 0 {
		copy(buf, f.data[f.ptr:f.ptr+bytes])
		f.ptr += bytes
	}
	return bytes / itemSize
}

// Write grows the backing storage by at least half again on overflow and
// returns the number of items written, or 0 when growth is refused.
func (f *File) Write(buf []byte, itemSize, itemCount int) int {
	if itemSize <= 0 || itemCount <= 0 {
		return 0
	}

	bytes := itemSize * itemCount
	if bytes > len(buf) {
		bytes = len(buf) - len(buf)%itemSize
	}

	if f.ptr+bytes > len(f.data) {
		newSize := f.ptr + bytes
		if grown := len(f.data) * 3 / 2; newSize < grown {
			newSize = grown
		}
		if newSize > f.store.maxSize {
			if f.ptr+bytes > f.store.maxSize {
				return 0
			}
			newSize = f.store.maxSize
		}

		data := make([]byte, newSize)
		copy(data, f.data)
		f.data = data
		if newSize > f.sizeHint {
			f.sizeHint = newSize
		}
	}

	if bytes > 0 {
		copy(f.data[f.ptr:], buf[:bytes])
		f.ptr += bytes
		if f.ptr > f.used {
			f.used = f.ptr
		}
	}
	return bytes / itemSize
}

// Seek positions the file. A negative target leaves the position at 0 and
// reports ErrNegativeSeek.
func (f *File) Seek(offset int64, whence int) error {
	switch whence {
	case SeekCur:
		offset += int64(f.ptr)
	case SeekEnd:
		offset += int64(f.used)
	}

	if offset < 0 {
		f.ptr = 0
		f.store.logger.Warn("Negative state file seek", "file", f.name, "offset", offset)
		return ErrNegativeSeek
	}

	f.ptr = int(offset)
	return nil
}

func (f *File) Length() int { return f.used }

func (f *File) Tell() int { return f.ptr }

// Capacity is the size of the backing allocation
func (f *File) Capacity() int { return len(f.data) }

func (f *File) Close() {
	f.ptr = 0
	f.openCount--
	if f.openCount < 0 {
		f.store.logger.Warn("State file closed more often than opened",
			"file", f.name, "open_count", f.openCount)
	}
}

func (f *File) ReadU8() (uint8, bool) {
	var b [1]byte
	if f.Read(b[:], 1, 1) != 1 {
		return 0, false
	}
	return b[0], true
}

func (f *File) ReadU16() (uint16, bool) {
	var b [2]byte
	if f.Read(b[:], 2, 1) != 1 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b[:]), true
}

func (f *File) ReadU32() (uint32, bool) {
	var b [4]byte
	if f.Read(b[:], 4, 1) != 1 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[:]), true
}

func (f *File) WriteU8(v uint8) bool {
	return f.Write([]byte{v}, 1, 1) == 1
}

func (f *File) WriteU16(v uint16) bool {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return f.Write(b[:], 2, 1) == 1
}

func (f *File) WriteU32(v uint32) bool {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return f.Write(b[:], 4, 1) == 1
}

func (f *File) WriteZeros(n int) bool {
	if n <= 0 {
		return true
	}
	return f.Write(make([]byte, n), n, 1) == 1
}
