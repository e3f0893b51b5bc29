package save

import (
	"encoding/binary"
	"io"
)

// Writer emits little-endian fields. The first failed write is kept and
// every later call becomes a no-op returning it.
type Writer struct {
	w   io.Writer
	err error
	n   int64
	buf [4]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Err() error { return w.err }

// Written counts the bytes accepted so far
func (w *Writer) Written() int64 { return w.n }

func (w *Writer) write(p []byte) error {
	if w.err != nil {
		return w.err
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return err
}

func (w *Writer) U8(v uint8) error {
	w.buf[0] = v
	return w.write(w.buf[:1])
}

func (w *Writer) U16(v uint16) error {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

func (w *Writer) U32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.write(w.buf[:4])
}

func (w *Writer) S16(v int16) error { return w.U16(uint16(v)) }

func (w *Writer) S32(v int32) error { return w.U32(uint32(v)) }

func (w *Writer) A8(p []byte) error { return w.write(p) }

func (w *Writer) A16(v []uint16) error {
	for _, x := range v {
		if err := w.U16(x); err != nil {
			return err
		}
	}
	return w.err
}

// Str writes s into a field of exactly n bytes: truncated when longer,
// NUL padded when shorter, never terminated.
func (w *Writer) Str(s string, n int) error {
	p := make([]byte, n)
	copy(p, s)
	return w.write(p)
}

// Chunk writes a chunk header
func (w *Writer) Chunk(tag uint32, size int) error {
	if err := w.U32(tag); err != nil {
		return err
	}
	return w.U32(uint32(size))
}

// Reader is the sticky-error counterpart of Writer
type Reader struct {
	r   io.Reader
	err error
	buf [4]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Err() error { return r.err }

func (r *Reader) read(p []byte) bool {
	if r.err != nil {
		return false
	}
	_, r.err = io.ReadFull(r.r, p)
	return r.err == nil
}

func (r *Reader) U8() uint8 {
	if !r.read(r.buf[:1]) {
		return 0
	}
	return r.buf[0]
}

func (r *Reader) U16() uint16 {
	if !r.read(r.buf[:2]) {
		return 0
	}
	return binary.LittleEndian.Uint16(r.buf[:2])
}

func (r *Reader) U32() uint32 {
	if !r.read(r.buf[:4]) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf[:4])
}

func (r *Reader) S16() int16 { return int16(r.U16()) }

func (r *Reader) S32() int32 { return int32(r.U32()) }

func (r *Reader) A8(p []byte) { r.read(p) }

func (r *Reader) A16(v []uint16) {
	for i := range v {
		v[i] = r.U16()
	}
}

// Str reads a fixed n-byte field and cuts it at the first NUL
func (r *Reader) Str(n int) string {
	p := make([]byte, n)
	if !r.read(p) {
		return ""
	}
	for i, b := range p {
		if b == 0 {
			return string(p[:i])
		}
	}
	return string(p)
}

// Skip discards n bytes
func (r *Reader) Skip(n int64) {
	if r.err != nil || n <= 0 {
		return
	}
	var copied int64
	copied, r.err = io.CopyN(io.Discard, r.r, n)
	if r.err == io.EOF && copied < n {
		r.err = io.ErrUnexpectedEOF
	}
}

// NextChunk reads a chunk header. ok is false at a clean end of input;
// a tag without a size is reported through Err.
func (r *Reader) NextChunk() (tag uint32, size uint32, ok bool) {
	if r.err != nil {
		return 0, 0, false
	}
	n, err := io.ReadFull(r.r, r.buf[:4])
	if err == io.EOF && n == 0 {
		return 0, 0, false
	}
	if err != nil {
		r.err = io.ErrUnexpectedEOF
		return 0, 0, false
	}
	tag = binary.LittleEndian.Uint32(r.buf[:4])
	size = r.U32()
	if r.err != nil {
		r.err = io.ErrUnexpectedEOF
		return 0, 0, false
	}
	return tag, size, true
}
