// Package random is the engine's Park-Miller minimal standard generator.
// Every generator in the repo takes an explicit *Context so that seeding a
// preview galaxy never disturbs the session's stream.
package random

const (
	a = 16807
	m = 2147483647
	q = 127773 // m / a
	r = 2836   // m % a
)

// DefaultSeed is the seed a fresh context starts from
const DefaultSeed uint32 = 12345

type Context struct {
	seed uint32
}

func New(seed uint32) *Context {
	c := &Context{}
	c.Seed(seed)
	return c
}

// Random advances the stream. The arithmetic is unsigned 32-bit, so the
// Schrage subtraction may wrap and is folded back by subtracting m.
func (c *Context) Random() uint32 {
	c.seed = a*(c.seed%q) - r*(c.seed/q)
	switch {
	case c.seed > m:
		c.seed -= m
	case c.seed == 0:
		c.seed = 1
	}
	return c.seed
}

// Seed coerces s into 1..m and returns the previously active seed
func (c *Context) Seed(s uint32) uint32 {
	if s == 0 {
		s = 1
	} else if s > m {
		s -= m
	}

	old := c.seed
	c.seed = s
	return old
}

// Current returns the seed without advancing
func (c *Context) Current() uint32 {
	return c.seed
}

func LoWord(v uint32) uint16 { return uint16(v) }
func HiWord(v uint32) uint16 { return uint16(v >> 16) }
func LoByte(v uint16) uint8  { return uint8(v) }
func HiByte(v uint16) uint8  { return uint8(v >> 8) }
