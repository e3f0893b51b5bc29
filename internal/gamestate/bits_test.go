package gamestate

import (
	"testing"

	"uqm-starseed/internal/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFields struct {
	values map[string]uint32
}

func (m *mapFields) field(name string, width uint8) Field {
	return Field{
		Name:  name,
		Width: width,
		Get:   func() uint32 { return m.values[name] },
		Set:   func(v uint32) { m.values[name] = v },
	}
}

func randomSchema(rng *random.Context, m *mapFields, n int) []Field {
	schema := make([]Field, 0, n)
	for i := 0; i < n; i++ {
		width := uint8(rng.Random()%32) + 1
		schema = append(schema, m.field(string(rune('A'+i%26))+string(rune('a'+i/26)), width))
	}
	return schema
}

func TestRoundTripRandomSchemas(t *testing.T) {
	rng := random.New(2155)

	for round := 0; round < 50; round++ {
		src := &mapFields{values: map[string]uint32{}}
		n := int(rng.Random()%120) + 1
		schema := randomSchema(rng, src, n)

		want := map[string]uint32{}
		for _, f := range schema {
			v := (rng.Random() ^ rng.Random()<<1) & bitmask(f.Width)
			src.values[f.Name] = v
			want[f.Name] = v
		}

		buf := Serialize(schema)
		require.Len(t, buf, (TotalBits(schema, -1)+7)/8)

		clear(src.values)
		require.NoError(t, Deserialize(schema, buf, -1))
		assert.Equal(t, want, src.values, "round %d", round)
	}
}

func TestTruncationMasksValue(t *testing.T) {
	m := &mapFields{values: map[string]uint32{"A": 13, "B": 0x1FF, "C": 5}}
	schema := []Field{m.field("A", 3), m.field("B", 8), m.field("C", 3)}

	buf := Serialize(schema)
	require.NoError(t, Deserialize(schema, buf, -1))

	assert.Equal(t, uint32(13%8), m.values["A"])
	assert.Equal(t, uint32(0xFF), m.values["B"])
	assert.Equal(t, uint32(5), m.values["C"])
}

func TestBitLayout(t *testing.T) {
	m := &mapFields{values: map[string]uint32{"A": 0x5, "B": 0x1A3, "C": 1}}
	schema := []Field{m.field("A", 3), m.field("B", 9), m.field("C", 1)}

	// A in bits 0-2, B's low byte in bits 3-10, B's top bit in 11, C in 12
	assert.Equal(t, []byte{0x1D, 0x1D}, Serialize(schema))
}

func TestShortBufferSetsNothing(t *testing.T) {
	m := &mapFields{values: map[string]uint32{"A": 7, "B": 7}}
	schema := []Field{m.field("A", 8), m.field("B", 9)}

	err := Deserialize(schema, []byte{1, 2}, -1)
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.Equal(t, uint32(7), m.values["A"])
	assert.Equal(t, uint32(7), m.values["B"])
}

func TestRevisions(t *testing.T) {
	m := &mapFields{values: map[string]uint32{"A": 200, "B": 3, "C": 1}}
	schema := []Field{m.field("A", 8), Revision(1), m.field("B", 8), Revision(2), m.field("C", 8)}

	assert.Equal(t, 8, TotalBits(schema, 0))
	assert.Equal(t, 16, TotalBits(schema, 1))
	assert.Equal(t, 24, TotalBits(schema, -1))

	assert.Equal(t, 0, RevisionByBytes(schema, 1))
	assert.Equal(t, 1, RevisionByBytes(schema, 2))
	assert.Equal(t, 2, RevisionByBytes(schema, 3))
	assert.Equal(t, -1, RevisionByBytes(schema, 4))

	old := []byte{42}
	require.NoError(t, Deserialize(schema, old, 0))
	assert.Equal(t, uint32(42), m.values["A"])
	assert.Zero(t, m.values["B"])
	assert.Zero(t, m.values["C"])
}
