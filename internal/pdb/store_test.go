package pdb

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := smallEdges(t, 0, 1, 2)
	table, err := Build(p, WithLogger(quietLogger()))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), FileName(p.Name()))
	require.NoError(t, Save(table, path))

	loaded, err := Load(path, p)
	require.NoError(t, err)
	assert.Equal(t, table.Name(), loaded.Name())
	assert.Equal(t, table.Size(), loaded.Size())
	assert.Equal(t, table.Width(), loaded.Width())
	assert.Equal(t, table.MaxDepth(), loaded.MaxDepth())
	assert.Equal(t, table.Checksum(), loaded.Checksum())

	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 200; i++ {
		s, _ := cube.Scramble(1+rng.Intn(12), rng)
		c := p.Encode(s)
		assert.Equal(t, table.Get(c), loaded.Get(c))
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "corners.pdb", FileName("corners"))
	assert.Equal(t, "edges_0_1_2.pdb", FileName("edges:0,1,2"))
}

// encoded returns a table file for p's table.
func encoded(t *testing.T, table *Table) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := table.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestLoadRejectsSizeMismatch(t *testing.T) {
	p := smallEdges(t, 0, 1)
	table, err := Build(p, WithLogger(quietLogger()))
	require.NoError(t, err)

	data := encoded(t, table)
	sizeAt := 6 + 2 + 2 + len(p.Name())
	binary.LittleEndian.PutUint64(data[sizeAt:], p.Size()+1)

	path := filepath.Join(t.TempDir(), "bad.pdb")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path, p)
	assert.ErrorIs(t, err, ErrCorruptTable)
	assert.Nil(t, loaded)
}

func TestLoadRejectsDamage(t *testing.T) {
	p := smallEdges(t, 0, 1)
	table, err := Build(p, WithLogger(quietLogger()))
	require.NoError(t, err)
	good := encoded(t, table)
	header := 6 + 2 + 2 + len(p.Name()) + 8 + 1 + 1 + 8

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"version", func(b []byte) []byte { b[6] = 9; return b }},
		{"width", func(b []byte) []byte { b[header-10] = 6; return b }},
		{"payload length", func(b []byte) []byte { b[header-8]++; return b }},
		{"payload", func(b []byte) []byte { b[header+3] ^= 0x10; return b }},
		{"checksum", func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }},
		{"truncated", func(b []byte) []byte { return b[:len(b)-10] }},
		{"empty", func(b []byte) []byte { return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), good...))
			loaded, err := Read(bytes.NewReader(data), p)
			assert.ErrorIs(t, err, ErrCorruptTable)
			assert.Nil(t, loaded)
		})
	}
}

func TestLoadRejectsUnreachedSlots(t *testing.T) {
	p := smallEdges(t, 0, 1)
	c := p.Move(p.Encode(cube.Solved()), cube.MoveAt(3))

	tests := []struct {
		name  string
		value func(*Table) uint8
	}{
		{"unknown", func(tb *Table) uint8 { return tb.Unknown() }},
		{"beyond max depth", func(tb *Table) uint8 { return tb.MaxDepth() + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Build(p, WithLogger(quietLogger()))
			require.NoError(t, err)
			require.Less(t, table.MaxDepth()+1, table.Unknown())

			w, shift := table.slot(c)
			mask := uint32(1)<<table.Width() - 1
			table.words[w] = table.words[w]&^(mask<<shift) | uint32(tt.value(table))<<shift
			require.Equal(t, tt.value(table), table.Get(c))

			loaded, err := Read(bytes.NewReader(encoded(t, table)), p)
			assert.ErrorIs(t, err, ErrCorruptTable)
			assert.Nil(t, loaded)
		})
	}
}

func TestLoadRejectsOtherProjection(t *testing.T) {
	p := smallEdges(t, 0, 1)
	table, err := Build(p, WithLogger(quietLogger()))
	require.NoError(t, err)

	other := smallEdges(t, 1, 0)
	require.Equal(t, p.Size(), other.Size())
	loaded, err := Read(bytes.NewReader(encoded(t, table)), other)
	assert.ErrorIs(t, err, ErrCorruptTable)
	assert.Nil(t, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.pdb"), smallEdges(t, 0))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerify(t *testing.T) {
	p := smallCorners(t, 0, 1, 2)
	table, err := Build(p, WithLogger(quietLogger()))
	require.NoError(t, err)

	require.NoError(t, Verify(table, p, 0, nil))
	require.NoError(t, Verify(table, p, 500, rand.New(rand.NewSource(1))))

	// push one coordinate two steps further than it really is
	var target uint64
	for c := uint64(0); c < table.Size(); c++ {
		if table.Get(c) == 1 {
			target = c
			break
		}
	}
	w, shift := table.slot(target)
	table.words[w] = table.words[w]&^(0xf<<shift) | 3<<shift
	assert.ErrorIs(t, Verify(table, p, 0, nil), ErrCorruptTable)
}
