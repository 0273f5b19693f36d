// Package pdb builds, stores and loads pattern databases: tables giving,
// for every coordinate of a projection, the exact number of face turns
// needed to reach the solved coordinate.
package pdb

import (
	"fmt"
	"sync/atomic"
)

// Supported distance widths in bits.
const (
	Width4 = 4
	Width8 = 8
)

// Table is a packed array of distances indexed by coordinate. Distances are
// stored in 4- or 8-bit slots inside 32-bit words; the all-ones slot value
// means the coordinate has not been reached.
//
// A Table is written only while it is being built. Once returned by Build or
// Load it is read-only and safe for concurrent use.
type Table struct {
	name     string
	size     uint64
	width    uint8
	maxDepth uint8
	words    []uint32
}

func validWidth(width uint8) bool {
	return width == Width4 || width == Width8
}

// wordsFor returns the number of 32-bit words holding size slots.
func wordsFor(size uint64, width uint8) uint64 {
	perWord := uint64(32 / width)
	return (size + perWord - 1) / perWord
}

// TableBytes returns the memory taken by the distances of a table.
func TableBytes(size uint64, width uint8) uint64 {
	return wordsFor(size, width) * 4
}

func newTable(name string, size uint64, width uint8) (*Table, error) {
	if !validWidth(width) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	t := &Table{
		name:  name,
		size:  size,
		width: width,
		words: make([]uint32, wordsFor(size, width)),
	}
	for i := range t.words {
		t.words[i] = ^uint32(0)
	}
	return t, nil
}

// Name returns the name of the projection the table was built for.
func (t *Table) Name() string { return t.name }

// Size returns the number of coordinates.
func (t *Table) Size() uint64 { return t.size }

// Width returns the number of bits per distance.
func (t *Table) Width() uint8 { return t.width }

// MaxDepth returns the largest distance in the table.
func (t *Table) MaxDepth() uint8 { return t.maxDepth }

// Bytes returns the memory taken by the distances.
func (t *Table) Bytes() uint64 { return uint64(len(t.words)) * 4 }

// Unknown returns the slot value of an unreached coordinate.
func (t *Table) Unknown() uint8 {
	return uint8(1<<t.width - 1)
}

func (t *Table) slot(c uint64) (word uint64, shift uint) {
	perWord := uint64(32 / t.width)
	return c / perWord, uint(c%perWord) * uint(t.width)
}

// Get returns the distance of coordinate c, or Unknown() if it was never
// reached.
func (t *Table) Get(c uint64) uint8 {
	w, shift := t.slot(c)
	mask := uint32(1)<<t.width - 1
	return uint8(t.words[w] >> shift & mask)
}

// Distance returns the distance of c and whether it is known.
func (t *Table) Distance(c uint64) (int, bool) {
	if c >= t.size {
		return 0, false
	}
	d := t.Get(c)
	if d == t.Unknown() {
		return 0, false
	}
	return int(d), true
}

// load reads a slot while other goroutines may be claiming.
func (t *Table) load(c uint64) uint8 {
	w, shift := t.slot(c)
	mask := uint32(1)<<t.width - 1
	return uint8(atomic.LoadUint32(&t.words[w]) >> shift & mask)
}

// claim sets the distance of c to d if c is still unknown, and reports
// whether this call did it. Slots sharing a word are claimed with a
// compare-and-swap loop, so concurrent claims never lose an update and
// each coordinate is written once.
func (t *Table) claim(c uint64, d uint8) bool {
	w, shift := t.slot(c)
	mask := uint32(1)<<t.width - 1
	addr := &t.words[w]
	for {
		old := atomic.LoadUint32(addr)
		if old>>shift&mask != mask {
			return false
		}
		updated := old&^(mask<<shift) | uint32(d)<<shift
		if atomic.CompareAndSwapUint32(addr, old, updated) {
			return true
		}
	}
}
