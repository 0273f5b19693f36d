// Package coord maps projections of a cube state to dense integer
// coordinates and back.
//
// A projection keeps only some of the pieces (all corners, a subset of
// corners, a group of edges) and forgets the rest. Each projection is a
// bijection between the projected states it can reach and [0, Size()), and
// can advance a coordinate by a move without rebuilding a cube.
package coord

import (
	"errors"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

var (
	ErrInvalidCoordinate = errors.New("gocube: invalid coordinate")
	ErrInvalidProjection = errors.New("gocube: invalid projection")
)

// Kind is the kind of piece a projection tracks.
type Kind uint8

const (
	Corner Kind = iota
	Edge
)

func (k Kind) String() string {
	switch k {
	case Corner:
		return "corners"
	case Edge:
		return "edges"
	default:
		return "unknown"
	}
}

// count returns the number of pieces and orientations of the kind.
func (k Kind) count() (n, o int) {
	if k == Corner {
		return cube.NumCorners, cube.CornerOrientations
	}
	return cube.NumEdges, cube.EdgeOrientations
}

// Projection is a coordinate system over part of the cube.
type Projection interface {
	// Name identifies the projection; ParseProjection(Name()) rebuilds it.
	Name() string
	Kind() Kind
	// Size is the number of coordinates, all of them reachable.
	Size() uint64
	Encode(s cube.State) uint64
	// Decode returns a representative state of the coordinate: the tracked
	// pieces in place, every other piece solved or parked in order.
	Decode(c uint64) (cube.State, error)
	// Project forgets the untracked pieces of s, so that
	// Decode(Encode(s)) == Project(s).
	Project(s cube.State) cube.State
	// Move returns the coordinate reached from c by turning m. It panics
	// if c is not below Size.
	Move(c uint64, m cube.Move) uint64
}
