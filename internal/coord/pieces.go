package coord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Pieces tracks the position and orientation of a chosen set of corners or
// edges.
//
// The coordinate is rank*OriSize + orientation, where rank orders the
// positions of the tracked pieces (in the order they were given) among all
// ordered selections of positions, and orientation reads their twists or
// flips as a base-3 or base-2 number. When every piece of the kind is
// tracked the last orientation is implied by the others and is left out.
type Pieces struct {
	kind   Kind
	pieces []uint8
	index  [cube.NumEdges]int8 // piece -> slot in pieces, -1 if untracked
	n, o   int
	free   int // orientations stored in the coordinate
	perm   uint64
	ori    uint64
	name   string

	actions [cube.NumMoves]pieceAction
}

// pieceAction is the effect of a move on single pieces: the piece at
// position p moves to dest[p] and gains delta[dest[p]] orientation.
type pieceAction struct {
	dest  [cube.NumEdges]uint8
	delta [cube.NumEdges]uint8
}

// NewPieces builds the projection tracking pieces of the given kind.
func NewPieces(kind Kind, pieces []int) (*Pieces, error) {
	if kind != Corner && kind != Edge {
		return nil, fmt.Errorf("%w: unknown piece kind %d", ErrInvalidProjection, kind)
	}
	n, o := kind.count()
	if len(pieces) == 0 || len(pieces) > n {
		return nil, fmt.Errorf("%w: %d %s tracked, want 1..%d", ErrInvalidProjection, len(pieces), kind, n)
	}

	p := &Pieces{kind: kind, n: n, o: o}
	for i := range p.index {
		p.index[i] = -1
	}
	names := make([]string, len(pieces))
	for i, piece := range pieces {
		if piece < 0 || piece >= n {
			return nil, fmt.Errorf("%w: %s piece %d out of range", ErrInvalidProjection, kind, piece)
		}
		if p.index[piece] >= 0 {
			return nil, fmt.Errorf("%w: %s piece %d listed twice", ErrInvalidProjection, kind, piece)
		}
		p.index[piece] = int8(i)
		p.pieces = append(p.pieces, uint8(piece))
		names[i] = strconv.Itoa(piece)
	}

	k := len(pieces)
	p.free = k
	if k == n {
		p.free = k - 1
	}
	p.perm = permutations(n, k)
	p.ori = pow(o, p.free)
	p.name = kind.String() + ":" + strings.Join(names, ",")

	for i, m := range cube.AllMoves() {
		p.actions[i] = p.actionOf(m)
	}
	return p, nil
}

func mustPieces(kind Kind, pieces ...int) *Pieces {
	p, err := NewPieces(kind, pieces)
	if err != nil {
		panic(err)
	}
	return p
}

// Edges tracks the given edges.
func Edges(pieces ...int) (*Pieces, error) {
	return NewPieces(Edge, pieces)
}

// CornerSubset tracks the given corners.
func CornerSubset(pieces ...int) (*Pieces, error) {
	return NewPieces(Corner, pieces)
}

// EdgesLow tracks edges 0 to 5, the first half of the edge split.
func EdgesLow() *Pieces {
	return mustPieces(Edge, 0, 1, 2, 3, 4, 5)
}

// EdgesHigh tracks edges 6 to 11.
func EdgesHigh() *Pieces {
	return mustPieces(Edge, 6, 7, 8, 9, 10, 11)
}

// EdgeGroups splits the edges into consecutive groups of the given sizes,
// for example 6,6 or 7,5. Sizes may sum to less than 12; uncovered edges are
// simply not tracked.
func EdgeGroups(sizes ...int) ([]*Pieces, error) {
	total := 0
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: edge group size %d", ErrInvalidProjection, s)
		}
		total += s
	}
	if len(sizes) == 0 || total > cube.NumEdges {
		return nil, fmt.Errorf("%w: edge groups %v", ErrInvalidProjection, sizes)
	}

	groups := make([]*Pieces, 0, len(sizes))
	next := 0
	for _, s := range sizes {
		pieces := make([]int, s)
		for i := range pieces {
			pieces[i] = next
			next++
		}
		g, err := Edges(pieces...)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (p *Pieces) Name() string { return p.name }
func (p *Pieces) Kind() Kind   { return p.kind }
func (p *Pieces) Size() uint64 { return p.perm * p.ori }

// Pieces returns the tracked pieces in coordinate order.
func (p *Pieces) Pieces() []int {
	r := make([]int, len(p.pieces))
	for i, v := range p.pieces {
		r[i] = int(v)
	}
	return r
}

// arrays returns the permutation and orientation arrays of s for the kind.
func (p *Pieces) arrays(s *cube.State) (perm, ori []uint8) {
	if p.kind == Corner {
		return s.CP[:], s.CO[:]
	}
	return s.EP[:], s.EO[:]
}

func (p *Pieces) locate(s cube.State, pos, ori []uint8) {
	perm, orient := p.arrays(&s)
	for at, piece := range perm {
		if i := p.index[piece]; i >= 0 {
			pos[i] = uint8(at)
			ori[i] = orient[at]
		}
	}
}

func (p *Pieces) coordinate(pos, ori []uint8) uint64 {
	return rankPartial(pos, p.n)*p.ori + rankDigits(ori[:p.free], p.o)
}

func (p *Pieces) Encode(s cube.State) uint64 {
	var pos, ori [cube.NumEdges]uint8
	k := len(p.pieces)
	p.locate(s, pos[:k], ori[:k])
	return p.coordinate(pos[:k], ori[:k])
}

func (p *Pieces) split(c uint64, pos, ori []uint8) {
	unrankPartial(c/p.ori, p.n, pos)
	unrankDigits(c%p.ori, p.o, ori[:p.free])
	if p.free < len(ori) {
		ori[p.free] = completeOrientation(ori[:p.free], p.o)
	}
}

// place writes the tracked pieces into s and parks the others, in ascending
// order and unturned, on the free positions.
func (p *Pieces) place(s *cube.State, pos, ori []uint8) {
	perm, orient := p.arrays(s)
	var taken [cube.NumEdges]bool
	for i, at := range pos {
		perm[at] = p.pieces[i]
		orient[at] = ori[i]
		taken[at] = true
	}
	at := 0
	for piece := 0; piece < p.n; piece++ {
		if p.index[piece] >= 0 {
			continue
		}
		for taken[at] {
			at++
		}
		perm[at] = uint8(piece)
		orient[at] = 0
		at++
	}
}

func (p *Pieces) Decode(c uint64) (cube.State, error) {
	if c >= p.Size() {
		return cube.State{}, fmt.Errorf("%w: %d not below %d for %s", ErrInvalidCoordinate, c, p.Size(), p.name)
	}
	var pos, ori [cube.NumEdges]uint8
	k := len(p.pieces)
	p.split(c, pos[:k], ori[:k])
	s := cube.Solved()
	p.place(&s, pos[:k], ori[:k])
	return s, nil
}

func (p *Pieces) Project(s cube.State) cube.State {
	var pos, ori [cube.NumEdges]uint8
	k := len(p.pieces)
	p.locate(s, pos[:k], ori[:k])
	r := cube.Solved()
	p.place(&r, pos[:k], ori[:k])
	return r
}

func (p *Pieces) actionOf(m cube.Move) pieceAction {
	var a pieceAction
	act := m.Action()
	perm, ori := p.arrays(&act)
	for i := 0; i < p.n; i++ {
		a.dest[perm[i]] = uint8(i)
		a.delta[i] = ori[i]
	}
	return a
}

func (p *Pieces) Move(c uint64, m cube.Move) uint64 {
	if c >= p.Size() {
		panic(fmt.Errorf("%w: %s coordinate %d", ErrInvalidCoordinate, p.name, c))
	}
	var a pieceAction
	if i := m.Index(); i >= 0 {
		a = p.actions[i]
	} else {
		a = p.actionOf(m)
	}

	var pos, ori [cube.NumEdges]uint8
	k := len(p.pieces)
	p.split(c, pos[:k], ori[:k])
	for i := 0; i < k; i++ {
		to := a.dest[pos[i]]
		pos[i] = to
		ori[i] = (ori[i] + a.delta[to]) % uint8(p.o)
	}
	return p.coordinate(pos[:k], ori[:k])
}
