package cube

import "fmt"

// Piece counts and orientation moduli.
const (
	NumCorners = 8
	NumEdges   = 12

	CornerOrientations = 3
	EdgeOrientations   = 2
)

// Corner positions, named by the faces they touch.
const (
	URF = iota
	UFL
	ULB
	UBR
	DFR
	DLF
	DBL
	DRB
)

// Edge positions, named by the faces they touch.
const (
	UR = iota
	UF
	UL
	UB
	DR
	DF
	DL
	DB
	FR
	FL
	BL
	BR
)

// State is a cube configuration in cubie form.
//
// CP[i] is the corner piece occupying corner position i and CO[i] its twist
// (0-2); EP and EO are the same for edges with flips 0-1. State is a value
// type: it is comparable, can be used as a map key and every operation
// returns a new State.
type State struct {
	CP [NumCorners]uint8
	CO [NumCorners]uint8
	EP [NumEdges]uint8
	EO [NumEdges]uint8
}

// Solved returns the identity state.
func Solved() State {
	var s State
	for i := range s.CP {
		s.CP[i] = uint8(i)
	}
	for i := range s.EP {
		s.EP[i] = uint8(i)
	}
	return s
}

// IsSolved returns true if every piece is home and unturned.
func (s State) IsSolved() bool {
	return s == Solved()
}

// Multiply returns s followed by t. Viewing both as group elements, the
// piece at position i of the result is the piece s holds at position t.CP[i],
// with the twists of both added.
func (s State) Multiply(t State) State {
	var r State
	for i := 0; i < NumCorners; i++ {
		from := t.CP[i]
		r.CP[i] = s.CP[from]
		r.CO[i] = (s.CO[from] + t.CO[i]) % CornerOrientations
	}
	for i := 0; i < NumEdges; i++ {
		from := t.EP[i]
		r.EP[i] = s.EP[from]
		r.EO[i] = (s.EO[from] + t.EO[i]) % EdgeOrientations
	}
	return r
}

// Inverse returns the state t such that s.Multiply(t) is solved.
func (s State) Inverse() State {
	var r State
	for i := 0; i < NumCorners; i++ {
		r.CP[s.CP[i]] = uint8(i)
	}
	for i := 0; i < NumCorners; i++ {
		r.CO[i] = (CornerOrientations - s.CO[r.CP[i]]) % CornerOrientations
	}
	for i := 0; i < NumEdges; i++ {
		r.EP[s.EP[i]] = uint8(i)
	}
	for i := 0; i < NumEdges; i++ {
		r.EO[i] = (EdgeOrientations - s.EO[r.EP[i]]) % EdgeOrientations
	}
	return r
}

// Apply returns the state after turning m.
func (s State) Apply(m Move) State {
	return s.Multiply(m.action)
}

// ApplyMoves returns the state after turning every move in order.
func (s State) ApplyMoves(moves []Move) State {
	for _, m := range moves {
		s = s.Multiply(m.action)
	}
	return s
}

// Validate checks that s is reachable from the solved state by face turns:
// both permutations are valid and of equal parity, orientations are in range
// and the twist and flip totals vanish.
func (s State) Validate() error {
	var seenC [NumCorners]bool
	twist := 0
	for i, p := range s.CP {
		if int(p) >= NumCorners || seenC[p] {
			return fmt.Errorf("%w: corner permutation invalid at position %d", ErrInvalidState, i)
		}
		seenC[p] = true
		if s.CO[i] >= CornerOrientations {
			return fmt.Errorf("%w: corner twist %d out of range at position %d", ErrInvalidState, s.CO[i], i)
		}
		twist += int(s.CO[i])
	}
	if twist%CornerOrientations != 0 {
		return fmt.Errorf("%w: corner twist total is %d", ErrInvalidState, twist)
	}

	var seenE [NumEdges]bool
	flip := 0
	for i, p := range s.EP {
		if int(p) >= NumEdges || seenE[p] {
			return fmt.Errorf("%w: edge permutation invalid at position %d", ErrInvalidState, i)
		}
		seenE[p] = true
		if s.EO[i] >= EdgeOrientations {
			return fmt.Errorf("%w: edge flip %d out of range at position %d", ErrInvalidState, s.EO[i], i)
		}
		flip += int(s.EO[i])
	}
	if flip%EdgeOrientations != 0 {
		return fmt.Errorf("%w: edge flip total is %d", ErrInvalidState, flip)
	}

	if Parity(s.CP[:]) != Parity(s.EP[:]) {
		return fmt.Errorf("%w: corner and edge permutation parities differ", ErrInvalidState)
	}
	return nil
}

// Parity returns 1 for an odd permutation and 0 for an even one.
func Parity(perm []uint8) int {
	inversions := 0
	for i := 0; i < len(perm); i++ {
		for j := i + 1; j < len(perm); j++ {
			if perm[i] > perm[j] {
				inversions++
			}
		}
	}
	return inversions % 2
}
