package cube

import (
	"fmt"
	"strings"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// quarters returns the number of clockwise quarter turns equivalent to t.
func (t Turn) quarters() int {
	switch t {
	case CW:
		return 1
	case Double:
		return 2
	case CCW:
		return 3
	default:
		return 0
	}
}

// NumMoves is the size of the face-turn move set (6 faces x 3 turns).
const NumMoves = NumFaces * 3

// Move is an element of the cube group: a named face turn together with the
// permutation and orientation change it induces on the pieces.
//
// Moves built by Compose or PermutationOnly keep a description but are not
// part of the canonical move set; Index reports -1 for them.
type Move struct {
	Face Face
	Turn Turn

	index  int8
	name   string
	action State
}

// baseTurns holds the clockwise quarter turn of each face in cubie form.
var baseTurns = [NumFaces]State{
	U: {
		CP: [NumCorners]uint8{UBR, URF, UFL, ULB, DFR, DLF, DBL, DRB},
		EP: [NumEdges]uint8{UB, UR, UF, UL, DR, DF, DL, DB, FR, FL, BL, BR},
	},
	R: {
		CP: [NumCorners]uint8{DFR, UFL, ULB, URF, DRB, DLF, DBL, UBR},
		CO: [NumCorners]uint8{2, 0, 0, 1, 1, 0, 0, 2},
		EP: [NumEdges]uint8{FR, UF, UL, UB, BR, DF, DL, DB, DR, FL, BL, UR},
	},
	F: {
		CP: [NumCorners]uint8{UFL, DLF, ULB, UBR, URF, DFR, DBL, DRB},
		CO: [NumCorners]uint8{1, 2, 0, 0, 2, 1, 0, 0},
		EP: [NumEdges]uint8{UR, FL, UL, UB, DR, FR, DL, DB, UF, DF, BL, BR},
		EO: [NumEdges]uint8{0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0},
	},
	D: {
		CP: [NumCorners]uint8{URF, UFL, ULB, UBR, DLF, DBL, DRB, DFR},
		EP: [NumEdges]uint8{UR, UF, UL, UB, DF, DL, DB, DR, FR, FL, BL, BR},
	},
	L: {
		CP: [NumCorners]uint8{URF, ULB, DBL, UBR, DFR, UFL, DLF, DRB},
		CO: [NumCorners]uint8{0, 1, 2, 0, 0, 2, 1, 0},
		EP: [NumEdges]uint8{UR, UF, BL, UB, DR, DF, FL, DB, FR, UL, DL, BR},
	},
	B: {
		CP: [NumCorners]uint8{URF, UFL, UBR, DRB, DFR, DLF, ULB, DBL},
		CO: [NumCorners]uint8{0, 0, 1, 2, 0, 0, 2, 1},
		EP: [NumEdges]uint8{UR, UF, UL, BR, DR, DF, DL, BL, FR, FL, UB, DB},
		EO: [NumEdges]uint8{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
	},
}

// allMoves is the canonical move set, ordered U, U2, U', R, R2, R', ...
var allMoves = buildMoves()

func buildMoves() [NumMoves]Move {
	var moves [NumMoves]Move
	for f := Face(0); f < NumFaces; f++ {
		for q, turn := range []Turn{CW, Double, CCW} {
			action := Solved()
			for i := 0; i <= q; i++ {
				action = action.Multiply(baseTurns[f])
			}
			idx := int(f)*3 + q
			moves[idx] = Move{Face: f, Turn: turn, index: int8(idx), action: action}
		}
	}
	return moves
}

// AllMoves returns the 18 face turns in canonical order.
func AllMoves() []Move {
	moves := make([]Move, NumMoves)
	copy(moves, allMoves[:])
	return moves
}

// MoveAt returns the canonical move with the given index.
func MoveAt(i int) Move {
	return allMoves[i]
}

// NewMove builds the face turn for a face and turn.
func NewMove(f Face, t Turn) (Move, error) {
	q := t.quarters()
	if f >= NumFaces || q == 0 {
		return Move{}, fmt.Errorf("%w: face %d turn %d", ErrInvalidNotation, f, t)
	}
	return allMoves[int(f)*3+q-1], nil
}

// Index returns the position of m in AllMoves, or -1 if m is not a single
// canonical face turn.
func (m Move) Index() int {
	return int(m.index)
}

// Action returns the state reached by applying m to the solved cube.
func (m Move) Action() State {
	return m.action
}

// Apply returns s after the move. s is not modified.
func (m Move) Apply(s State) State {
	return s.Multiply(m.action)
}

// Compose returns the move equivalent to m followed by other.
func (m Move) Compose(other Move) Move {
	return Move{
		Face:   m.Face,
		Turn:   m.Turn,
		index:  -1,
		name:   m.Notation() + " " + other.Notation(),
		action: m.action.Multiply(other.action),
	}
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	if m.index >= 0 {
		inv := m
		switch m.Turn {
		case CW:
			inv.Turn = CCW
		case CCW:
			inv.Turn = CW
			// Double is its own inverse
		}
		return allMoves[int(inv.Face)*3+inv.Turn.quarters()-1]
	}
	return Move{
		Face:   m.Face,
		Turn:   m.Turn,
		index:  -1,
		name:   "(" + m.Notation() + ")'",
		action: m.action.Inverse(),
	}
}

// PermutationOnly returns m with its orientation change removed: pieces move
// between the same slots but keep their twist and flip.
func (m Move) PermutationOnly() Move {
	action := m.action
	action.CO = [NumCorners]uint8{}
	action.EO = [NumEdges]uint8{}
	return Move{
		Face:   m.Face,
		Turn:   m.Turn,
		index:  -1,
		name:   m.Notation() + "~",
		action: action,
	}
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	if m.name != "" {
		return m.name
	}
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return m.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Follows reports whether m may be turned right after prev in a canonical
// sequence: never the same face twice, and of two opposite faces (which
// commute) only the lower-numbered one goes first.
func (m Move) Follows(prev Move) bool {
	return !m.SameFace(prev) && !m.CommutesBefore(prev)
}

// SameFace reports whether m and other turn the same face.
func (m Move) SameFace(other Move) bool {
	return m.Face == other.Face
}

// CommutesBefore reports whether m turns the face opposite to other and
// sorts before it, i.e. the pair other, m could be written as m, other.
func (m Move) CommutesBefore(other Move) bool {
	return m.Face == other.Face.Opposite() && m.Face < other.Face
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = R
	case 'L', 'l':
		face = L
	case 'U', 'u':
		face = U
	case 'D', 'd':
		face = D
	case 'F', 'f':
		face = F
	case 'B', 'b':
		face = B
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return NewMove(face, turn)
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Unlike a recorder, a solver must not guess: any invalid token is an error.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
