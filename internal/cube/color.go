// Package cube provides a 3x3 Rubik's cube model in cubie form: the group of
// face turns, immutable cube states, notation and facelet rendering.
package cube

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Face represents a cube face. The order matches the facelet layout
// (U, R, F, D, L, B) so that the opposite of face f is (f+3)%6.
type Face uint8

const (
	U Face = 0 // Up (White)
	R Face = 1 // Right (Red)
	F Face = 2 // Front (Green)
	D Face = 3 // Down (Yellow)
	L Face = 4 // Left (Orange)
	B Face = 5 // Back (Blue)
)

// NumFaces is the number of faces on the cube.
const NumFaces = 6

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case R:
		return "R"
	case F:
		return "F"
	case D:
		return "D"
	case L:
		return "L"
	case B:
		return "B"
	default:
		return "?"
	}
}

// Opposite returns the face parallel to f.
func (f Face) Opposite() Face {
	return (f + 3) % NumFaces
}

// SolvedColor returns the color of a face when solved.
func (f Face) SolvedColor() Color {
	switch f {
	case U:
		return White
	case D:
		return Yellow
	case F:
		return Green
	case B:
		return Blue
	case R:
		return Red
	case L:
		return Orange
	default:
		return White
	}
}

// faceOfColor is the inverse of SolvedColor.
func faceOfColor(c Color) (Face, bool) {
	switch c {
	case White:
		return U, true
	case Yellow:
		return D, true
	case Green:
		return F, true
	case Blue:
		return B, true
	case Red:
		return R, true
	case Orange:
		return L, true
	default:
		return 0, false
	}
}
