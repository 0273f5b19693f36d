package cube

import (
	"fmt"
	"strings"
)

// NumFacelets is the number of stickers on the cube.
const NumFacelets = NumFaces * 9

// Facelets is a cube as 54 sticker colors. Face f occupies indices
// f*9 .. f*9+8 in U, R, F, D, L, B order, each face indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) defines the face color and never moves.
type Facelets [NumFacelets]Color

// facelet returns the flat index of position i on face f.
func facelet(f Face, i int) uint8 {
	return uint8(int(f)*9 + i)
}

// cornerFacelets lists, for each corner position, its three stickers
// starting with the U or D sticker and going clockwise.
var cornerFacelets = [NumCorners][3]uint8{
	URF: {facelet(U, 8), facelet(R, 0), facelet(F, 2)},
	UFL: {facelet(U, 6), facelet(F, 0), facelet(L, 2)},
	ULB: {facelet(U, 0), facelet(L, 0), facelet(B, 2)},
	UBR: {facelet(U, 2), facelet(B, 0), facelet(R, 2)},
	DFR: {facelet(D, 2), facelet(F, 8), facelet(R, 6)},
	DLF: {facelet(D, 0), facelet(L, 8), facelet(F, 6)},
	DBL: {facelet(D, 6), facelet(B, 8), facelet(L, 6)},
	DRB: {facelet(D, 8), facelet(R, 8), facelet(B, 6)},
}

// edgeFacelets lists, for each edge position, its two stickers.
var edgeFacelets = [NumEdges][2]uint8{
	UR: {facelet(U, 5), facelet(R, 1)},
	UF: {facelet(U, 7), facelet(F, 1)},
	UL: {facelet(U, 3), facelet(L, 1)},
	UB: {facelet(U, 1), facelet(B, 1)},
	DR: {facelet(D, 5), facelet(R, 7)},
	DF: {facelet(D, 1), facelet(F, 7)},
	DL: {facelet(D, 3), facelet(L, 7)},
	DB: {facelet(D, 7), facelet(B, 7)},
	FR: {facelet(F, 5), facelet(R, 3)},
	FL: {facelet(F, 3), facelet(L, 5)},
	BL: {facelet(B, 5), facelet(L, 3)},
	BR: {facelet(B, 3), facelet(R, 5)},
}

// cornerFaces and edgeFaces give the home face of each sticker of a piece.
var cornerFaces = [NumCorners][3]Face{
	URF: {U, R, F},
	UFL: {U, F, L},
	ULB: {U, L, B},
	UBR: {U, B, R},
	DFR: {D, F, R},
	DLF: {D, L, F},
	DBL: {D, B, L},
	DRB: {D, R, B},
}

var edgeFaces = [NumEdges][2]Face{
	UR: {U, R},
	UF: {U, F},
	UL: {U, L},
	UB: {U, B},
	DR: {D, R},
	DF: {D, F},
	DL: {D, L},
	DB: {D, B},
	FR: {F, R},
	FL: {F, L},
	BL: {B, L},
	BR: {B, R},
}

// Facelets renders s as sticker colors.
func (s State) Facelets() Facelets {
	var f Facelets
	for face := Face(0); face < NumFaces; face++ {
		for i := 0; i < 9; i++ {
			f[facelet(face, i)] = face.SolvedColor()
		}
	}
	for i := 0; i < NumCorners; i++ {
		piece, ori := s.CP[i], s.CO[i]
		for k := 0; k < 3; k++ {
			f[cornerFacelets[i][(k+int(ori))%3]] = cornerFaces[piece][k].SolvedColor()
		}
	}
	for i := 0; i < NumEdges; i++ {
		piece, ori := s.EP[i], s.EO[i]
		for k := 0; k < 2; k++ {
			f[edgeFacelets[i][(k+int(ori))%2]] = edgeFaces[piece][k].SolvedColor()
		}
	}
	return f
}

// FromFacelets rebuilds the cubie state from sticker colors. The result is
// validated, so impossible stickerings (a twisted corner, swapped stickers)
// are rejected.
func FromFacelets(f Facelets) (State, error) {
	var faces [NumFacelets]Face
	for i, c := range f {
		face, ok := faceOfColor(c)
		if !ok {
			return State{}, fmt.Errorf("%w: unknown color at facelet %d", ErrInvalidFacelets, i)
		}
		faces[i] = face
	}
	for face := Face(0); face < NumFaces; face++ {
		if faces[facelet(face, 4)] != face {
			return State{}, fmt.Errorf("%w: center of %s is %s", ErrInvalidFacelets, face, f[facelet(face, 4)])
		}
	}

	var s State
	for i := 0; i < NumCorners; i++ {
		ori := 0
		for ori = 0; ori < 3; ori++ {
			if c := faces[cornerFacelets[i][ori]]; c == U || c == D {
				break
			}
		}
		if ori == 3 {
			return State{}, fmt.Errorf("%w: corner %d has no U/D sticker", ErrInvalidFacelets, i)
		}
		c1 := faces[cornerFacelets[i][(ori+1)%3]]
		c2 := faces[cornerFacelets[i][(ori+2)%3]]
		found := false
		for j := 0; j < NumCorners; j++ {
			if cornerFaces[j][1] == c1 && cornerFaces[j][2] == c2 {
				s.CP[i] = uint8(j)
				s.CO[i] = uint8(ori)
				found = true
				break
			}
		}
		if !found {
			return State{}, fmt.Errorf("%w: no corner matches stickers at position %d", ErrInvalidFacelets, i)
		}
	}

	for i := 0; i < NumEdges; i++ {
		a, b := faces[edgeFacelets[i][0]], faces[edgeFacelets[i][1]]
		found := false
		for j := 0; j < NumEdges; j++ {
			switch {
			case edgeFaces[j][0] == a && edgeFaces[j][1] == b:
				s.EP[i], s.EO[i] = uint8(j), 0
				found = true
			case edgeFaces[j][0] == b && edgeFaces[j][1] == a:
				s.EP[i], s.EO[i] = uint8(j), 1
				found = true
			}
			if found {
				break
			}
		}
		if !found {
			return State{}, fmt.Errorf("%w: no edge matches stickers at position %d", ErrInvalidFacelets, i)
		}
	}

	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

// FaceletPermutation is a permutation of sticker slots: after the move the
// sticker at slot x came from slot p[x].
type FaceletPermutation [NumFacelets]uint8

// Facelets returns the sticker permutation induced by m.
func (m Move) Facelets() FaceletPermutation {
	var p FaceletPermutation
	for i := range p {
		p[i] = uint8(i)
	}
	a := m.action
	for i := 0; i < NumCorners; i++ {
		for k := 0; k < 3; k++ {
			p[cornerFacelets[i][(k+int(a.CO[i]))%3]] = cornerFacelets[a.CP[i]][k]
		}
	}
	for i := 0; i < NumEdges; i++ {
		for k := 0; k < 2; k++ {
			p[edgeFacelets[i][(k+int(a.EO[i]))%2]] = edgeFacelets[a.EP[i]][k]
		}
	}
	return p
}

// Then returns the permutation p followed by q.
func (p FaceletPermutation) Then(q FaceletPermutation) FaceletPermutation {
	var r FaceletPermutation
	for x := range r {
		r[x] = p[q[x]]
	}
	return r
}

// Permute applies p to the stickers of f.
func (f Facelets) Permute(p FaceletPermutation) Facelets {
	var r Facelets
	for x := range r {
		r[x] = f[p[x]]
	}
	return r
}

// Face returns the nine stickers of a face.
func (f Facelets) Face(face Face) [9]Color {
	var r [9]Color
	copy(r[:], f[int(face)*9:int(face)*9+9])
	return r
}

// String returns a text representation of the cube as an unfolded net.
func (f Facelets) String() string {
	var sb strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(f[facelet(U, row*3+col)].String() + " ")
		}
		sb.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				sb.WriteString(f[facelet(face, row*3+col)].String() + " ")
			}
		}
		sb.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(f[facelet(D, row*3+col)].String() + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// String returns the unfolded net of s.
func (s State) String() string {
	return s.Facelets().String()
}

// Compact returns the 54 sticker colors as letters without separators, in
// facelet order. ParseFacelets accepts the result.
func (f Facelets) Compact() string {
	var sb strings.Builder
	sb.Grow(NumFacelets)
	for _, c := range f {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// ParseFacelets reads 54 stickers in facelet order. Each sticker is either a
// color letter (W Y G B R O) or the letter of the face whose center has that
// color (U R F D L B). Whitespace is ignored.
func ParseFacelets(text string) (Facelets, error) {
	var f Facelets
	n := 0
	for _, r := range strings.ToUpper(text) {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		if n == NumFacelets {
			return f, fmt.Errorf("%w: more than %d stickers", ErrInvalidFacelets, NumFacelets)
		}
		c, ok := stickerColor(r)
		if !ok {
			return f, fmt.Errorf("%w: unknown sticker %q", ErrInvalidFacelets, r)
		}
		f[n] = c
		n++
	}
	if n != NumFacelets {
		return f, fmt.Errorf("%w: got %d stickers, want %d", ErrInvalidFacelets, n, NumFacelets)
	}
	return f, nil
}

func stickerColor(r rune) (Color, bool) {
	switch r {
	case 'W', 'U':
		return White, true
	case 'Y', 'D':
		return Yellow, true
	case 'G', 'F':
		return Green, true
	case 'B':
		return Blue, true
	case 'R':
		return Red, true
	case 'O', 'L':
		return Orange, true
	}
	return 0, false
}
