package cube

import (
	"errors"
	"math/rand"
	"testing"
)

func mustParse(t *testing.T, s string) []Move {
	t.Helper()
	moves, err := ParseMoves(s)
	if err != nil {
		t.Fatalf("ParseMoves(%q): %v", s, err)
	}
	return moves
}

func TestNewCubeIsSolved(t *testing.T) {
	s := Solved()
	if !s.IsSolved() {
		t.Error("Solved state should be solved")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Solved state should validate: %v", err)
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for _, m := range AllMoves() {
		if Solved().Apply(m).IsSolved() {
			t.Errorf("Cube should not be solved after %s", m)
		}
	}
}

func TestFourQuarterTurnsReturnToSolved_AllFaces(t *testing.T) {
	for f := Face(0); f < NumFaces; f++ {
		m, err := NewMove(f, CW)
		if err != nil {
			t.Fatal(err)
		}
		s := Solved().Apply(m).Apply(m).Apply(m).Apply(m)
		if !s.IsSolved() {
			t.Errorf("%v x 4 should return to solved", f)
			t.Log(s.String())
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	sexy := mustParse(t, "R U R' U'")
	s := Solved()
	for i := 0; i < 6; i++ {
		s = s.ApplyMoves(sexy)
	}
	if !s.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(s.String())
	}
}

func TestTPermHasOrderTwo(t *testing.T) {
	tperm := mustParse(t, "R U R' U' R' F R2 U' R' U' R U R' F'")
	s := Solved().ApplyMoves(tperm)
	if s.IsSolved() {
		t.Fatal("T-perm should change the cube")
	}
	if !s.ApplyMoves(tperm).IsSolved() {
		t.Error("T-perm applied twice should return to solved")
	}
}

func TestMoveThenInverseIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		s, _ := Scramble(25, rng)
		for _, m := range AllMoves() {
			if got := m.Apply(m.Inverse().Apply(s)); got != s {
				t.Fatalf("%s after %s' did not restore the state", m, m)
			}
			if got := s.Apply(m).Apply(m.Inverse()); got != s {
				t.Fatalf("%s' after %s did not restore the state", m, m)
			}
		}
	}
}

func TestMovesAreValidPermutations(t *testing.T) {
	for _, m := range AllMoves() {
		if err := m.Action().Validate(); err != nil {
			t.Errorf("%s is not a valid cube permutation: %v", m, err)
		}
		if m.Index() < 0 || MoveAt(m.Index()) != m {
			t.Errorf("%s has inconsistent index %d", m, m.Index())
		}
	}
}

func TestComposeIsAssociative(t *testing.T) {
	moves := AllMoves()
	for i := 0; i < len(moves); i += 4 {
		a, b, c := moves[i], moves[(i+5)%NumMoves], moves[(i+11)%NumMoves]
		left := a.Compose(b).Compose(c)
		right := a.Compose(b.Compose(c))
		if left.Action() != right.Action() {
			t.Errorf("(%s %s) %s differs from %s (%s %s)", a, b, c, a, b, c)
		}
		s := Solved().Apply(a).Apply(b).Apply(c)
		if left.Apply(Solved()) != s {
			t.Errorf("composition of %s %s %s differs from sequential application", a, b, c)
		}
	}
}

func TestComposedInverse(t *testing.T) {
	m := MoveAt(3).Compose(MoveAt(7)).Compose(MoveAt(14))
	if !m.Inverse().Apply(m.Apply(Solved())).IsSolved() {
		t.Error("inverse of a composed move should undo it")
	}
	if m.Index() != -1 {
		t.Errorf("composed move index = %d, want -1", m.Index())
	}
}

func TestComposeMatchesFaceletComposition(t *testing.T) {
	for _, a := range AllMoves() {
		for _, b := range AllMoves() {
			want := a.Facelets().Then(b.Facelets())
			if got := a.Compose(b).Facelets(); got != want {
				t.Fatalf("facelet table of %s %s does not match facelet-wise composition", a, b)
			}
		}
	}
}

func TestFaceletsCommuteWithMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s, _ := Scramble(30, rng)
	for _, m := range AllMoves() {
		want := s.Facelets().Permute(m.Facelets())
		if got := s.Apply(m).Facelets(); got != want {
			t.Errorf("facelets of state after %s differ from permuted facelets", m)
		}
	}
}

func TestRMovesFrontStickersUp(t *testing.T) {
	m, _ := NewMove(R, CW)
	f := Solved().Apply(m).Facelets()
	up := f.Face(U)
	for _, i := range []int{2, 5, 8} {
		if up[i] != Green {
			t.Errorf("after R, U sticker %d = %s, want G", i, up[i])
		}
	}
	for _, i := range []int{0, 3, 6} {
		if up[i] != White {
			t.Errorf("after R, U sticker %d = %s, want W", i, up[i])
		}
	}
}

func TestFromFaceletsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		s, moves := Scramble(20, rng)
		got, err := FromFacelets(s.Facelets())
		if err != nil {
			t.Fatalf("FromFacelets after %s: %v", FormatMoves(moves), err)
		}
		if got != s {
			t.Fatalf("round trip mismatch after %s", FormatMoves(moves))
		}
	}
}

func TestFromFaceletsRejectsTwistedCorner(t *testing.T) {
	f := Solved().Facelets()
	// rotate the stickers of the URF corner in place
	a, b, c := cornerFacelets[URF][0], cornerFacelets[URF][1], cornerFacelets[URF][2]
	f[a], f[b], f[c] = f[c], f[a], f[b]
	if _, err := FromFacelets(f); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState for twisted corner, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	s, _ := Scramble(40, rng)
	if err := s.Validate(); err != nil {
		t.Fatalf("scrambled state should be valid: %v", err)
	}

	twisted := Solved()
	twisted.CO[0] = 1
	if err := twisted.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("single twisted corner: expected ErrInvalidState, got %v", err)
	}

	flipped := Solved()
	flipped.EO[3] = 1
	if err := flipped.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("single flipped edge: expected ErrInvalidState, got %v", err)
	}

	swapped := Solved()
	swapped.EP[0], swapped.EP[1] = swapped.EP[1], swapped.EP[0]
	if err := swapped.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("two swapped edges: expected ErrInvalidState, got %v", err)
	}

	duplicate := Solved()
	duplicate.CP[0] = duplicate.CP[1]
	if err := duplicate.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("duplicate corner: expected ErrInvalidState, got %v", err)
	}
}

func TestInverseState(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s, moves := Scramble(15, rng)
	if !s.Multiply(s.Inverse()).IsSolved() {
		t.Error("s * s^-1 should be solved")
	}
	if got := Solved().ApplyMoves(InvertMoves(moves)); got != s.Inverse() {
		t.Error("inverted scramble should reach the inverse state")
	}
}

func TestPermutationOnlyKeepsOrientation(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	s := Solved()
	full := Solved()
	for i := 0; i < 40; i++ {
		m := MoveAt(rng.Intn(NumMoves))
		s = m.PermutationOnly().Apply(s)
		full = m.Apply(full)
	}
	if s.CO != ([NumCorners]uint8{}) || s.EO != ([NumEdges]uint8{}) {
		t.Error("orientation-free moves should never twist or flip a piece")
	}
	if s.CP != full.CP || s.EP != full.EP {
		t.Error("orientation-free moves should permute pieces like the real moves")
	}
}

func TestScrambleHasNoRedundantNeighbours(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, moves := Scramble(200, rng)
	if len(moves) != 200 {
		t.Fatalf("got %d moves, want 200", len(moves))
	}
	for i := 1; i < len(moves); i++ {
		if moves[i].Face == moves[i-1].Face {
			t.Fatalf("moves %d and %d turn the same face: %s %s", i-1, i, moves[i-1], moves[i])
		}
	}
	if Solved().ApplyMoves(moves) != s {
		t.Error("returned state should equal the returned walk applied to solved")
	}
}

func TestParseAndFormatMoves(t *testing.T) {
	moves := mustParse(t, "R U2 F' l d2 b`")
	if got := FormatMoves(moves); got != "R U2 F' L D2 B'" {
		t.Errorf("FormatMoves = %q", got)
	}
	if _, err := ParseMoves("R X U"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
	if _, err := ParseMove(""); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation for empty input, got %v", err)
	}
	if FormatMoves(nil) != "" {
		t.Error("formatting no moves should give an empty string")
	}
}

func TestFollows(t *testing.T) {
	u, _ := NewMove(U, CW)
	u2, _ := NewMove(U, Double)
	d, _ := NewMove(D, CW)
	r, _ := NewMove(R, CW)
	if u2.Follows(u) {
		t.Error("U2 must not follow U")
	}
	if !d.Follows(u) {
		t.Error("D may follow U")
	}
	if u.Follows(d) {
		t.Error("U must not follow D (opposite faces go in canonical order)")
	}
	if !r.Follows(u) || !u.Follows(r) {
		t.Error("adjacent faces may follow each other in any order")
	}
}

func TestParseFacelets(t *testing.T) {
	s := Solved().ApplyMoves(mustParse(t, "R U2 F' D L B2"))
	compact := s.Facelets().Compact()

	f, err := ParseFacelets(compact)
	if err != nil {
		t.Fatalf("ParseFacelets: %v", err)
	}
	got, err := FromFacelets(f)
	if err != nil {
		t.Fatalf("FromFacelets: %v", err)
	}
	if got != s {
		t.Error("compact facelets did not round trip")
	}

	// face letters name the same colors
	faces := "UUUUUUUUU RRRRRRRRR FFFFFFFFF DDDDDDDDD LLLLLLLLL BBBBBBBBB"
	f, err = ParseFacelets(faces)
	if err != nil {
		t.Fatalf("ParseFacelets(faces): %v", err)
	}
	if f != Solved().Facelets() {
		t.Error("face letters should parse to the solved cube")
	}

	for _, bad := range []string{compact[:53], compact + "W", "X" + compact[1:]} {
		if _, err := ParseFacelets(bad); !errors.Is(err, ErrInvalidFacelets) {
			t.Errorf("ParseFacelets(%q) error = %v, want ErrInvalidFacelets", bad, err)
		}
	}
}
