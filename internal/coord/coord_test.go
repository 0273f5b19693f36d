package coord

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

func mustEdges(t *testing.T, pieces ...int) *Pieces {
	t.Helper()
	p, err := Edges(pieces...)
	require.NoError(t, err)
	return p
}

func mustCorners(t *testing.T, pieces ...int) *Pieces {
	t.Helper()
	p, err := CornerSubset(pieces...)
	require.NoError(t, err)
	return p
}

func testProjections(t *testing.T) []Projection {
	return []Projection{
		Corners(),
		EdgesLow(),
		EdgesHigh(),
		mustEdges(t, 0, 1),
		mustEdges(t, 11, 3, 7),
		mustEdges(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11),
		mustCorners(t, 0, 1, 2),
		mustCorners(t, 0, 1, 2, 3, 4, 5, 6, 7),
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		p    Projection
		want uint64
	}{
		{Corners(), 88179840},
		{EdgesLow(), 42577920},
		{EdgesHigh(), 42577920},
		{mustEdges(t, 0, 1), 12 * 11 * 4},
		{mustCorners(t, 0, 1, 2), 8 * 7 * 6 * 27},
		{mustCorners(t, 0, 1, 2, 3, 4, 5, 6, 7), 40320 * 2187},
		{mustEdges(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), 479001600 * 2048},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.Size(), tt.p.Name())
	}
}

func TestEdgeGroups(t *testing.T) {
	groups, err := EdgeGroups(7, 5)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, groups[0].Pieces())
	assert.Equal(t, []int{7, 8, 9, 10, 11}, groups[1].Pieces())
	assert.Equal(t, uint64(95040*128), groups[0].Size())
	assert.Equal(t, uint64(95040*32), groups[1].Size())

	halves, err := EdgeGroups(6, 6)
	require.NoError(t, err)
	assert.Equal(t, EdgesLow().Name(), halves[0].Name())
	assert.Equal(t, EdgesHigh().Name(), halves[1].Name())

	for _, sizes := range [][]int{{}, {7, 6}, {0, 6}, {-1}} {
		_, err := EdgeGroups(sizes...)
		assert.ErrorIs(t, err, ErrInvalidProjection, "sizes %v", sizes)
	}
}

func TestNewPiecesRejectsBadInput(t *testing.T) {
	_, err := Edges()
	assert.ErrorIs(t, err, ErrInvalidProjection)
	_, err = Edges(0, 12)
	assert.ErrorIs(t, err, ErrInvalidProjection)
	_, err = CornerSubset(1, 1)
	assert.ErrorIs(t, err, ErrInvalidProjection)
	_, err = NewPieces(Kind(7), []int{0})
	assert.ErrorIs(t, err, ErrInvalidProjection)
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, p := range testProjections(t) {
		for trial := 0; trial < 100; trial++ {
			s, _ := cube.Scramble(1+rng.Intn(30), rng)
			c := p.Encode(s)
			require.Less(t, c, p.Size(), p.Name())

			got, err := p.Decode(c)
			require.NoError(t, err, p.Name())
			require.Equal(t, p.Project(s), got, "%s: decode(encode(s)) != project(s)", p.Name())
			require.Equal(t, c, p.Encode(got), p.Name())
		}
	}
}

func TestEncodingCommutesWithMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for _, p := range testProjections(t) {
		for trial := 0; trial < 20; trial++ {
			s, _ := cube.Scramble(20, rng)
			c := p.Encode(s)
			for _, m := range cube.AllMoves() {
				require.Equal(t, p.Encode(m.Apply(s)), p.Move(c, m), "%s under %s", p.Name(), m)
			}
		}
	}
}

func TestComposedMoveAction(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	m := cube.MoveAt(4).Compose(cube.MoveAt(9)).Compose(cube.MoveAt(15))
	for _, p := range testProjections(t) {
		s, _ := cube.Scramble(25, rng)
		assert.Equal(t, p.Encode(m.Apply(s)), p.Move(p.Encode(s), m), p.Name())
	}
}

func TestSmallProjectionIsBijective(t *testing.T) {
	for _, p := range []Projection{mustEdges(t, 0, 1), mustEdges(t, 5, 2, 9), mustCorners(t, 0, 1, 2), mustCorners(t, 3, 6)} {
		for c := uint64(0); c < p.Size(); c++ {
			s, err := p.Decode(c)
			require.NoError(t, err)
			require.Equal(t, c, p.Encode(s), "%s coordinate %d", p.Name(), c)
		}
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	for _, p := range testProjections(t) {
		_, err := p.Decode(p.Size())
		assert.ErrorIs(t, err, ErrInvalidCoordinate, p.Name())
	}
}

func TestMoveOutOfRangePanics(t *testing.T) {
	composed := cube.MoveAt(3).Compose(cube.MoveAt(0))
	for _, p := range testProjections(t) {
		for _, m := range []cube.Move{cube.MoveAt(3), composed} {
			assert.PanicsWithError(t,
				fmt.Sprintf("%v: %s coordinate %d", ErrInvalidCoordinate, p.Name(), p.Size()),
				func() { p.Move(p.Size(), m) }, p.Name())
		}
	}
}

func TestSolvedStaysSolvedUnderUntrackedMoves(t *testing.T) {
	// U never touches the middle layer.
	p := mustEdges(t, 8, 9, 10, 11)
	c := p.Encode(cube.Solved())
	u, err := cube.NewMove(cube.U, cube.CW)
	require.NoError(t, err)
	assert.Equal(t, c, p.Move(c, u))
}

func TestParseProjection(t *testing.T) {
	for _, p := range testProjections(t) {
		got, err := ParseProjection(p.Name())
		require.NoError(t, err, p.Name())
		assert.Equal(t, p.Name(), got.Name())
		assert.Equal(t, p.Size(), got.Size())
	}
	for _, name := range []string{"", "edges", "faces:1", "edges:a", "edges:0,0", "corners:8"} {
		_, err := ParseProjection(name)
		assert.ErrorIs(t, err, ErrInvalidProjection, name)
	}
}

func TestRankPartial(t *testing.T) {
	const n, k = 6, 3
	seen := make(map[uint64]bool)
	vals := make([]uint8, k)
	for r := uint64(0); r < permutations(n, k); r++ {
		unrankPartial(r, n, vals)
		got := rankPartial(vals, n)
		require.Equal(t, r, got)
		require.False(t, seen[got])
		seen[got] = true
	}
	assert.Len(t, seen, 120)
}
