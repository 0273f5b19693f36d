package search

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return logrus.NewEntry(l)
}

var (
	testTablesOnce sync.Once
	testTables     heuristic.MaxOf
	testTablesErr  error
)

// smallHeuristic combines tables over four corners and three edge groups
// of four, small enough to build in a test.
func smallHeuristic(t *testing.T) heuristic.MaxOf {
	t.Helper()
	testTablesOnce.Do(func() {
		var ps []coord.Projection
		corners, err := coord.CornerSubset(0, 1, 2, 3)
		if err != nil {
			testTablesErr = err
			return
		}
		ps = append(ps, corners)
		groups, err := coord.EdgeGroups(4, 4, 4)
		if err != nil {
			testTablesErr = err
			return
		}
		for _, g := range groups {
			ps = append(ps, g)
		}
		for _, p := range ps {
			table, err := pdb.Build(p, pdb.WithLogger(quietLogger()))
			if err != nil {
				testTablesErr = err
				return
			}
			h, err := heuristic.NewTable(table, p)
			if err != nil {
				testTablesErr = err
				return
			}
			testTables = append(testTables, h)
		}
	})
	require.NoError(t, testTablesErr)
	return testTables
}

func drivers(t *testing.T, opts ...Option) []Solver {
	h := smallHeuristic(t)
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return []Solver{
		NewBFS(opts...),
		NewAStar(h, opts...),
		NewIDAStar(h, opts...),
		NewIterativeDeepening(opts...),
	}
}

func mustParse(t *testing.T, s string) []cube.Move {
	t.Helper()
	moves, err := cube.ParseMoves(s)
	require.NoError(t, err)
	return moves
}

func requireSolves(t *testing.T, s cube.State, res *Result) {
	t.Helper()
	require.True(t, s.ApplyMoves(res.Moves).IsSolved(), "solution %s does not solve the cube", cube.FormatMoves(res.Moves))
}

func TestSingleQuarterTurnSolvedInOneMove(t *testing.T) {
	r, err := cube.NewMove(cube.R, cube.CW)
	require.NoError(t, err)
	s := cube.Solved().Apply(r)

	res, err := NewIDAStar(smallHeuristic(t), WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, 1, res.Length())
	assert.Equal(t, r.Inverse(), res.Moves[0])
	assert.Equal(t, 1, res.Iterations)
}

func TestDistanceFiveAllDrivers(t *testing.T) {
	s := cube.Solved().ApplyMoves(mustParse(t, "R U F' L2 D"))
	for _, d := range drivers(t) {
		res, err := d.Solve(context.Background(), s)
		require.NoError(t, err, d.Name())
		assert.Equal(t, 5, res.Length(), d.Name())
		requireSolves(t, s, res)
	}
}

func TestDriversAgreeOnLength(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	for trial := 0; trial < 5; trial++ {
		s, scramble := cube.Scramble(4, rng)
		want := -1
		for _, d := range drivers(t) {
			res, err := d.Solve(context.Background(), s)
			require.NoError(t, err, "%s on %s", d.Name(), cube.FormatMoves(scramble))
			requireSolves(t, s, res)
			assert.LessOrEqual(t, res.Length(), len(scramble))
			if want < 0 {
				want = res.Length()
			}
			assert.Equal(t, want, res.Length(), "%s on %s", d.Name(), cube.FormatMoves(scramble))
		}
	}
}

func TestSolvedStateNeedsNoMoves(t *testing.T) {
	for _, d := range drivers(t) {
		res, err := d.Solve(context.Background(), cube.Solved())
		require.NoError(t, err, d.Name())
		assert.Empty(t, res.Moves, d.Name())
	}
}

func TestMaxDepthExhausted(t *testing.T) {
	s := cube.Solved().ApplyMoves(mustParse(t, "R U F' L2 D"))
	for _, d := range drivers(t, WithMaxDepth(3)) {
		res, err := d.Solve(context.Background(), s)
		assert.ErrorIs(t, err, ErrNoSolution, d.Name())
		assert.Nil(t, res)
	}
}

func TestCancelledSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, _ := cube.Scramble(14, rng)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, d := range drivers(t) {
		res, err := d.Solve(ctx, s)
		assert.ErrorIs(t, err, ErrCancelled, d.Name())
		assert.Nil(t, res)
	}
}

func TestInvalidStateRejected(t *testing.T) {
	s := cube.Solved()
	s.CO[0] = 1
	for _, d := range drivers(t) {
		_, err := d.Solve(context.Background(), s)
		assert.ErrorIs(t, err, cube.ErrInvalidState, d.Name())
	}
}

func TestHeuristicCallsCounted(t *testing.T) {
	counter := heuristic.Counting(smallHeuristic(t))
	s := cube.Solved().ApplyMoves(mustParse(t, "F R' U2"))

	res, err := NewIDAStar(counter, WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Length())
	assert.Positive(t, res.HeuristicCalls)
	assert.Equal(t, counter.Calls(), res.HeuristicCalls)

	res, err = NewAStar(counter, WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	assert.Positive(t, res.HeuristicCalls)
	assert.Positive(t, res.Expanded)
	assert.GreaterOrEqual(t, res.Generated, res.Expanded)
}

func TestHeuristicPrunes(t *testing.T) {
	s := cube.Solved().ApplyMoves(mustParse(t, "R U F' L2"))
	informed, err := NewIDAStar(smallHeuristic(t), WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	blind, err := NewIterativeDeepening(WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, blind.Length(), informed.Length())
	assert.Less(t, informed.Expanded, blind.Expanded)
}

func TestWithMovesRestrictsSearch(t *testing.T) {
	var twoGen []cube.Move
	for _, m := range cube.AllMoves() {
		if m.Face == cube.R || m.Face == cube.U {
			twoGen = append(twoGen, m)
		}
	}
	s := cube.Solved().ApplyMoves(mustParse(t, "R U R'"))
	res, err := NewIDAStar(smallHeuristic(t), WithMoves(twoGen), WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Length())
	for _, m := range res.Moves {
		assert.Contains(t, []cube.Face{cube.R, cube.U}, m.Face)
	}
}

func TestInadmissibleHeuristicStillSolves(t *testing.T) {
	s := cube.Solved().ApplyMoves(mustParse(t, "R U"))
	res, err := NewIDAStar(heuristic.Inadmissible(smallHeuristic(t)), WithLogger(quietLogger())).Solve(context.Background(), s)
	require.NoError(t, err)
	requireSolves(t, s, res)
}
