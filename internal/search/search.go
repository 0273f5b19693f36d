// Package search finds minimum-length face-turn solutions with
// breadth-first search, A* and IDA*.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
)

var (
	ErrNoSolution = errors.New("gocube: no solution within search limit")
	ErrCancelled  = errors.New("gocube: search cancelled")
)

// DefaultMaxDepth is God's number in the half-turn metric: every state is
// solvable within it.
const DefaultMaxDepth = 20

// checkInterval is the number of expansions between cancellation checks.
const checkInterval = 256

// Solver finds an optimal solution for a cube state.
type Solver interface {
	Name() string
	Solve(ctx context.Context, s cube.State) (*Result, error)
}

// Result is a solution and the work spent finding it.
type Result struct {
	Moves          []cube.Move
	Expanded       uint64
	Generated      uint64
	HeuristicCalls uint64
	Iterations     int
	Duration       time.Duration
}

// Length returns the number of moves of the solution.
func (r *Result) Length() int {
	return len(r.Moves)
}

type options struct {
	maxDepth int
	logger   *logrus.Entry
	moves    []cube.Move
}

// Option configures a solver.
type Option func(*options)

// WithMaxDepth bounds the solution length. Searches that find nothing
// within it fail with ErrNoSolution.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMoves restricts the moves the search may use.
func WithMoves(moves []cube.Move) Option {
	return func(o *options) {
		o.moves = moves
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   logrus.NewEntry(logrus.New()),
		moves:    cube.AllMoves(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// start validates the start state and sets up what every driver does
// before searching.
func start(name string, o *options, h heuristic.Heuristic, s cube.State) (*logrus.Entry, uint64, error) {
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}
	log := o.logger.WithField("solver", name)
	if h != nil && !heuristic.IsAdmissible(h) {
		log.Warn("heuristic may overestimate, solution length is not guaranteed optimal")
	}
	return log, heuristicCalls(h), nil
}

func heuristicCalls(h heuristic.Heuristic) uint64 {
	if c, ok := h.(*heuristic.Counter); ok {
		return c.Calls()
	}
	return 0
}

// cancelled reports ctx's error as ErrCancelled.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return nil
}
