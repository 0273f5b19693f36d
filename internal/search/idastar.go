package search

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
)

// IDAStar is iterative deepening A*: repeated depth-first searches, each
// pruning branches whose path length plus estimate exceeds a bound, with
// the bound raised to the smallest pruned value after every iteration.
// Memory use is linear in the solution length.
type IDAStar struct {
	name string
	h    heuristic.Heuristic
	opts options
}

// NewIDAStar creates an IDA* solver guided by h.
func NewIDAStar(h heuristic.Heuristic, opts ...Option) *IDAStar {
	return &IDAStar{name: "idastar", h: h, opts: newOptions(opts)}
}

// NewIterativeDeepening creates a depth-first iterative deepening solver,
// IDA* without a heuristic.
func NewIterativeDeepening(opts ...Option) *IDAStar {
	return &IDAStar{name: "iddfs", h: heuristic.Zero(), opts: newOptions(opts)}
}

func (d *IDAStar) Name() string { return d.name }

// idaRun is the state of one Solve call.
type idaRun struct {
	ctx   context.Context
	h     heuristic.Heuristic
	moves []cube.Move
	path  []cube.Move
	res   *Result
	err   error
}

const unbounded = math.MaxInt

// dfs searches below s at depth g. It reports whether a solution was found
// and otherwise the smallest f above bound it pruned.
func (r *idaRun) dfs(s cube.State, g, bound int) (bool, int) {
	f := g + r.h.Estimate(s)
	if f > bound {
		return false, f
	}
	if s.IsSolved() {
		return true, f
	}

	r.res.Expanded++
	if r.res.Expanded%checkInterval == 0 {
		if r.err = cancelled(r.ctx); r.err != nil {
			return false, unbounded
		}
	}

	next := unbounded
	for _, m := range r.moves {
		if g > 0 && !m.Follows(r.path[g-1]) {
			continue
		}
		r.res.Generated++
		r.path = append(r.path[:g], m)
		found, t := r.dfs(m.Apply(s), g+1, bound)
		if found {
			return true, t
		}
		if r.err != nil {
			return false, unbounded
		}
		if t < next {
			next = t
		}
	}
	return false, next
}

func (d *IDAStar) Solve(ctx context.Context, s cube.State) (*Result, error) {
	log, calls, err := start(d.name, &d.opts, d.h, s)
	if err != nil {
		return nil, err
	}
	began := time.Now()
	res := &Result{}
	run := &idaRun{
		ctx:   ctx,
		h:     d.h,
		moves: d.opts.moves,
		path:  make([]cube.Move, 0, d.opts.maxDepth),
		res:   res,
	}

	bound := d.h.Estimate(s)
	for bound <= d.opts.maxDepth {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		res.Iterations++
		run.path = run.path[:0]

		found, next := run.dfs(s, 0, bound)
		if run.err != nil {
			return nil, run.err
		}
		if found {
			res.Moves = append([]cube.Move(nil), run.path...)
			res.HeuristicCalls = heuristicCalls(d.h) - calls
			res.Duration = time.Since(began)
			log.WithFields(logrus.Fields{
				"length":     len(res.Moves),
				"iterations": res.Iterations,
				"expanded":   res.Expanded,
			}).Debug("solved")
			return res, nil
		}

		log.WithFields(logrus.Fields{
			"bound":    bound,
			"expanded": res.Expanded,
			"elapsed":  time.Since(began).Round(time.Millisecond),
		}).Debug("iteration done")
		if next == unbounded {
			break
		}
		bound = next
	}
	return nil, ErrNoSolution
}
