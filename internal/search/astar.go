package search

import (
	"container/heap"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
)

// AStar is best-first search on path length plus estimate. Its open set
// grows quickly, so like BFS it suits moderate scrambles; IDA* is the
// driver for full-depth solves.
type AStar struct {
	h    heuristic.Heuristic
	opts options
}

// NewAStar creates an A* solver guided by h.
func NewAStar(h heuristic.Heuristic, opts ...Option) *AStar {
	return &AStar{h: h, opts: newOptions(opts)}
}

func (*AStar) Name() string { return "astar" }

type astarNode struct {
	state  cube.State
	parent *astarNode
	move   cube.Move
	g, f   int
	seq    uint64
}

func (n *astarNode) path() []cube.Move {
	moves := make([]cube.Move, n.g)
	for ; n.parent != nil; n = n.parent {
		moves[n.g-1] = n.move
	}
	return moves
}

// openSet orders nodes by f, then by insertion order.
type openSet []*astarNode

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x any)   { *o = append(*o, x.(*astarNode)) }
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	return n
}

func (a *AStar) Solve(ctx context.Context, s cube.State) (*Result, error) {
	log, calls, err := start(a.Name(), &a.opts, a.h, s)
	if err != nil {
		return nil, err
	}
	began := time.Now()
	res := &Result{Iterations: 1}
	finish := func() {
		res.HeuristicCalls = heuristicCalls(a.h) - calls
		res.Duration = time.Since(began)
	}

	var seq uint64
	open := &openSet{}
	best := map[cube.State]int{s: 0}
	heap.Push(open, &astarNode{state: s, f: a.h.Estimate(s)})

	for open.Len() > 0 {
		n := heap.Pop(open).(*astarNode)
		if n.g > best[n.state] {
			continue // superseded by a shorter path
		}
		if n.state.IsSolved() {
			res.Moves = n.path()
			finish()
			log.WithFields(logrus.Fields{"length": n.g, "expanded": res.Expanded}).Debug("solved")
			return res, nil
		}
		if n.g >= a.opts.maxDepth {
			continue
		}

		res.Expanded++
		if res.Expanded%checkInterval == 0 {
			if err := cancelled(ctx); err != nil {
				return nil, err
			}
		}

		g := n.g + 1
		for _, m := range a.opts.moves {
			if n.parent != nil && m.SameFace(n.move) {
				continue
			}
			next := m.Apply(n.state)
			res.Generated++
			if old, ok := best[next]; ok && old <= g {
				continue
			}
			f := g + a.h.Estimate(next)
			if f > a.opts.maxDepth {
				continue
			}
			best[next] = g
			seq++
			heap.Push(open, &astarNode{state: next, parent: n, move: m, g: g, f: f, seq: seq})
		}
	}
	return nil, ErrNoSolution
}
