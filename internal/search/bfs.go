package search

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// BFS is uninformed breadth-first search. It keeps every visited state in
// memory and is only practical for scrambles of up to about six moves.
type BFS struct {
	opts options
}

// NewBFS creates a breadth-first solver.
func NewBFS(opts ...Option) *BFS {
	return &BFS{opts: newOptions(opts)}
}

func (*BFS) Name() string { return "bfs" }

type bfsNode struct {
	state  cube.State
	parent *bfsNode
	move   cube.Move
	depth  int
}

func (n *bfsNode) path() []cube.Move {
	moves := make([]cube.Move, n.depth)
	for ; n.parent != nil; n = n.parent {
		moves[n.depth-1] = n.move
	}
	return moves
}

func (b *BFS) Solve(ctx context.Context, s cube.State) (*Result, error) {
	log, _, err := start(b.Name(), &b.opts, nil, s)
	if err != nil {
		return nil, err
	}
	began := time.Now()
	res := &Result{Iterations: 1}

	root := &bfsNode{state: s}
	if s.IsSolved() {
		res.Duration = time.Since(began)
		return res, nil
	}
	seen := map[cube.State]struct{}{s: {}}
	queue := []*bfsNode{root}
	depth := 0

	for len(queue) > 0 {
		n := queue[0]
		queue[0] = nil
		queue = queue[1:]
		if n.depth >= b.opts.maxDepth {
			break
		}
		if n.depth > depth {
			depth = n.depth
			log.WithFields(logrus.Fields{"depth": depth, "seen": len(seen)}).Debug("depth reached")
		}

		res.Expanded++
		if res.Expanded%checkInterval == 0 {
			if err := cancelled(ctx); err != nil {
				return nil, err
			}
		}

		for _, m := range b.opts.moves {
			if n.parent != nil && !m.Follows(n.move) {
				continue
			}
			next := m.Apply(n.state)
			res.Generated++
			if _, ok := seen[next]; ok {
				continue
			}
			child := &bfsNode{state: next, parent: n, move: m, depth: n.depth + 1}
			if next.IsSolved() {
				res.Moves = child.path()
				res.Duration = time.Since(began)
				log.WithFields(logrus.Fields{"length": child.depth, "expanded": res.Expanded}).Debug("solved")
				return res, nil
			}
			seen[next] = struct{}{}
			queue = append(queue, child)
		}
	}
	return nil, ErrNoSolution
}
