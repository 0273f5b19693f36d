package gocube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/heuristic"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
)

// Solver finds optimal solutions with a fixed set of tables.
type Solver struct {
	cfg    *config
	h      *heuristic.Counter
	search search.Solver
}

// New loads the configured pattern databases and prepares the search. With
// WithBuildMissing, absent tables are built and saved first; otherwise they
// are reported as ErrTablesNotBuilt.
func New(opts ...Option) (*Solver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Solver{cfg: cfg}
	searchOpts := []search.Option{
		search.WithMaxDepth(cfg.maxDepth),
		search.WithLogger(cfg.logger),
	}

	switch cfg.algorithm {
	case "bfs":
		s.search = search.NewBFS(searchOpts...)
		return s, nil
	case "iddfs":
		s.search = search.NewIterativeDeepening(searchOpts...)
		return s, nil
	case "idastar", "astar":
	default:
		return nil, fmt.Errorf("gocube: unknown algorithm %q", cfg.algorithm)
	}

	ps, err := cfg.projectionList()
	if err != nil {
		return nil, err
	}
	tables := make([]*heuristic.Table, 0, len(ps))
	for _, p := range ps {
		t, err := s.table(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	s.h = heuristic.Counting(heuristic.Korf(tables...))

	if cfg.algorithm == "astar" {
		s.search = search.NewAStar(s.h, searchOpts...)
	} else {
		s.search = search.NewIDAStar(s.h, searchOpts...)
	}
	return s, nil
}

func (c *config) projectionList() ([]coord.Projection, error) {
	if len(c.projections) == 0 {
		return heuristic.DefaultProjections(c.edgeGroups...)
	}
	ps := make([]coord.Projection, 0, len(c.projections))
	for _, name := range c.projections {
		p, err := coord.ParseProjection(name)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// table loads the table of p, building it when allowed.
func (s *Solver) table(p coord.Projection) (*heuristic.Table, error) {
	path := filepath.Join(s.cfg.tablesDir, pdb.FileName(p.Name()))
	t, err := pdb.Load(path, p)
	if errors.Is(err, os.ErrNotExist) {
		if !s.cfg.buildMissing {
			return nil, fmt.Errorf("%w: %s", ErrTablesNotBuilt, path)
		}
		t, err = pdb.Build(p,
			pdb.WithWorkers(s.cfg.workers),
			pdb.WithMemoryLimit(s.cfg.memoryLimit),
			pdb.WithWidth(s.cfg.width),
			pdb.WithLogger(s.cfg.logger),
		)
		if err != nil {
			return nil, err
		}
		if err := pdb.Save(t, path); err != nil {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}
	return heuristic.NewTable(t, p)
}

// Algorithm returns the name of the search in use.
func (s *Solver) Algorithm() string {
	return s.search.Name()
}

// Solve returns a minimum-length solution for st.
func (s *Solver) Solve(ctx context.Context, st State) (*Result, error) {
	return s.search.Solve(ctx, st)
}

// SolveMoves solves the cube reached from solved by the given scramble.
func (s *Solver) SolveMoves(ctx context.Context, scramble string) (*Result, error) {
	moves, err := ParseMoves(scramble)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, Solved().ApplyMoves(moves))
}

// SolveFacelets solves a cube given as 54 stickers.
func (s *Solver) SolveFacelets(ctx context.Context, text string) (*Result, error) {
	st, err := ParseFacelets(text)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, st)
}

// Lookups returns the heuristic evaluations made by all searches so far.
func (s *Solver) Lookups() uint64 {
	if s.h == nil {
		return 0
	}
	return s.h.Calls()
}
