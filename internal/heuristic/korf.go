package heuristic

import (
	"fmt"
	"path/filepath"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
)

// DefaultProjections returns Korf's split: all corners and the edges in
// groups of the given sizes (6 and 6 when none are given).
func DefaultProjections(edgeGroups ...int) ([]coord.Projection, error) {
	if len(edgeGroups) == 0 {
		edgeGroups = []int{6, 6}
	}
	groups, err := coord.EdgeGroups(edgeGroups...)
	if err != nil {
		return nil, err
	}
	ps := []coord.Projection{coord.Corners()}
	for _, g := range groups {
		ps = append(ps, g)
	}
	return ps, nil
}

// Korf combines table heuristics by their maximum.
func Korf(tables ...*Table) MaxOf {
	hs := make(MaxOf, len(tables))
	for i, t := range tables {
		hs[i] = t
	}
	return hs
}

// LoadTables loads the table of every projection from dir, named by
// pdb.FileName.
func LoadTables(dir string, ps []coord.Projection) ([]*Table, error) {
	tables := make([]*Table, 0, len(ps))
	for _, p := range ps {
		t, err := pdb.Load(filepath.Join(dir, pdb.FileName(p.Name())), p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p.Name(), err)
		}
		h, err := NewTable(t, p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, h)
	}
	return tables, nil
}
