// Package heuristic provides lower bounds on the number of face turns
// needed to solve a cube, built from pattern databases.
package heuristic

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
)

var ErrTableMismatch = errors.New("gocube: table does not match projection")

// Heuristic estimates the distance of a state to solved.
type Heuristic interface {
	Estimate(s cube.State) int
}

// Admissibility is implemented by heuristics that know whether they never
// overestimate. Heuristics without it are assumed admissible.
type Admissibility interface {
	Admissible() bool
}

// IsAdmissible reports whether h never overestimates the true distance.
func IsAdmissible(h Heuristic) bool {
	if a, ok := h.(Admissibility); ok {
		return a.Admissible()
	}
	return true
}

// Table looks the distance up in the pattern database of one projection.
type Table struct {
	table      *pdb.Table
	projection coord.Projection
}

// NewTable wraps t, which must have been built for p.
func NewTable(t *pdb.Table, p coord.Projection) (*Table, error) {
	if t.Name() != p.Name() || t.Size() != p.Size() {
		return nil, fmt.Errorf("%w: table %s (%d), projection %s (%d)",
			ErrTableMismatch, t.Name(), t.Size(), p.Name(), p.Size())
	}
	return &Table{table: t, projection: p}, nil
}

// Estimate returns the exact distance of the projected state, which bounds
// the distance of the whole cube. Unreached coordinates estimate 0.
func (h *Table) Estimate(s cube.State) int {
	d, _ := h.table.Distance(h.projection.Encode(s))
	return d
}

func (h *Table) Admissible() bool { return true }

// Name returns the projection name.
func (h *Table) Name() string { return h.projection.Name() }

type zero struct{}

// Zero returns the heuristic that always estimates 0, turning the informed
// searches into plain iterative deepening or uniform-cost search.
func Zero() Heuristic { return zero{} }

func (zero) Estimate(cube.State) int { return 0 }
func (zero) Admissible() bool        { return true }

type inadmissible struct {
	Heuristic
}

// Inadmissible marks h as possibly overestimating, for sources such as
// learned models. Searches driven by it lose their optimality guarantee.
func Inadmissible(h Heuristic) Heuristic {
	return inadmissible{h}
}

func (inadmissible) Admissible() bool { return false }
