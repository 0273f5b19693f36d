package pdb

import (
	"fmt"
	"math/rand"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Verify checks the BFS invariants of t on samples coordinates drawn from
// rng, or on every coordinate when samples is zero: each distance is known,
// neighbours differ by at most one, and every non-zero distance has a
// neighbour one closer to solved.
func Verify(t *Table, p coord.Projection, samples int, rng *rand.Rand) error {
	if t.Size() != p.Size() || t.Name() != p.Name() {
		return fmt.Errorf("%w: table %s does not match projection %s", ErrCorruptTable, t.Name(), p.Name())
	}
	moves := cube.AllMoves()
	check := func(c uint64) error {
		d, ok := t.Distance(c)
		if !ok {
			return fmt.Errorf("%w: coordinate %d has no distance", ErrCorruptTable, c)
		}
		closer := d == 0
		for _, m := range moves {
			nd, ok := t.Distance(p.Move(c, m))
			if !ok || nd < d-1 || nd > d+1 {
				return fmt.Errorf("%w: coordinate %d at %d has a neighbour at %d", ErrCorruptTable, c, d, nd)
			}
			if nd == d-1 {
				closer = true
			}
		}
		if !closer {
			return fmt.Errorf("%w: coordinate %d at %d has no closer neighbour", ErrCorruptTable, c, d)
		}
		return nil
	}

	if samples <= 0 {
		for c := uint64(0); c < t.Size(); c++ {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < samples; i++ {
		if err := check(uint64(rng.Int63n(int64(t.Size())))); err != nil {
			return err
		}
	}
	return nil
}
