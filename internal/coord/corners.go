package coord

import (
	"fmt"
	"sync"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

const (
	cornerPerms  = 40320 // 8!
	cornerTwists = 2187  // 3^7
)

// corners is the full corner projection: the corner permutation and the
// twists of the first seven positions, 8!*3^7 = 88,179,840 coordinates.
//
// Moves are applied through precomputed permutation and twist tables, the
// two halves of the coordinate being independent under face turns.
type corners struct {
	once  sync.Once
	perm  []uint16 // perm*NumMoves + move
	twist []uint16 // twist*NumMoves + move
}

var cornersProjection = &corners{}

// Corners returns the full corner projection.
func Corners() Projection {
	return cornersProjection
}

func (*corners) Name() string { return "corners" }
func (*corners) Kind() Kind   { return Corner }
func (*corners) Size() uint64 { return cornerPerms * cornerTwists }

func encodeCornerPerm(cp []uint8) uint64 {
	return rankPartial(cp, cube.NumCorners)
}

func encodeTwist(co []uint8) uint64 {
	return rankDigits(co[:cube.NumCorners-1], cube.CornerOrientations)
}

func decodeTwist(t uint64, co []uint8) {
	unrankDigits(t, cube.CornerOrientations, co[:cube.NumCorners-1])
	co[cube.NumCorners-1] = completeOrientation(co[:cube.NumCorners-1], cube.CornerOrientations)
}

func (*corners) Encode(s cube.State) uint64 {
	return encodeCornerPerm(s.CP[:])*cornerTwists + encodeTwist(s.CO[:])
}

func (*corners) Decode(c uint64) (cube.State, error) {
	if c >= cornerPerms*cornerTwists {
		return cube.State{}, fmt.Errorf("%w: %d not below %d for corners", ErrInvalidCoordinate, c, uint64(cornerPerms*cornerTwists))
	}
	s := cube.Solved()
	unrankPartial(c/cornerTwists, cube.NumCorners, s.CP[:])
	decodeTwist(c%cornerTwists, s.CO[:])
	return s, nil
}

func (*corners) Project(s cube.State) cube.State {
	r := cube.Solved()
	r.CP, r.CO = s.CP, s.CO
	return r
}

func (c *corners) tables() {
	c.once.Do(func() {
		moves := cube.AllMoves()
		c.perm = make([]uint16, cornerPerms*cube.NumMoves)
		for p := 0; p < cornerPerms; p++ {
			s := cube.Solved()
			unrankPartial(uint64(p), cube.NumCorners, s.CP[:])
			for i, m := range moves {
				t := m.Apply(s)
				c.perm[p*cube.NumMoves+i] = uint16(encodeCornerPerm(t.CP[:]))
			}
		}
		c.twist = make([]uint16, cornerTwists*cube.NumMoves)
		for tw := 0; tw < cornerTwists; tw++ {
			s := cube.Solved()
			decodeTwist(uint64(tw), s.CO[:])
			for i, m := range moves {
				t := m.Apply(s)
				c.twist[tw*cube.NumMoves+i] = uint16(encodeTwist(t.CO[:]))
			}
		}
	})
}

func (c *corners) Move(coord uint64, m cube.Move) uint64 {
	if coord >= cornerPerms*cornerTwists {
		panic(fmt.Errorf("%w: %s coordinate %d", ErrInvalidCoordinate, c.Name(), coord))
	}
	i := m.Index()
	if i < 0 {
		s, err := c.Decode(coord)
		if err != nil {
			panic(err)
		}
		return c.Encode(m.Apply(s))
	}
	c.tables()
	p, t := coord/cornerTwists, coord%cornerTwists
	return uint64(c.perm[int(p)*cube.NumMoves+i])*cornerTwists + uint64(c.twist[int(t)*cube.NumMoves+i])
}
