package pdb

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the distances of a table.
type Stats struct {
	// Histogram[d] is the number of coordinates at distance d.
	Histogram []uint64
	Unknown   uint64
	Mean      float64
	StdDev    float64
	MaxDepth  int
}

// Stats computes the distance histogram of t with its mean and standard
// deviation.
func (t *Table) Stats() Stats {
	unknown := t.Unknown()
	hist := make([]uint64, int(unknown))
	var st Stats
	for c := uint64(0); c < t.size; c++ {
		d := t.Get(c)
		if d == unknown {
			st.Unknown++
			continue
		}
		hist[d]++
		if int(d) > st.MaxDepth {
			st.MaxDepth = int(d)
		}
	}
	st.Histogram = hist[:st.MaxDepth+1]

	depths := make([]float64, len(st.Histogram))
	weights := make([]float64, len(st.Histogram))
	for d, n := range st.Histogram {
		depths[d] = float64(d)
		weights[d] = float64(n)
	}
	if t.size-st.Unknown > 1 {
		st.Mean, st.StdDev = stat.MeanStdDev(depths, weights)
	} else {
		st.Mean = stat.Mean(depths, weights)
	}
	return st
}
