// Package analysis summarises recorded solves.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

// Summary contains statistics for the solves of one algorithm.
type Summary struct {
	Algorithm      string           `json:"algorithm"`
	Solves         int              `json:"solves"`
	Failed         int              `json:"failed"`
	MeanLength     float64          `json:"mean_length"`
	StdDevLength   float64          `json:"stddev_length"`
	LongestLength  int              `json:"longest_length"`
	LengthCounts   map[int]int      `json:"length_counts"`
	MeanExpanded   float64          `json:"mean_expanded"`
	NodesPerSecond float64          `json:"nodes_per_second"`
	TotalMs        int64            `json:"total_ms"`
	Profile        *MovementProfile `json:"profile"`
}

// Summarize groups solves by algorithm, ordered by name.
func Summarize(solves []storage.Solve) []Summary {
	byAlgorithm := make(map[string][]storage.Solve)
	for _, s := range solves {
		byAlgorithm[s.Algorithm] = append(byAlgorithm[s.Algorithm], s)
	}

	names := make([]string, 0, len(byAlgorithm))
	for name := range byAlgorithm {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, summarize(name, byAlgorithm[name]))
	}
	return summaries
}

func summarize(name string, solves []storage.Solve) Summary {
	sum := Summary{
		Algorithm:    name,
		Solves:       len(solves),
		LengthCounts: make(map[int]int),
	}

	var (
		lengths  []float64
		expanded []float64
		nodes    uint64
		moves    []cube.Move
	)
	for _, s := range solves {
		sum.TotalMs += s.DurationMs
		nodes += s.Expanded
		if s.SolutionLength == nil {
			sum.Failed++
			continue
		}
		n := *s.SolutionLength
		lengths = append(lengths, float64(n))
		expanded = append(expanded, float64(s.Expanded))
		sum.LengthCounts[n]++
		if n > sum.LongestLength {
			sum.LongestLength = n
		}
		if s.SolutionText != nil {
			if parsed, err := cube.ParseMoves(*s.SolutionText); err == nil {
				moves = append(moves, parsed...)
			}
		}
	}

	switch {
	case len(lengths) > 1:
		sum.MeanLength, sum.StdDevLength = stat.MeanStdDev(lengths, nil)
	case len(lengths) == 1:
		sum.MeanLength = lengths[0]
	}
	if len(expanded) > 0 {
		sum.MeanExpanded = stat.Mean(expanded, nil)
	}
	if sum.TotalMs > 0 {
		sum.NodesPerSecond = float64(nodes) / (float64(sum.TotalMs) / 1000.0)
	}
	sum.Profile = AnalyzeMovementProfile(moves)
	return sum
}

// MovementProfile counts which faces and turns solutions use.
type MovementProfile struct {
	FaceCounts   map[cube.Face]int `json:"face_counts"`
	TurnCounts   map[cube.Turn]int `json:"turn_counts"`
	MostUsedFace cube.Face         `json:"most_used_face"`
	MostUsedTurn cube.Turn         `json:"most_used_turn"`
	Moves        int               `json:"moves"`
}

// AnalyzeMovementProfile analyzes which faces and turns are most used. Ties
// go to the earlier face in U R F D L B order and the earlier turn in
// CW, Double, CCW order.
func AnalyzeMovementProfile(moves []cube.Move) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts: make(map[cube.Face]int),
		TurnCounts: make(map[cube.Turn]int),
		Moves:      len(moves),
	}

	for _, m := range moves {
		profile.FaceCounts[m.Face]++
		profile.TurnCounts[m.Turn]++
	}

	maxFaceCount := 0
	for face := cube.Face(0); face < cube.NumFaces; face++ {
		if count := profile.FaceCounts[face]; count > maxFaceCount {
			maxFaceCount = count
			profile.MostUsedFace = face
		}
	}

	maxTurnCount := 0
	for _, turn := range []cube.Turn{cube.CW, cube.Double, cube.CCW} {
		if count := profile.TurnCounts[turn]; count > maxTurnCount {
			maxTurnCount = count
			profile.MostUsedTurn = turn
		}
	}

	return profile
}
