// Package gocube finds optimal solutions to the 3x3 Rubik's Cube in the
// face-turn metric.
//
// # Features
//
//   - Cubie-level cube model with standard move notation
//   - Pattern databases for corners and edge groups, built in parallel
//   - IDA*, A*, breadth-first and iterative deepening search
//   - Tables saved to disk with checksums and reloaded on start
//
// # Quick Start
//
// Build the tables once (this takes a while and needs about 1.5 GiB for the
// default 6+6 edge split), then solve:
//
//	solver, err := gocube.New(gocube.WithBuildMissing(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := solver.SolveMoves(ctx, "R U R' U' F2 D")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(gocube.FormatMoves(res.Moves))
//
// # Working With Cube States
//
// States are values: applying a move returns a new state.
//
//	s := gocube.Solved().ApplyMoves(gocube.SexyMove)
//	fmt.Println(s.IsSolved()) // false
//	fmt.Println(s)            // unfolded sticker net
//
// # Smaller Tables
//
// WithProjections selects which pattern databases back the heuristic. Small
// ones build in seconds and still give optimal solutions, only slower:
//
//	solver, err := gocube.New(
//	    gocube.WithProjections("corners:0,1,2,3", "edges:0,1,2,3"),
//	    gocube.WithBuildMissing(true),
//	)
package gocube

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
)

// Cube types.
type (
	// Move is a face turn.
	Move = cube.Move
	// State is an immutable cube configuration.
	State = cube.State
	// Facelets is a cube as 54 sticker colors.
	Facelets = cube.Facelets
	// Result is a solution with the search effort spent on it.
	Result = search.Result
)

// Solved returns the solved cube.
func Solved() State {
	return cube.Solved()
}

// ParseMoves parses space separated moves such as "R U2 F'".
func ParseMoves(notation string) ([]Move, error) {
	return cube.ParseMoves(notation)
}

// FormatMoves writes moves in standard notation.
func FormatMoves(moves []Move) string {
	return cube.FormatMoves(moves)
}

// InvertMoves returns the sequence that undoes moves.
func InvertMoves(moves []Move) []Move {
	return cube.InvertMoves(moves)
}

// ParseFacelets reads a cube from 54 stickers; see cube.ParseFacelets for
// the accepted letters.
func ParseFacelets(text string) (State, error) {
	f, err := cube.ParseFacelets(text)
	if err != nil {
		return State{}, err
	}
	return cube.FromFacelets(f)
}
