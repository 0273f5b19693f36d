package gocube

import "github.com/SeamusWaldron/gocube_solver/internal/cube"

// Predefined moves for convenience.
//
// Example:
//
//	gocube.Solved().ApplyMoves([]gocube.Move{gocube.R, gocube.U, gocube.RPrime, gocube.UPrime})
var (
	// Up face moves
	U      = cube.MoveAt(0) // Up clockwise
	UPrime = cube.MoveAt(2) // Up counter-clockwise
	U2     = cube.MoveAt(1) // Up 180

	// Right face moves
	R      = cube.MoveAt(3) // Right clockwise
	RPrime = cube.MoveAt(5) // Right counter-clockwise
	R2     = cube.MoveAt(4) // Right 180

	// Front face moves
	F      = cube.MoveAt(6) // Front clockwise
	FPrime = cube.MoveAt(8) // Front counter-clockwise
	F2     = cube.MoveAt(7) // Front 180

	// Down face moves
	D      = cube.MoveAt(9)  // Down clockwise
	DPrime = cube.MoveAt(11) // Down counter-clockwise
	D2     = cube.MoveAt(10) // Down 180

	// Left face moves
	L      = cube.MoveAt(12) // Left clockwise
	LPrime = cube.MoveAt(14) // Left counter-clockwise
	L2     = cube.MoveAt(13) // Left 180

	// Back face moves
	B      = cube.MoveAt(15) // Back clockwise
	BPrime = cube.MoveAt(17) // Back counter-clockwise
	B2     = cube.MoveAt(16) // Back 180
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
