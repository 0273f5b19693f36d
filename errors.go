package gocube

import (
	"errors"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
)

// Sentinel errors for the gocube package.
var (
	// Parsing errors
	ErrInvalidNotation = cube.ErrInvalidNotation
	ErrInvalidFacelets = cube.ErrInvalidFacelets

	// State errors
	ErrInvalidState = cube.ErrInvalidState

	// Search errors
	ErrNoSolution = search.ErrNoSolution
	ErrCancelled  = search.ErrCancelled

	// Table errors
	ErrTablesNotBuilt = errors.New("gocube: pattern databases not built")
	ErrOutOfMemory    = pdb.ErrOutOfMemory
	ErrCorruptTable   = pdb.ErrCorruptTable
	ErrInvalidWidth   = pdb.ErrInvalidWidth
)
