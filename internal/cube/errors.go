package cube

import "errors"

// Sentinel errors for the cube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("gocube: invalid move notation")

	// State errors
	ErrInvalidState    = errors.New("gocube: invalid cube state")
	ErrInvalidFacelets = errors.New("gocube: invalid facelet colors")
)
