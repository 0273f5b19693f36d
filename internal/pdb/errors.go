package pdb

import "errors"

// Sentinel errors for table construction and storage.
var (
	// Construction errors
	ErrOutOfMemory   = errors.New("gocube: distance table exceeds memory limit")
	ErrUnreachable   = errors.New("gocube: projection has unreachable coordinates")
	ErrDepthOverflow = errors.New("gocube: distance does not fit the table width")
	ErrInvalidWidth  = errors.New("gocube: invalid distance width")

	// Storage errors
	ErrCorruptTable = errors.New("gocube: corrupt table")
)
