// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..."; callers match with errors.Is.

package matrix

import "errors"

var (
	// ErrNilSystem indicates that a nil *diagram.System was passed in.
	ErrNilSystem = errors.New("matrix: system is nil")

	// ErrInvalidDimensions indicates that requested matrix dimensions are
	// non-positive (a System with no subsystems or no wires).
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside
	// valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrUnknownSystem indicates a row label not present in the matrix.
	ErrUnknownSystem = errors.New("matrix: unknown system")

	// ErrUnknownWire indicates a column label not present in the matrix.
	ErrUnknownWire = errors.New("matrix: unknown wire")
)
