// SPDX-License-Identifier: MIT

// Package matrix offers a matrix view of a diagram's connectivity.
//
// The matrix package provides:
//
//   - Dense, a bounds-checked row-major float64 matrix.
//   - Incidence, the subsystem-by-wire incidence matrix of one System:
//     -1 marks a wire's signal source, +1 every other directional endpoint
//     and +1 each non-directional (electrical) terminal.
//
// The view is a snapshot; later edits to the diagram are not reflected.
package matrix
