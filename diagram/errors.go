// SPDX-License-Identifier: MIT
// Package: sysdiag/diagram
//
// errors.go — sentinel errors for the diagram data model.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Implementations attach method context with %w, e.g.
//     fmt.Errorf("AddPort(%q): %w", name, ErrNameConflict).
//   - Every mutation fails fast at the violating call and leaves the
//     diagram unchanged.

package diagram

import "errors"

var (
	// ErrNameConflict indicates that a port, subsystem or wire name is already
	// taken inside the owning System.
	ErrNameConflict = errors.New("diagram: name already exists")

	// ErrInvalidName indicates a blank (empty or whitespace-only) base name.
	ErrInvalidName = errors.New("diagram: invalid name")

	// ErrInvalidCategory indicates a naming category other than subsystem or wire.
	ErrInvalidCategory = errors.New("diagram: invalid name category")

	// ErrAlreadyAttached indicates the port, wire or subsystem already has an owner.
	ErrAlreadyAttached = errors.New("diagram: already attached")

	// ErrCyclicHierarchy indicates an attempt to make a System its own descendant.
	ErrCyclicHierarchy = errors.New("diagram: cyclic hierarchy")

	// ErrNotFound indicates a named port, subsystem or wire does not exist.
	ErrNotFound = errors.New("diagram: not found")

	// ErrAlreadyConnected indicates the port slot for the requested level is
	// occupied by another wire.
	ErrAlreadyConnected = errors.New("diagram: port already connected elsewhere")

	// ErrLevelViolation indicates the port is neither a child-level nor a
	// boundary-level attachment point of the wire's owner.
	ErrLevelViolation = errors.New("diagram: connection level violation")

	// ErrTypeMismatch indicates a typed wire and a port with another type.
	ErrTypeMismatch = errors.New("diagram: type mismatch")

	// ErrWrongDirection indicates a non-directional port offered to a signal wire.
	ErrWrongDirection = errors.New("diagram: port has no signal direction")

	// ErrMultiSource indicates a second signal source on a signal wire.
	ErrMultiSource = errors.New("diagram: signal wire already has a source")

	// ErrNoCommonParent indicates two Systems that are not siblings.
	ErrNoCommonParent = errors.New("diagram: systems have no common parent")

	// ErrPortInUse indicates removal of a port (or subsystem) that is still wired.
	ErrPortInUse = errors.New("diagram: port in use")

	// ErrUnsupported marks operations that are deliberately not implemented,
	// such as implicit disconnect-then-remove.
	ErrUnsupported = errors.New("diagram: unsupported operation")

	// ErrUnknownBlockKind indicates a block kind or type name outside the catalog.
	ErrUnknownBlockKind = errors.New("diagram: unknown block kind")

	// ErrInvalidParam indicates a parameter value of an unsupported type.
	ErrInvalidParam = errors.New("diagram: invalid parameter value")
)
