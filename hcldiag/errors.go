// SPDX-License-Identifier: MIT

package hcldiag

import "errors"

var (
	// ErrSyntax wraps HCL parse or structure diagnostics.
	ErrSyntax = errors.New("hcldiag: syntax error")

	// ErrUnknownKeyword indicates a block keyword not in the catalog.
	ErrUnknownKeyword = errors.New("hcldiag: unknown block keyword")

	// ErrBadReference indicates a "<system>.<port>" reference that does not
	// resolve.
	ErrBadReference = errors.New("hcldiag: bad port reference")

	// ErrBadValue indicates an attribute value that cannot be a parameter.
	ErrBadValue = errors.New("hcldiag: bad value")

	// ErrNoSystem indicates a file without exactly one top-level system.
	ErrNoSystem = errors.New("hcldiag: want exactly one top-level system")
)
