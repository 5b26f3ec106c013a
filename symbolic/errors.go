// SPDX-License-Identifier: MIT

package symbolic

import "errors"

var (
	// ErrDivByZero indicates division by the zero expression.
	ErrDivByZero = errors.New("symbolic: division by zero")

	// ErrNotFinite indicates a NaN or infinite float constant.
	ErrNotFinite = errors.New("symbolic: constant is not finite")

	// ErrUnboundSymbol indicates Eval met a symbol without a value.
	ErrUnboundSymbol = errors.New("symbolic: unbound symbol")

	// ErrNonlinear indicates an equation that is not linear in the unknowns.
	ErrNonlinear = errors.New("symbolic: equation is not linear in the unknowns")

	// ErrInconsistent indicates an equation system with no solution.
	ErrInconsistent = errors.New("symbolic: inconsistent equations")

	// ErrUnderdetermined indicates an unknown the equations do not fix.
	ErrUnderdetermined = errors.New("symbolic: underdetermined equations")
)
