// SPDX-License-Identifier: MIT

// Package transfer extracts symbolic transfer functions from a block
// diagram.
//
// Solve walks a System top-down. Leaf blocks (and every System once the
// depth bound is reached) contribute their per-kind equation rule:
//
//	Summation         y = Σ ±u_i, signs from the "ops" parameter
//	TransferFunction  y = N(s)/D(s) · u, coefficients in ascending powers
//	Source            y = U_<name>, a new free input
//	Sink              no output
//	others            y_j = Σ TF_<name>_<in>_<out> · u_i (generic gains)
//
// Composite Systems get one unknown per wire; every child's outputs are
// equated to its output wires and the wire unknowns are eliminated with a
// symbolic.Eliminator (by default exact Gauss–Jordan elimination over
// rational functions).
//
// Example:
//
//	res, err := transfer.Solve(root, transfer.WithDepth(1))
//	if err != nil { ... }
//	for _, o := range res.Outputs {
//		fmt.Println(o.Var, "=", o.Expr)
//	}
//
// Unconnected ports and wires never abort a solve: they are reported in
// Result.Diagnostics and logged at WARN through the configured slog.Logger.
package transfer
