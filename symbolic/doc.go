// SPDX-License-Identifier: MIT

// Package symbolic provides the exact algebra behind transfer-function
// extraction.
//
// What:
//
//   - Poly: sparse multivariate polynomials with math/big rational
//     coefficients, kept in descending lexicographic order.
//   - GCD: multivariate gcd by recursive primitive remainder sequences.
//   - Expr: rational functions kept in canonical form (coprime, monic
//     denominator), so structural equality is mathematical equality.
//   - Eliminator / LinearSystem: collect equations and solve them for a set
//     of unknowns by Gauss–Jordan elimination.
//
// Determinism:
//
//   - String output depends only on the value, never on map iteration.
//
// Example:
//
//	ls := symbolic.NewLinearSystem()
//	x, u := ls.Symbol("x"), ls.Symbol("u")
//	ls.Assert(x.Add(x), u)        // 2x = u
//	sol, _ := ls.Solve([]string{"x"})
//	fmt.Println(sol["x"])         // 1/2*u
package symbolic
