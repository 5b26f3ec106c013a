// SPDX-License-Identifier: MIT

package symbolic

import (
	"fmt"
	"math/big"
)

// Eliminator collects equations over symbols and solves them for a chosen
// set of unknowns, expressing each unknown in the remaining symbols.
type Eliminator interface {
	// Symbol returns the expression standing for the symbol name.
	Symbol(name string) Expr
	// Assert records the equation lhs = rhs.
	Assert(lhs, rhs Expr)
	// Solve eliminates the unknowns and returns one expression per unknown.
	Solve(unknowns []string) (map[string]Expr, error)
}

// LinearSystem is the default Eliminator: exact Gauss–Jordan elimination
// over rational functions of the non-unknown symbols.
//
// Every asserted equation must be linear in the unknowns once denominators
// are cleared. A system with a free unknown or a contradictory equation is
// rejected rather than partially solved.
type LinearSystem struct {
	eqs []Expr // each entry is lhs - rhs = 0
}

// NewLinearSystem returns an empty system.
func NewLinearSystem() *LinearSystem {
	return &LinearSystem{}
}

func (ls *LinearSystem) Symbol(name string) Expr { return Sym(name) }

func (ls *LinearSystem) Assert(lhs, rhs Expr) {
	ls.eqs = append(ls.eqs, lhs.Sub(rhs))
}

// Len returns the number of asserted equations.
func (ls *LinearSystem) Len() int { return len(ls.eqs) }

// Solve runs Gauss–Jordan elimination with the first non-zero pivot in
// each column.
//
// Errors:
//   - ErrNonlinear if an unknown appears with degree > 1 or multiplied by
//     another unknown.
//   - ErrInconsistent if elimination leaves 0 = c with c non-zero.
//   - ErrUnderdetermined if some unknown has no pivot.
func (ls *LinearSystem) Solve(unknowns []string) (map[string]Expr, error) {
	col := make(map[string]int, len(unknowns))
	for i, u := range unknowns {
		col[u] = i
	}

	n := len(unknowns)
	rows := make([][]Expr, 0, len(ls.eqs))
	for i, eq := range ls.eqs {
		for _, v := range eq.den.Vars() {
			if _, ok := col[v]; ok {
				return nil, fmt.Errorf("Solve: equation %d: %q in denominator: %w", i, v, ErrNonlinear)
			}
		}
		row, err := linearRow(eq.Num(), col, n)
		if err != nil {
			return nil, fmt.Errorf("Solve: equation %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	var (
		rank  int
		pivot = make([]int, n) // column -> row, -1 when free
	)
	for c := 0; c < n; c++ {
		pivot[c] = -1
		r := rank
		for r < len(rows) && rows[r][c].IsZero() {
			r++
		}
		if r == len(rows) {
			continue
		}
		rows[rank], rows[r] = rows[r], rows[rank]

		p := rows[rank][c]
		for k := range rows[rank] {
			rows[rank][k], _ = rows[rank][k].Div(p)
		}
		for i := range rows {
			if i == rank || rows[i][c].IsZero() {
				continue
			}
			f := rows[i][c]
			for k := range rows[i] {
				rows[i][k] = rows[i][k].Sub(f.Mul(rows[rank][k]))
			}
		}
		pivot[c] = rank
		rank++
	}

	for i := rank; i < len(rows); i++ {
		if !rows[i][n].IsZero() {
			return nil, fmt.Errorf("Solve: 0 = %s: %w", rows[i][n], ErrInconsistent)
		}
	}
	out := make(map[string]Expr, n)
	for c, u := range unknowns {
		if pivot[c] < 0 {
			return nil, fmt.Errorf("Solve: %q is free: %w", u, ErrUnderdetermined)
		}
		out[u] = rows[pivot[c]][n]
	}
	return out, nil
}

// linearRow splits num = sum(a_j * u_j) + b into [a_0 .. a_{n-1}, -b].
func linearRow(num Poly, col map[string]int, n int) ([]Expr, error) {
	parts := make([]builder, n+1)
	for i := range parts {
		parts[i] = make(builder)
	}
	minusOne := big.NewRat(-1, 1)
	for _, t := range num.terms {
		j, rest := -1, Monomial(nil)
		for _, f := range t.mono {
			c, ok := col[f.Var]
			if !ok {
				continue
			}
			if j >= 0 || f.Exp > 1 {
				return nil, fmt.Errorf("term %s: %w", Poly{terms: []term{t}}, ErrNonlinear)
			}
			j, rest = c, t.mono.without(f.Var)
		}
		if j < 0 {
			parts[n].add(new(big.Rat).Mul(t.coef, minusOne), t.mono)
			continue
		}
		parts[j].add(t.coef, rest)
	}
	row := make([]Expr, n+1)
	for i, b := range parts {
		row[i] = Expr{num: b.poly()}
	}
	return row, nil
}
