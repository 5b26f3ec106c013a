// SPDX-License-Identifier: MIT

package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
)

// Expr is a rational function num/den in canonical form: num and den share
// no common factor and den is monic. The zero value is the constant 0.
type Expr struct {
	num Poly
	den Poly // zero Poly stands for 1
}

// Sym returns the symbol called name.
func Sym(name string) Expr {
	return Expr{num: VarPoly(name)}
}

// Int returns the integer constant n.
func Int(n int64) Expr {
	return Expr{num: ConstPoly(new(big.Rat).SetInt64(n))}
}

// Rat returns the rational constant r.
func Rat(r *big.Rat) Expr {
	return Expr{num: ConstPoly(r)}
}

// Float returns the exact rational value of the shortest decimal form of
// x, so 0.1 becomes 1/10 rather than its binary approximation.
func Float(x float64) (Expr, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Expr{}, fmt.Errorf("Float(%v): %w", x, ErrNotFinite)
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(x, 'g', -1, 64))
	if !ok {
		return Expr{}, fmt.Errorf("Float(%v): %w", x, ErrNotFinite)
	}
	return Rat(r), nil
}

// PolyIn returns sum(coeffs[i] * v^i).
func PolyIn(v string, coeffs []float64) (Expr, error) {
	out := ZeroPoly()
	for i, c := range coeffs {
		e, err := Float(c)
		if err != nil {
			return Expr{}, fmt.Errorf("PolyIn(%q)[%d]: %w", v, i, err)
		}
		out = out.Add(e.num.mulVarPow(v, i))
	}
	return Expr{num: out}, nil
}

// FromPolys returns num/den in canonical form.
func FromPolys(num, den Poly) (Expr, error) {
	if den.IsZero() {
		return Expr{}, fmt.Errorf("FromPolys: %w", ErrDivByZero)
	}
	return canonical(num, den), nil
}

func canonical(num, den Poly) Expr {
	if num.IsZero() {
		return Expr{}
	}
	if !den.IsConst() {
		g := GCD(num, den)
		if !g.IsOne() {
			num, _ = divExact(num, g)
			den, _ = divExact(den, g)
		}
	}
	inv := new(big.Rat).Inv(den.LeadCoef())
	num, den = num.Scale(inv), den.Scale(inv)
	if den.IsOne() {
		den = ZeroPoly()
	}
	return Expr{num: num, den: den}
}

// Num returns the numerator.
func (e Expr) Num() Poly { return e.num }

// Den returns the monic denominator.
func (e Expr) Den() Poly {
	if e.den.IsZero() {
		return OnePoly()
	}
	return e.den
}

func (e Expr) IsZero() bool { return e.num.IsZero() }

// IsPoly reports whether e has a constant denominator.
func (e Expr) IsPoly() bool { return e.den.IsZero() }

func (e Expr) Add(f Expr) Expr {
	if e.IsPoly() && f.IsPoly() {
		return Expr{num: e.num.Add(f.num)}
	}
	if e.den.Equal(f.den) {
		return canonical(e.num.Add(f.num), e.den)
	}
	return canonical(e.num.Mul(f.Den()).Add(f.num.Mul(e.Den())), e.Den().Mul(f.Den()))
}

func (e Expr) Neg() Expr { return Expr{num: e.num.Neg(), den: e.den} }

func (e Expr) Sub(f Expr) Expr { return e.Add(f.Neg()) }

func (e Expr) Mul(f Expr) Expr {
	if e.IsZero() || f.IsZero() {
		return Expr{}
	}
	if e.IsPoly() && f.IsPoly() {
		return Expr{num: e.num.Mul(f.num)}
	}
	return canonical(e.num.Mul(f.num), e.Den().Mul(f.Den()))
}

// Div returns e/f; dividing by zero is an error.
func (e Expr) Div(f Expr) (Expr, error) {
	if f.IsZero() {
		return Expr{}, fmt.Errorf("Div: %w", ErrDivByZero)
	}
	return canonical(e.num.Mul(f.Den()), e.Den().Mul(f.num)), nil
}

// Equal compares canonical forms.
func (e Expr) Equal(f Expr) bool {
	return e.num.Equal(f.num) && e.den.Equal(f.den)
}

// Symbols returns the sorted symbol names occurring in e.
func (e Expr) Symbols() []string {
	seen := make(map[string]struct{})
	for _, v := range e.num.Vars() {
		seen[v] = struct{}{}
	}
	for _, v := range e.den.Vars() {
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Eval evaluates e in float64. Every symbol must be bound.
func (e Expr) Eval(values map[string]float64) (float64, error) {
	n, err := e.num.Eval(values)
	if err != nil {
		return 0, err
	}
	d, err := e.Den().Eval(values)
	if err != nil {
		return 0, err
	}
	return n / d, nil
}

// String renders e deterministically; a fraction is "(num)/(den)" with
// parentheses dropped around single terms.
func (e Expr) String() string {
	if e.IsPoly() {
		return e.num.String()
	}
	return wrap(e.num) + "/" + wrap(e.den)
}

func wrap(p Poly) string {
	if len(p.terms) == 1 {
		return p.String()
	}
	return "(" + p.String() + ")"
}
