// SPDX-License-Identifier: MIT
// Package: sysdiag/symbolic
//
// poly.go — sparse multivariate polynomials with exact rational
// coefficients.
//
// Representation:
//   - A Poly is a slice of terms sorted in descending lexicographic
//     monomial order (variables compared by name).
//   - No term has a zero coefficient; the zero polynomial has no terms.
//   - Values are immutable: every operation returns a fresh Poly and never
//     aliases the big.Rat coefficients of its operands.

package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Power is one factor Var^Exp of a monomial; Exp is always positive.
type Power struct {
	Var string
	Exp int
}

// Monomial is a product of powers sorted by variable name.
type Monomial []Power

func (m Monomial) key() string {
	var b strings.Builder
	for i, p := range m {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(p.Var)
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(p.Exp))
	}
	return b.String()
}

// degree returns the exponent of v in m.
func (m Monomial) degree(v string) int {
	for _, p := range m {
		if p.Var == v {
			return p.Exp
		}
	}
	return 0
}

// without returns m with v removed.
func (m Monomial) without(v string) Monomial {
	out := make(Monomial, 0, len(m))
	for _, p := range m {
		if p.Var != v {
			out = append(out, p)
		}
	}
	return out
}

// cmpMono orders monomials lexicographically: >0 when a > b.
func cmpMono(a, b Monomial) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Var != b[i].Var {
			// the monomial holding the smaller variable name ranks higher
			if a[i].Var < b[i].Var {
				return 1
			}
			return -1
		}
		if a[i].Exp != b[i].Exp {
			return a[i].Exp - b[i].Exp
		}
	}
	return len(a) - len(b)
}

func mulMono(a, b Monomial) Monomial {
	out := make(Monomial, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Var == b[j].Var:
			out = append(out, Power{a[i].Var, a[i].Exp + b[j].Exp})
			i++
			j++
		case a[i].Var < b[j].Var:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// divMono returns a/b when b divides a.
func divMono(a, b Monomial) (Monomial, bool) {
	out := make(Monomial, 0, len(a))
	j := 0
	for _, p := range a {
		if j < len(b) && b[j].Var == p.Var {
			switch {
			case b[j].Exp > p.Exp:
				return nil, false
			case b[j].Exp < p.Exp:
				out = append(out, Power{p.Var, p.Exp - b[j].Exp})
			}
			j++
			continue
		}
		if j < len(b) && b[j].Var < p.Var {
			return nil, false
		}
		out = append(out, p)
	}
	if j < len(b) {
		return nil, false
	}
	return out, true
}

type term struct {
	coef *big.Rat
	mono Monomial
}

// Poly is a multivariate polynomial over the rationals.
type Poly struct {
	terms []term
}

// builder accumulates terms by monomial.
type builder map[string]term

func (b builder) add(c *big.Rat, m Monomial) {
	if c.Sign() == 0 {
		return
	}
	k := m.key()
	if t, ok := b[k]; ok {
		t.coef = new(big.Rat).Add(t.coef, c)
		b[k] = t
		return
	}
	b[k] = term{coef: new(big.Rat).Set(c), mono: m}
}

func (b builder) poly() Poly {
	terms := make([]term, 0, len(b))
	for _, t := range b {
		if t.coef.Sign() != 0 {
			terms = append(terms, t)
		}
	}
	sort.Slice(terms, func(i, j int) bool { return cmpMono(terms[i].mono, terms[j].mono) > 0 })
	return Poly{terms: terms}
}

// ZeroPoly returns the zero polynomial.
func ZeroPoly() Poly { return Poly{} }

// OnePoly returns the constant 1.
func OnePoly() Poly { return ConstPoly(big.NewRat(1, 1)) }

// ConstPoly returns the constant polynomial c.
func ConstPoly(c *big.Rat) Poly {
	if c.Sign() == 0 {
		return Poly{}
	}
	return Poly{terms: []term{{coef: new(big.Rat).Set(c)}}}
}

// VarPoly returns the polynomial consisting of the single variable name.
func VarPoly(name string) Poly {
	return Poly{terms: []term{{coef: big.NewRat(1, 1), mono: Monomial{{Var: name, Exp: 1}}}}}
}

func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// IsConst reports whether p has no variables (zero included).
func (p Poly) IsConst() bool {
	return len(p.terms) == 0 || (len(p.terms) == 1 && len(p.terms[0].mono) == 0)
}

// IsOne reports whether p is the constant 1.
func (p Poly) IsOne() bool {
	return len(p.terms) == 1 && len(p.terms[0].mono) == 0 && p.terms[0].coef.Cmp(big.NewRat(1, 1)) == 0
}

// LeadCoef returns a copy of the coefficient of the leading term; 0 for
// the zero polynomial.
func (p Poly) LeadCoef() *big.Rat {
	if p.IsZero() {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.terms[0].coef)
}

func (p Poly) Add(q Poly) Poly {
	b := make(builder, len(p.terms)+len(q.terms))
	for _, t := range p.terms {
		b.add(t.coef, t.mono)
	}
	for _, t := range q.terms {
		b.add(t.coef, t.mono)
	}
	return b.poly()
}

func (p Poly) Neg() Poly {
	out := make([]term, len(p.terms))
	for i, t := range p.terms {
		out[i] = term{coef: new(big.Rat).Neg(t.coef), mono: t.mono}
	}
	return Poly{terms: out}
}

func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	b := make(builder, len(p.terms)*len(q.terms))
	c := new(big.Rat)
	for _, s := range p.terms {
		for _, t := range q.terms {
			b.add(c.Mul(s.coef, t.coef), mulMono(s.mono, t.mono))
		}
	}
	return b.poly()
}

// Scale multiplies every coefficient by c.
func (p Poly) Scale(c *big.Rat) Poly {
	return p.mulTerm(c, nil)
}

// Monic scales p so that its leading coefficient is 1. Zero stays zero.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return p
	}
	return p.Scale(new(big.Rat).Inv(p.terms[0].coef))
}

func (p Poly) mulTerm(c *big.Rat, m Monomial) Poly {
	if c.Sign() == 0 {
		return Poly{}
	}
	out := make([]term, len(p.terms))
	for i, t := range p.terms {
		// multiplying by a monomial preserves the order
		out[i] = term{coef: new(big.Rat).Mul(t.coef, c), mono: mulMono(t.mono, m)}
	}
	return Poly{terms: out}
}

// Vars returns the sorted variable names occurring in p.
func (p Poly) Vars() []string {
	seen := make(map[string]struct{})
	for _, t := range p.terms {
		for _, f := range t.mono {
			seen[f.Var] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Degree returns the highest exponent of v in p, or -1 for zero.
func (p Poly) Degree(v string) int {
	if p.IsZero() {
		return -1
	}
	d := 0
	for _, t := range p.terms {
		if e := t.mono.degree(v); e > d {
			d = e
		}
	}
	return d
}

// CoeffsIn splits p by powers of v: the result at index i is the
// coefficient of v^i, a polynomial free of v.
func (p Poly) CoeffsIn(v string) []Poly {
	d := p.Degree(v)
	if d < 0 {
		return nil
	}
	parts := make([]builder, d+1)
	for i := range parts {
		parts[i] = make(builder)
	}
	for _, t := range p.terms {
		parts[t.mono.degree(v)].add(t.coef, t.mono.without(v))
	}
	out := make([]Poly, d+1)
	for i, b := range parts {
		out[i] = b.poly()
	}
	return out
}

// Equal reports structural equality, which is mathematical equality.
func (p Poly) Equal(q Poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if cmpMono(p.terms[i].mono, q.terms[i].mono) != 0 || p.terms[i].coef.Cmp(q.terms[i].coef) != 0 {
			return false
		}
	}
	return true
}

// Eval evaluates p in float64 with the given variable values.
func (p Poly) Eval(values map[string]float64) (float64, error) {
	var sum float64
	for _, t := range p.terms {
		c, _ := t.coef.Float64()
		for _, f := range t.mono {
			x, ok := values[f.Var]
			if !ok {
				return 0, fmt.Errorf("Eval(%q): %w", f.Var, ErrUnboundSymbol)
			}
			c *= math.Pow(x, float64(f.Exp))
		}
		sum += c
	}
	return sum, nil
}

// String renders p as "2*s^2*x - 3/4*y + 1", leading term first.
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	abs := new(big.Rat)
	for i, t := range p.terms {
		neg := t.coef.Sign() < 0
		switch {
		case i == 0 && neg:
			b.WriteByte('-')
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		abs.Abs(t.coef)
		if len(t.mono) == 0 {
			b.WriteString(abs.RatString())
			continue
		}
		if !abs.IsInt() || abs.Num().Cmp(big.NewInt(1)) != 0 {
			b.WriteString(abs.RatString())
			b.WriteByte('*')
		}
		for j, f := range t.mono {
			if j > 0 {
				b.WriteByte('*')
			}
			b.WriteString(f.Var)
			if f.Exp > 1 {
				b.WriteByte('^')
				b.WriteString(strconv.Itoa(f.Exp))
			}
		}
	}
	return b.String()
}

// mulVarPow multiplies p by v^k.
func (p Poly) mulVarPow(v string, k int) Poly {
	if k == 0 {
		return p
	}
	return p.mulTerm(big.NewRat(1, 1), Monomial{{Var: v, Exp: k}})
}

// divExact returns p/q when q divides p exactly.
func divExact(p, q Poly) (Poly, bool) {
	if q.IsZero() {
		return Poly{}, false
	}
	if q.IsOne() {
		return p, true
	}
	lq := q.terms[0]
	quot := make(builder)
	r := p
	for !r.IsZero() {
		lr := r.terms[0]
		m, ok := divMono(lr.mono, lq.mono)
		if !ok {
			return Poly{}, false
		}
		c := new(big.Rat).Quo(lr.coef, lq.coef)
		quot.add(c, m)
		r = r.Sub(q.mulTerm(c, m))
	}
	return quot.poly(), true
}
