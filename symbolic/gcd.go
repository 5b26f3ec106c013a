// SPDX-License-Identifier: MIT

package symbolic

// GCD returns the monic greatest common divisor of p and q.
// GCD(0, 0) is 0.
//
// Implementation:
//   - Recursive on the smallest variable name v shared by p and q: split
//     each operand into content (gcd of its coefficients in v) and
//     primitive part.
//   - Run a primitive polynomial remainder sequence on the primitive parts,
//     stripping the content of every pseudo-remainder.
//   - Multiply the last non-zero primitive remainder by the gcd of contents.
func GCD(p, q Poly) Poly {
	switch {
	case p.IsZero():
		return q.Monic()
	case q.IsZero():
		return p.Monic()
	case p.IsConst() || q.IsConst():
		return OnePoly()
	}

	v := mainVar(p, q)
	if p.Degree(v) == 0 {
		return GCD(p, contentIn(q, v))
	}
	if q.Degree(v) == 0 {
		return GCD(contentIn(p, v), q)
	}

	cp, cq := contentIn(p, v), contentIn(q, v)
	c := GCD(cp, cq)
	a, _ := divExact(p, cp)
	b, _ := divExact(q, cq)
	if a.Degree(v) < b.Degree(v) {
		a, b = b, a
	}
	for b.Degree(v) > 0 {
		r := prem(a, b, v)
		a = b
		if r.IsZero() {
			b = r
			break
		}
		b = primitivePart(r, v)
	}
	if !b.IsZero() {
		// a non-zero remainder free of v: the primitive parts are coprime
		return c
	}
	return c.Mul(a).Monic()
}

// mainVar returns the smallest variable name present in p or q.
func mainVar(p, q Poly) string {
	var best string
	for _, vs := range [][]string{p.Vars(), q.Vars()} {
		if len(vs) > 0 && (best == "" || vs[0] < best) {
			best = vs[0]
		}
	}
	return best
}

// contentIn returns the monic gcd of the coefficients of p seen as a
// polynomial in v.
func contentIn(p Poly, v string) Poly {
	g := ZeroPoly()
	for _, c := range p.CoeffsIn(v) {
		if c.IsZero() {
			continue
		}
		g = GCD(g, c)
		if g.IsConst() {
			return OnePoly()
		}
	}
	return g
}

func primitivePart(p Poly, v string) Poly {
	q, _ := divExact(p, contentIn(p, v))
	return q
}

// prem returns the pseudo-remainder of a by b with respect to v.
func prem(a, b Poly, v string) Poly {
	db := b.Degree(v)
	lb := b.CoeffsIn(v)[db]
	r := a
	for !r.IsZero() && r.Degree(v) >= db {
		dr := r.Degree(v)
		lr := r.CoeffsIn(v)[dr]
		r = r.Mul(lb).Sub(lr.Mul(b).mulVarPow(v, dr-db))
	}
	return r
}
