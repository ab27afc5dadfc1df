package threshold

// The optimal ate pairing e: G1 x G2 -> GT, computed as a Miller loop
// followed by a final exponentiation, over the extension tower
// Fp -> Fp2 = Fp[u]/(u^2+1) -> Fp6 = Fp2[v]/(v^3-(1+u)) -> Fp12 = Fp6[w]/(w^2-v).
// Everything here is the low-level GT arithmetic used to verify BLS
// signature and threshold-decryption shares by pairing equality.

import "math/big"

// curveX is the BLS12-381 loop parameter (negative: x = -curveX).
var curveX, _ = new(big.Int).SetString("d201000000010000", 16)

type fp6 struct {
	c0, c1, c2 *fp2
}

func fp6Zero() *fp6 { return &fp6{c0: fp2Zero(), c1: fp2Zero(), c2: fp2Zero()} }
func fp6One() *fp6  { return &fp6{c0: fp2One(), c1: fp2Zero(), c2: fp2Zero()} }

func fp6Add(a, b *fp6) *fp6 {
	return &fp6{c0: fp2Add(a.c0, b.c0), c1: fp2Add(a.c1, b.c1), c2: fp2Add(a.c2, b.c2)}
}

func fp6Sub(a, b *fp6) *fp6 {
	return &fp6{c0: fp2Sub(a.c0, b.c0), c1: fp2Sub(a.c1, b.c1), c2: fp2Sub(a.c2, b.c2)}
}

// fp6Mul is Karatsuba multiplication in Fp6.
func fp6Mul(a, b *fp6) *fp6 {
	t0 := fp2Mul(a.c0, b.c0)
	t1 := fp2Mul(a.c1, b.c1)
	t2 := fp2Mul(a.c2, b.c2)

	c0 := fp2Add(t0, fp2MulByNonResidue(fp2Sub(fp2Mul(fp2Add(a.c1, a.c2), fp2Add(b.c1, b.c2)), fp2Add(t1, t2))))
	c1 := fp2Add(fp2Sub(fp2Mul(fp2Add(a.c0, a.c1), fp2Add(b.c0, b.c1)), fp2Add(t0, t1)), fp2MulByNonResidue(t2))
	c2 := fp2Add(fp2Sub(fp2Mul(fp2Add(a.c0, a.c2), fp2Add(b.c0, b.c2)), fp2Add(t0, t2)), t1)

	return &fp6{c0: c0, c1: c1, c2: c2}
}

func fp6Sqr(a *fp6) *fp6 {
	s0 := fp2Sqr(a.c0)
	ab := fp2Mul(a.c0, a.c1)
	s1 := fp2Add(ab, ab)
	s2 := fp2Sqr(fp2Sub(fp2Add(a.c0, a.c2), a.c1))
	bc := fp2Mul(a.c1, a.c2)
	s3 := fp2Add(bc, bc)
	s4 := fp2Sqr(a.c2)

	c0 := fp2Add(s0, fp2MulByNonResidue(s3))
	c1 := fp2Add(s1, fp2MulByNonResidue(s4))
	c2 := fp2Add(fp2Add(fp2Add(s1, s2), s3), fp2Sub(fp2Neg(s0), s4))

	return &fp6{c0: c0, c1: c1, c2: c2}
}

func fp6Neg(a *fp6) *fp6 {
	return &fp6{c0: fp2Neg(a.c0), c1: fp2Neg(a.c1), c2: fp2Neg(a.c2)}
}

func fp6Inv(a *fp6) *fp6 {
	t0 := fp2Sqr(a.c0)
	t1 := fp2Sqr(a.c1)
	t2 := fp2Sqr(a.c2)
	t3 := fp2Mul(a.c0, a.c1)
	t4 := fp2Mul(a.c0, a.c2)
	t5 := fp2Mul(a.c1, a.c2)

	c0 := fp2Sub(t0, fp2MulByNonResidue(t5))
	c1 := fp2Sub(fp2MulByNonResidue(t2), t3)
	c2 := fp2Sub(t1, t4)

	t6 := fp2Mul(a.c0, c0)
	t6 = fp2Add(t6, fp2MulByNonResidue(fp2Add(fp2Mul(a.c2, c1), fp2Mul(a.c1, c2))))
	t6 = fp2Inv(t6)

	return &fp6{c0: fp2Mul(c0, t6), c1: fp2Mul(c1, t6), c2: fp2Mul(c2, t6)}
}

// fp6MulByV multiplies by v: v*(c0+c1*v+c2*v^2) = c2*(1+u) + c0*v + c1*v^2.
func fp6MulByV(a *fp6) *fp6 {
	return &fp6{c0: fp2MulByNonResidue(a.c2), c1: newFp2(a.c0.c0, a.c0.c1), c2: newFp2(a.c1.c0, a.c1.c1)}
}

type fp12 struct {
	c0, c1 *fp6
}

func fp12Zero() *fp12 { return &fp12{c0: fp6Zero(), c1: fp6Zero()} }
func fp12One() *fp12  { return &fp12{c0: fp6One(), c1: fp6Zero()} }

func fp12Mul(a, b *fp12) *fp12 {
	t0 := fp6Mul(a.c0, b.c0)
	t1 := fp6Mul(a.c1, b.c1)

	c0 := fp6Add(t0, fp6MulByV(t1))
	c1 := fp6Sub(fp6Sub(fp6Mul(fp6Add(a.c0, a.c1), fp6Add(b.c0, b.c1)), t0), t1)

	return &fp12{c0: c0, c1: c1}
}

func fp12Sqr(a *fp12) *fp12 {
	ab := fp6Mul(a.c0, a.c1)
	c0 := fp6Add(fp6Mul(fp6Add(a.c0, a.c1), fp6Add(a.c0, fp6MulByV(a.c1))), fp6Neg(fp6Add(ab, fp6MulByV(ab))))
	c1 := fp6Add(ab, ab)
	return &fp12{c0: c0, c1: c1}
}

func fp12Inv(a *fp12) *fp12 {
	t := fp6Sub(fp6Sqr(a.c0), fp6MulByV(fp6Sqr(a.c1)))
	t = fp6Inv(t)
	return &fp12{c0: fp6Mul(a.c0, t), c1: fp6Neg(fp6Mul(a.c1, t))}
}

func fp12Conj(a *fp12) *fp12 {
	return &fp12{
		c0: &fp6{c0: newFp2(a.c0.c0.c0, a.c0.c0.c1), c1: newFp2(a.c0.c1.c0, a.c0.c1.c1), c2: newFp2(a.c0.c2.c0, a.c0.c2.c1)},
		c1: fp6Neg(a.c1),
	}
}

func fp12Exp(f *fp12, k *big.Int) *fp12 {
	if k.Sign() == 0 {
		return fp12One()
	}
	result := fp12One()
	base := &fp12{
		c0: &fp6{c0: newFp2(f.c0.c0.c0, f.c0.c0.c1), c1: newFp2(f.c0.c1.c0, f.c0.c1.c1), c2: newFp2(f.c0.c2.c0, f.c0.c2.c1)},
		c1: &fp6{c0: newFp2(f.c1.c0.c0, f.c1.c0.c1), c1: newFp2(f.c1.c1.c0, f.c1.c1.c1), c2: newFp2(f.c1.c2.c0, f.c1.c2.c1)},
	}
	for i := k.BitLen() - 1; i >= 0; i-- {
		result = fp12Sqr(result)
		if k.Bit(i) == 1 {
			result = fp12Mul(result, base)
		}
	}
	return result
}

func (f *fp12) isOne() bool {
	return f.c0.c0.equal(fp2One()) &&
		f.c0.c1.isZero() && f.c0.c2.isZero() &&
		f.c1.c0.isZero() && f.c1.c1.isZero() && f.c1.c2.isZero()
}

// lineFunctionAdd evaluates the Miller loop's line function for a
// mixed addition step R = R + Q, returning the sparse Fp12 line value
// and the updated R.
func lineFunctionAdd(r *g2Point, qx, qy *fp2, px, py *big.Int) (*fp12, *g2Point) {
	if r.isInfinity() {
		return fp12One(), g2FromAffine(qx, qy)
	}
	rx, ry := r.toAffine()
	if rx.equal(qx) && ry.equal(qy) {
		return lineFunctionDouble(r, px, py)
	}

	num := fp2Sub(qy, ry)
	den := fp2Sub(qx, rx)
	if den.isZero() {
		return fp12One(), g2Infinity()
	}
	lambda := fp2Mul(num, fp2Inv(den))

	ell0 := fp2Sub(fp2Mul(lambda, rx), ry)
	ell1 := fp2Neg(fp2MulScalar(lambda, px))

	f := &fp12{
		c0: &fp6{c0: ell0, c1: ell1, c2: fp2Zero()},
		c1: &fp6{c0: fp2Zero(), c1: &fp2{c0: new(big.Int).Set(py), c1: new(big.Int)}, c2: fp2Zero()},
	}
	return f, g2Add(r, g2FromAffine(qx, qy))
}

// lineFunctionDouble evaluates the Miller loop's line function for a
// doubling step R = 2R.
func lineFunctionDouble(r *g2Point, px, py *big.Int) (*fp12, *g2Point) {
	if r.isInfinity() {
		return fp12One(), g2Infinity()
	}
	rx, ry := r.toAffine()
	if ry.isZero() {
		return fp12One(), g2Infinity()
	}

	rxSq := fp2Sqr(rx)
	three := &fp2{c0: big.NewInt(3), c1: new(big.Int)}
	two := &fp2{c0: big.NewInt(2), c1: new(big.Int)}
	lambda := fp2Mul(fp2Mul(three, rxSq), fp2Inv(fp2Mul(two, ry)))

	ell0 := fp2Sub(fp2Mul(lambda, rx), ry)
	ell1 := fp2Neg(fp2MulScalar(lambda, px))

	f := &fp12{
		c0: &fp6{c0: ell0, c1: ell1, c2: fp2Zero()},
		c1: &fp6{c0: fp2Zero(), c1: &fp2{c0: new(big.Int).Set(py), c1: new(big.Int)}, c2: fp2Zero()},
	}
	return f, g2Double(r)
}

// millerLoop runs the Miller loop over the bits of the BLS12-381 loop
// parameter, accumulating the sparse line evaluations.
func millerLoop(p *g1Point, q *g2Point) *fp12 {
	if p.isInfinity() || q.isInfinity() {
		return fp12One()
	}
	px, py := p.toAffine()
	qx, qy := q.toAffine()

	f := fp12One()
	r := g2FromAffine(qx, qy)

	for i := curveX.BitLen() - 2; i >= 0; i-- {
		var lineF *fp12
		lineF, r = lineFunctionDouble(r, px, py)
		f = fp12Sqr(f)
		f = fp12Mul(f, lineF)

		if curveX.Bit(i) == 1 {
			lineF, r = lineFunctionAdd(r, qx, qy, px, py)
			f = fp12Mul(f, lineF)
		}
	}

	// BLS12-381's loop parameter is negative, so the accumulated value
	// needs conjugating to get the correct pairing value.
	return fp12Conj(f)
}

// finalExponentiation raises f to (p^12-1)/r, projecting the Miller
// loop's accumulator into the order-r subgroup of GT where pairing
// equality checks are meaningful.
func finalExponentiation(f *fp12) *fp12 {
	fInv := fp12Inv(f)
	f1 := fp12Mul(fp12Conj(f), fInv)

	f1p2 := fp12Exp(f1, new(big.Int).Mul(fieldModulus, fieldModulus))
	f2 := fp12Mul(f1p2, f1)

	p2 := new(big.Int).Mul(fieldModulus, fieldModulus)
	p4 := new(big.Int).Mul(p2, p2)
	hardExp := new(big.Int).Sub(p4, p2)
	hardExp.Add(hardExp, big.NewInt(1))
	hardExp.Div(hardExp, groupOrder)

	return fp12Exp(f2, hardExp)
}

// multiPairingIsOne reports whether the product of e(g1[i], g2[i])
// over all i equals the identity of GT — the standard trick for
// checking a pairing *equation* e(A,B) == e(C,D) by testing
// e(A,B)*e(-C,D) == 1 without computing two independent GT elements.
func multiPairingIsOne(g1Points []*g1Point, g2Points []*g2Point) bool {
	f := fp12One()
	for i := range g1Points {
		if g1Points[i].isInfinity() || g2Points[i].isInfinity() {
			continue
		}
		f = fp12Mul(f, millerLoop(g1Points[i], g2Points[i]))
	}
	return finalExponentiation(f).isOne()
}

// pairingEqual checks e(a1,a2) == e(b1,b2) via multiPairingIsOne(
// [a1,-b1], [a2,b2]).
func pairingEqual(a1 *g1Point, a2 *g2Point, b1 *g1Point, b2 *g2Point) bool {
	return multiPairingIsOne([]*g1Point{a1, g1Neg(b1)}, []*g2Point{a2, b2})
}
