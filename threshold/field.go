// Package threshold implements BLS12-381 threshold cryptography: secret
// and public key sharing over a Shamir/Feldman-committed polynomial,
// threshold signatures, and a simple threshold (IBE-style) encryption
// scheme. Signatures live in G2, public keys in G1, matching the
// "MinPk" convention used throughout the rest of the stack's wire
// format (48-byte compressed G1, 96-byte compressed G2).
package threshold

import "math/big"

// Curve parameters for BLS12-381.
var (
	// fieldModulus is the base field modulus p.
	fieldModulus, _ = new(big.Int).SetString(
		"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)
	// groupOrder is the prime order r of G1/G2's scalar field.
	groupOrder, _ = new(big.Int).SetString(
		"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
	// curveB is G1's curve coefficient: y^2 = x^3 + 4.
	curveB = big.NewInt(4)
)

func fpAdd(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, fieldModulus)
}

func fpSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, fieldModulus)
}

func fpMul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, fieldModulus)
}

func fpNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(fieldModulus, new(big.Int).Mod(a, fieldModulus))
}

func fpInv(a *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, fieldModulus)
}

func fpSqr(a *big.Int) *big.Int {
	r := new(big.Int).Mul(a, a)
	return r.Mod(r, fieldModulus)
}

func fpExp(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, fieldModulus)
}

// fpSqrt returns a square root of a mod p via p = 3 mod 4, or nil if a
// is not a quadratic residue.
func fpSqrt(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	exp := new(big.Int).Add(fieldModulus, big.NewInt(1))
	exp.Rsh(exp, 2)
	r := fpExp(a, exp)
	if fpSqr(r).Cmp(new(big.Int).Mod(a, fieldModulus)) != 0 {
		return nil
	}
	return r
}

func fpSgn0(a *big.Int) int {
	t := new(big.Int).Mod(a, fieldModulus)
	return int(t.Bit(0))
}

// fp2 represents an element of F_p^2 = F_p[u]/(u^2+1) as c0 + c1*u.
type fp2 struct {
	c0, c1 *big.Int
}

func newFp2(c0, c1 *big.Int) *fp2 {
	return &fp2{c0: new(big.Int).Set(c0), c1: new(big.Int).Set(c1)}
}

func fp2Zero() *fp2 { return &fp2{c0: new(big.Int), c1: new(big.Int)} }
func fp2One() *fp2  { return &fp2{c0: big.NewInt(1), c1: new(big.Int)} }

func (e *fp2) isZero() bool { return e.c0.Sign() == 0 && e.c1.Sign() == 0 }

func (e *fp2) equal(f *fp2) bool {
	a0 := new(big.Int).Mod(e.c0, fieldModulus)
	a1 := new(big.Int).Mod(e.c1, fieldModulus)
	b0 := new(big.Int).Mod(f.c0, fieldModulus)
	b1 := new(big.Int).Mod(f.c1, fieldModulus)
	return a0.Cmp(b0) == 0 && a1.Cmp(b1) == 0
}

func fp2Add(e, f *fp2) *fp2 { return &fp2{c0: fpAdd(e.c0, f.c0), c1: fpAdd(e.c1, f.c1)} }
func fp2Sub(e, f *fp2) *fp2 { return &fp2{c0: fpSub(e.c0, f.c0), c1: fpSub(e.c1, f.c1)} }

// fp2Mul computes (a0+a1*u)(b0+b1*u) = (a0*b0-a1*b1) + (a0*b1+a1*b0)*u.
func fp2Mul(e, f *fp2) *fp2 {
	v0 := fpMul(e.c0, f.c0)
	v1 := fpMul(e.c1, f.c1)
	return &fp2{
		c0: fpSub(v0, v1),
		c1: fpSub(fpMul(fpAdd(e.c0, e.c1), fpAdd(f.c0, f.c1)), fpAdd(v0, v1)),
	}
}

func fp2Sqr(e *fp2) *fp2 {
	ab := fpMul(e.c0, e.c1)
	return &fp2{
		c0: fpMul(fpAdd(e.c0, e.c1), fpSub(e.c0, e.c1)),
		c1: fpAdd(ab, ab),
	}
}

func fp2Neg(e *fp2) *fp2  { return &fp2{c0: fpNeg(e.c0), c1: fpNeg(e.c1)} }
func fp2Conj(e *fp2) *fp2 { return &fp2{c0: new(big.Int).Set(e.c0), c1: fpNeg(e.c1)} }

func fp2Inv(e *fp2) *fp2 {
	t := fpAdd(fpSqr(e.c0), fpSqr(e.c1))
	inv := fpInv(t)
	return &fp2{c0: fpMul(e.c0, inv), c1: fpMul(fpNeg(e.c1), inv)}
}

func fp2MulScalar(e *fp2, s *big.Int) *fp2 {
	return &fp2{c0: fpMul(e.c0, s), c1: fpMul(e.c1, s)}
}

func fp2Sgn0(e *fp2) int {
	sign0 := fpSgn0(e.c0)
	zero0 := 0
	if new(big.Int).Mod(e.c0, fieldModulus).Sign() == 0 {
		zero0 = 1
	}
	sign1 := fpSgn0(e.c1)
	return sign0 | (zero0 & sign1)
}

// fp2Sqrt finds a square root of e in Fp2 by candidate-testing the two
// roots implied by the norm equation, or nil if none exists.
func fp2Sqrt(e *fp2) *fp2 {
	if e.isZero() {
		return fp2Zero()
	}
	norm := fpAdd(fpSqr(e.c0), fpSqr(e.c1))
	sqrtNorm := fpSqrt(norm)
	if sqrtNorm == nil {
		return nil
	}
	two := big.NewInt(2)
	twoInv := fpInv(two)

	tryHalf := func(half *big.Int) *fp2 {
		x0 := fpMul(half, twoInv)
		sqrtX0 := fpSqrt(x0)
		if sqrtX0 == nil {
			return nil
		}
		x1 := fpMul(e.c1, fpInv(fpAdd(sqrtX0, sqrtX0)))
		result := &fp2{c0: sqrtX0, c1: x1}
		if fp2Sqr(result).equal(e) {
			return result
		}
		return nil
	}
	if r := tryHalf(fpAdd(e.c0, sqrtNorm)); r != nil {
		return r
	}
	if r := tryHalf(fpSub(e.c0, sqrtNorm)); r != nil {
		return r
	}
	return nil
}

// fp2MulByNonResidue multiplies by the Fp6 non-residue (1+u):
// (1+u)(a+bu) = (a-b) + (a+b)u.
func fp2MulByNonResidue(e *fp2) *fp2 {
	return &fp2{c0: fpSub(e.c0, e.c1), c1: fpAdd(e.c0, e.c1)}
}
