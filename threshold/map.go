package threshold

// Try-and-increment hashing from a field element to a curve point,
// used to turn an arbitrary message digest into a G2 element with no
// known discrete log relative to the G2 generator — the property the
// signature scheme's security rests on.

import "math/big"

func mapFp2ToG2(u *fp2) *g2Point {
	x := newFp2(u.c0, u.c1)

	for i := 0; i < 256; i++ {
		x3 := fp2Mul(fp2Sqr(x), x)
		rhs := fp2Add(x3, twistB)

		y := fp2Sqrt(rhs)
		if y != nil && fp2Sqr(y).equal(rhs) {
			if fp2Sgn0(u) != fp2Sgn0(y) {
				y = fp2Neg(y)
			}
			return g2FromAffine(x, y)
		}

		x = fp2Add(x, fp2One())
	}
	return g2Infinity()
}

// g2Cofactor clears G2's cofactor so that a point on the twist curve
// lands in the prime-order r-torsion subgroup.
var g2Cofactor, _ = new(big.Int).SetString(
	"5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5", 16)

func clearG2Cofactor(p *g2Point) *g2Point {
	return g2ScalarMul(p, g2Cofactor)
}
