package threshold

// G2 point arithmetic over the twist curve y^2 = x^3 + 4(1+u) in
// F_p^2, Jacobian coordinates.

import "math/big"

type g2Point struct {
	x, y, z *fp2
}

var twistB = &fp2{c0: big.NewInt(4), c1: big.NewInt(4)}

var (
	g2GenXc0, _ = new(big.Int).SetString(
		"024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8", 16)
	g2GenXc1, _ = new(big.Int).SetString(
		"13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e", 16)
	g2GenYc0, _ = new(big.Int).SetString(
		"0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801", 16)
	g2GenYc1, _ = new(big.Int).SetString(
		"0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be", 16)
)

func g2Generator() *g2Point {
	return &g2Point{
		x: &fp2{c0: new(big.Int).Set(g2GenXc0), c1: new(big.Int).Set(g2GenXc1)},
		y: &fp2{c0: new(big.Int).Set(g2GenYc0), c1: new(big.Int).Set(g2GenYc1)},
		z: fp2One(),
	}
}

func g2Infinity() *g2Point {
	return &g2Point{x: fp2One(), y: fp2One(), z: fp2Zero()}
}

func (p *g2Point) isInfinity() bool { return p.z.isZero() }

func g2FromAffine(x, y *fp2) *g2Point {
	if x.isZero() && y.isZero() {
		return g2Infinity()
	}
	return &g2Point{x: newFp2(x.c0, x.c1), y: newFp2(y.c0, y.c1), z: fp2One()}
}

func (p *g2Point) toAffine() (x, y *fp2) {
	if p.isInfinity() {
		return fp2Zero(), fp2Zero()
	}
	zInv := fp2Inv(p.z)
	zInv2 := fp2Sqr(zInv)
	zInv3 := fp2Mul(zInv2, zInv)
	return fp2Mul(p.x, zInv2), fp2Mul(p.y, zInv3)
}

func g2IsOnCurve(x, y *fp2) bool {
	if x.isZero() && y.isZero() {
		return true
	}
	lhs := fp2Sqr(y)
	rhs := fp2Add(fp2Mul(fp2Sqr(x), x), twistB)
	return lhs.equal(rhs)
}

func g2Add(a, b *g2Point) *g2Point {
	if a.isInfinity() {
		return &g2Point{newFp2(b.x.c0, b.x.c1), newFp2(b.y.c0, b.y.c1), newFp2(b.z.c0, b.z.c1)}
	}
	if b.isInfinity() {
		return &g2Point{newFp2(a.x.c0, a.x.c1), newFp2(a.y.c0, a.y.c1), newFp2(a.z.c0, a.z.c1)}
	}

	z1sq := fp2Sqr(a.z)
	z2sq := fp2Sqr(b.z)
	u1 := fp2Mul(a.x, z2sq)
	u2 := fp2Mul(b.x, z1sq)
	s1 := fp2Mul(a.y, fp2Mul(b.z, z2sq))
	s2 := fp2Mul(b.y, fp2Mul(a.z, z1sq))

	if u1.equal(u2) {
		if s1.equal(s2) {
			return g2Double(a)
		}
		return g2Infinity()
	}

	h := fp2Sub(u2, u1)
	i := fp2Sqr(fp2Add(h, h))
	j := fp2Mul(h, i)
	r := fp2Add(fp2Sub(s2, s1), fp2Sub(s2, s1))
	v := fp2Mul(u1, i)

	x3 := fp2Sub(fp2Sub(fp2Sqr(r), j), fp2Add(v, v))
	y3 := fp2Sub(fp2Mul(r, fp2Sub(v, x3)), fp2Add(fp2Mul(s1, j), fp2Mul(s1, j)))
	z3 := fp2Mul(fp2Sub(fp2Sub(fp2Sqr(fp2Add(a.z, b.z)), z1sq), z2sq), h)

	return &g2Point{x: x3, y: y3, z: z3}
}

func g2Double(a *g2Point) *g2Point {
	if a.isInfinity() {
		return g2Infinity()
	}
	A := fp2Sqr(a.x)
	B := fp2Sqr(a.y)
	C := fp2Sqr(B)
	D := fp2Add(fp2Sub(fp2Sub(fp2Sqr(fp2Add(a.x, B)), A), C), fp2Sub(fp2Sub(fp2Sqr(fp2Add(a.x, B)), A), C))
	E := fp2Add(fp2Add(A, A), A)
	x3 := fp2Sub(fp2Sqr(E), fp2Add(D, D))
	eightC := fp2Add(fp2Add(fp2Add(C, C), fp2Add(C, C)), fp2Add(fp2Add(C, C), fp2Add(C, C)))
	y3 := fp2Sub(fp2Mul(E, fp2Sub(D, x3)), eightC)
	z3 := fp2Mul(fp2Add(a.y, a.y), a.z)
	return &g2Point{x: x3, y: y3, z: z3}
}

func g2Neg(p *g2Point) *g2Point {
	if p.isInfinity() {
		return g2Infinity()
	}
	return &g2Point{x: newFp2(p.x.c0, p.x.c1), y: fp2Neg(p.y), z: newFp2(p.z.c0, p.z.c1)}
}

func g2ScalarMul(p *g2Point, k *big.Int) *g2Point {
	if k.Sign() == 0 || p.isInfinity() {
		return g2Infinity()
	}
	kMod := new(big.Int).Mod(k, groupOrder)
	if kMod.Sign() == 0 {
		return g2Infinity()
	}
	r := g2Infinity()
	base := &g2Point{newFp2(p.x.c0, p.x.c1), newFp2(p.y.c0, p.y.c1), newFp2(p.z.c0, p.z.c1)}
	for i := kMod.BitLen() - 1; i >= 0; i-- {
		r = g2Double(r)
		if kMod.Bit(i) == 1 {
			r = g2Add(r, base)
		}
	}
	return r
}
