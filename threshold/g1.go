package threshold

// G1 point arithmetic over y^2 = x^3 + 4 in F_p, Jacobian coordinates
// (X, Y, Z) with affine (X/Z^2, Y/Z^3); the point at infinity has Z=0.

import "math/big"

type g1Point struct {
	x, y, z *big.Int
}

var (
	g1GenX, _ = new(big.Int).SetString(
		"17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb", 16)
	g1GenY, _ = new(big.Int).SetString(
		"08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1", 16)
)

func g1Generator() *g1Point {
	return &g1Point{x: new(big.Int).Set(g1GenX), y: new(big.Int).Set(g1GenY), z: big.NewInt(1)}
}

func g1Infinity() *g1Point {
	return &g1Point{x: big.NewInt(1), y: big.NewInt(1), z: new(big.Int)}
}

func (p *g1Point) isInfinity() bool { return p.z.Sign() == 0 }

func g1FromAffine(x, y *big.Int) *g1Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return g1Infinity()
	}
	return &g1Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y), z: big.NewInt(1)}
}

func (p *g1Point) toAffine() (x, y *big.Int) {
	if p.isInfinity() {
		return new(big.Int), new(big.Int)
	}
	zInv := fpInv(p.z)
	zInv2 := fpSqr(zInv)
	zInv3 := fpMul(zInv2, zInv)
	return fpMul(p.x, zInv2), fpMul(p.y, zInv3)
}

func g1Add(a, b *g1Point) *g1Point {
	if a.isInfinity() {
		return &g1Point{new(big.Int).Set(b.x), new(big.Int).Set(b.y), new(big.Int).Set(b.z)}
	}
	if b.isInfinity() {
		return &g1Point{new(big.Int).Set(a.x), new(big.Int).Set(a.y), new(big.Int).Set(a.z)}
	}

	z1sq := fpSqr(a.z)
	z2sq := fpSqr(b.z)
	u1 := fpMul(a.x, z2sq)
	u2 := fpMul(b.x, z1sq)
	s1 := fpMul(a.y, fpMul(b.z, z2sq))
	s2 := fpMul(b.y, fpMul(a.z, z1sq))

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) == 0 {
			return g1Double(a)
		}
		return g1Infinity()
	}

	h := fpSub(u2, u1)
	i := fpSqr(fpAdd(h, h))
	j := fpMul(h, i)
	r := fpAdd(fpSub(s2, s1), fpSub(s2, s1))
	v := fpMul(u1, i)

	x3 := fpSub(fpSub(fpSqr(r), j), fpAdd(v, v))
	y3 := fpSub(fpMul(r, fpSub(v, x3)), fpAdd(fpMul(s1, j), fpMul(s1, j)))
	z3 := fpMul(fpSub(fpSub(fpSqr(fpAdd(a.z, b.z)), z1sq), z2sq), h)

	return &g1Point{x: x3, y: y3, z: z3}
}

func g1Double(a *g1Point) *g1Point {
	if a.isInfinity() {
		return g1Infinity()
	}
	A := fpSqr(a.x)
	B := fpSqr(a.y)
	C := fpSqr(B)
	D := fpAdd(fpSub(fpSub(fpSqr(fpAdd(a.x, B)), A), C), fpSub(fpSub(fpSqr(fpAdd(a.x, B)), A), C))
	E := fpAdd(fpAdd(A, A), A)
	x3 := fpSub(fpSqr(E), fpAdd(D, D))
	eightC := fpAdd(fpAdd(fpAdd(C, C), fpAdd(C, C)), fpAdd(fpAdd(C, C), fpAdd(C, C)))
	y3 := fpSub(fpMul(E, fpSub(D, x3)), eightC)
	z3 := fpMul(fpAdd(a.y, a.y), a.z)
	return &g1Point{x: x3, y: y3, z: z3}
}

func g1Neg(p *g1Point) *g1Point {
	if p.isInfinity() {
		return g1Infinity()
	}
	return &g1Point{x: new(big.Int).Set(p.x), y: fpNeg(p.y), z: new(big.Int).Set(p.z)}
}

// g1ScalarMul computes k*P via double-and-add. k is reduced mod the
// group order first.
func g1ScalarMul(p *g1Point, k *big.Int) *g1Point {
	if k.Sign() == 0 || p.isInfinity() {
		return g1Infinity()
	}
	kMod := new(big.Int).Mod(k, groupOrder)
	if kMod.Sign() == 0 {
		return g1Infinity()
	}
	r := g1Infinity()
	base := &g1Point{x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y), z: new(big.Int).Set(p.z)}
	for i := kMod.BitLen() - 1; i >= 0; i-- {
		r = g1Double(r)
		if kMod.Bit(i) == 1 {
			r = g1Add(r, base)
		}
	}
	return r
}

func g1IsOnCurve(x, y *big.Int) bool {
	if x.Sign() == 0 && y.Sign() == 0 {
		return true
	}
	lhs := fpSqr(y)
	rhs := fpAdd(fpMul(fpSqr(x), x), curveB)
	return new(big.Int).Mod(lhs, fieldModulus).Cmp(new(big.Int).Mod(rhs, fieldModulus)) == 0
}
