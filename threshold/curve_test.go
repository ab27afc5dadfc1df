package threshold

import (
	"math/big"
	"testing"
)

func TestFieldModulusIs381Bits(t *testing.T) {
	if fieldModulus.BitLen() != 381 {
		t.Errorf("fieldModulus bit length = %d, want 381", fieldModulus.BitLen())
	}
	if !fieldModulus.ProbablyPrime(20) {
		t.Error("fieldModulus is not prime")
	}
	if !groupOrder.ProbablyPrime(20) {
		t.Error("groupOrder is not prime")
	}
}

func TestG1GeneratorOnCurve(t *testing.T) {
	gen := g1Generator()
	x, y := gen.toAffine()
	if !g1IsOnCurve(x, y) {
		t.Error("G1 generator is not on the curve")
	}
}

func TestG1ScalarMulByOrderIsInfinity(t *testing.T) {
	gen := g1Generator()
	p := g1ScalarMul(gen, groupOrder)
	if !p.isInfinity() {
		t.Error("r*G1 must be the point at infinity")
	}
}

func TestG1DoubleMatchesAdd(t *testing.T) {
	gen := g1Generator()
	doubled := g1Double(gen)
	added := g1Add(gen, gen)
	dx, dy := doubled.toAffine()
	ax, ay := added.toAffine()
	if dx.Cmp(ax) != 0 || dy.Cmp(ay) != 0 {
		t.Error("g1Double(G) must equal g1Add(G, G)")
	}
}

func TestG1NegCancels(t *testing.T) {
	gen := g1Generator()
	sum := g1Add(gen, g1Neg(gen))
	if !sum.isInfinity() {
		t.Error("G + (-G) must be the point at infinity")
	}
}

func TestG2GeneratorOnCurve(t *testing.T) {
	gen := g2Generator()
	x, y := gen.toAffine()
	if !g2IsOnCurve(x, y) {
		t.Error("G2 generator is not on the curve")
	}
}

func TestG2ScalarMulByOrderIsInfinity(t *testing.T) {
	gen := g2Generator()
	p := g2ScalarMul(gen, groupOrder)
	if !p.isInfinity() {
		t.Error("r*G2 must be the point at infinity")
	}
}

func TestSerializeRoundTripG1(t *testing.T) {
	gen := g1Generator()
	p := g1ScalarMul(gen, big.NewInt(12345))
	data := serializeG1(p)
	got := deserializeG1(data)
	if got == nil {
		t.Fatal("deserializeG1 rejected a valid point")
	}
	if serializeG1(got) != data {
		t.Error("round-tripped G1 point does not re-serialize identically")
	}
}

func TestSerializeRoundTripG2(t *testing.T) {
	gen := g2Generator()
	p := g2ScalarMul(gen, big.NewInt(98765))
	data := serializeG2(p)
	got := deserializeG2(data)
	if got == nil {
		t.Fatal("deserializeG2 rejected a valid point")
	}
	if serializeG2(got) != data {
		t.Error("round-tripped G2 point does not re-serialize identically")
	}
}

func TestSerializeInfinityRoundTrips(t *testing.T) {
	if g := deserializeG1(serializeG1(g1Infinity())); !g.isInfinity() {
		t.Error("G1 infinity must round-trip to infinity")
	}
	if g := deserializeG2(serializeG2(g2Infinity())); !g.isInfinity() {
		t.Error("G2 infinity must round-trip to infinity")
	}
}

func TestMillerLoopInfinityIsIdentity(t *testing.T) {
	f := millerLoop(g1Infinity(), g2Generator())
	if !finalExponentiation(f).isOne() {
		t.Error("pairing with a G1 point at infinity must be the identity in GT")
	}
}

func TestMultiPairingIsOneForMatchingEquation(t *testing.T) {
	a := big.NewInt(5)
	b := big.NewInt(9)
	p := g1ScalarMul(g1Generator(), a)
	q := g2ScalarMul(g2Generator(), b)
	ab := g1ScalarMul(g1Generator(), new(big.Int).Mul(a, b))

	if !pairingEqual(p, q, ab, g2Generator()) {
		t.Error("e(aG1, bG2) must equal e(abG1, G2)")
	}
}

func TestMultiPairingIsNotOneForMismatchedEquation(t *testing.T) {
	p := g1ScalarMul(g1Generator(), big.NewInt(5))
	q := g2ScalarMul(g2Generator(), big.NewInt(9))
	wrong := g1ScalarMul(g1Generator(), big.NewInt(46))

	if pairingEqual(p, q, wrong, g2Generator()) {
		t.Error("mismatched pairing equation must not hold")
	}
}
