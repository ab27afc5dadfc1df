package threshold

import "math/big"

// Compressed point sizes: a G1 point (public key, commitment
// coefficient) is 48 bytes; a G2 point (signature) is 96 bytes.
const (
	CompressedG1Size = 48
	CompressedG2Size = 96
)

// The top three bits of a compressed point's first byte are flags:
// compressed (always set here), infinity, and a sign/sort bit picking
// one of the two y roots.
const (
	flagCompressed = 0x80
	flagInfinity   = 0x40
	flagSort       = 0x20
)

func serializeG1(p *g1Point) [CompressedG1Size]byte {
	var out [CompressedG1Size]byte
	if p.isInfinity() {
		out[0] = flagCompressed | flagInfinity
		return out
	}
	x, y := p.toAffine()
	xBytes := x.Bytes()
	copy(out[CompressedG1Size-len(xBytes):], xBytes)
	out[0] |= flagCompressed
	if y.Cmp(new(big.Int).Rsh(fieldModulus, 1)) > 0 {
		out[0] |= flagSort
	}
	return out
}

func deserializeG1(data [CompressedG1Size]byte) *g1Point {
	if data[0]&flagCompressed == 0 {
		return nil
	}
	if data[0]&flagInfinity != 0 {
		return g1Infinity()
	}
	sortFlag := data[0]&flagSort != 0
	data[0] &= 0x1f
	x := new(big.Int).SetBytes(data[:])
	if x.Cmp(fieldModulus) >= 0 {
		return nil
	}
	rhs := fpAdd(fpMul(fpSqr(x), x), curveB)
	y := fpSqrt(rhs)
	if y == nil {
		return nil
	}
	if sortFlag != (y.Cmp(new(big.Int).Rsh(fieldModulus, 1)) > 0) {
		y = fpNeg(y)
	}
	p := g1FromAffine(x, y)
	if !g1IsOnCurve(x, y) {
		return nil
	}
	return p
}

func serializeG2(p *g2Point) [CompressedG2Size]byte {
	var out [CompressedG2Size]byte
	if p.isInfinity() {
		out[0] = flagCompressed | flagInfinity
		return out
	}
	x, y := p.toAffine()
	c1Bytes := x.c1.Bytes()
	c0Bytes := x.c0.Bytes()
	copy(out[CompressedG1Size-len(c1Bytes):CompressedG1Size], c1Bytes)
	copy(out[CompressedG2Size-len(c0Bytes):], c0Bytes)
	out[0] |= flagCompressed
	halfP := new(big.Int).Rsh(fieldModulus, 1)
	if y.c1.Cmp(halfP) > 0 || (y.c1.Sign() == 0 && y.c0.Cmp(halfP) > 0) {
		out[0] |= flagSort
	}
	return out
}

func deserializeG2(data [CompressedG2Size]byte) *g2Point {
	if data[0]&flagCompressed == 0 {
		return nil
	}
	if data[0]&flagInfinity != 0 {
		return g2Infinity()
	}
	sortFlag := data[0]&flagSort != 0
	data[0] &= 0x1f
	c1 := new(big.Int).SetBytes(data[:CompressedG1Size])
	c0 := new(big.Int).SetBytes(data[CompressedG1Size:])
	if c0.Cmp(fieldModulus) >= 0 || c1.Cmp(fieldModulus) >= 0 {
		return nil
	}
	x := &fp2{c0: c0, c1: c1}
	rhs := fp2Add(fp2Mul(fp2Sqr(x), x), twistB)
	y := fp2Sqrt(rhs)
	if y == nil {
		return nil
	}
	halfP := new(big.Int).Rsh(fieldModulus, 1)
	yLarger := y.c1.Cmp(halfP) > 0 || (y.c1.Sign() == 0 && y.c0.Cmp(halfP) > 0)
	if sortFlag != yLarger {
		y = fp2Neg(y)
	}
	p := g2FromAffine(x, y)
	if !g2IsOnCurve(x, y) {
		return nil
	}
	return p
}
