package threshold

import (
	"math/big"
	"math/bits"
)

// fpBytes encodes a field element as fixed-width 48-byte big-endian,
// matching the uncompressed BLS12-381 coordinate encoding.
func fpBytes(v *big.Int) [CompressedG1Size]byte {
	var out [CompressedG1Size]byte
	b := v.Bytes()
	copy(out[CompressedG1Size-len(b):], b)
	return out
}

// Signature is a BLS signature: a point in G2.
type Signature struct {
	point *g2Point
}

func newSignature(p *g2Point) Signature { return Signature{point: p} }

// Parity returns the signature's low bit, computed as the parity of
// the XOR of its uncompressed bytes. A common coin built from a
// threshold signature over a fixed (session, epoch) message uses this
// as an unbiased, unpredictable-in-advance random bit.
func (s Signature) Parity() bool {
	x, y := s.point.toAffine()
	var xorByte byte
	for _, component := range [][CompressedG1Size]byte{fpBytes(x.c1), fpBytes(x.c0), fpBytes(y.c1), fpBytes(y.c0)} {
		for _, b := range component {
			xorByte ^= b
		}
	}
	return bits.OnesCount8(xorByte)%2 != 0
}

// Bytes returns the signature's 96-byte compressed G2 encoding.
func (s Signature) Bytes() [CompressedG2Size]byte {
	return serializeG2(s.point)
}

// SignatureFromBytes decompresses a signature, returning false if the
// bytes don't encode a valid G2 point.
func SignatureFromBytes(data [CompressedG2Size]byte) (Signature, bool) {
	p := deserializeG2(data)
	if p == nil {
		return Signature{}, false
	}
	return Signature{point: p}, true
}

// SignatureShare is a single validator's contribution toward a
// threshold signature.
type SignatureShare struct {
	Signature
}

func newSignatureShare(sig Signature) SignatureShare {
	return SignatureShare{Signature: sig}
}
