package threshold

import "io"

// PublicKey is a BLS public key: a point in G1.
type PublicKey struct {
	point *g1Point
}

func newPublicKey(p *g1Point) PublicKey { return PublicKey{point: p} }

// Bytes returns the key's 48-byte compressed G1 encoding.
func (pk PublicKey) Bytes() [CompressedG1Size]byte {
	return serializeG1(pk.point)
}

// PublicKeyFromBytes decompresses a public key, returning false if
// the bytes don't encode a valid G1 point.
func PublicKeyFromBytes(data [CompressedG1Size]byte) (PublicKey, bool) {
	p := deserializeG1(data)
	if p == nil {
		return PublicKey{}, false
	}
	return PublicKey{point: p}, true
}

// VerifyWithHash checks sig against a precomputed message hash,
// avoiding a repeated hash-to-curve when the caller already has it.
func (pk PublicKey) VerifyWithHash(sig Signature, h *g2Point) bool {
	return pairingEqual(pk.point, h, g1Generator(), sig.point)
}

// Verify checks that sig is a valid signature over msg under pk.
func (pk PublicKey) Verify(sig Signature, msg []byte) bool {
	return pk.VerifyWithHash(sig, hash(msg))
}

// Encrypt produces a ciphertext encrypting msg under pk, drawing
// ephemeral randomness from rnd (crypto/rand.Reader when nil).
func (pk PublicKey) Encrypt(msg []byte, rnd io.Reader) (*Ciphertext, error) {
	r, err := RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	u := g1ScalarMul(g1Generator(), r.bigInt())
	g := g1ScalarMul(pk.point, r.bigInt())
	v := xorWithHash(g, msg)
	w := g2ScalarMul(hashWithG1(u, v), r.bigInt())
	return newCiphertext(u, v, w), nil
}
