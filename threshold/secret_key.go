package threshold

// SecretKey is a BLS private key: a scalar exponent over G1/G2.
type SecretKey struct {
	scalar Scalar
}

// NewSecretKey wraps a raw scalar as a secret key.
func NewSecretKey(scalar Scalar) SecretKey {
	return SecretKey{scalar: scalar}
}

// Sign signs msg, returning sig = sk * H(msg) in G2.
func (sk SecretKey) Sign(msg []byte) Signature {
	g2 := hash(msg)
	return newSignature(g2ScalarMul(g2, sk.scalar.bigInt()))
}

// Decrypt recovers the plaintext from ct, or returns false if ct
// fails its Verify check.
func (sk SecretKey) Decrypt(ct *Ciphertext) ([]byte, bool) {
	if !ct.Verify() {
		return nil, false
	}
	g := g1ScalarMul(ct.g1, sk.scalar.bigInt())
	return xorWithHash(g, ct.msg), true
}

// ComputePublicKey derives the public key pk = sk * G1.
func (sk SecretKey) ComputePublicKey() PublicKey {
	return newPublicKey(g1ScalarMul(g1Generator(), sk.scalar.bigInt()))
}
