package threshold

// SecretKeyShare is one validator's share of a threshold secret key.
type SecretKeyShare struct {
	SecretKey
}

func newSecretKeyShare(sk SecretKey) SecretKeyShare {
	return SecretKeyShare{SecretKey: sk}
}

// Sign signs msg with this share, producing a SignatureShare that a
// threshold of peers combine into a full Signature.
func (s SecretKeyShare) Sign(msg []byte) SignatureShare {
	return newSignatureShare(s.SecretKey.Sign(msg))
}

// DecryptShare computes this validator's decryption share over ct, or
// returns false if ct fails its Verify check.
func (s SecretKeyShare) DecryptShare(ct *Ciphertext) (DecryptionShare, bool) {
	if !ct.Verify() {
		return DecryptionShare{}, false
	}
	return newDecryptionShare(g1ScalarMul(ct.g1, s.scalar.bigInt())), true
}

// DecryptShareForce computes a decryption share without first
// verifying ct, for callers that have already validated it.
func (s SecretKeyShare) DecryptShareForce(ct *Ciphertext) DecryptionShare {
	return newDecryptionShare(g1ScalarMul(ct.g1, s.scalar.bigInt()))
}
