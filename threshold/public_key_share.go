package threshold

// PublicKeyShare is one validator's share of a threshold public key,
// used to verify that validator's signature and decryption shares.
type PublicKeyShare struct {
	PublicKey
}

func newPublicKeyShare(pk PublicKey) PublicKeyShare {
	return PublicKeyShare{PublicKey: pk}
}

// VerifyWithHash checks a signature share against a precomputed
// message hash.
func (pk PublicKeyShare) VerifyWithHash(share SignatureShare, h *g2Point) bool {
	return pk.PublicKey.VerifyWithHash(share.Signature, h)
}

// Verify checks that share is a valid signature share over msg.
func (pk PublicKeyShare) Verify(share SignatureShare, msg []byte) bool {
	return pk.PublicKey.Verify(share.Signature, msg)
}

// VerifyDecryptionShare checks that share is a valid decryption share
// of ct under this public key share, via e(share, H(U,V)) ==
// e(pk, W).
func (pk PublicKeyShare) VerifyDecryptionShare(share DecryptionShare, ct *Ciphertext) bool {
	h := hashWithG1(ct.g1, ct.msg)
	return pairingEqual(share.point, h, pk.point, ct.g2)
}
