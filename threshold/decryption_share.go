package threshold

// DecryptionShare is a single validator's contribution toward
// threshold-decrypting a Ciphertext. A quorum of shares combines via
// Lagrange interpolation into the G1 element the plaintext mask was
// derived from.
type DecryptionShare struct {
	point *g1Point
}

func newDecryptionShare(p *g1Point) DecryptionShare { return DecryptionShare{point: p} }

// Bytes returns the share's 48-byte compressed G1 encoding.
func (d DecryptionShare) Bytes() [CompressedG1Size]byte {
	return serializeG1(d.point)
}
