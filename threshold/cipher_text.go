package threshold

import (
	"encoding/binary"
	"fmt"
)

// Ciphertext is a threshold (IBE-style) ElGamal ciphertext: an
// ephemeral G1 element, the one-time-pad-masked message, and a G2
// consistency tag that lets Verify detect chosen-ciphertext tampering
// without needing any secret key share.
type Ciphertext struct {
	g1  *g1Point
	msg []byte
	g2  *g2Point
}

func newCiphertext(g1 *g1Point, msg []byte, g2 *g2Point) *Ciphertext {
	return &Ciphertext{g1: g1, msg: msg, g2: g2}
}

// Verify reports whether the ciphertext is well-formed: e(G1, W) ==
// e(U, H(U, V)). A forged or corrupted ciphertext fails this check
// before any decryption share is ever computed over it.
func (c *Ciphertext) Verify() bool {
	h := hashWithG1(c.g1, c.msg)
	return pairingEqual(g1Generator(), c.g2, c.g1, h)
}

// Bytes encodes the ciphertext as (G1-compressed, length-prefixed
// message bytes, G2-compressed), the wire form callers proposing an
// encrypted value over reliable broadcast serialize into proposal
// bytes.
func (c *Ciphertext) Bytes() []byte {
	g1Bytes := serializeG1(c.g1)
	g2Bytes := serializeG2(c.g2)
	out := make([]byte, 0, CompressedG1Size+4+len(c.msg)+CompressedG2Size)
	out = append(out, g1Bytes[:]...)
	var msgLen [4]byte
	binary.BigEndian.PutUint32(msgLen[:], uint32(len(c.msg)))
	out = append(out, msgLen[:]...)
	out = append(out, c.msg...)
	out = append(out, g2Bytes[:]...)
	return out
}

// CiphertextFromBytes decodes the wire form Bytes produces.
func CiphertextFromBytes(data []byte) (*Ciphertext, error) {
	if len(data) < CompressedG1Size+4+CompressedG2Size {
		return nil, fmt.Errorf("threshold: ciphertext too short: %d bytes", len(data))
	}
	var g1Bytes [CompressedG1Size]byte
	copy(g1Bytes[:], data[:CompressedG1Size])
	g1 := deserializeG1(g1Bytes)
	if g1 == nil {
		return nil, fmt.Errorf("threshold: invalid G1 point in ciphertext")
	}

	rest := data[CompressedG1Size:]
	msgLen := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]
	if uint64(len(rest)) < uint64(msgLen)+CompressedG2Size {
		return nil, fmt.Errorf("threshold: ciphertext message length %d overruns input", msgLen)
	}
	msg := make([]byte, msgLen)
	copy(msg, rest[:msgLen])
	rest = rest[msgLen:]

	var g2Bytes [CompressedG2Size]byte
	copy(g2Bytes[:], rest[:CompressedG2Size])
	g2 := deserializeG2(g2Bytes)
	if g2 == nil {
		return nil, fmt.Errorf("threshold: invalid G2 point in ciphertext")
	}

	return newCiphertext(g1, msg, g2), nil
}
