package threshold

// Hashing from arbitrary messages into curve points and pseudorandom
// byte streams. hashToG2 expands a SHA3-256 digest into field elements
// via two rounds of domain-separated hashing (the same expand-message
// shape the teacher's HashToG2 uses, ported to Fp2), maps each to a G2
// point, adds them and clears the cofactor. xorWithHash stretches a
// digest into a ChaCha20 keystream to one-time-pad a message, the Go
// equivalent of seeding a ChaCha RNG from a hash and sampling bytes.

import (
	"math/big"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

var signDST = []byte("THRESHOLD_BLS12381G2_SHA3-256_")

func sha3_256(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// hashToField derives a field element from msg+dst+index, expanding
// a single SHA3-256 digest into two rounds to cover all 381 bits.
func hashToField(msg, dst []byte, index byte) *big.Int {
	h1 := sha3.New256()
	h1.Write(dst)
	h1.Write(msg)
	h1.Write([]byte{index, 0})
	hash1 := h1.Sum(nil)

	h2 := sha3.New256()
	h2.Write(dst)
	h2.Write(hash1)
	h2.Write([]byte{index, 1})
	hash2 := h2.Sum(nil)

	combined := make([]byte, 64)
	copy(combined[:32], hash1)
	copy(combined[32:], hash2)
	return new(big.Int).Mod(new(big.Int).SetBytes(combined), fieldModulus)
}

// hashToG2 maps an arbitrary message to a point in G2's prime-order
// subgroup. The discrete log of the result relative to the G2
// generator must stay unknown for BLS signatures to resist forgery.
func hashToG2(msg []byte) *g2Point {
	u0 := &fp2{c0: hashToField(msg, signDST, 0), c1: hashToField(msg, signDST, 1)}
	u1 := &fp2{c0: hashToField(msg, signDST, 2), c1: hashToField(msg, signDST, 3)}

	q0 := mapFp2ToG2(u0)
	q1 := mapFp2ToG2(u1)
	return clearG2Cofactor(g2Add(q0, q1))
}

// hash is the message-to-G2 hash used directly by signing and
// verification.
func hash(msg []byte) *g2Point {
	return hashToG2(msg)
}

// hashWithG1 folds a G1 point into the message before hashing, used
// to bind a ciphertext's ephemeral key to its consistency check.
func hashWithG1(g1 *g1Point, msg []byte) *g2Point {
	m := msg
	if len(m) > 64 {
		digest := sha3_256(m)
		m = digest[:]
	}
	g1Bytes := serializeG1(g1)
	combined := make([]byte, 0, len(m)+len(g1Bytes))
	combined = append(combined, m...)
	combined = append(combined, g1Bytes[:]...)
	return hash(combined)
}

// xorWithHash stretches the SHA3-256 digest of a G1 point's
// compressed form into a ChaCha20 keystream and XORs it with data,
// one-time-pad style. Used both to mask plaintext on encryption and
// to recover it given the same G1 element after decryption.
func xorWithHash(g1 *g1Point, data []byte) []byte {
	digest := sha3_256(serializeG1(g1)[:])

	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(digest[:], nonce[:])
	if err != nil {
		// digest is always exactly chacha20.KeySize (32) bytes.
		panic(err)
	}

	out := make([]byte, len(data))
	cipher.XORKeyStream(out, data)
	return out
}

// scalarFromShareIndex converts a zero-based share index into the
// x-coordinate x = i+1 its polynomial is evaluated at; x = 0 is
// reserved for the master key.
func scalarFromShareIndex(i uint64) Scalar {
	return ScalarFromUint64(i).add(scalarOne())
}
