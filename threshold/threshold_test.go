package threshold

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func genRandomSecret(t *testing.T) SecretKey {
	t.Helper()
	s, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	return NewSecretKey(s)
}

func genRandomSecretKeyShares(t *testing.T, threshold int) SecretKeyShares {
	t.Helper()
	shares, err := RandomSecretKeyShares(threshold, rand.Reader)
	if err != nil {
		t.Fatalf("RandomSecretKeyShares: %v", err)
	}
	return shares
}

func TestSimpleSig(t *testing.T) {
	sk0 := genRandomSecret(t)
	sk1 := genRandomSecret(t)
	pk0 := sk0.ComputePublicKey()
	msg0 := []byte("Real news")
	msg1 := []byte("Fake news")

	if !pk0.Verify(sk0.Sign(msg0), msg0) {
		t.Fatal("expected valid signature to verify")
	}
	if pk0.Verify(sk1.Sign(msg0), msg0) {
		t.Fatal("signature from wrong key must not verify")
	}
	if pk0.Verify(sk0.Sign(msg1), msg0) {
		t.Fatal("signature over wrong message must not verify")
	}
}

func TestThresholdSig(t *testing.T) {
	const threshold = 3
	skShares := genRandomSecretKeyShares(t, threshold)
	pkShares := skShares.PublicKeys()
	pkMaster := pkShares.PublicKey()

	for _, i := range []uint64{0, 1, 2} {
		if pkMaster.Bytes() == pkShares.PublicKeyShare(i).Bytes() {
			t.Fatalf("share %d must differ from the master key", i)
		}
	}

	skMaster := skShares.SecretKey()
	for _, i := range []uint64{0, 1, 2} {
		share := skShares.SecretKeyShare(i)
		if skMaster.scalar.equal(share.scalar) {
			t.Fatalf("share %d must differ from the master secret", i)
		}
	}

	msg := []byte("Totally real news")

	indices := []uint64{5, 8, 7, 10}
	sigs := make(map[uint64]SignatureShare, len(indices))
	for _, i := range indices {
		sigs[i] = skShares.SecretKeyShare(i).Sign(msg)
	}

	for i, sig := range sigs {
		if !pkShares.PublicKeyShare(i).Verify(sig, msg) {
			t.Fatalf("share %d's signature must verify against its own public key share", i)
		}
	}

	sig, err := pkShares.CombineSignatures(sigs)
	if err != nil {
		t.Fatalf("CombineSignatures: %v", err)
	}
	if !pkMaster.Verify(sig, msg) {
		t.Fatal("combined signature must verify against the master public key")
	}

	indices2 := []uint64{42, 43, 44, 45}
	sigs2 := make(map[uint64]SignatureShare, len(indices2))
	for _, i := range indices2 {
		sigs2[i] = skShares.SecretKeyShare(i).Sign(msg)
	}
	sig2, err := pkShares.CombineSignatures(sigs2)
	if err != nil {
		t.Fatalf("CombineSignatures (second set): %v", err)
	}
	if sig.Bytes() != sig2.Bytes() {
		t.Fatal("independent quorums must combine to the same signature")
	}
}

func TestThresholdSigNotEnoughShares(t *testing.T) {
	const threshold = 3
	skShares := genRandomSecretKeyShares(t, threshold)
	pkShares := skShares.PublicKeys()
	msg := []byte("not enough signers")

	sigs := map[uint64]SignatureShare{
		1: skShares.SecretKeyShare(1).Sign(msg),
		2: skShares.SecretKeyShare(2).Sign(msg),
	}
	if _, err := pkShares.CombineSignatures(sigs); err != ErrNotEnoughShares {
		t.Fatalf("expected ErrNotEnoughShares, got %v", err)
	}
}

func TestSimpleEnc(t *testing.T) {
	skBob := genRandomSecret(t)
	skEve := genRandomSecret(t)
	pkBob := skBob.ComputePublicKey()
	msg := []byte("Muffins in the canteen today! Don't tell Eve!")

	ciphertext, err := pkBob.Encrypt(msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if !ciphertext.Verify() {
		t.Fatal("freshly encrypted ciphertext must verify")
	}

	decrypted, ok := skBob.Decrypt(ciphertext)
	if !ok {
		t.Fatal("bob's key must decrypt a valid ciphertext")
	}
	if !bytes.Equal(msg, decrypted) {
		t.Fatalf("decrypted message mismatch: got %q, want %q", decrypted, msg)
	}

	decryptedEve, ok := skEve.Decrypt(ciphertext)
	if !ok {
		t.Fatal("decrypt must still succeed with the wrong key, just to garbage")
	}
	if bytes.Equal(msg, decryptedEve) {
		t.Fatal("eve's key must not recover the real message")
	}

	fake := newCiphertext(ciphertext.g1, make([]byte, len(ciphertext.msg)), ciphertext.g2)
	if fake.Verify() {
		t.Fatal("tampered ciphertext must fail verification")
	}
	if _, ok := skBob.Decrypt(fake); ok {
		t.Fatal("decrypt of a tampered ciphertext must fail")
	}
}

func TestThresholdEnc(t *testing.T) {
	const threshold = 3
	skShares := genRandomSecretKeyShares(t, threshold)
	pkShares := skShares.PublicKeys()
	pkMaster := pkShares.PublicKey()
	msg := []byte("Totally real news")

	ciphertext, err := pkMaster.Encrypt(msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	indices := []uint64{5, 8, 7, 10}
	shares := make(map[uint64]DecryptionShare, len(indices))
	for _, i := range indices {
		share, ok := skShares.SecretKeyShare(i).DecryptShare(ciphertext)
		if !ok {
			t.Fatalf("share %d: ciphertext must be valid", i)
		}
		shares[i] = share
	}

	for i, share := range shares {
		if !pkShares.PublicKeyShare(i).VerifyDecryptionShare(share, ciphertext) {
			t.Fatalf("decryption share %d must verify", i)
		}
	}

	decrypted, err := pkShares.Decrypt(shares, ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(msg, decrypted) {
		t.Fatalf("decrypted message mismatch: got %q, want %q", decrypted, msg)
	}
}
