package merkle

import "testing"

func leaves(n int) [][]byte {
	values := make([][]byte, n)
	for i := range values {
		values[i] = []byte{byte(i), byte(i + 1), byte(i + 2)}
	}
	return values
}

func TestProofValidatesForEveryLeaf(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 16} {
		tree := New(leaves(n))
		for i := 0; i < n; i++ {
			proof, ok := tree.Proof(i)
			if !ok {
				t.Fatalf("n=%d: Proof(%d) missing", n, i)
			}
			if !proof.Validate(n) {
				t.Fatalf("n=%d: proof for leaf %d did not validate", n, i)
			}
			if proof.RootHash() != tree.RootHash() {
				t.Fatalf("n=%d: proof root hash does not match tree root", n)
			}
		}
	}
}

func TestProofOutOfRangeIndex(t *testing.T) {
	tree := New(leaves(4))
	if _, ok := tree.Proof(4); ok {
		t.Fatal("expected Proof(4) to fail for a 4-leaf tree")
	}
	if _, ok := tree.Proof(-1); ok {
		t.Fatal("expected Proof(-1) to fail")
	}
}

func TestProofRejectsTamperedValue(t *testing.T) {
	tree := New(leaves(5))
	proof, ok := tree.Proof(2)
	if !ok {
		t.Fatal("Proof(2) missing")
	}
	proof.value = []byte{0xff, 0xff, 0xff}
	if proof.Validate(5) {
		t.Fatal("proof with a tampered value must not validate")
	}
}

func TestProofRejectsWrongLeafCount(t *testing.T) {
	tree := New(leaves(6))
	// Leaf 4's path passes a promoted odd node in a 6-leaf tree but not
	// in a 7-leaf one, so the two leaf counts need different sibling
	// chains. (Leaf 0's chain is the same for 5 to 8 leaves.)
	proof, ok := tree.Proof(4)
	if !ok {
		t.Fatal("Proof(4) missing")
	}
	if proof.Validate(7) {
		t.Fatal("proof must not validate against the wrong leaf count")
	}
}

func TestDifferentValuesYieldDifferentRoots(t *testing.T) {
	a := New(leaves(4)).RootHash()
	values := leaves(4)
	values[0][0] ^= 0xff
	b := New(values).RootHash()
	if a == b {
		t.Fatal("changing a leaf must change the root hash")
	}
}

func TestSingleLeafTreeRootIsLeafHash(t *testing.T) {
	tree := New([][]byte{[]byte("only leaf")})
	if tree.RootHash() != hash([]byte("only leaf")) {
		t.Fatal("a single-leaf tree's root must be that leaf's hash")
	}
	proof, ok := tree.Proof(0)
	if !ok || !proof.Validate(1) {
		t.Fatal("single-leaf proof must validate")
	}
}
