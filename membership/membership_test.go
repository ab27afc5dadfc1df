package membership

import (
	"fmt"
	"testing"
)

func mustSet(t *testing.T, n int) *ValidatorSet {
	t.Helper()
	indices := make(map[NodeID]ValidatorIndex, n)
	for i := 0; i < n; i++ {
		indices[NodeID(fmt.Sprintf("node-%d", i))] = ValidatorIndex(i)
	}
	set, err := NewValidatorSet(indices)
	if err != nil {
		t.Fatalf("NewValidatorSet: %v", err)
	}
	return set
}

func TestValidatorSetQuorumSizes(t *testing.T) {
	cases := []struct {
		n, wantF, wantQ int
	}{
		{4, 1, 3},
		{7, 2, 5},
		{1, 0, 1},
		{3, 0, 3},
	}
	for _, c := range cases {
		set := mustSet(t, c.n)
		if got := set.MaxFaultySize(); got != c.wantF {
			t.Errorf("n=%d: MaxFaultySize() = %d, want %d", c.n, got, c.wantF)
		}
		if got := set.MinGuaranteeSize(); got != c.wantQ {
			t.Errorf("n=%d: MinGuaranteeSize() = %d, want %d", c.n, got, c.wantQ)
		}
	}
}

func TestValidatorSetEmptyRejected(t *testing.T) {
	if _, err := NewValidatorSet(map[NodeID]ValidatorIndex{}); err == nil {
		t.Fatalf("NewValidatorSet(empty): expected error, got nil")
	}
}

func TestEpochIncrementAndCompare(t *testing.T) {
	e0 := ZeroEpoch()
	e1 := e0.Increment()
	e2 := e1.Increment()

	if e0.Uint64() != 0 || e1.Uint64() != 1 || e2.Uint64() != 2 {
		t.Fatalf("unexpected epoch values: %d %d %d", e0.Uint64(), e1.Uint64(), e2.Uint64())
	}
	if e0.Compare(e1) >= 0 {
		t.Errorf("expected e0 < e1")
	}
	if e2.Compare(e1) <= 0 {
		t.Errorf("expected e2 > e1")
	}
	if e1.Compare(e1) != 0 {
		t.Errorf("expected e1 == e1")
	}
	if e1.String() != "1" {
		t.Errorf("String() = %q, want %q", e1.String(), "1")
	}
}
