// Package membership defines the identity and quorum types shared by
// the reliable-broadcast, binary-agreement, and common-subset drivers:
// node identifiers, validator indices, validator sets, epochs, and
// session identifiers.
package membership

import (
	"fmt"

	"github.com/hbbft-go/hbbft/erasure"
	"github.com/holiman/uint256"
)

// NodeID identifies a peer participating in the protocol. Node
// identifiers are compared and ordered as plain strings so that
// validator sets can be built deterministically from any stable
// naming scheme (network address, public key fingerprint, ...).
type NodeID string

// ValidatorIndex is a validator's position in the ordered validator
// set, used to evaluate threshold-crypto polynomials at x = index+1
// and to pick Reed-Solomon shards.
type ValidatorIndex uint16

// SessionID distinguishes concurrent or successive protocol runs so
// that messages from one run are never mistaken for another's.
type SessionID string

// Epoch counts binary-agreement rounds within a single session. It is
// backed by a 256-bit counter rather than a plain uint64 so that an
// adversarial or buggy peer driving an unbounded number of rounds
// cannot wrap it.
type Epoch struct {
	value *uint256.Int
}

// ZeroEpoch is the first epoch of any session.
func ZeroEpoch() Epoch {
	return Epoch{value: uint256.NewInt(0)}
}

// EpochFromUint64 constructs an Epoch from a plain counter.
func EpochFromUint64(v uint64) Epoch {
	return Epoch{value: uint256.NewInt(v)}
}

// Uint64 returns the epoch as a plain counter. If the epoch has
// advanced beyond the range of a uint64, only its low 64 bits are
// returned; it does not panic.
func (e Epoch) Uint64() uint64 {
	if e.value == nil {
		return 0
	}
	return e.value.Uint64()
}

// Increment returns the next epoch.
func (e Epoch) Increment() Epoch {
	v := e.value
	if v == nil {
		v = uint256.NewInt(0)
	}
	next := new(uint256.Int).AddUint64(v, 1)
	return Epoch{value: next}
}

// Compare returns -1, 0, or 1 as e is less than, equal to, or greater
// than other.
func (e Epoch) Compare(other Epoch) int {
	a, b := e.value, other.value
	if a == nil {
		a = uint256.NewInt(0)
	}
	if b == nil {
		b = uint256.NewInt(0)
	}
	return a.Cmp(b)
}

func (e Epoch) String() string {
	if e.value == nil {
		return "0"
	}
	return e.value.Dec()
}

// ValidatorSet is the ordered set of validators participating in a
// session, along with the Byzantine fault bounds it implies.
type ValidatorSet struct {
	indices       map[NodeID]ValidatorIndex
	maxFaultySize int // f = floor((N-1)/3)
	encoder       *erasure.Coder
}

// NewValidatorSet builds a validator set from a node-to-index mapping.
// The mapping must assign each of the N validators a distinct index in
// [0, N). It also builds the (N-2f, 2f) Reed-Solomon coder reliable
// broadcast shards its proposals with.
func NewValidatorSet(indices map[NodeID]ValidatorIndex) (*ValidatorSet, error) {
	size := len(indices)
	if size == 0 {
		return nil, fmt.Errorf("membership: validator set must not be empty")
	}
	maxFaultySize := (size - 1) / 3
	dataShards := size - 2*maxFaultySize
	coder, err := erasure.NewCoder(dataShards, 2*maxFaultySize)
	if err != nil {
		return nil, fmt.Errorf("membership: building shard coder: %w", err)
	}
	return &ValidatorSet{
		indices:       indices,
		maxFaultySize: maxFaultySize,
		encoder:       coder,
	}, nil
}

// Size returns N, the number of validators.
func (s *ValidatorSet) Size() int {
	return len(s.indices)
}

// MaxFaultySize returns f = floor((N-1)/3), the largest number of
// Byzantine validators this set can tolerate.
func (s *ValidatorSet) MaxFaultySize() int {
	return s.maxFaultySize
}

// MinGuaranteeSize returns Q = N-f, the quorum size that guarantees at
// least one correct validator's participation beyond any f-sized
// Byzantine coalition.
func (s *ValidatorSet) MinGuaranteeSize() int {
	return s.Size() - s.maxFaultySize
}

// Contains reports whether id names a known validator.
func (s *ValidatorSet) Contains(id NodeID) bool {
	_, ok := s.indices[id]
	return ok
}

// Index returns id's position in the validator set.
func (s *ValidatorSet) Index(id NodeID) (ValidatorIndex, bool) {
	idx, ok := s.indices[id]
	return idx, ok
}

// Indices returns the underlying node-to-index mapping. Callers must
// not mutate the returned map.
func (s *ValidatorSet) Indices() map[NodeID]ValidatorIndex {
	return s.indices
}

// Encoder returns the (N-2f, 2f) Reed-Solomon coder reliable broadcast
// shards proposals with: any Q = N-f received shards are enough to
// reconstruct, matching the quorum that drives an Echo-triggered
// Ready in §4.2.
func (s *ValidatorSet) Encoder() *erasure.Coder {
	return s.encoder
}
