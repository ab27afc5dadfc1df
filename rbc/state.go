package rbc

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/merkle"
)

// State is one reliable-broadcast instance's accumulated view: every
// root hash seen so far, the fault log, and the decided output once
// one exists.
type State struct {
	validatorSet   *membership.ValidatorSet
	rootHashStates map[merkle.Digest]*rootHashState
	faultLogs      []FaultLog
	output         []byte
	decided        bool
}

func newState(validatorSet *membership.ValidatorSet) *State {
	return &State{
		validatorSet:   validatorSet,
		rootHashStates: make(map[merkle.Digest]*rootHashState),
	}
}

// ValidatorSet returns the validator set this instance is running over.
func (s *State) ValidatorSet() *membership.ValidatorSet {
	return s.validatorSet
}

func (s *State) getOrInitRootHashState(root merkle.Digest) *rootHashState {
	rs, ok := s.rootHashStates[root]
	if !ok {
		rs = newRootHashState()
		s.rootHashStates[root] = rs
	}
	return rs
}

func (s *State) countEchoMessages(root merkle.Digest) int {
	rs, ok := s.rootHashStates[root]
	if !ok {
		return 0
	}
	return rs.countReceivedEcho()
}

func (s *State) countReadyMessages(root merkle.Digest) int {
	rs, ok := s.rootHashStates[root]
	if !ok {
		return 0
	}
	return rs.countReceivedReady()
}

// validateProof reports whether proof's leaf index matches nodeID's
// validator index and the proof validates against the validator set
// size.
func (s *State) validateProof(proof *merkle.Proof, nodeID membership.NodeID) bool {
	idx, ok := s.validatorSet.Index(nodeID)
	if !ok {
		return false
	}
	return int(idx) == proof.Index() && proof.Validate(s.validatorSet.Size())
}

// canComputeOutput reports whether enough Ready and Echo messages have
// accumulated under root to reconstruct and deliver the payload.
func (s *State) canComputeOutput(root merkle.Digest) bool {
	return s.countReadyMessages(root) > 2*s.validatorSet.MaxFaultySize() &&
		s.countEchoMessages(root) >= s.validatorSet.Encoder().DataShardCount()
}

// FaultLogs returns every fault observed so far.
func (s *State) FaultLogs() []FaultLog {
	return s.faultLogs
}

func (s *State) pushFaultLog(log FaultLog) {
	s.faultLogs = append(s.faultLogs, log)
}

// IsDecided reports whether this instance has produced an output.
func (s *State) IsDecided() bool {
	return s.decided
}

func (s *State) setOutput(value []byte) {
	s.output = value
	s.decided = true
}

// Output returns the decided payload, if any.
func (s *State) Output() ([]byte, bool) {
	if !s.decided {
		return nil, false
	}
	return s.output, true
}
