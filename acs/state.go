package acs

import (
	"sync"

	"github.com/hbbft-go/hbbft/bba"
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/rbc"
)

// State is the shared record every RBC and BBA driver in one common-
// subset run writes into, guarded by a single mutex. Each result
// setter overwrites any earlier entry for the same target; State does
// not guard against a second write, since each driver runs exactly
// once per instance and records its result once.
type State struct {
	mu sync.Mutex

	rbcOutputs   map[membership.NodeID][]byte
	rbcFaultLogs map[membership.NodeID][]rbc.FaultLog

	baInputGiven map[membership.NodeID]bool
	baOutputs    map[membership.NodeID]bool
	baFaultLogs  map[membership.NodeID][]bba.FaultLog
}

func newState() *State {
	return &State{
		rbcOutputs:   make(map[membership.NodeID][]byte),
		rbcFaultLogs: make(map[membership.NodeID][]rbc.FaultLog),
		baInputGiven: make(map[membership.NodeID]bool),
		baOutputs:    make(map[membership.NodeID]bool),
		baFaultLogs:  make(map[membership.NodeID][]bba.FaultLog),
	}
}

// setReliableBroadcastResult records target's reliable-broadcast
// outcome. output is nil if the broadcast never decided.
func (s *State) setReliableBroadcastResult(target membership.NodeID, output []byte, faultLogs []rbc.FaultLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if output != nil {
		s.rbcOutputs[target] = output
	}
	s.rbcFaultLogs[target] = faultLogs
}

// tryMarkBinaryAgreementInputGiven atomically checks whether target's
// binary agreement has already been given an input and, if not, marks
// it given. It returns true exactly once per target, for whichever
// caller wins the race: the broadcast completing (input 1) or the
// N-f-decided-1 threshold being reached (input 0). This is the
// mechanism that realises "at most one input is delivered to any
// BBA_j".
func (s *State) tryMarkBinaryAgreementInputGiven(target membership.NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baInputGiven[target] {
		return false
	}
	s.baInputGiven[target] = true
	return true
}

// setBinaryAgreementResult records target's binary-agreement decision
// and returns how many validators have now decided 1, so the caller
// can check it against the quorum without re-acquiring the lock.
func (s *State) setBinaryAgreementResult(target membership.NodeID, output bool, faultLogs []bba.FaultLog) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baOutputs[target] = output
	s.baFaultLogs[target] = faultLogs
	count := 0
	for _, decided := range s.baOutputs {
		if decided {
			count++
		}
	}
	return count
}

// binaryAgreementOutputs returns a copy of every binary-agreement
// decision recorded so far. A target absent from the result never had
// its decision recorded, whether because its agreement never started
// (the broadcast that would have fed it input failed) or because it
// errored outright.
func (s *State) binaryAgreementOutputs() map[membership.NodeID]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[membership.NodeID]bool, len(s.baOutputs))
	for id, v := range s.baOutputs {
		out[id] = v
	}
	return out
}

// ReliableBroadcastOutputs returns a copy of every reliable-broadcast
// payload recorded so far, keyed by proposer.
func (s *State) ReliableBroadcastOutputs() map[membership.NodeID][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[membership.NodeID][]byte, len(s.rbcOutputs))
	for id, v := range s.rbcOutputs {
		out[id] = v
	}
	return out
}

// ReliableBroadcastFaultLogs returns a copy of every reliable-broadcast
// fault log recorded so far, keyed by proposer.
func (s *State) ReliableBroadcastFaultLogs() map[membership.NodeID][]rbc.FaultLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[membership.NodeID][]rbc.FaultLog, len(s.rbcFaultLogs))
	for id, v := range s.rbcFaultLogs {
		out[id] = v
	}
	return out
}

// BinaryAgreementFaultLogs returns a copy of every binary-agreement
// fault log recorded so far, keyed by the proposer whose agreement
// produced them.
func (s *State) BinaryAgreementFaultLogs() map[membership.NodeID][]bba.FaultLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[membership.NodeID][]bba.FaultLog, len(s.baFaultLogs))
	for id, v := range s.baFaultLogs {
		out[id] = v
	}
	return out
}

// Output builds the final NodeId -> payload mapping: validators whose
// binary agreement decided 1 have the corresponding reliable
// broadcast's payload, everyone else is absent.
func (s *State) Output(validators map[membership.NodeID]membership.ValidatorIndex) map[membership.NodeID][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[membership.NodeID][]byte, len(validators))
	for id := range validators {
		if s.baOutputs[id] {
			out[id] = s.rbcOutputs[id]
		}
	}
	return out
}
