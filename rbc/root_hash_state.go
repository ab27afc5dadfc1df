package rbc

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/merkle"
)

// rootHashState tracks everything this instance knows about one
// candidate root hash: who first proposed it, which validators have
// echoed a proof under it, and which have sent Ready.
type rootHashState struct {
	proposer      *membership.NodeID
	echoSent      bool
	receivedEcho  map[membership.NodeID]*merkle.Proof
	readySent     bool
	receivedReady map[membership.NodeID]struct{}
}

func newRootHashState() *rootHashState {
	return &rootHashState{
		receivedEcho:  make(map[membership.NodeID]*merkle.Proof),
		receivedReady: make(map[membership.NodeID]struct{}),
	}
}

func (s *rootHashState) getProposer() (membership.NodeID, bool) {
	if s.proposer == nil {
		return "", false
	}
	return *s.proposer, true
}

func (s *rootHashState) setProposer(id membership.NodeID) {
	s.proposer = &id
}

func (s *rootHashState) countReceivedEcho() int {
	return len(s.receivedEcho)
}

func (s *rootHashState) insertReceivedReady(id membership.NodeID) bool {
	if _, ok := s.receivedReady[id]; ok {
		return false
	}
	s.receivedReady[id] = struct{}{}
	return true
}

func (s *rootHashState) countReceivedReady() int {
	return len(s.receivedReady)
}
