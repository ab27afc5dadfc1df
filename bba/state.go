package bba

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// State is one binary-agreement instance's accumulated view across
// however many epochs it takes to decide: the validator set and key
// shares it was started with, the current epoch's estimate, every
// epoch's round state, the fault log, and the decided bit once one
// exists.
type State struct {
	validatorSet *membership.ValidatorSet
	keyShares    *ValidatorKeyShares
	sessionID    membership.SessionID
	epoch        membership.Epoch
	estimated    *bool
	rounds       map[uint64]*roundState
	faultLogs    []FaultLog
	output       *bool
}

func newState(validatorSet *membership.ValidatorSet, keyShares *ValidatorKeyShares, sessionID membership.SessionID) *State {
	epoch := membership.ZeroEpoch()
	return &State{
		validatorSet: validatorSet,
		keyShares:    keyShares,
		sessionID:    sessionID,
		epoch:        epoch,
		rounds:       map[uint64]*roundState{epoch.Uint64(): newRoundState()},
	}
}

func (s *State) ValidatorSet() *membership.ValidatorSet { return s.validatorSet }

func (s *State) Validators() map[membership.NodeID]membership.ValidatorIndex {
	return s.validatorSet.Indices()
}

func (s *State) KeyShares() *ValidatorKeyShares { return s.keyShares }

func (s *State) SessionID() membership.SessionID { return s.sessionID }

func (s *State) Epoch() membership.Epoch { return s.epoch }

// IncrementEpoch clears the current estimate and opens a fresh round
// for the next epoch.
func (s *State) IncrementEpoch() {
	s.estimated = nil
	s.epoch = s.epoch.Increment()
	s.rounds[s.epoch.Uint64()] = newRoundState()
}

func (s *State) SetEstimated(value bool) { s.estimated = &value }

func (s *State) currentRound() *roundState {
	rs, ok := s.rounds[s.epoch.Uint64()]
	if !ok {
		panic("bba: round state not initialized for current epoch")
	}
	return rs
}

func (s *State) TryAddSentBVal(value bool) bool {
	return s.currentRound().tryAddSentBVal(value)
}

func (s *State) TryAddReceivedBVal(value bool, senderID membership.NodeID) bool {
	return s.currentRound().tryAddReceivedBVal(value, senderID)
}

func (s *State) GetReceivedBValCount(value bool) int {
	return s.currentRound().getReceivedBValCount(value)
}

func (s *State) GetBinValues() BinaryValueSet {
	return s.currentRound().binValues
}

func (s *State) TryUpdateBinValues(value bool) bool {
	return s.currentRound().tryUpdateBinValues(value)
}

func (s *State) TryAddReceivedAux(value bool, senderID membership.NodeID) bool {
	return s.currentRound().tryAddReceivedAux(value, senderID)
}

func (s *State) GetReceivedAuxCount(value bool) int {
	return s.currentRound().getReceivedAuxCount(value)
}

func (s *State) GetTotalReceivedAuxCount() int {
	return s.currentRound().getTotalReceivedAuxCount()
}

func (s *State) IsAuxDecided() bool {
	return s.currentRound().isAuxDecided()
}

func (s *State) GetAuxOutput() BinaryValueSet {
	return s.currentRound().auxOutput
}

func (s *State) SetAuxOutput(values BinaryValues) {
	s.currentRound().setAuxOutput(values)
}

func (s *State) TryAddReceivedConf(values BinaryValues, senderID membership.NodeID) bool {
	return s.currentRound().tryAddReceivedConf(values, senderID)
}

func (s *State) GetReceivedConfCount(values BinaryValues) int {
	return s.currentRound().getReceivedConfCount(values)
}

func (s *State) GetTotalReceivedConfCount() int {
	return s.currentRound().getTotalReceivedConfCount()
}

func (s *State) IsConfDecided() bool {
	return s.currentRound().isConfDecided()
}

func (s *State) GetConfOutput() BinaryValueSet {
	return s.currentRound().confOutput
}

func (s *State) SetConfOutput(values BinaryValues) {
	s.currentRound().setConfOutput(values)
}

func (s *State) TryAddReceivedShares(senderID membership.NodeID, share threshold.SignatureShare) bool {
	return s.currentRound().tryAddReceivedShares(senderID, share)
}

func (s *State) GetTotalReceivedSharesCount() int {
	return s.currentRound().getTotalReceivedSharesCount()
}

// GetReceivedShares returns this epoch's received coin shares keyed by
// validator index, the form PublicKeyShares.CombineSignatures expects.
func (s *State) GetReceivedShares() map[uint64]threshold.SignatureShare {
	rs := s.currentRound()
	out := make(map[uint64]threshold.SignatureShare, len(rs.receivedShares))
	for nodeID, share := range rs.receivedShares {
		idx, ok := s.validatorSet.Index(nodeID)
		if !ok {
			continue
		}
		out[uint64(idx)] = share
	}
	return out
}

func (s *State) IsCoinDecided() bool {
	return s.currentRound().isCoinDecided()
}

func (s *State) GetCoinOutput() (bool, bool) {
	return s.currentRound().getCoinOutput()
}

func (s *State) SetCoinOutput(value bool) {
	s.currentRound().setCoinOutput(value)
}

func (s *State) FaultLogs() []FaultLog { return s.faultLogs }

func (s *State) PushFaultLog(log FaultLog) {
	s.faultLogs = append(s.faultLogs, log)
}

func (s *State) IsDecided() bool { return s.output != nil }

func (s *State) SetOutput(value bool) { s.output = &value }

func (s *State) Output() (bool, bool) {
	if s.output == nil {
		return false, false
	}
	return *s.output, true
}
