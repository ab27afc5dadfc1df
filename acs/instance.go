package acs

import (
	"sync"

	"github.com/hbbft-go/hbbft/bba"
	"github.com/hbbft-go/hbbft/hblog"
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/rbc"
)

// Instance drives one validator's common-subset run: N reliable-
// broadcast drivers and N binary-agreement drivers, one pair per
// validator, each on its own goroutine, coordinating solely through
// State and a single-slot input channel per binary agreement.
type Instance struct {
	transport    Transport
	validatorSet *membership.ValidatorSet
	keyShares    *bba.ValidatorKeyShares
	log          *hblog.Logger
}

// New builds an Instance over transport, validatorSet, and this node's
// threshold key shares (shared across every binary agreement this run
// drives, one per validator).
func New(transport Transport, validatorSet *membership.ValidatorSet, keyShares *bba.ValidatorKeyShares) *Instance {
	return &Instance{
		transport:    transport,
		validatorSet: validatorSet,
		keyShares:    keyShares,
		log:          hblog.Default().Module("acs"),
	}
}

// baSignal is what a reliable-broadcast driver or the N-f-decided-1
// threshold check sends to wake a binary-agreement driver's single
// blocking receive. hasInput false means no real input was ever
// produced for this validator (its reliable broadcast never decided),
// so the binary agreement never starts.
type baSignal struct {
	hasInput bool
	value    bool
}

// Propose runs this validator's RBC as proposer with input, runs
// every other validator's RBC as a receiver, and drives all N binary
// agreements to a decision, terminating whichever reliable broadcasts
// lost.
func (ins *Instance) Propose(input []byte) (*State, error) {
	state := newState()
	validators := ins.validatorSet.Indices()

	baInputs := make(map[membership.NodeID]chan baSignal, len(validators))
	for id := range validators {
		// Buffered to 2. A reliable broadcast's own completion and the
		// N-f-decided-1 threshold check both call
		// tryMarkBinaryAgreementInputGiven, and only the winner sends,
		// so each channel receives exactly one value and that send never
		// blocks.
		baInputs[id] = make(chan baSignal, 2)
	}

	var rbcWG sync.WaitGroup
	for id := range validators {
		rbcWG.Add(1)
		go func(target membership.NodeID) {
			defer rbcWG.Done()
			ins.runReliableBroadcast(target, input, state, baInputs)
		}(id)
	}

	var baWG sync.WaitGroup
	for id := range validators {
		baWG.Add(1)
		go func(target membership.NodeID) {
			defer baWG.Done()
			ins.runBinaryAgreement(target, state, baInputs, validators)
		}(id)
	}
	baWG.Wait()

	// Terminate every reliable broadcast whose binary agreement
	// completed and decided 0. A target absent from the recorded
	// decisions (its agreement never started, or errored) is left
	// alone: its reliable-broadcast driver has already returned on its
	// own, so there is nothing left to terminate.
	for id, decided := range state.binaryAgreementOutputs() {
		if !decided {
			ins.transport.TerminateReliableBroadcast(id)
		}
	}
	rbcWG.Wait()

	return state, nil
}

func (ins *Instance) runReliableBroadcast(target membership.NodeID, input []byte, state *State, baInputs map[membership.NodeID]chan baSignal) {
	transport := ins.transport.CreateReliableBroadcastTransport(target)
	instance := rbc.New(transport, ins.validatorSet)

	var rbcState *rbc.State
	var err error
	if target == ins.transport.MyID() {
		rbcState, err = instance.Propose(input)
	} else {
		rbcState, err = instance.Run(nil)
	}

	var output []byte
	var faultLogs []rbc.FaultLog
	decided := false
	if err != nil {
		ins.log.Debug("reliable broadcast failed", "target", target, "error", err)
		// TODO set fault logs (RBC failed)
	} else {
		faultLogs = rbcState.FaultLogs()
		if payload, ok := rbcState.Output(); ok {
			output = payload
			decided = true
		}
	}
	state.setReliableBroadcastResult(target, output, faultLogs)

	if state.tryMarkBinaryAgreementInputGiven(target) {
		baInputs[target] <- baSignal{hasInput: decided, value: true}
	}
}

func (ins *Instance) runBinaryAgreement(target membership.NodeID, state *State, baInputs map[membership.NodeID]chan baSignal, validators map[membership.NodeID]membership.ValidatorIndex) {
	signal := <-baInputs[target]
	if !signal.hasInput {
		return
	}

	transport := ins.transport.CreateBinaryAgreementTransport(target)
	sessionID := ins.transport.BinaryAgreementSessionID(target)
	instance := bba.New(transport, ins.validatorSet, ins.keyShares, sessionID)

	baState, err := instance.Propose(signal.value)
	if err != nil {
		ins.log.Debug("binary agreement failed", "target", target, "error", err)
		// TODO set fault logs (ABA failed)
		return
	}

	output, _ := baState.Output()
	decidedOneCount := state.setBinaryAgreementResult(target, output, baState.FaultLogs())

	if !output || decidedOneCount < ins.validatorSet.MinGuaranteeSize() {
		return
	}
	for id := range validators {
		if state.tryMarkBinaryAgreementInputGiven(id) {
			baInputs[id] <- baSignal{hasInput: true, value: false}
		}
	}
}
