package rbc

import (
	"fmt"

	"github.com/hbbft-go/hbbft/hblog"
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/merkle"
)

// Instance drives one proposer's reliable broadcast against a
// Transport. Its state machine is single-threaded cooperative: it
// alternates between blocking on Transport.NextMessage and applying
// deterministic transitions.
type Instance struct {
	transport    Transport
	validatorSet *membership.ValidatorSet
	log          *hblog.Logger
}

// New builds an Instance over transport and validatorSet.
func New(transport Transport, validatorSet *membership.ValidatorSet) *Instance {
	return &Instance{
		transport:    transport,
		validatorSet: validatorSet,
		log:          hblog.Default().Module("rbc"),
	}
}

// Propose runs this node as the proposer: it shards input, builds the
// Merkle tree over the shards, sends each validator its Value(proof),
// and then drives the instance to completion.
func (ins *Instance) Propose(input []byte) (*State, error) {
	encoder := ins.validatorSet.Encoder()
	shards, err := encoder.EncodeToShards(input)
	if err != nil {
		return nil, fmt.Errorf("rbc: encoding proposal: %w", err)
	}
	tree := merkle.New(shards)

	myID := ins.transport.MyID()
	var initial *ValueMessage
	for nodeID, idx := range ins.validatorSet.Indices() {
		proof, ok := tree.Proof(int(idx))
		if !ok {
			return nil, fmt.Errorf("rbc: no shard for validator index %d", idx)
		}
		message := ValueMessage{Proof: proof}
		if nodeID == myID {
			initial = &message
		} else {
			ins.transport.SendMessage(nodeID, message)
		}
	}
	return ins.run(initial)
}

// Run drives this instance as a non-proposing validator. Callers that
// are themselves the proposer should use Propose instead; callers that
// already received the proposer's own Value message out of band can
// pass it as initial.
func (ins *Instance) Run(initial *ValueMessage) (*State, error) {
	return ins.run(initial)
}

func (ins *Instance) run(initial *ValueMessage) (*State, error) {
	state := newState(ins.validatorSet)
	if initial != nil {
		if err := ins.handleValue(ins.transport.MyID(), *initial, state); err != nil {
			return nil, err
		}
	}
	for {
		message := ins.transport.NextMessage()
		switch m := message.(type) {
		case Terminate:
			ins.log.Debug("terminate received", "node", ins.transport.MyID())
			return state, nil
		case Deliver:
			if !ins.validatorSet.Contains(m.SenderID) {
				state.pushFaultLog(FaultLog{SenderID: m.SenderID, Message: m.Message, FaultType: FaultUnknownSender})
				continue
			}
			var err error
			switch inner := m.Message.(type) {
			case ValueMessage:
				err = ins.handleValue(m.SenderID, inner, state)
			case EchoMessage:
				err = ins.handleEcho(m.SenderID, inner, state)
			case ReadyMessage:
				err = ins.handleReady(m.SenderID, inner, state)
			}
			if err != nil {
				return nil, err
			}
			if state.IsDecided() {
				return state, nil
			}
		default:
			return nil, fmt.Errorf("rbc: unrecognized node message %T", message)
		}
	}
}

func (ins *Instance) handleValue(senderID membership.NodeID, message ValueMessage, state *State) error {
	proof := message.Proof
	if !state.validateProof(proof, ins.transport.MyID()) {
		state.pushFaultLog(FaultLog{SenderID: senderID, Message: message, FaultType: FaultInvalidProof})
		return nil
	}

	root := proof.RootHash()
	rs := state.getOrInitRootHashState(root)
	if proposer, ok := rs.getProposer(); ok {
		if proposer != senderID {
			state.pushFaultLog(FaultLog{SenderID: senderID, Message: message, FaultType: FaultReceivedValueFromNonProposer})
			return nil
		}
		if got, ok := rs.receivedEcho[senderID]; ok && got.Equal(proof) {
			ins.log.Debug("duplicate value message", "sender", senderID)
		} else {
			state.pushFaultLog(FaultLog{SenderID: senderID, Message: message, FaultType: FaultMultipleValueMessages})
		}
		return nil
	}

	rs.setProposer(senderID)
	rs.echoSent = true
	ins.broadcastEcho(proof)
	return nil
}

func (ins *Instance) handleEcho(senderID membership.NodeID, message EchoMessage, state *State) error {
	proof := message.Proof
	if !state.validateProof(proof, senderID) {
		state.pushFaultLog(FaultLog{SenderID: senderID, Message: message, FaultType: FaultInvalidProof})
		return nil
	}

	root := proof.RootHash()
	minGuaranteeSize := ins.validatorSet.MinGuaranteeSize()
	rs := state.getOrInitRootHashState(root)

	if got, ok := rs.receivedEcho[senderID]; ok {
		if got.Equal(proof) {
			ins.log.Debug("duplicate echo message", "sender", senderID)
		} else {
			state.pushFaultLog(FaultLog{SenderID: senderID, Message: message, FaultType: FaultMultipleEchoMessages})
		}
		return nil
	}

	rs.receivedEcho[senderID] = proof
	if !rs.readySent && rs.countReceivedEcho() >= minGuaranteeSize {
		rs.readySent = true
		ins.broadcastReady(root)
	}
	if state.canComputeOutput(root) {
		return ins.computeOutput(root, state)
	}
	return nil
}

func (ins *Instance) handleReady(senderID membership.NodeID, message ReadyMessage, state *State) error {
	root := message.RootHash
	maxDurableFaultySize := ins.validatorSet.MaxFaultySize()
	rs := state.getOrInitRootHashState(root)

	if !rs.insertReceivedReady(senderID) {
		ins.log.Debug("duplicate ready message", "sender", senderID)
		return nil
	}

	if !rs.readySent && rs.countReceivedReady() >= maxDurableFaultySize+1 {
		rs.readySent = true
		ins.broadcastReady(root)
	}
	if state.canComputeOutput(root) {
		return ins.computeOutput(root, state)
	}
	return nil
}

func (ins *Instance) computeOutput(root merkle.Digest, state *State) error {
	rs := state.getOrInitRootHashState(root)
	n := ins.validatorSet.Size()
	shards := make([][]byte, n)
	for nodeID, idx := range ins.validatorSet.Indices() {
		if proof, ok := rs.receivedEcho[nodeID]; ok && proof.RootHash() == root {
			shards[int(idx)] = proof.Value()
		}
	}

	payload, err := ins.validatorSet.Encoder().DecodeFromShards(shards)
	if err != nil {
		return fmt.Errorf("rbc: reconstructing payload: %w", err)
	}
	// shards has now been filled in by Reconstruct; recomputing the
	// tree over it must reproduce the root hash every Ready agreed on.
	if recomputed := merkle.New(shards).RootHash(); recomputed != root {
		return ErrIllegalMerkleTreeRootHash
	}

	state.setOutput(payload)
	return nil
}

func (ins *Instance) broadcastEcho(proof *merkle.Proof) {
	myID := ins.transport.MyID()
	for nodeID := range ins.validatorSet.Indices() {
		if nodeID != myID {
			ins.transport.SendMessage(nodeID, EchoMessage{Proof: proof})
		}
	}
}

func (ins *Instance) broadcastReady(root merkle.Digest) {
	myID := ins.transport.MyID()
	for nodeID := range ins.validatorSet.Indices() {
		if nodeID != myID {
			ins.transport.SendMessage(nodeID, ReadyMessage{RootHash: root})
		}
	}
}
