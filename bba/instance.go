package bba

import (
	"fmt"

	"github.com/hbbft-go/hbbft/hblog"
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// Instance drives one node's binary-agreement run against a Transport,
// from its initial estimate through as many BVal/Aux/Conf/Coin epochs
// as it takes to decide.
type Instance struct {
	transport    Transport
	validatorSet *membership.ValidatorSet
	keyShares    *ValidatorKeyShares
	sessionID    membership.SessionID
	log          *hblog.Logger
}

// New builds an Instance over transport, validatorSet, and this node's
// key shares, disambiguated from any concurrent run by sessionID.
func New(transport Transport, validatorSet *membership.ValidatorSet, keyShares *ValidatorKeyShares, sessionID membership.SessionID) *Instance {
	return &Instance{
		transport:    transport,
		validatorSet: validatorSet,
		keyShares:    keyShares,
		sessionID:    sessionID,
		log:          hblog.Default().Module("bba"),
	}
}

// Propose starts this node's run with input as epoch 0's estimate and
// drives it to a decision.
func (ins *Instance) Propose(input bool) (*State, error) {
	state := newState(ins.validatorSet, ins.keyShares, ins.sessionID)
	if err := ins.onStartNewEpoch(input, state); err != nil {
		return nil, err
	}

	for {
		message := ins.transport.NextMessage(state.Epoch())
		switch m := message.(type) {
		case Terminate:
			ins.log.Debug("terminate received", "node", ins.transport.MyID())
			return state, nil
		case Deliver:
			if !ins.validatorSet.Contains(m.SenderID) {
				state.PushFaultLog(FaultLog{SenderID: m.SenderID, Message: m.Message, FaultType: FaultUnknownSender})
				continue
			}
			if m.Message.Epoch.Compare(state.Epoch()) != 0 {
				state.PushFaultLog(FaultLog{
					SenderID:      m.SenderID,
					Message:       m.Message,
					FaultType:     FaultEpochMismatched,
					CurrentEpoch:  state.Epoch(),
					IncomingEpoch: m.Message.Epoch,
				})
				continue
			}
			var err error
			switch content := m.Message.Content.(type) {
			case BVal:
				err = ins.handleBVal(m.SenderID, m.Message.Epoch, content, state)
			case Aux:
				err = ins.handleAux(m.SenderID, m.Message.Epoch, content, state)
			case Conf:
				err = ins.handleConf(m.SenderID, m.Message.Epoch, content, state)
			case Coin:
				err = ins.handleCoin(m.SenderID, m.Message.Epoch, content, state)
			}
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("bba: unrecognized node message %T", message)
		}

		// A quorum of Coin shares can combine before this node's own
		// Conf phase has decided (every sender broadcasts Coin only
		// once its own Conf decided, but that says nothing about when
		// this node's Conf decides). Wait for both before advancing.
		if coinOutput, ok := state.GetCoinOutput(); ok && state.IsConfDecided() {
			confValues := state.GetConfOutput().Values()
			if single, isSingle := confValues.Single(); isSingle && single == coinOutput {
				state.SetOutput(coinOutput)
				return state, nil
			} else if isSingle {
				state.IncrementEpoch()
				ins.transport.OnNextEpoch(state.Epoch())
				if err := ins.onStartNewEpoch(single, state); err != nil {
					return nil, err
				}
			} else {
				state.IncrementEpoch()
				ins.transport.OnNextEpoch(state.Epoch())
				if err := ins.onStartNewEpoch(coinOutput, state); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (ins *Instance) onStartNewEpoch(estimate bool, state *State) error {
	state.SetEstimated(estimate)
	state.TryAddSentBVal(estimate)
	ins.broadcastBVal(estimate, state.Epoch())
	state.TryAddReceivedBVal(estimate, ins.transport.MyID())
	return nil
}

func (ins *Instance) handleBVal(senderID membership.NodeID, epoch membership.Epoch, message BVal, state *State) error {
	value := message.Value
	if !state.TryAddReceivedBVal(value, senderID) {
		state.PushFaultLog(FaultLog{SenderID: senderID, Message: Message{Epoch: epoch, Content: message}, FaultType: FaultDuplicateBVal})
		return nil
	}

	count := state.GetReceivedBValCount(value)
	f := ins.validatorSet.MaxFaultySize()

	if count >= f+1 {
		if state.TryAddSentBVal(value) {
			ins.broadcastBVal(value, epoch)
		}
	}

	if count >= 2*f+1 {
		if state.TryUpdateBinValues(value) {
			ins.broadcastAux(value, epoch)
			if err := ins.handleAux(ins.transport.MyID(), epoch, Aux{Value: value}, state); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ins *Instance) handleAux(senderID membership.NodeID, epoch membership.Epoch, message Aux, state *State) error {
	value := message.Value
	if !state.TryAddReceivedAux(value, senderID) {
		state.PushFaultLog(FaultLog{SenderID: senderID, Message: Message{Epoch: epoch, Content: message}, FaultType: FaultDuplicateAux})
		return nil
	}

	if ins.trySetAuxOutput(state) {
		values := state.GetAuxOutput().Values()
		ins.broadcastConf(values, epoch)
		if err := ins.handleConf(ins.transport.MyID(), epoch, Conf{Values: values}, state); err != nil {
			return err
		}
	}
	return nil
}

func (ins *Instance) trySetAuxOutput(state *State) bool {
	if state.IsAuxDecided() {
		return false
	}
	q := ins.validatorSet.MinGuaranteeSize()
	binValues := state.GetBinValues()
	switch {
	case binValues.Includes(BinaryTrue) && state.GetReceivedAuxCount(true) >= q:
		state.SetAuxOutput(BinaryTrue)
	case binValues.Includes(BinaryFalse) && state.GetReceivedAuxCount(false) >= q:
		state.SetAuxOutput(BinaryFalse)
	case binValues.IsSet() && state.GetTotalReceivedAuxCount() >= q:
		state.SetAuxOutput(BinaryBoth)
	default:
		return false
	}
	return true
}

func (ins *Instance) handleConf(senderID membership.NodeID, epoch membership.Epoch, message Conf, state *State) error {
	values := message.Values
	if !state.TryAddReceivedConf(values, senderID) {
		state.PushFaultLog(FaultLog{SenderID: senderID, Message: Message{Epoch: epoch, Content: message}, FaultType: FaultDuplicateConf})
		return nil
	}

	if ins.trySetConfOutput(state) {
		coinName, err := CoinName(state.SessionID(), epoch)
		if err != nil {
			return fmt.Errorf("bba: computing coin name: %w", err)
		}
		share := state.KeyShares().SecretKeyShare().Sign(coinName)
		ins.broadcastCoin(share, epoch)
		if err := ins.handleCoin(ins.transport.MyID(), epoch, Coin{Share: share}, state); err != nil {
			return err
		}
	}
	return nil
}

func (ins *Instance) trySetConfOutput(state *State) bool {
	if state.IsConfDecided() || !state.IsAuxDecided() {
		return false
	}
	q := ins.validatorSet.MinGuaranteeSize()
	binValues := state.GetBinValues()
	switch {
	case binValues.Includes(BinaryTrue) && state.GetReceivedConfCount(BinaryTrue) >= q:
		state.SetConfOutput(BinaryTrue)
	case binValues.Includes(BinaryFalse) && state.GetReceivedConfCount(BinaryFalse) >= q:
		state.SetConfOutput(BinaryFalse)
	case binValues.IsSet() && state.GetTotalReceivedConfCount() >= q:
		state.SetConfOutput(BinaryBoth)
	default:
		return false
	}
	return true
}

func (ins *Instance) handleCoin(senderID membership.NodeID, epoch membership.Epoch, message Coin, state *State) error {
	share := message.Share
	coinName, err := CoinName(state.SessionID(), epoch)
	if err != nil {
		return fmt.Errorf("bba: computing coin name: %w", err)
	}

	idx, ok := ins.validatorSet.Index(senderID)
	if !ok {
		return fmt.Errorf("bba: coin sender %s has no validator index", senderID)
	}
	publicShare := state.KeyShares().PublicKeyShares().PublicKeyShare(uint64(idx))
	if !publicShare.Verify(share, coinName) {
		state.PushFaultLog(FaultLog{SenderID: senderID, Message: Message{Epoch: epoch, Content: message}, FaultType: FaultInvalidSignatureShare})
		return nil
	}

	state.TryAddReceivedShares(senderID, share)
	if state.IsCoinDecided() {
		return nil
	}

	if state.GetTotalReceivedSharesCount() > ins.validatorSet.MaxFaultySize() {
		signature, err := state.KeyShares().PublicKeyShares().CombineSignatures(state.GetReceivedShares())
		if err != nil {
			return fmt.Errorf("bba: combining coin signature shares: %w", err)
		}
		if !state.KeyShares().PublicKeyShares().PublicKey().Verify(signature, coinName) {
			return ErrInvalidCombinedSignature
		}
		state.SetCoinOutput(signature.Parity())
	}
	return nil
}

func (ins *Instance) broadcastBVal(value bool, epoch membership.Epoch) {
	ins.broadcast(epoch, BVal{Value: value})
}

func (ins *Instance) broadcastAux(value bool, epoch membership.Epoch) {
	ins.broadcast(epoch, Aux{Value: value})
}

func (ins *Instance) broadcastConf(values BinaryValues, epoch membership.Epoch) {
	ins.broadcast(epoch, Conf{Values: values})
}

func (ins *Instance) broadcastCoin(share threshold.SignatureShare, epoch membership.Epoch) {
	ins.broadcast(epoch, Coin{Share: share})
}

func (ins *Instance) broadcast(epoch membership.Epoch, content Content) {
	myID := ins.transport.MyID()
	for nodeID := range ins.validatorSet.Indices() {
		if nodeID != myID {
			ins.transport.SendMessage(nodeID, Message{Epoch: epoch, Content: content})
		}
	}
}
