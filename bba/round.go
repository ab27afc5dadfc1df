package bba

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// roundState is one epoch's accumulated BVal/Aux/Conf/Coin tallies.
type roundState struct {
	sentBVal BinaryValueSet
	// receivedBVal/receivedAux index by the bit they were sent for;
	// receivedConf indexes by the full lattice value, since a Conf
	// message carries a set of bits rather than a single one.
	receivedBVal   map[bool]map[membership.NodeID]struct{}
	binValues      BinaryValueSet
	receivedAux    map[bool]map[membership.NodeID]struct{}
	auxOutput      BinaryValueSet
	receivedConf   map[BinaryValues]map[membership.NodeID]struct{}
	confOutput     BinaryValueSet
	receivedShares map[membership.NodeID]threshold.SignatureShare
	coinOutput     *bool
}

func newRoundState() *roundState {
	return &roundState{
		receivedBVal: map[bool]map[membership.NodeID]struct{}{
			false: {}, true: {},
		},
		receivedAux: map[bool]map[membership.NodeID]struct{}{
			false: {}, true: {},
		},
		receivedConf: map[BinaryValues]map[membership.NodeID]struct{}{
			BinaryFalse: {}, BinaryTrue: {}, BinaryBoth: {},
		},
		receivedShares: make(map[membership.NodeID]threshold.SignatureShare),
	}
}

func (r *roundState) tryAddSentBVal(value bool) bool {
	return r.sentBVal.Insert(value)
}

func (r *roundState) tryAddReceivedBVal(value bool, senderID membership.NodeID) bool {
	if _, ok := r.receivedBVal[value][senderID]; ok {
		return false
	}
	r.receivedBVal[value][senderID] = struct{}{}
	return true
}

func (r *roundState) getReceivedBValCount(value bool) int {
	return len(r.receivedBVal[value])
}

func (r *roundState) tryUpdateBinValues(value bool) bool {
	return r.binValues.Insert(value)
}

func (r *roundState) tryAddReceivedAux(value bool, senderID membership.NodeID) bool {
	if _, ok := r.receivedAux[value][senderID]; ok {
		return false
	}
	r.receivedAux[value][senderID] = struct{}{}
	return true
}

func (r *roundState) getReceivedAuxCount(value bool) int {
	return len(r.receivedAux[value])
}

func (r *roundState) getTotalReceivedAuxCount() int {
	return len(r.receivedAux[true]) + len(r.receivedAux[false])
}

func (r *roundState) isAuxDecided() bool {
	return r.auxOutput.IsSet()
}

func (r *roundState) setAuxOutput(values BinaryValues) {
	r.auxOutput = NewBinaryValueSet(values)
}

func (r *roundState) tryAddReceivedConf(values BinaryValues, senderID membership.NodeID) bool {
	if _, ok := r.receivedConf[values][senderID]; ok {
		return false
	}
	r.receivedConf[values][senderID] = struct{}{}
	return true
}

func (r *roundState) getReceivedConfCount(values BinaryValues) int {
	return len(r.receivedConf[values])
}

// getTotalReceivedConfCount only tallies the lattice points bin_values
// actually reached, mirroring the source protocol's own filter: a Conf
// carrying a bit this round never saw a BVal quorum for doesn't count.
func (r *roundState) getTotalReceivedConfCount() int {
	count := 0
	if r.binValues.Includes(BinaryTrue) {
		count += len(r.receivedConf[BinaryTrue])
	}
	if r.binValues.Includes(BinaryFalse) {
		count += len(r.receivedConf[BinaryFalse])
	}
	if r.binValues.Includes(BinaryBoth) {
		count += len(r.receivedConf[BinaryBoth])
	}
	return count
}

func (r *roundState) isConfDecided() bool {
	return r.confOutput.IsSet()
}

func (r *roundState) setConfOutput(values BinaryValues) {
	r.confOutput = NewBinaryValueSet(values)
}

func (r *roundState) tryAddReceivedShares(senderID membership.NodeID, share threshold.SignatureShare) bool {
	if _, ok := r.receivedShares[senderID]; ok {
		return false
	}
	r.receivedShares[senderID] = share
	return true
}

func (r *roundState) getTotalReceivedSharesCount() int {
	return len(r.receivedShares)
}

func (r *roundState) isCoinDecided() bool {
	return r.coinOutput != nil
}

func (r *roundState) getCoinOutput() (bool, bool) {
	if r.coinOutput == nil {
		return false, false
	}
	return *r.coinOutput, true
}

func (r *roundState) setCoinOutput(value bool) {
	r.coinOutput = &value
}
