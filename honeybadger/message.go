package honeybadger

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// DecryptionShareMessage carries one validator's decryption share of
// proposerID's ciphertext for the given epoch — the unit of
// information validators exchange once common subset has produced its
// output set, to jointly recover the plaintext batches.
type DecryptionShareMessage struct {
	ProposerID      membership.NodeID
	Epoch           membership.Epoch
	DecryptionShare threshold.DecryptionShare
}

// NodeMessage is either a Deliver carrying a DecryptionShareMessage
// from a peer, or a Terminate signal telling a share-collection loop
// to stop.
type NodeMessage interface {
	isNodeMessage()
}

// Deliver wraps a DecryptionShareMessage with the peer that sent it.
type Deliver struct {
	SenderID membership.NodeID
	Message  DecryptionShareMessage
}

func (Deliver) isNodeMessage() {}

// Terminate tells a decryption-share collection loop to stop.
type Terminate struct{}

func (Terminate) isNodeMessage() {}
