package bba

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// Content is one round's message payload.
type Content interface{ isContent() }

type BVal struct{ Value bool }

func (BVal) isContent() {}

type Aux struct{ Value bool }

func (Aux) isContent() {}

type Conf struct{ Values BinaryValues }

func (Conf) isContent() {}

type Coin struct{ Share threshold.SignatureShare }

func (Coin) isContent() {}

// Message tags a Content with the epoch it was sent in, so a receiver
// still running an earlier or later epoch can recognize and fault-log
// it rather than apply it to the wrong round.
type Message struct {
	Epoch   membership.Epoch
	Content Content
}

type NodeMessage interface{ isNodeMessage() }

type Deliver struct {
	SenderID membership.NodeID
	Message  Message
}

func (Deliver) isNodeMessage() {}

type Terminate struct{}

func (Terminate) isNodeMessage() {}

// Transport lets an Instance exchange messages without knowing how
// they're carried. NextMessage takes the caller's current epoch so an
// implementation backed by a per-epoch queue can serve only messages
// relevant to it; OnNextEpoch notifies the transport when the caller
// advances so it can roll such a queue forward.
type Transport interface {
	MyID() membership.NodeID
	NextMessage(epoch membership.Epoch) NodeMessage
	SendMessage(target membership.NodeID, message Message)
	OnNextEpoch(epoch membership.Epoch)
}
