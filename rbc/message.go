// Package rbc implements one proposer's reliable broadcast instance: a
// Bracha-style protocol in which a designated proposer input reaches
// every correct validator, or no correct validator outputs anything,
// over Merkle-proofed Reed-Solomon shards.
package rbc

import (
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/merkle"
)

// BroadcastMessage is one of ValueMessage, EchoMessage, or ReadyMessage.
type BroadcastMessage interface {
	isBroadcastMessage()
}

// ValueMessage carries the proposer's Merkle proof for one validator's
// shard. Sent once by the proposer to each validator.
type ValueMessage struct {
	Proof *merkle.Proof
}

func (ValueMessage) isBroadcastMessage() {}

// EchoMessage rebroadcasts a received Value proof to every validator.
type EchoMessage struct {
	Proof *merkle.Proof
}

func (EchoMessage) isBroadcastMessage() {}

// ReadyMessage commits to a root hash being terminable.
type ReadyMessage struct {
	RootHash merkle.Digest
}

func (ReadyMessage) isBroadcastMessage() {}

// NodeMessage is either a Deliver carrying a BroadcastMessage from a
// peer, or a Terminate signal telling the instance to stop without a
// decision.
type NodeMessage interface {
	isNodeMessage()
}

// Deliver wraps a BroadcastMessage with the peer that sent it.
type Deliver struct {
	SenderID membership.NodeID
	Message  BroadcastMessage
}

func (Deliver) isNodeMessage() {}

// Terminate tells the instance to stop without producing an output.
type Terminate struct{}

func (Terminate) isNodeMessage() {}

// Transport is the host-supplied network collaborator an Instance
// drives against. NextMessage blocks until a message or Terminate
// signal is available. SendMessage is best-effort: delivery to a
// faulty recipient is not guaranteed.
type Transport interface {
	MyID() membership.NodeID
	NextMessage() NodeMessage
	SendMessage(target membership.NodeID, message BroadcastMessage)
}
