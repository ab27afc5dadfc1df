package rbc

import "github.com/hbbft-go/hbbft/membership"

// FaultType classifies a locally observed protocol violation. Faults
// are recorded, never returned as an error: a single Byzantine peer
// must not abort a correct validator's instance.
type FaultType int

const (
	FaultUnknownSender FaultType = iota
	FaultReceivedValueFromNonProposer
	FaultMultipleValueMessages
	FaultMultipleEchoMessages
	// FaultMultipleReadyMessages is never recorded: Ready messages are
	// tracked per root hash, so a sender's Ready for a second root is
	// counted under that root rather than flagged.
	FaultMultipleReadyMessages
	FaultInvalidProof
)

func (f FaultType) String() string {
	switch f {
	case FaultUnknownSender:
		return "unknown_sender"
	case FaultReceivedValueFromNonProposer:
		return "received_value_from_non_proposer"
	case FaultMultipleValueMessages:
		return "multiple_value_messages"
	case FaultMultipleEchoMessages:
		return "multiple_echo_messages"
	case FaultMultipleReadyMessages:
		return "multiple_ready_messages"
	case FaultInvalidProof:
		return "invalid_proof"
	default:
		return "unknown_fault"
	}
}

// FaultLog records one observed fault: who sent it, the offending
// message, and its classification.
type FaultLog struct {
	SenderID  membership.NodeID
	Message   BroadcastMessage
	FaultType FaultType
}
