package honeybadger

import "github.com/hbbft-go/hbbft/membership"

// DecryptionShareFaultType classifies a locally observed violation in
// the decryption-share exchange.
type DecryptionShareFaultType int

const (
	DecryptionShareFaultUnknownSender DecryptionShareFaultType = iota
	DecryptionShareFaultInvalidShare
)

func (t DecryptionShareFaultType) String() string {
	switch t {
	case DecryptionShareFaultUnknownSender:
		return "unknown sender"
	case DecryptionShareFaultInvalidShare:
		return "invalid decryption share"
	default:
		return "unknown fault"
	}
}

// DecryptionShareFaultLog records one rejected decryption share: who
// sent it, the offending message, and why it was rejected.
type DecryptionShareFaultLog struct {
	SenderID  membership.NodeID
	Message   DecryptionShareMessage
	FaultType DecryptionShareFaultType
}
