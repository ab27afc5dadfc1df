package bba

import "github.com/hbbft-go/hbbft/membership"

type FaultType int

const (
	FaultUnknownSender FaultType = iota
	FaultEpochMismatched
	FaultDuplicateBVal
	FaultDuplicateAux
	FaultDuplicateConf
	FaultInvalidSignatureShare
)

func (t FaultType) String() string {
	switch t {
	case FaultUnknownSender:
		return "unknown sender"
	case FaultEpochMismatched:
		return "epoch mismatched"
	case FaultDuplicateBVal:
		return "duplicate bval"
	case FaultDuplicateAux:
		return "duplicate aux"
	case FaultDuplicateConf:
		return "duplicate conf"
	case FaultInvalidSignatureShare:
		return "invalid signature share"
	default:
		return "unknown fault"
	}
}

// FaultLog records one Byzantine or malformed observation seen on the
// wire. CurrentEpoch and IncomingEpoch only carry meaning when
// FaultType is FaultEpochMismatched.
type FaultLog struct {
	SenderID      membership.NodeID
	Message       Message
	FaultType     FaultType
	CurrentEpoch  membership.Epoch
	IncomingEpoch membership.Epoch
}
