// Package acs implements asynchronous common subset: N reliable
// broadcasts and N binary agreements, one pair per validator, composed
// so that every correct validator outputs the same NodeId -> payload
// mapping covering at least N-f proposers.
package acs

import (
	"github.com/hbbft-go/hbbft/bba"
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/rbc"
)

// Transport is the host-supplied factory an Instance uses to stand up
// its N reliable-broadcast and N binary-agreement sub-instances, one
// per validator in the set. Unlike rbc.Transport and bba.Transport
// (each scoped to a single sub-instance's message traffic), this
// factory is scoped to the whole common-subset run: it hands back a
// fresh Transport for whichever sub-instance (named by target) the
// caller is about to drive.
type Transport interface {
	// MyID returns this validator's own identity.
	MyID() membership.NodeID

	// CreateReliableBroadcastTransport returns the rbc.Transport that
	// drives the reliable broadcast proposed by target.
	CreateReliableBroadcastTransport(target membership.NodeID) rbc.Transport

	// TerminateReliableBroadcast signals target's reliable broadcast to
	// stop once its binary agreement has decided 0.
	TerminateReliableBroadcast(target membership.NodeID)

	// CreateBinaryAgreementTransport returns the bba.Transport that
	// drives the binary agreement associated with target's proposal.
	CreateBinaryAgreementTransport(target membership.NodeID) bba.Transport

	// BinaryAgreementSessionID returns the session identifier that
	// disambiguates target's binary agreement (and hence its common
	// coin) from every other instance running concurrently.
	BinaryAgreementSessionID(target membership.NodeID) membership.SessionID
}
