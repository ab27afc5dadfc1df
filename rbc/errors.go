package rbc

import "errors"

// ErrIllegalMerkleTreeRootHash is returned when the payload
// reconstructed from a quorum of Echo shards hashes back to a root
// different from the one those Echoes agreed on. This should be
// unreachable once enough valid Echoes have been collected; seeing it
// indicates a protocol-layer bug rather than a Byzantine peer, so it
// is fatal rather than logged to the fault log.
var ErrIllegalMerkleTreeRootHash = errors.New("rbc: reconstructed payload does not match agreed merkle root hash")
