package bba

import "errors"

// ErrInvalidCombinedSignature is returned when a quorum of valid
// individual coin shares combines into a signature that fails to
// verify under the session's master public key. This should be
// unreachable once every contributing share has passed its own
// verification; seeing it indicates a key-material or protocol bug
// rather than an ordinary Byzantine peer, so it is fatal.
var ErrInvalidCombinedSignature = errors.New("bba: combined coin signature does not verify under the master public key")
