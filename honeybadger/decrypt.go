package honeybadger

import (
	"fmt"

	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// VerifyDecryptionShareMessage checks that message's share is a valid
// decryption share of ct under the sender's public key share, so a
// forged or malformed share never gets mixed into CombineDecryptionShares.
// It returns false both when senderID is not a known validator and
// when the share itself fails verification.
func VerifyDecryptionShareMessage(publicShares threshold.PublicKeyShares, indices map[membership.NodeID]membership.ValidatorIndex, senderID membership.NodeID, message DecryptionShareMessage, ct *threshold.Ciphertext) bool {
	idx, ok := indices[senderID]
	if !ok {
		return false
	}
	share := publicShares.PublicKeyShare(uint64(idx))
	return share.VerifyDecryptionShare(message.DecryptionShare, ct)
}

// CombineDecryptionShares interpolates a threshold of decryption
// shares for one proposer's ciphertext into the plaintext batch bytes
// that proposer submitted, the bytes DeserializeBatch (or a host's own
// decoder) then parses back into transactions.
func CombineDecryptionShares(publicShares threshold.PublicKeyShares, ct *threshold.Ciphertext, shares map[membership.NodeID]threshold.DecryptionShare, indices map[membership.NodeID]membership.ValidatorIndex) ([]byte, error) {
	indexed := make(map[uint64]threshold.DecryptionShare, len(shares))
	for senderID, share := range shares {
		idx, ok := indices[senderID]
		if !ok {
			return nil, fmt.Errorf("honeybadger: decryption share from unknown validator %s", senderID)
		}
		indexed[uint64(idx)] = share
	}
	return publicShares.Decrypt(indexed, ct)
}
