package bba

import "github.com/hbbft-go/hbbft/threshold"

// ValidatorKeyShares is one validator's share of the session's
// threshold key material: a secret key share to sign common-coin
// requests with and the public commitment needed to verify any
// validator's share or combine a quorum of them.
type ValidatorKeyShares struct {
	secretShare  threshold.SecretKeyShare
	publicShares threshold.PublicKeyShares
}

// NewValidatorKeyShares bundles a secret key share with the set's
// shared public commitment.
func NewValidatorKeyShares(secretShare threshold.SecretKeyShare, publicShares threshold.PublicKeyShares) *ValidatorKeyShares {
	return &ValidatorKeyShares{secretShare: secretShare, publicShares: publicShares}
}

// SecretKeyShare returns this validator's own signing share.
func (k *ValidatorKeyShares) SecretKeyShare() threshold.SecretKeyShare {
	return k.secretShare
}

// PublicKeyShares returns the set's shared public commitment.
func (k *ValidatorKeyShares) PublicKeyShares() threshold.PublicKeyShares {
	return k.publicShares
}
