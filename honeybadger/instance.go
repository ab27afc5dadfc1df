package honeybadger

import (
	"fmt"

	"github.com/hbbft-go/hbbft/acs"
	"github.com/hbbft-go/hbbft/bba"
	"github.com/hbbft-go/hbbft/hblog"
	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/threshold"
)

// Instance drives one epoch of HoneyBadgerBFT for this validator: it
// encrypts a batch under the session's threshold public key and hands
// the ciphertext to one round of common subset.
type Instance struct {
	transport    acs.Transport
	validatorSet *membership.ValidatorSet
	keyShares    *bba.ValidatorKeyShares
	log          *hblog.Logger
}

// New builds an Instance over the common-subset transport, validator
// set, and this node's threshold key shares for the epoch it will
// drive.
func New(transport acs.Transport, validatorSet *membership.ValidatorSet, keyShares *bba.ValidatorKeyShares) *Instance {
	return &Instance{
		transport:    transport,
		validatorSet: validatorSet,
		keyShares:    keyShares,
		log:          hblog.Default().Module("honeybadger"),
	}
}

// Output is what one epoch of HoneyBadgerBFT produces for this
// validator: the underlying common-subset state, the accepted
// proposers' ciphertexts decoded back from the subset's output bytes,
// and this validator's own decryption share of each of them.
//
// Turning these into plaintext batches needs a quorum of peers'
// decryption shares, gathered over a transport the host provides;
// CombineDecryptionShares does the combining once enough have arrived.
type Output struct {
	Epoch            membership.Epoch
	ACSState         *acs.State
	Ciphertexts      map[membership.NodeID]*threshold.Ciphertext
	DecryptionShares map[membership.NodeID]threshold.DecryptionShare
}

// Propose serializes batch, encrypts it under the session's threshold
// public key, and proposes the ciphertext to one round of common
// subset. It returns once every binary agreement the subset runs has
// decided, with this validator's own decryption share of every
// accepted proposer's ciphertext already computed.
//
// What happens next — broadcasting those shares, collecting a quorum
// of peers' shares for each accepted proposer, and combining them into
// plaintext batches to merge into a block — is left to the host: see
// CombineDecryptionShares.
func (ins *Instance) Propose(epoch membership.Epoch, batch BatchTransactions) (*Output, error) {
	contribution, err := batch.Serialize()
	if err != nil {
		return nil, fmt.Errorf("honeybadger: serializing batch: %w", err)
	}

	publicKey := ins.keyShares.PublicKeyShares().PublicKey()
	ciphertext, err := publicKey.Encrypt(contribution, nil)
	if err != nil {
		return nil, fmt.Errorf("honeybadger: encrypting batch: %w", err)
	}

	subset := acs.New(ins.transport, ins.validatorSet, ins.keyShares)
	acsState, err := subset.Propose(ciphertext.Bytes())
	if err != nil {
		return nil, fmt.Errorf("honeybadger: common subset: %w", err)
	}

	accepted := acsState.Output(ins.validatorSet.Indices())
	ciphertexts := make(map[membership.NodeID]*threshold.Ciphertext, len(accepted))
	shares := make(map[membership.NodeID]threshold.DecryptionShare, len(accepted))
	for proposer, raw := range accepted {
		proposerCiphertext, err := threshold.CiphertextFromBytes(raw)
		if err != nil {
			ins.log.Debug("accepted proposal is not a well-formed ciphertext", "proposer", proposer, "error", err)
			continue
		}
		ciphertexts[proposer] = proposerCiphertext

		share, ok := ins.keyShares.SecretKeyShare().DecryptShare(proposerCiphertext)
		if !ok {
			ins.log.Debug("accepted ciphertext failed verification", "proposer", proposer)
			continue
		}
		shares[proposer] = share
	}

	return &Output{
		Epoch:            epoch,
		ACSState:         acsState,
		Ciphertexts:      ciphertexts,
		DecryptionShares: shares,
	}, nil
}
