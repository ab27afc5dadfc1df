// Package honeybadger drives one epoch of the HoneyBadgerBFT
// construction on top of acs: encrypt a batch of transactions under
// the session's threshold public key, propose the ciphertext to one
// round of asynchronous common subset, and expose this validator's own
// decryption share of every ciphertext the subset agreed on.
//
// Combining a quorum of decryption shares into plaintext batches, and
// merging/sorting those into a block, stops here: CombineDecryptionShares
// does the cryptographic half of that step, but collecting shares over
// a transport and assembling the final block is left to the host.
package honeybadger

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Transaction is an opaque unit of work a batch carries. The host
// defines what one looks like; honeybadger only needs its wire
// encoding to serialize, encrypt, and later hand back out undecoded.
type Transaction interface {
	Bytes() []byte
}

// BatchTransactions is a proposer's batch of transactions for one
// epoch.
type BatchTransactions interface {
	Transactions() []Transaction
	// Serialize encodes the batch into the bytes that get encrypted
	// and proposed to the common subset.
	Serialize() ([]byte, error)
}

// SimpleBatch is a BatchTransactions built directly from an in-memory
// slice, length-prefix-encoding each transaction's bytes in order.
type SimpleBatch struct {
	transactions []Transaction
}

// NewSimpleBatch wraps transactions as a SimpleBatch.
func NewSimpleBatch(transactions []Transaction) *SimpleBatch {
	return &SimpleBatch{transactions: transactions}
}

func (b *SimpleBatch) Transactions() []Transaction { return b.transactions }

func (b *SimpleBatch) Serialize() ([]byte, error) {
	out := make([]byte, 4, 4+len(b.transactions)*4)
	binary.BigEndian.PutUint32(out[:4], uint32(len(b.transactions)))
	for _, tx := range b.transactions {
		data := tx.Bytes()
		if len(data) > math.MaxUint32 {
			return nil, fmt.Errorf("honeybadger: transaction too large to serialize: %d bytes", len(data))
		}
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(data)))
		out = append(out, length[:]...)
		out = append(out, data...)
	}
	return out, nil
}

// DeserializeBatch decodes the bytes SimpleBatch.Serialize produces
// back into the raw transaction byte strings it was built from. It
// does not reconstruct Transaction values: the host knows how to parse
// its own transaction encoding, honeybadger only moves bytes.
func DeserializeBatch(data []byte) ([][]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("honeybadger: batch too short: %d bytes", len(data))
	}
	count := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	out := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 4 {
			return nil, fmt.Errorf("honeybadger: batch truncated before transaction %d length", i)
		}
		length := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		if uint64(len(data)) < uint64(length) {
			return nil, fmt.Errorf("honeybadger: batch truncated before transaction %d body", i)
		}
		out = append(out, data[:length])
		data = data[length:]
	}
	return out, nil
}
