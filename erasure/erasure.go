// Package erasure breaks a byte-slice payload into N Reed-Solomon
// shards — N-2f data shards plus 2f parity shards for a network of N
// validators tolerating f Byzantine failures — so that any N-f of
// them reconstruct the original payload. Reliable broadcast Merkle-
// proofs each shard individually, which requires a systematic code:
// the first data_shard_count shards must be literal slices of the
// padded payload, not algebraic evaluations of it.
package erasure

import (
	"encoding/binary"
	"errors"

	"github.com/klauspost/reedsolomon"
)

// lengthPrefixSize is the width of the big-endian payload-length
// prefix written ahead of the payload before sharding, so decoding
// can discard the padding a systematic code requires.
const lengthPrefixSize = 4

// ErrMissingPayloadLength is returned when decoding a shard set whose
// first data shard doesn't carry a valid length prefix — the mark of
// a faulty proposer that served different shards to different nodes.
var ErrMissingPayloadLength = errors.New("erasure: reconstructed shards missing payload length")

// Coder encodes and reconstructs a fixed (dataShards, parityShards)
// Reed-Solomon scheme.
type Coder struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// NewCoder builds a Coder for dataShards data shards and
// parityShards parity shards.
func NewCoder(dataShards, parityShards int) (*Coder, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return &Coder{enc: enc, dataShards: dataShards, parityShards: parityShards}, nil
}

// DataShardCount returns the number of data shards.
func (c *Coder) DataShardCount() int { return c.dataShards }

// ParityShardCount returns the number of parity shards.
func (c *Coder) ParityShardCount() int { return c.parityShards }

// EncodeToShards prepends a 4-byte length prefix to value, pads it to
// a multiple of the data shard count, and returns dataShards+
// parityShards equal-length shards.
func (c *Coder) EncodeToShards(value []byte) ([][]byte, error) {
	payloadLen := uint32(len(value))

	prefixed := make([]byte, lengthPrefixSize+len(value))
	binary.BigEndian.PutUint32(prefixed[:lengthPrefixSize], payloadLen)
	copy(prefixed[lengthPrefixSize:], value)

	shardLen := (len(prefixed) + c.dataShards - 1) / c.dataShards
	if shardLen == 0 {
		shardLen = 1
	}
	padded := make([]byte, shardLen*(c.dataShards+c.parityShards))
	copy(padded, prefixed)

	shards := make([][]byte, c.dataShards+c.parityShards)
	for i := range shards {
		shards[i] = padded[i*shardLen : (i+1)*shardLen]
	}

	if err := c.enc.Encode(shards); err != nil {
		return nil, err
	}
	return shards, nil
}

// DecodeFromShards reconstructs any missing shards (nil entries) and
// recovers the original payload, reading its length from the 4-byte
// prefix at the start of the first data shard.
func (c *Coder) DecodeFromShards(shards [][]byte) ([]byte, error) {
	if err := c.enc.Reconstruct(shards); err != nil {
		return nil, err
	}

	bytes := make([]byte, 0, c.dataShards*len(firstNonNil(shards)))
	for i := 0; i < c.dataShards; i++ {
		bytes = append(bytes, shards[i]...)
	}

	if len(bytes) < lengthPrefixSize {
		return nil, ErrMissingPayloadLength
	}
	payloadLen := int(binary.BigEndian.Uint32(bytes[:lengthPrefixSize]))
	bytes = bytes[lengthPrefixSize:]
	if payloadLen > len(bytes) {
		return nil, ErrMissingPayloadLength
	}
	return bytes[:payloadLen], nil
}

func firstNonNil(shards [][]byte) []byte {
	for _, s := range shards {
		if s != nil {
			return s
		}
	}
	return nil
}
