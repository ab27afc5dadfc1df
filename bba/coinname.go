package bba

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/hbbft-go/hbbft/membership"
)

// ErrSerializeCoinName is returned when a session id is too long to
// length-prefix with a 32-bit count.
var ErrSerializeCoinName = errors.New("bba: session id too long to serialize into a coin name")

// CoinName derives the byte string every validator signs a share of
// for epoch's common coin: a 4-byte big-endian length prefix over the
// session id, the session id bytes themselves, then the epoch as an
// 8-byte big-endian counter. The length prefix keeps two (session,
// epoch) pairs from colliding regardless of what bytes a session id
// contains.
func CoinName(sessionID membership.SessionID, epoch membership.Epoch) ([]byte, error) {
	raw := []byte(sessionID)
	if len(raw) > math.MaxUint32 {
		return nil, ErrSerializeCoinName
	}
	out := make([]byte, 4+len(raw)+8)
	binary.BigEndian.PutUint32(out[:4], uint32(len(raw)))
	copy(out[4:4+len(raw)], raw)
	binary.BigEndian.PutUint64(out[4+len(raw):], epoch.Uint64())
	return out, nil
}
