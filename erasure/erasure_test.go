package erasure

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const dataShards, parityShards = 3, 2
	coder, err := NewCoder(dataShards, parityShards)
	if err != nil {
		t.Fatalf("NewCoder: %v", err)
	}
	if coder.DataShardCount() != dataShards || coder.ParityShardCount() != parityShards {
		t.Fatal("shard counts do not match constructor arguments")
	}

	input := []byte("test")
	shards, err := coder.EncodeToShards(input)
	if err != nil {
		t.Fatalf("EncodeToShards: %v", err)
	}
	if len(shards) != dataShards+parityShards {
		t.Fatalf("got %d shards, want %d", len(shards), dataShards+parityShards)
	}

	// Erase two shards, mirroring a proposer that two nodes never hear from.
	shards[0] = nil
	shards[4] = nil

	decoded, err := coder.DecodeFromShards(shards)
	if err != nil {
		t.Fatalf("DecodeFromShards: %v", err)
	}
	if !bytes.Equal(input, decoded) {
		t.Fatalf("decoded = %q, want %q", decoded, input)
	}
}

func TestEncodeDecodeWithNoErasures(t *testing.T) {
	coder, err := NewCoder(4, 3)
	if err != nil {
		t.Fatalf("NewCoder: %v", err)
	}
	input := bytes.Repeat([]byte("honeybadger"), 17)
	shards, err := coder.EncodeToShards(input)
	if err != nil {
		t.Fatalf("EncodeToShards: %v", err)
	}
	decoded, err := coder.DecodeFromShards(shards)
	if err != nil {
		t.Fatalf("DecodeFromShards: %v", err)
	}
	if !bytes.Equal(input, decoded) {
		t.Fatal("decoding without erasures must recover the exact payload")
	}
}

func TestEncodeDecodeEmptyPayload(t *testing.T) {
	coder, err := NewCoder(3, 2)
	if err != nil {
		t.Fatalf("NewCoder: %v", err)
	}
	shards, err := coder.EncodeToShards(nil)
	if err != nil {
		t.Fatalf("EncodeToShards: %v", err)
	}
	shards[1] = nil
	decoded, err := coder.DecodeFromShards(shards)
	if err != nil {
		t.Fatalf("DecodeFromShards: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("decoded = %q, want empty", decoded)
	}
}

func TestDecodeTooManyErasuresFails(t *testing.T) {
	coder, err := NewCoder(3, 2)
	if err != nil {
		t.Fatalf("NewCoder: %v", err)
	}
	shards, err := coder.EncodeToShards([]byte("too many missing shards"))
	if err != nil {
		t.Fatalf("EncodeToShards: %v", err)
	}
	shards[0] = nil
	shards[1] = nil
	shards[2] = nil
	if _, err := coder.DecodeFromShards(shards); err == nil {
		t.Fatal("expected reconstruction to fail with more erasures than parity shards")
	}
}
