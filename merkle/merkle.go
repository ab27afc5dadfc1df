// Package merkle builds SHA3-256 Merkle trees over byte-slice leaves
// and produces branch proofs that can be validated against a root
// hash without the rest of the tree, the mechanism reliable broadcast
// uses to let every node check a received shard against the same
// commitment the proposer echoed to everyone else.
package merkle

import "golang.org/x/crypto/sha3"

// Digest is a SHA3-256 hash.
type Digest [32]byte

func hash(value []byte) Digest {
	return Digest(sha3.Sum256(value))
}

func hashPair(d0, d1 Digest) Digest {
	buf := make([]byte, 0, len(d0)+len(d1))
	buf = append(buf, d0[:]...)
	buf = append(buf, d1[:]...)
	return hash(buf)
}

// hashChunk hashes one level's pair of sibling digests into their
// parent, or promotes a lone odd node unchanged.
func hashChunk(chunk []Digest) Digest {
	if len(chunk) == 1 {
		return chunk[0]
	}
	return hashPair(chunk[0], chunk[1])
}

// Tree is a Merkle tree over a fixed list of leaf byte slices.
type Tree struct {
	levels   [][]Digest
	values   [][]byte
	rootHash Digest
}

// New builds a Merkle tree over values, hashing each into a leaf
// digest and folding pairs of siblings up to a single root. An odd
// node at any level is promoted to the next level unchanged.
func New(values [][]byte) *Tree {
	levels := make([][]Digest, 0)
	curLvl := make([]Digest, len(values))
	for i, v := range values {
		curLvl[i] = hash(v)
	}
	for len(curLvl) > 1 {
		nextLvl := make([]Digest, 0, (len(curLvl)+1)/2)
		for i := 0; i < len(curLvl); i += 2 {
			end := i + 2
			if end > len(curLvl) {
				end = len(curLvl)
			}
			nextLvl = append(nextLvl, hashChunk(curLvl[i:end]))
		}
		levels = append(levels, curLvl)
		curLvl = nextLvl
	}
	var root Digest
	if len(curLvl) == 1 {
		root = curLvl[0]
	} else if len(values) == 0 {
		root = hash(nil)
	}
	return &Tree{levels: levels, values: values, rootHash: root}
}

// Proof returns the branch proof for leaf index, or false if index is
// out of range.
func (t *Tree) Proof(index int) (*Proof, bool) {
	if index < 0 || index >= len(t.values) {
		return nil, false
	}
	value := t.values[index]
	lvlI := index
	var digests []Digest
	for _, level := range t.levels {
		sibling := lvlI ^ 1
		if sibling < len(level) {
			digests = append(digests, level[sibling])
		}
		lvlI /= 2
	}
	return newProof(value, index, digests, t.rootHash), true
}

// RootHash returns the tree's root.
func (t *Tree) RootHash() Digest { return t.rootHash }

// Values returns the tree's leaf values.
func (t *Tree) Values() [][]byte { return t.values }
