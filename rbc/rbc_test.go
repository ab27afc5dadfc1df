package rbc

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/hbbft-go/hbbft/membership"
	"github.com/hbbft-go/hbbft/merkle"
)

// channelTransport routes BroadcastMessages between in-process test
// nodes over buffered channels, mirroring the sync_channel-per-node
// harness the source's own integration test builds.
type channelTransport struct {
	id     membership.NodeID
	inbox  chan NodeMessage
	routes map[membership.NodeID]chan NodeMessage
}

func (t *channelTransport) MyID() membership.NodeID { return t.id }

func (t *channelTransport) NextMessage() NodeMessage {
	return <-t.inbox
}

func (t *channelTransport) SendMessage(target membership.NodeID, message BroadcastMessage) {
	t.routes[target] <- Deliver{SenderID: t.id, Message: message}
}

func buildNetwork(n int) (*membership.ValidatorSet, map[membership.NodeID]*channelTransport) {
	indices := make(map[membership.NodeID]membership.ValidatorIndex, n)
	routes := make(map[membership.NodeID]chan NodeMessage, n)
	transports := make(map[membership.NodeID]*channelTransport, n)
	for i := 0; i < n; i++ {
		id := membership.NodeID(fmt.Sprintf("%d", i+1))
		indices[id] = membership.ValidatorIndex(i)
		routes[id] = make(chan NodeMessage, 256)
	}
	for id, ch := range routes {
		transports[id] = &channelTransport{id: id, inbox: ch, routes: routes}
	}
	validatorSet, err := membership.NewValidatorSet(indices)
	if err != nil {
		panic(err)
	}
	return validatorSet, transports
}

type runResult struct {
	id    membership.NodeID
	state *State
	err   error
}

func TestEndToEndSimpleBroadcast(t *testing.T) {
	const n = 4
	validatorSet, transports := buildNetwork(n)
	proposerID := membership.NodeID("1")
	input := []byte("Foo")

	results := make(chan runResult, n)
	var wg sync.WaitGroup
	for id, transport := range transports {
		wg.Add(1)
		go func(id membership.NodeID, transport *channelTransport) {
			defer wg.Done()
			instance := New(transport, validatorSet)
			var state *State
			var err error
			if id == proposerID {
				state, err = instance.Propose(input)
			} else {
				state, err = instance.Run(nil)
			}
			results <- runResult{id: id, state: state, err: err}
		}(id, transport)
	}
	wg.Wait()
	close(results)

	for r := range results {
		if r.err != nil {
			t.Fatalf("node %s: unexpected error: %v", r.id, r.err)
		}
		if !r.state.IsDecided() {
			t.Fatalf("node %s: expected a decision", r.id)
		}
		output, _ := r.state.Output()
		if !bytes.Equal(output, input) {
			t.Fatalf("node %s: output = %q, want %q", r.id, output, input)
		}
		if len(r.state.FaultLogs()) != 0 {
			t.Fatalf("node %s: expected no faults from an honest run, got %v", r.id, r.state.FaultLogs())
		}
	}
}

func TestSilentNodeStillTerminates(t *testing.T) {
	const n = 7
	validatorSet, transports := buildNetwork(n)
	proposerID := membership.NodeID("1")
	silentID := membership.NodeID("7")
	input := []byte("honeybadger")

	results := make(chan runResult, n-1)
	var wg sync.WaitGroup
	for id, transport := range transports {
		if id == silentID {
			continue // never spawns a driver; other nodes' sends to it just sit buffered
		}
		wg.Add(1)
		go func(id membership.NodeID, transport *channelTransport) {
			defer wg.Done()
			instance := New(transport, validatorSet)
			var state *State
			var err error
			if id == proposerID {
				state, err = instance.Propose(input)
			} else {
				state, err = instance.Run(nil)
			}
			results <- runResult{id: id, state: state, err: err}
		}(id, transport)
	}
	wg.Wait()
	close(results)

	decided := 0
	for r := range results {
		if r.err != nil {
			t.Fatalf("node %s: unexpected error: %v", r.id, r.err)
		}
		if !r.state.IsDecided() {
			t.Fatalf("node %s: expected a decision despite the silent node", r.id)
		}
		output, _ := r.state.Output()
		if !bytes.Equal(output, input) {
			t.Fatalf("node %s: output = %q, want %q", r.id, output, input)
		}
		decided++
	}
	if decided != n-1 {
		t.Fatalf("only %d of %d non-silent nodes decided", decided, n-1)
	}
}

// TestEquivocatingProposerNeitherDecidesNorDisagrees reproduces a
// Byzantine proposer that hands out proofs from two different Merkle
// trees to different validators. With f=1 and only 3 honest
// validators, no split of the honest set can put 3 matching Echoes
// behind either root, so no honest validator may ever decide — and in
// particular none may decide on mismatched bytes.
func TestEquivocatingProposerNeitherDecidesNorDisagrees(t *testing.T) {
	const n = 4
	validatorSet, transports := buildNetwork(n)

	shardsA, err := validatorSet.Encoder().EncodeToShards([]byte("AAAA"))
	if err != nil {
		t.Fatalf("EncodeToShards(A): %v", err)
	}
	shardsB, err := validatorSet.Encoder().EncodeToShards([]byte("BBBB"))
	if err != nil {
		t.Fatalf("EncodeToShards(B): %v", err)
	}
	treeA := merkle.New(shardsA)
	treeB := merkle.New(shardsB)

	send := func(to membership.NodeID, tree *merkle.Tree) {
		idx, ok := validatorSet.Index(to)
		if !ok {
			t.Fatalf("no validator index for %s", to)
		}
		proof, ok := tree.Proof(int(idx))
		if !ok {
			t.Fatalf("no proof for index %d", idx)
		}
		transports[to].routes[to] <- Deliver{SenderID: "1", Message: ValueMessage{Proof: proof}}
	}

	// node 1 is the Byzantine proposer and never runs a driver itself.
	send("2", treeA)
	send("3", treeB)
	send("4", treeA)
	for _, id := range []membership.NodeID{"2", "3", "4"} {
		transports[id].routes[id] <- Terminate{}
	}

	results := make(chan runResult, 3)
	var wg sync.WaitGroup
	for _, id := range []membership.NodeID{"2", "3", "4"} {
		wg.Add(1)
		go func(id membership.NodeID) {
			defer wg.Done()
			instance := New(transports[id], validatorSet)
			state, err := instance.Run(nil)
			results <- runResult{id: id, state: state, err: err}
		}(id)
	}
	wg.Wait()
	close(results)

	var decidedOutputs [][]byte
	for r := range results {
		if r.err != nil {
			t.Fatalf("node %s: unexpected error: %v", r.id, r.err)
		}
		if output, ok := r.state.Output(); ok {
			decidedOutputs = append(decidedOutputs, output)
		}
	}
	// With only 2 honest validators ever agreeing on either root, no
	// root collects the 3 Echoes a decision requires: none of them
	// should decide at all.
	if len(decidedOutputs) != 0 {
		t.Fatalf("expected no honest validator to decide against a split proposal, got %d decisions", len(decidedOutputs))
	}
	for i := 1; i < len(decidedOutputs); i++ {
		if !bytes.Equal(decidedOutputs[0], decidedOutputs[i]) {
			t.Fatalf("honest validators disagreed: %q vs %q", decidedOutputs[0], decidedOutputs[i])
		}
	}
}
