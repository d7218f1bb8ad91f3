// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package consensus

import (
	"testing"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

func hashOf(b byte) lcommon.Blake2b256 {
	raw := make([]byte, 32)
	raw[0] = b
	return lcommon.NewBlake2b256(raw)
}

func newTestTree(k uint64) (*Tree, *RecordingObserver) {
	obs := &RecordingObserver{}
	tr := NewTree(k, obs)
	tr.SetRoot(hashOf(0), 0, 0)
	return tr, obs
}

func TestCheckBlockWantedExtendsFavouredChain(t *testing.T) {
	tr, _ := newTestTree(2160)
	h1 := hashOf(1)
	wanted, err := tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wanted) != 1 || wanted[0] != h1 {
		t.Fatalf("expected h1 newly wanted, got %+v", wanted)
	}
	tip, num := tr.FavouredTip()
	if tip != h1 || num != 1 {
		t.Fatalf("expected favoured tip h1/1, got %v/%d", tip, num)
	}
}

func TestCheckBlockWantedIsIdempotentPerHash(t *testing.T) {
	tr, _ := newTestTree(2160)
	h1 := hashOf(1)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	wanted, err := tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wanted != nil {
		t.Fatalf("expected nil on repeat insert, got %+v", wanted)
	}
}

func TestCheckBlockWantedRejectsUnknownParent(t *testing.T) {
	tr, _ := newTestTree(2160)
	_, err := tr.CheckBlockWanted(hashOf(9), hashOf(8), 1, 10)
	if err != ErrParentNotFound {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestCheckBlockWantedRejectsWrongNumber(t *testing.T) {
	tr, _ := newTestTree(2160)
	_, err := tr.CheckBlockWanted(hashOf(1), hashOf(0), 5, 10)
	if err != ErrInvalidBlockNumber {
		t.Fatalf("expected ErrInvalidBlockNumber, got %v", err)
	}
}

func TestCheckBlockWantedRejectsForkDeeperThanK(t *testing.T) {
	tr, _ := newTestTree(1)
	h1 := hashOf(1)
	h2 := hashOf(2)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	tr.CheckBlockWanted(h2, h1, 2, 20)
	// A fork off the root, two blocks behind the tip with k=1, is too deep.
	_, err := tr.CheckBlockWanted(hashOf(3), hashOf(0), 1, 11)
	if err != ErrForkTooDeep {
		t.Fatalf("expected ErrForkTooDeep, got %v", err)
	}
}

func TestAddBlockFiresProposedOnlyOnFavouredChain(t *testing.T) {
	tr, obs := newTestTree(2160)
	h1 := hashOf(1)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	if err := tr.AddBlock(h1, []byte("body1")); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	proposed := obs.Proposed()
	if len(proposed) != 1 || proposed[0].Hash != h1 {
		t.Fatalf("expected one BlockProposed for h1, got %+v", proposed)
	}
}

func TestAddBlockIsIdempotent(t *testing.T) {
	tr, obs := newTestTree(2160)
	h1 := hashOf(1)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	tr.AddBlock(h1, []byte("body1"))
	tr.AddBlock(h1, []byte("body1-again"))
	if len(obs.Proposed()) != 1 {
		t.Fatalf("expected exactly one BlockProposed call across repeat AddBlock, got %+v", obs.Proposed())
	}
}

func TestAddBlockUnknownHashReturnsBlockNotInTree(t *testing.T) {
	tr, _ := newTestTree(2160)
	if err := tr.AddBlock(hashOf(99), nil); err != ErrBlockNotInTree {
		t.Fatalf("expected ErrBlockNotInTree, got %v", err)
	}
}

func TestAddBlockFiresContiguousDescendantsInOrder(t *testing.T) {
	tr, obs := newTestTree(2160)
	h1, h2, h3 := hashOf(1), hashOf(2), hashOf(3)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	tr.CheckBlockWanted(h2, h1, 2, 20)
	tr.CheckBlockWanted(h3, h2, 3, 30)

	// Fetch out of order: h2 and h3 before h1. Nothing should fire yet since
	// h1, their only path back to the proposed root, still lacks a body.
	tr.AddBlock(h3, []byte("b3"))
	tr.AddBlock(h2, []byte("b2"))
	if len(obs.Proposed()) != 0 {
		t.Fatalf("expected no BlockProposed before h1 has a body, got %+v", obs.Proposed())
	}

	tr.AddBlock(h1, []byte("b1"))
	proposed := obs.Proposed()
	if len(proposed) != 3 {
		t.Fatalf("expected h1,h2,h3 all proposed once h1 arrives, got %+v", proposed)
	}
	if proposed[0].Hash != h1 || proposed[1].Hash != h2 || proposed[2].Hash != h3 {
		t.Fatalf("expected ancestor-to-tip order, got %+v", proposed)
	}
}

func TestChainSwitchEmitsRollbackAndWantsForkBlocks(t *testing.T) {
	tr, obs := newTestTree(2160)
	h1 := hashOf(1)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	tr.AddBlock(h1, []byte("b1"))

	// A two-block fork rooted at the genesis overtakes the one-block chain.
	f1, f2 := hashOf(11), hashOf(12)
	tr.CheckBlockWanted(f1, hashOf(0), 1, 11)
	wanted, err := tr.CheckBlockWanted(f2, f1, 2, 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wanted) != 2 {
		t.Fatalf("expected both fork blocks newly wanted, got %+v", wanted)
	}
	rollbacks := obs.Rollbacks()
	if len(rollbacks) != 1 || rollbacks[0] != 0 {
		t.Fatalf("expected one rollback to genesis (0), got %+v", rollbacks)
	}
	tip, num := tr.FavouredTip()
	if tip != f2 || num != 2 {
		t.Fatalf("expected favoured tip f2/2, got %v/%d", tip, num)
	}
}

func TestMarkRejectedRemovesSubtreeAndFiresObserver(t *testing.T) {
	tr, obs := newTestTree(2160)
	h1, h2 := hashOf(1), hashOf(2)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	tr.CheckBlockWanted(h2, h1, 2, 20)

	if err := tr.MarkRejected(h1); err != nil {
		t.Fatalf("MarkRejected: %v", err)
	}
	if _, ok := tr.Block(h1); ok {
		t.Fatalf("expected h1 removed")
	}
	if _, ok := tr.Block(h2); ok {
		t.Fatalf("expected descendant h2 removed along with h1")
	}
	rejected := obs.Rejected()
	if len(rejected) != 1 || rejected[0] != h1 {
		t.Fatalf("expected BlockRejected(h1), got %+v", rejected)
	}
	tip, num := tr.FavouredTip()
	if tip != hashOf(0) || num != 0 {
		t.Fatalf("expected favoured tip to fall back to genesis, got %v/%d", tip, num)
	}
	rollbacks := obs.Rollbacks()
	if len(rollbacks) != 1 || rollbacks[0] != 0 {
		t.Fatalf("expected one rollback to genesis, got %+v", rollbacks)
	}
}

func TestRemoveBlockDoesNotFireBlockRejected(t *testing.T) {
	tr, obs := newTestTree(2160)
	h1 := hashOf(1)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)

	if err := tr.RemoveBlock(h1); err != nil {
		t.Fatalf("RemoveBlock: %v", err)
	}
	if len(obs.Rejected()) != 0 {
		t.Fatalf("expected no BlockRejected from RemoveBlock, got %+v", obs.Rejected())
	}
}

func TestMarkValidatedRequiresFetched(t *testing.T) {
	tr, _ := newTestTree(2160)
	h1 := hashOf(1)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)
	// Not yet fetched: MarkValidated is a no-op, not an error.
	if err := tr.MarkValidated(h1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blk, _ := tr.Block(h1)
	if blk.Status != ledgermodel.BlockWanted {
		t.Fatalf("expected status unchanged at Wanted, got %v", blk.Status)
	}

	tr.AddBlock(h1, []byte("b1"))
	tr.MarkValidated(h1)
	blk, _ = tr.Block(h1)
	if blk.Status != ledgermodel.BlockValidated {
		t.Fatalf("expected status Validated, got %v", blk.Status)
	}
}

func TestPruneDropsBelowBoundaryAndDanglingForks(t *testing.T) {
	tr, _ := newTestTree(2)
	h1, h2, h3, h4 := hashOf(1), hashOf(2), hashOf(3), hashOf(4)
	tr.CheckBlockWanted(h1, hashOf(0), 1, 10)

	// A fork diverging at the root, inserted while still within k of the
	// tip, so it lands in the tree before the favoured chain outgrows it.
	forkA := hashOf(21)
	if _, err := tr.CheckBlockWanted(forkA, hashOf(0), 1, 11); err != nil {
		t.Fatalf("fork insert: %v", err)
	}

	tr.CheckBlockWanted(h2, h1, 2, 20)
	tr.CheckBlockWanted(h3, h2, 3, 30)
	tr.CheckBlockWanted(h4, h3, 4, 40)

	tr.Prune()

	if _, ok := tr.Block(hashOf(0)); ok {
		t.Fatalf("expected genesis dropped below the boundary")
	}
	if _, ok := tr.Block(h1); ok {
		t.Fatalf("expected h1 dropped below the boundary")
	}
	if _, ok := tr.Block(forkA); ok {
		t.Fatalf("expected the dangling fork rooted below the boundary dropped")
	}
	newRoot, ok := tr.Block(h2)
	if !ok {
		t.Fatalf("expected h2 to survive as the new root")
	}
	if newRoot.Parent != nil {
		t.Fatalf("expected the new root's parent pointer cleared")
	}
	if _, ok := tr.Block(h3); !ok {
		t.Fatalf("expected h3 to survive")
	}
	if _, ok := tr.Block(h4); !ok {
		t.Fatalf("expected h4 to survive")
	}
}

func TestPruneNoopBelowHorizon(t *testing.T) {
	tr, _ := newTestTree(2160)
	tr.CheckBlockWanted(hashOf(1), hashOf(0), 1, 10)
	tr.Prune()
	if _, ok := tr.Block(hashOf(0)); !ok {
		t.Fatalf("expected no pruning while the chain is shorter than k")
	}
}
