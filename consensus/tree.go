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
	"bytes"
	"sync"

	lcommon "github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/input-output-hk/acropolis-sub000/ledgermodel"
)

// Tree is the volatile set of header-known blocks, selecting a single
// favoured chain under the bounded Praos maxvalid rule. All exported
// methods are safe for concurrent use; callers don't need their own
// serialisation the way spec.md's single-threaded description assumes,
// since a mutex stands in for the "owning module serialises access"
// contract (the convention this codebase already follows in
// stakemap.Map and accounts.State).
type Tree struct {
	mu       sync.Mutex
	k        uint64
	observer Observer

	blocks      map[lcommon.Blake2b256]*ledgermodel.TreeBlock
	root        *lcommon.Blake2b256
	favouredTip *lcommon.Blake2b256

	// proposed tracks every hash already handed to observer.BlockProposed,
	// so re-walking the favoured chain after a later event never re-fires
	// for a block it already reported.
	proposed map[lcommon.Blake2b256]bool
}

// NewTree returns an empty Tree. SetRoot must be called before any other
// method.
func NewTree(k uint64, observer Observer) *Tree {
	return &Tree{
		k:        k,
		observer: observer,
		blocks:   make(map[lcommon.Blake2b256]*ledgermodel.TreeBlock),
		proposed: make(map[lcommon.Blake2b256]bool),
	}
}

// SetRoot establishes hash as the tree's root, Validated with an empty
// body sentinel. It discards any prior tree contents; callers invoke it
// once, at bootstrap.
func (t *Tree) SetRoot(hash lcommon.Blake2b256, number uint64, slot uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk := &ledgermodel.TreeBlock{
		Hash:   hash,
		Number: number,
		Slot:   slot,
		Status: ledgermodel.BlockValidated,
		Body:   []byte{},
	}
	t.blocks = map[lcommon.Blake2b256]*ledgermodel.TreeBlock{hash: blk}
	t.proposed = map[lcommon.Blake2b256]bool{hash: true}
	t.root = &hash
	t.favouredTip = &hash
}

// FavouredTip returns the hash and number of the current favoured chain
// tip.
func (t *Tree) FavouredTip() (lcommon.Blake2b256, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk := t.blocks[*t.favouredTip]
	return blk.Hash, blk.Number
}

// Block returns a copy of the tracked block for hash, or false if hash
// is unknown.
func (t *Tree) Block(hash lcommon.Blake2b256) (ledgermodel.TreeBlock, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk, ok := t.blocks[hash]
	if !ok {
		return ledgermodel.TreeBlock{}, false
	}
	return *blk, true
}

// CheckBlockWanted inserts a header-known block. It is idempotent per
// hash: a repeat call for an already-tracked hash is a no-op returning
// (nil, nil). It returns the set of hashes newly transitioned into
// Wanted by this call, which is non-empty only when the proposal
// extends or replaces the favoured chain.
func (t *Tree) CheckBlockWanted(
	hash lcommon.Blake2b256,
	parent lcommon.Blake2b256,
	number uint64,
	slot uint64,
) ([]lcommon.Blake2b256, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.root == nil {
		return nil, ErrRootNotSet
	}
	if _, ok := t.blocks[hash]; ok {
		return nil, nil
	}
	parentBlk, ok := t.blocks[parent]
	if !ok {
		return nil, ErrParentNotFound
	}
	if number != parentBlk.Number+1 {
		return nil, ErrInvalidBlockNumber
	}

	tipBlk := t.blocks[*t.favouredTip]
	branchAncestor := t.commonAncestorLocked(parentBlk, tipBlk)
	if tipBlk.Number-branchAncestor.Number > t.k {
		return nil, ErrForkTooDeep
	}

	blk := &ledgermodel.TreeBlock{
		Hash:   hash,
		Number: number,
		Slot:   slot,
		Parent: &parent,
		Status: ledgermodel.BlockOffered,
	}
	t.blocks[hash] = blk
	parentBlk.Children = append(parentBlk.Children, hash)

	if number <= tipBlk.Number {
		// Ties break in favour of the current favoured tip.
		return nil, nil
	}

	if branchAncestor.Hash != tipBlk.Hash {
		t.observer.Rollback(branchAncestor.Number)
	}
	t.favouredTip = &hash

	path := t.pathExclusiveLocked(branchAncestor, blk)
	newlyWanted := make([]lcommon.Blake2b256, 0, len(path))
	for _, b := range path {
		if b.Status == ledgermodel.BlockOffered {
			b.Status = ledgermodel.BlockWanted
			newlyWanted = append(newlyWanted, b.Hash)
		}
	}
	t.fireContiguousProposedLocked(t.favouredPathFromRootLocked())
	return newlyWanted, nil
}

// AddBlock stores a block's body and transitions it toward Fetched. If
// the block sits on the favoured chain, it fires BlockProposed for
// itself and every contiguous fetched descendant back to the last
// already-proposed ancestor. Idempotent for an already-fetched block.
func (t *Tree) AddBlock(hash lcommon.Blake2b256, body []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk, ok := t.blocks[hash]
	if !ok {
		return ErrBlockNotInTree
	}
	if blk.Status < ledgermodel.BlockFetched {
		blk.Body = body
		blk.Status = ledgermodel.BlockFetched
	}
	if !t.isAncestorOfFavouredLocked(hash) {
		return nil
	}
	t.fireContiguousProposedLocked(t.favouredPathFromRootLocked())
	return nil
}

// MarkValidated transitions a Fetched block to Validated.
func (t *Tree) MarkValidated(hash lcommon.Blake2b256) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk, ok := t.blocks[hash]
	if !ok {
		return ErrBlockNotInTree
	}
	if blk.Status == ledgermodel.BlockFetched {
		blk.Status = ledgermodel.BlockValidated
	}
	return nil
}

// MarkRejected fires BlockRejected for hash, then removes it and every
// descendant. If this changes the favoured tip, rollback semantics fire
// as for a chain switch.
func (t *Tree) MarkRejected(hash lcommon.Blake2b256) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk, ok := t.blocks[hash]
	if !ok {
		return ErrBlockNotInTree
	}
	if blk.Parent == nil {
		return ErrBlockNotInTree
	}
	t.observer.BlockRejected(hash)
	t.removeSubtreeLocked(blk)
	return nil
}

// RemoveBlock removes hash and every descendant without firing
// BlockRejected, for externally rescinded blocks. If this changes the
// favoured tip, rollback semantics fire as for a chain switch.
func (t *Tree) RemoveBlock(hash lcommon.Blake2b256) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	blk, ok := t.blocks[hash]
	if !ok {
		return ErrBlockNotInTree
	}
	if blk.Parent == nil {
		return ErrBlockNotInTree
	}
	t.removeSubtreeLocked(blk)
	return nil
}

// Prune drops every block numbered below the favoured tip's k-block
// horizon, including forks whose root predates that boundary, and
// clears the new root's parent pointer. A no-op while the favoured
// chain is shorter than k.
func (t *Tree) Prune() {
	t.mu.Lock()
	defer t.mu.Unlock()
	tip := t.blocks[*t.favouredTip]
	if tip.Number <= t.k {
		return
	}
	boundary := tip.Number - t.k
	newRoot := t.blocks[t.favouredAncestorAtLocked(boundary)]

	reachable := map[lcommon.Blake2b256]bool{newRoot.Hash: true}
	queue := []*ledgermodel.TreeBlock{newRoot}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ch := range cur.Children {
			if c, ok := t.blocks[ch]; ok && !reachable[ch] {
				reachable[ch] = true
				queue = append(queue, c)
			}
		}
	}
	for h := range t.blocks {
		if !reachable[h] {
			delete(t.blocks, h)
			delete(t.proposed, h)
		}
	}
	newRoot.Parent = nil
	t.root = &newRoot.Hash
}

// removeSubtreeLocked deletes blk and every descendant. If blk was an
// ancestor of the favoured tip, the favoured chain is reselected across
// every surviving block (highest Number, ties broken toward the lowest
// hash), rollback fires to the actual common ancestor between blk's
// parent and the reselected tip, and Offered blocks on the new path
// become Wanted.
func (t *Tree) removeSubtreeLocked(blk *ledgermodel.TreeBlock) {
	affected := t.isAncestorOfFavouredLocked(blk.Hash)
	parentHash := *blk.Parent

	for _, h := range t.collectSubtreeLocked(blk) {
		delete(t.blocks, h)
		delete(t.proposed, h)
	}
	if p, ok := t.blocks[parentHash]; ok {
		p.Children = removeHash(p.Children, blk.Hash)
	}
	if !affected {
		return
	}

	refBlk := t.blocks[parentHash]
	newTip := t.reselectFavouredTipLocked()
	ancestor := t.commonAncestorLocked(refBlk, newTip)
	t.favouredTip = &newTip.Hash
	t.observer.Rollback(ancestor.Number)

	for _, b := range t.pathExclusiveLocked(ancestor, newTip) {
		if b.Status == ledgermodel.BlockOffered {
			b.Status = ledgermodel.BlockWanted
		}
	}
	t.fireContiguousProposedLocked(t.favouredPathFromRootLocked())
}

// fireContiguousProposedLocked walks path (expected root-to-tip order)
// and fires BlockProposed for each not-yet-proposed block with a body,
// stopping at the first block still missing one.
func (t *Tree) fireContiguousProposedLocked(path []*ledgermodel.TreeBlock) {
	for _, blk := range path {
		if !blk.HasBody() {
			return
		}
		if t.proposed[blk.Hash] {
			continue
		}
		t.proposed[blk.Hash] = true
		t.observer.BlockProposed(blk.Number, blk.Hash, blk.Body)
	}
}

// favouredPathFromRootLocked returns every block from the root to the
// current favoured tip, inclusive, in that order.
func (t *Tree) favouredPathFromRootLocked() []*ledgermodel.TreeBlock {
	tip := t.blocks[*t.favouredTip]
	return t.pathExclusiveLocked(nil, tip)
}

// pathExclusiveLocked returns every block strictly after ancestor up to
// and including tip, in ancestor-to-tip order. A nil ancestor walks all
// the way to the root, inclusive.
func (t *Tree) pathExclusiveLocked(ancestor, tip *ledgermodel.TreeBlock) []*ledgermodel.TreeBlock {
	var rev []*ledgermodel.TreeBlock
	cur := tip
	for {
		if ancestor != nil && cur.Hash == ancestor.Hash {
			break
		}
		rev = append(rev, cur)
		if cur.Parent == nil {
			break
		}
		cur = t.blocks[*cur.Parent]
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// commonAncestorLocked returns the most recent block shared by a's and
// b's ancestry chains.
func (t *Tree) commonAncestorLocked(a, b *ledgermodel.TreeBlock) *ledgermodel.TreeBlock {
	for a.Number > b.Number {
		a = t.blocks[*a.Parent]
	}
	for b.Number > a.Number {
		b = t.blocks[*b.Parent]
	}
	for a.Hash != b.Hash {
		a = t.blocks[*a.Parent]
		b = t.blocks[*b.Parent]
	}
	return a
}

// isAncestorOfFavouredLocked reports whether hash lies on the path from
// the root to the current favoured tip.
func (t *Tree) isAncestorOfFavouredLocked(hash lcommon.Blake2b256) bool {
	cur := t.blocks[*t.favouredTip]
	for {
		if cur.Hash == hash {
			return true
		}
		if cur.Parent == nil {
			return false
		}
		cur = t.blocks[*cur.Parent]
	}
}

// collectSubtreeLocked returns blk's hash and every descendant's hash.
func (t *Tree) collectSubtreeLocked(blk *ledgermodel.TreeBlock) []lcommon.Blake2b256 {
	var out []lcommon.Blake2b256
	var walk func(b *ledgermodel.TreeBlock)
	walk = func(b *ledgermodel.TreeBlock) {
		out = append(out, b.Hash)
		for _, ch := range b.Children {
			if c, ok := t.blocks[ch]; ok {
				walk(c)
			}
		}
	}
	walk(blk)
	return out
}

// reselectFavouredTipLocked picks the tree-wide maxvalid block: highest
// Number, ties broken toward the lexicographically smallest hash.
func (t *Tree) reselectFavouredTipLocked() *ledgermodel.TreeBlock {
	var best *ledgermodel.TreeBlock
	for _, b := range t.blocks {
		switch {
		case best == nil:
			best = b
		case b.Number > best.Number:
			best = b
		case b.Number == best.Number && bytes.Compare(b.Hash.Bytes(), best.Hash.Bytes()) < 0:
			best = b
		}
	}
	return best
}

// favouredAncestorAtLocked returns the hash of the block at number on
// the current favoured chain. Block numbers are contiguous along any
// parent chain, so an exact match always exists above the root.
func (t *Tree) favouredAncestorAtLocked(number uint64) lcommon.Blake2b256 {
	cur := t.blocks[*t.favouredTip]
	for cur.Number > number {
		cur = t.blocks[*cur.Parent]
	}
	return cur.Hash
}

func removeHash(list []lcommon.Blake2b256, h lcommon.Blake2b256) []lcommon.Blake2b256 {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
