// Copyright 2026 The Signature Log Authors.
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

package merkle

import (
	"fmt"
	"sort"

	"github.com/ndn-security/siglog/wire"
)

// Store is the durable-subtree persistence contract MerkleTree depends
// on. storage.Db implements it; MerkleTree never imports the storage
// package directly so the forest engine stays testable against an
// in-memory fake.
type Store interface {
	InsertSubTreeData(level uint, seqNo uint64, data []byte, isComplete bool, nextLeafSeqNo uint64) error
	GetPendingSubTrees() ([]PendingRow, error)
}

// PendingRow is one row read back from the pending-subtrees table.
type PendingRow struct {
	Level         uint
	SeqNo         uint64
	Data          []byte
	NextLeafSeqNo uint64
}

// MerkleTree is the global forest engine: it stitches fixed-depth
// SubTreeBinary instances into an unbounded append-only history tree,
// cascading completions up the rightmost spine and persisting every
// completed subtree to Store.
type MerkleTree struct {
	loggerName wire.Name
	db         Store

	pendingTrees map[uint]*SubTreeBinary

	nextLeafSeqNo uint64
	rootHash      *[32]byte
}

// NewMerkleTree constructs the forest for loggerName backed by db,
// recovering any pending subtrees left over from a previous run.
func NewMerkleTree(loggerName wire.Name, db Store) (*MerkleTree, error) {
	t := &MerkleTree{
		loggerName:   loggerName,
		db:           db,
		pendingTrees: make(map[uint]*SubTreeBinary),
	}
	if err := t.loadPendingSubTrees(); err != nil {
		return nil, err
	}
	return t, nil
}

// NextLeafSeqNo is the number of leaves appended so far.
func (t *MerkleTree) NextLeafSeqNo() uint64 { return t.nextLeafSeqNo }

// RootHash is the current root hash, or nil if no leaf has been appended.
func (t *MerkleTree) RootHash() *[32]byte { return t.rootHash }

// AddLeaf routes hash to the base-tier pending subtree. It returns false
// if the base subtree rejects the insertion (wrong seqNo, out of range).
func (t *MerkleTree) AddLeaf(seqNo uint64, hash [32]byte) bool {
	base, ok := t.pendingTrees[SubTreeDepth-1]
	if !ok {
		return false
	}
	leaf, err := NewNode(seqNo, base.LeafLevel(), seqNo+1, &hash)
	if err != nil {
		return false
	}
	return base.AddLeaf(leaf)
}

// SavePendingTree encodes every pending subtree and upserts it into Store.
func (t *MerkleTree) SavePendingTree() error {
	for level, s := range t.pendingTrees {
		rec := EncodeSubTree(t.loggerName, s)
		if err := t.db.InsertSubTreeData(level, s.PeakIndex().SeqNo, rec.Encode(), false, s.NextLeafSeqNo()); err != nil {
			return fmt.Errorf("merkle: save pending subtree at level %d: %w", level, err)
		}
	}
	return nil
}

// GetPendingSubTreeData serializes the pending subtree at level for
// on-demand query serving.
func (t *MerkleTree) GetPendingSubTreeData(level uint) ([]byte, bool) {
	s, ok := t.pendingTrees[level]
	if !ok {
		return nil, false
	}
	return EncodeSubTree(t.loggerName, s).Encode(), true
}

// PendingPeakSeqNo returns the peak seqNo of the pending subtree currently
// occupying level, so a query server can tell whether a requested
// (level, seqNo) pair names the live pending tier or an already-completed
// one that must be fetched from Store instead.
func (t *MerkleTree) PendingPeakSeqNo(level uint) (uint64, bool) {
	s, ok := t.pendingTrees[level]
	if !ok {
		return 0, false
	}
	return s.PeakIndex().SeqNo, true
}

func (t *MerkleTree) topLevel() uint {
	var max uint
	first := true
	for l := range t.pendingTrees {
		if first || l > max {
			max = l
			first = false
		}
	}
	return max
}

func (t *MerkleTree) rootUpdateHandler(level uint) RootUpdateCallback {
	return func(_ Index, nextLeafSeqNo uint64, hash [32]byte) {
		if level == t.topLevel() {
			t.nextLeafSeqNo = nextLeafSeqNo
			h := hash
			t.rootHash = &h
			return
		}
		if parent, ok := t.pendingTrees[level+subTreeStep]; ok {
			parent.UpdateLeaf(nextLeafSeqNo, hash)
		}
	}
}

func (t *MerkleTree) completeHandler(level uint) CompleteCallback {
	return func(peakIndex Index) {
		s := t.pendingTrees[level]
		rec := EncodeSubTree(t.loggerName, s)
		if err := t.db.InsertSubTreeData(level, peakIndex.SeqNo, rec.Encode(), true, 0); err != nil {
			// The durable store is the single source of truth; a failed
			// promotion here would silently lose a completed subtree, so
			// this is treated as fatal by whatever owns the tree rather
			// than swallowed.
			panic(fmt.Errorf("merkle: persist completed subtree at level %d: %w", level, err))
		}

		wasRoot := level == t.topLevel()
		finalNextLeafSeqNo, finalHash := t.nextLeafSeqNo, t.rootHash
		delete(t.pendingTrees, level)

		if wasRoot {
			newRootIdx := ToSubTreePeakIndex(peakIndex, true)
			newRoot, err := NewSubTreeBinary(newRootIdx, t.completeHandler(newRootIdx.Level), t.rootUpdateHandler(newRootIdx.Level))
			if err != nil {
				panic(err)
			}
			t.pendingTrees[newRootIdx.Level] = newRoot
			if finalHash != nil {
				newRoot.UpdateLeaf(finalNextLeafSeqNo, *finalHash)
			}
		}

		// A completed tier always gets a fresh sibling at the same level,
		// whether or not it was the root: the rightmost spine still needs
		// somewhere to route the next leaf/child-root update at this tier.
		// Its rootUpdateHandler resolves the (possibly just-created) parent
		// by peak level, mirroring getNewSibling's wiring in the C++ core.
		siblingIdx := MustIndex(peakIndex.SeqNo+peakIndex.Range, level)
		sibling, err := NewSubTreeBinary(siblingIdx, t.completeHandler(level), t.rootUpdateHandler(level))
		if err != nil {
			panic(err)
		}
		t.pendingTrees[level] = sibling
	}
}

// loadPendingSubTrees reconstructs the rightmost spine from Store,
// installing a fresh empty base subtree if none was persisted.
func (t *MerkleTree) loadPendingSubTrees() error {
	rows, err := t.db.GetPendingSubTrees()
	if err != nil {
		return fmt.Errorf("merkle: load pending subtrees: %w", err)
	}
	if len(rows) == 0 {
		base, err := NewSubTreeBinary(MustIndex(0, SubTreeDepth-1), t.completeHandler(SubTreeDepth-1), t.rootUpdateHandler(SubTreeDepth-1))
		if err != nil {
			return err
		}
		t.pendingTrees[SubTreeDepth-1] = base
		return nil
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Level > rows[j].Level })

	var prev *SubTreeBinary
	for i, row := range rows {
		rec, err := wire.DecodeRecord(row.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoadPending, err)
		}
		s, err := DecodeSubTree(t.loggerName, rec, t.completeHandler(row.Level), t.rootUpdateHandler(row.Level))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoadPending, err)
		}
		t.pendingTrees[row.Level] = s

		if i == 0 {
			t.nextLeafSeqNo = s.NextLeafSeqNo()
			t.rootHash = s.RootHash()
		} else {
			if prev.PeakIndex().Level-row.Level != subTreeStep {
				return fmt.Errorf("%w: non-contiguous tiers %d -> %d", ErrLoadPending, prev.PeakIndex().Level, row.Level)
			}
			if !ToSubTreePeakIndex(s.PeakIndex(), true).Equal(prev.PeakIndex()) {
				return fmt.Errorf("%w: tier %d does not resolve to parent %d", ErrLoadPending, row.Level, prev.PeakIndex().Level)
			}
		}
		prev = s
	}
	return nil
}
