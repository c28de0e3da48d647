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

// SubTreeDepth is the fixed depth of a packed binary subtree: a peak node
// sits 5 levels above its leaves, giving a full subtree 32 leaves.
const SubTreeDepth = 6

// subTreeStep is SubTreeDepth-1, the level distance between a subtree's
// leaf tier and its peak tier, and the unit tiers are spaced by in the
// global forest.
const subTreeStep = SubTreeDepth - 1

// CompleteCallback is invoked once when a subtree's peak node fills.
type CompleteCallback func(peakIndex Index)

// RootUpdateCallback is invoked every time the subtree's actual root
// advances: moves to a higher level, gains a hash, or its leafSeqNo
// changes.
type RootUpdateCallback func(rootIndex Index, nextLeafSeqNo uint64, hash [32]byte)

// SubTreeBinary packs up to 32 leaf hashes into a fixed-depth binary tree,
// maintaining parent hashes incrementally as leaves are appended out of a
// sparse node map.
type SubTreeBinary struct {
	peakIndex Index
	leafLevel uint
	minSeqNo  uint64
	maxSeqNo  uint64

	pendingLeafSeqNo   uint64
	isPendingLeafEmpty bool

	nodes      map[Index]*Node
	actualRoot *Node

	onComplete   CompleteCallback
	onRootUpdate RootUpdateCallback
}

// NewSubTreeBinary constructs a subtree rooted at peakIndex. peakIndex's
// level must be a positive multiple of subTreeStep.
func NewSubTreeBinary(peakIndex Index, onComplete CompleteCallback, onRootUpdate RootUpdateCallback) (*SubTreeBinary, error) {
	if peakIndex.Level+1 < SubTreeDepth || peakIndex.Level%subTreeStep != 0 {
		return nil, ErrPeakLevelMismatch
	}
	s := &SubTreeBinary{
		peakIndex:          peakIndex,
		leafLevel:          peakIndex.Level + 1 - SubTreeDepth,
		minSeqNo:           peakIndex.SeqNo,
		maxSeqNo:           peakIndex.SeqNo + peakIndex.Range,
		pendingLeafSeqNo:   peakIndex.SeqNo,
		isPendingLeafEmpty: true,
		nodes:              make(map[Index]*Node),
		onComplete:         onComplete,
		onRootUpdate:       onRootUpdate,
	}
	return s, nil
}

// PeakIndex returns the subtree's fixed peak position.
func (s *SubTreeBinary) PeakIndex() Index { return s.peakIndex }

// LeafHashes returns the hashes of every filled leaf slot in increasing
// seqNo order, stopping at the first gap.
func (s *SubTreeBinary) LeafHashes() [][32]byte {
	var out [][32]byte
	step := uint64(1) << s.leafLevel
	for seq := s.minSeqNo; seq < s.maxSeqNo; seq += step {
		leaf, ok := s.nodes[MustIndex(seq, s.leafLevel)]
		if !ok || leaf.Hash == nil {
			break
		}
		out = append(out, *leaf.Hash)
	}
	return out
}

// LeafLevel returns the level at which this subtree accepts leaves.
func (s *SubTreeBinary) LeafLevel() uint { return s.leafLevel }

// GetNode looks up a previously computed node by index.
func (s *SubTreeBinary) GetNode(idx Index) *Node {
	return s.nodes[idx]
}

// NextLeafSeqNo reports the exclusive upper bound of the leaf seqNos
// folded into the current actual root (an absolute position, not a count
// relative to the subtree's base), or the subtree's base seqNo if no leaf
// has arrived yet.
func (s *SubTreeBinary) NextLeafSeqNo() uint64 {
	if s.actualRoot != nil {
		return s.actualRoot.LeafSeqNo
	}
	return s.peakIndex.SeqNo
}

// RootHash returns the actual root's hash, or nil if no leaf has arrived.
func (s *SubTreeBinary) RootHash() *[32]byte {
	if s.actualRoot != nil {
		return s.actualRoot.Hash
	}
	return nil
}

// IsFull reports whether the actual root has reached the peak and is
// itself full.
func (s *SubTreeBinary) IsFull() bool {
	return s.actualRoot != nil && s.actualRoot.Index.Equal(s.peakIndex) && s.actualRoot.IsFull()
}

// AddLeaf inserts the next expected leaf. It returns false (without error)
// if leaf does not belong to this subtree or is not the next expected
// position — those are rejections the caller surfaces as a logic failure,
// not a fault.
func (s *SubTreeBinary) AddLeaf(leaf *Node) bool {
	if leaf.Index.Level != s.leafLevel || leaf.Index.SeqNo < s.minSeqNo || leaf.Index.SeqNo >= s.maxSeqNo {
		return false
	}
	if leaf.Index.SeqNo != s.pendingLeafSeqNo || !s.isPendingLeafEmpty {
		return false
	}

	s.nodes[leaf.Index] = leaf
	s.updateActualRoot(leaf)
	s.updateParentNode(leaf)

	if leaf.IsFull() {
		s.pendingLeafSeqNo = leaf.Index.SeqNo + leaf.Index.Range
		s.isPendingLeafEmpty = true
	} else {
		s.isPendingLeafEmpty = false
	}
	return true
}

// UpdateLeaf folds a child subtree's current root hash into the leaf slot
// it occupies in this subtree, used to propagate a not-yet-full child's
// progress up through the forest.
func (s *SubTreeBinary) UpdateLeaf(nextSeqNo uint64, hash [32]byte) bool {
	if nextSeqNo < s.minSeqNo || nextSeqNo > s.maxSeqNo {
		return false
	}

	leafSeqNo := ((nextSeqNo - 1) >> s.leafLevel) << s.leafLevel
	if s.pendingLeafSeqNo != leafSeqNo {
		return false
	}

	idx := MustIndex(leafSeqNo, s.leafLevel)
	leaf, ok := s.nodes[idx]
	if !ok {
		h := hash
		leaf = &Node{Index: idx, LeafSeqNo: nextSeqNo, Hash: &h}
		s.nodes[idx] = leaf
		s.updateActualRoot(leaf)
	} else {
		h := hash
		leaf.SetHash(&h)
		_ = leaf.SetLeafSeqNo(nextSeqNo)
	}

	if nextSeqNo == leafSeqNo+(1<<s.leafLevel) {
		s.pendingLeafSeqNo = nextSeqNo
		s.isPendingLeafEmpty = true
	}

	s.updateParentNode(leaf)
	return true
}

// updateActualRoot grows the actual root to cover node, one level at a
// time, starting it directly at the just-inserted node when this is the
// very first leaf at global position zero, or (for any other starting
// position) jumping straight to a placeholder at the subtree's peak.
func (s *SubTreeBinary) updateActualRoot(node *Node) {
	if s.actualRoot == nil {
		if node.Index.SeqNo == 0 {
			s.actualRoot = node
			s.onRootUpdate(node.Index, node.LeafSeqNo, *node.Hash)
			return
		}
		root, err := NewNode(s.peakIndex.SeqNo, s.peakIndex.Level, 0, nil)
		if err != nil {
			panic(err)
		}
		s.actualRoot = root
		s.nodes[root.Index] = root
		return
	}

	if s.actualRoot.Index.Equal(s.peakIndex) {
		return
	}

	if (node.Index.SeqNo >> s.actualRoot.Index.Level) != 0 {
		idx := MustIndex(s.minSeqNo, s.actualRoot.Index.Level+1)
		root, err := NewNode(idx.SeqNo, idx.Level, 0, nil)
		if err != nil {
			panic(err)
		}
		s.actualRoot = root
		s.nodes[root.Index] = root
	}
}

// updateParentNode recomputes hashes iteratively from node up to the
// actual root, firing onRootUpdate (and onComplete, if the peak just
// filled) once the climb reaches it.
func (s *SubTreeBinary) updateParentNode(node *Node) {
	for {
		if node.Index.Equal(s.actualRoot.Index) {
			return
		}

		parentLevel := node.Index.Level + 1
		var parent *Node

		if (node.Index.SeqNo>>node.Index.Level)%2 == 0 {
			// left child: the parent may not exist yet, and the right
			// sibling is necessarily absent (EMPTY_HASH).
			parentIdx := MustIndex(node.Index.SeqNo, parentLevel)
			h := ParentHash(parentIdx.Level, parentIdx.SeqNo, *node.Hash, EmptyHash())

			existing, ok := s.nodes[parentIdx]
			if !ok {
				var err error
				parent, err = NewNode(parentIdx.SeqNo, parentIdx.Level, node.LeafSeqNo, &h)
				if err != nil {
					panic(err)
				}
			} else {
				existing.SetHash(&h)
				_ = existing.SetLeafSeqNo(node.LeafSeqNo)
				parent = existing
			}
			s.nodes[parent.Index] = parent
		} else {
			// right child: both the parent and its left sibling must
			// already exist.
			parentSeqNo := node.Index.SeqNo - node.Index.Range
			parentIdx := MustIndex(parentSeqNo, parentLevel)
			siblingIdx := MustIndex(parentSeqNo, parentLevel-1)

			parent = s.nodes[parentIdx]
			sibling := s.nodes[siblingIdx]

			h := ParentHash(parent.Index.Level, parent.Index.SeqNo, *sibling.Hash, *node.Hash)
			parent.SetHash(&h)
			_ = parent.SetLeafSeqNo(node.LeafSeqNo)
		}

		if parent.Index.Equal(s.actualRoot.Index) {
			s.onRootUpdate(parent.Index, parent.LeafSeqNo, *parent.Hash)
			if parent.Index.Equal(s.peakIndex) && parent.IsFull() {
				s.onComplete(parent.Index)
			}
			return
		}
		node = parent
	}
}

// ToSubTreePeakIndex resolves the peak of the subtree enclosing idx.
// notRoot (default true at call sites that treat idx as a child of the
// enclosing subtree) selects whether an idx that already sits on a tier
// boundary is treated as belonging to the tier above (notRoot=true) or as
// that tier's own peak (notRoot=false).
func ToSubTreePeakIndex(idx Index, notRoot bool) Index {
	peakLevel := ((idx.Level + subTreeStep) / subTreeStep) * subTreeStep

	if idx.Level%subTreeStep == 0 && idx.Level > 0 && !notRoot {
		peakLevel -= subTreeStep
	}

	peakSeqNo := (idx.SeqNo >> peakLevel) << peakLevel
	return MustIndex(peakSeqNo, peakLevel)
}
