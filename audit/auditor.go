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

// Package audit implements the stateless proof verifier: given a bag of
// subtree records and nothing else, it checks existence and consistency
// claims about a logger's published root hashes.
package audit

import (
	"github.com/ndn-security/siglog/merkle"
	"github.com/ndn-security/siglog/wire"
)

// LoadProof parses every record in proofs into a SubTreeBinary keyed by
// peak index, rejecting the whole bag if any record is malformed or two
// records share a peak index.
func LoadProof(loggerName wire.Name, proofs []wire.Record) (map[merkle.Index]*merkle.SubTreeBinary, bool) {
	trees := make(map[merkle.Index]*merkle.SubTreeBinary)
	noop := func(merkle.Index) {}
	noopUpdate := func(merkle.Index, uint64, [32]byte) {}

	for _, rec := range proofs {
		s, err := merkle.DecodeSubTree(loggerName, rec, noop, noopUpdate)
		if err != nil {
			return nil, false
		}
		if _, exists := trees[s.PeakIndex()]; exists {
			return nil, false
		}
		trees[s.PeakIndex()] = s
	}
	return trees, true
}

// DoesExist checks whether the leaf at seqNo with the given hash is
// covered by the root (rootNextSeqNo, rootHash), using only the subtree
// records in proofs, parsed via LoadProof. It never panics; any inconsistency
// in the proof set is reported as false.
func DoesExist(loggerName wire.Name, seqNo uint64, leafHash [32]byte, rootNextSeqNo uint64, rootHash [32]byte, proofs []wire.Record) bool {
	trees, ok := LoadProof(loggerName, proofs)
	if !ok {
		return false
	}
	return doesExist(seqNo, leafHash, rootNextSeqNo, rootHash, trees)
}

func doesExist(seqNo uint64, leafHash [32]byte, rootNextSeqNo uint64, rootHash [32]byte, trees map[merkle.Index]*merkle.SubTreeBinary) bool {
	rootLevel := uint(0)
	tmp := rootNextSeqNo - 1
	for tmp != 0 {
		rootLevel++
		tmp >>= 1
	}

	if rootLevel == 0 {
		if seqNo != 0 {
			return false
		}
		s, ok := trees[merkle.MustIndex(0, merkle.SubTreeDepth-1)]
		if !ok {
			return false
		}
		node := s.GetNode(merkle.MustIndex(0, 0))
		if node == nil || node.Hash == nil {
			return false
		}
		return *node.Hash == leafHash && leafHash == rootHash
	}

	childSeqMask := uint64(1)
	childSeqNo := seqNo
	childLevel := uint(0)
	childHash := leafHash

	parentSeqMask := ^uint64(1)
	parentSeqNo := childSeqNo & parentSeqMask
	parentLevel := uint(1)

	var treePeakIndex merkle.Index
	havePeak := false
	var subTree *merkle.SubTreeBinary

	for {
		tmpIdx := merkle.ToSubTreePeakIndex(merkle.MustIndex(childSeqNo, childLevel), true)
		if !havePeak || !tmpIdx.Equal(treePeakIndex) {
			treePeakIndex = tmpIdx
			havePeak = true
			s, ok := trees[treePeakIndex]
			if !ok {
				return false
			}
			subTree = s
		}

		var h [32]byte
		if childSeqMask&seqNo != 0 {
			// right child: the left sibling must already be known.
			left := subTree.GetNode(merkle.MustIndex(parentSeqNo, childLevel))
			if left == nil || left.Hash == nil {
				return false
			}
			h = merkle.ParentHash(parentLevel, parentSeqNo, *left.Hash, childHash)
		} else {
			// left child: a missing right sibling beyond rootNextSeqNo is
			// EMPTY_HASH; within range it must be present.
			rightHash := merkle.EmptyHash()
			if rootNextSeqNo > childSeqNo+(uint64(1)<<childLevel) {
				right := subTree.GetNode(merkle.MustIndex(childSeqNo+(uint64(1)<<childLevel), childLevel))
				if right == nil || right.Hash == nil {
					return false
				}
				rightHash = *right.Hash
			}
			h = merkle.ParentHash(parentLevel, parentSeqNo, childHash, rightHash)
		}

		childSeqMask <<= 1
		childSeqNo = parentSeqNo
		childLevel = parentLevel
		childHash = h

		parentSeqMask <<= 1
		parentSeqNo = childSeqNo & parentSeqMask
		parentLevel++

		if childLevel >= rootLevel {
			break
		}
	}

	return childHash == rootHash
}

// IsConsistent checks that the older root (oldNextSeqNo, oldHash) is a
// prefix of the newer root (newNextSeqNo, newHash), using the boundary
// leaf shared by both.
func IsConsistent(loggerName wire.Name, oldNextSeqNo uint64, oldHash [32]byte, newNextSeqNo uint64, newHash [32]byte, proofs []wire.Record) bool {
	if oldNextSeqNo > newNextSeqNo {
		return false
	}

	trees, ok := LoadProof(loggerName, proofs)
	if !ok {
		return false
	}

	leafSeqNo := oldNextSeqNo - 1
	treeSeqNo := leafSeqNo &^ ((uint64(1) << (merkle.SubTreeDepth - 1)) - 1)
	s, ok := trees[merkle.MustIndex(treeSeqNo, merkle.SubTreeDepth-1)]
	if !ok {
		return false
	}
	leaf := s.GetNode(merkle.MustIndex(leafSeqNo, 0))
	if leaf == nil || leaf.Hash == nil {
		return false
	}

	if !doesExist(leafSeqNo, *leaf.Hash, oldNextSeqNo, oldHash, trees) {
		return false
	}

	if oldNextSeqNo == newNextSeqNo {
		return oldHash == newHash
	}

	return doesExist(leafSeqNo, *leaf.Hash, newNextSeqNo, newHash, trees)
}
