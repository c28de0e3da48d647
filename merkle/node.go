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
	"crypto/sha256"
	"encoding/binary"
)

// emptyHash is SHA256("") — the process-wide constant used wherever a
// right sibling is missing. It is computed eagerly at package init rather
// than lazily, per the design notes on avoiding hidden global mutable state.
var emptyHash = sha256.Sum256(nil)

// EmptyHash returns the 32-byte SHA-256 digest of the empty string.
func EmptyHash() [32]byte {
	return emptyHash
}

// Node is an in-memory history-tree cell: a position (Index), the
// exclusive upper bound of leaves placed beneath it so far (LeafSeqNo), and
// its hash once computed.
type Node struct {
	Index     Index
	LeafSeqNo uint64
	Hash      *[32]byte
}

// NewNode builds a Node at (seqNo, level). If leafSeqNo is zero and seqNo is
// positive, the node is treated as an empty slot and LeafSeqNo defaults to
// seqNo (mirrors nsl::Node's constructor). Otherwise leafSeqNo is validated
// via SetLeafSeqNo.
func NewNode(seqNo uint64, level uint, leafSeqNo uint64, hash *[32]byte) (*Node, error) {
	idx, err := NewIndex(seqNo, level)
	if err != nil {
		return nil, err
	}
	n := &Node{Index: idx, Hash: hash}
	if leafSeqNo == 0 && idx.SeqNo > 0 {
		n.LeafSeqNo = idx.SeqNo
		return n, nil
	}
	if err := n.SetLeafSeqNo(leafSeqNo); err != nil {
		return nil, err
	}
	return n, nil
}

// SetLeafSeqNo updates the node's leaf high-water mark, rejecting values
// outside [Index.SeqNo, Index.SeqNo+Index.Range].
func (n *Node) SetLeafSeqNo(leafSeqNo uint64) error {
	if leafSeqNo > n.Index.SeqNo+n.Index.Range || leafSeqNo < n.Index.SeqNo {
		return ErrOutOfRange
	}
	n.LeafSeqNo = leafSeqNo
	return nil
}

// SetHash overwrites the node's cached hash.
func (n *Node) SetHash(hash *[32]byte) {
	n.Hash = hash
}

// IsFull reports whether the node covers its whole range.
func (n *Node) IsFull() bool {
	return n.Index.SeqNo+n.Index.Range == n.LeafSeqNo
}

// hashDomain is the 16-byte prefix mixed into every parent-hash computation
// to separate nodes at different positions: 8-byte little-endian level
// followed by 8-byte little-endian seqNo. This matches the reference
// logger's raw size_t stream serialization (native width, native
// endianness on its reference platform) rather than the minimal-length
// big-endian encoding used for on-the-wire integers elsewhere in this
// codebase; see DESIGN.md for the reconciliation against known-answer
// hash vectors.
func hashDomain(level uint, seqNo uint64) []byte {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(level))
	binary.LittleEndian.PutUint64(buf[8:16], seqNo)
	return buf[:]
}

// ParentHash computes H(parent) = SHA256(domain(parentLevel, parentSeqNo) ||
// left || right) per the history-tree hash-parent rule. Exported so the
// auditor can recompute the same parent hashes the subtree's internal
// hash-propagate uses, without duplicating the domain-separator
// encoding.
func ParentHash(parentLevel uint, parentSeqNo uint64, left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write(hashDomain(parentLevel, parentSeqNo))
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
