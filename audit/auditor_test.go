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

package audit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndn-security/siglog/merkle"
	"github.com/ndn-security/siglog/wire"
)

func testLoggerName() wire.Name {
	return wire.NameFromSlash("/test/logger")
}

// buildTree drives n empty-hash leaves through a MerkleTree and returns
// the proof bag (one record per completed subtree and per currently
// pending subtree) alongside the tree itself.
func buildTree(t *testing.T, n uint64) (*merkle.MerkleTree, []wire.Record) {
	t.Helper()
	db := newMemStore()
	tree, err := merkle.NewMerkleTree(testLoggerName(), db)
	require.NoError(t, err)

	empty := merkle.EmptyHash()
	for seq := uint64(0); seq < n; seq++ {
		require.True(t, tree.AddLeaf(seq, empty))
	}
	return tree, proofBag(t, db, tree)
}

func proofBag(t *testing.T, db *memStore, tree *merkle.MerkleTree) []wire.Record {
	t.Helper()
	var recs []wire.Record
	for _, data := range db.completed {
		rec, err := wire.DecodeRecord(data)
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	for level := uint(5); level <= 60; level += 5 {
		if data, ok := tree.GetPendingSubTreeData(level); ok {
			rec, err := wire.DecodeRecord(data)
			require.NoError(t, err)
			recs = append(recs, rec)
		}
	}
	return recs
}

// memStore is a minimal in-memory Store that also remembers every
// completed subtree, so tests can assemble a full proof bag.
type memStore struct {
	pending   map[string]merkle.PendingRow
	completed [][]byte
}

func newMemStore() *memStore {
	return &memStore{pending: make(map[string]merkle.PendingRow)}
}

func (m *memStore) InsertSubTreeData(level uint, seqNo uint64, data []byte, isComplete bool, nextLeafSeqNo uint64) error {
	key := merkle.MustIndex(seqNo, level).String()
	if isComplete {
		delete(m.pending, key)
		m.completed = append(m.completed, data)
		return nil
	}
	m.pending[key] = merkle.PendingRow{Level: level, SeqNo: seqNo, Data: data, NextLeafSeqNo: nextLeafSeqNo}
	return nil
}

func (m *memStore) GetPendingSubTrees() ([]merkle.PendingRow, error) {
	var out []merkle.PendingRow
	for _, r := range m.pending {
		out = append(out, r)
	}
	return out, nil
}

func TestDoesExistSingleLeafTree(t *testing.T) {
	tree, proofs := buildTree(t, 1)
	require.Equal(t, uint64(1), tree.NextLeafSeqNo())

	leafHash := merkle.EmptyHash()
	ok := DoesExist(testLoggerName(), 0, leafHash, tree.NextLeafSeqNo(), *tree.RootHash(), proofs)
	require.True(t, ok)
}

func TestDoesExistWrongHashFails(t *testing.T) {
	tree, proofs := buildTree(t, 1)
	var wrongHash [32]byte
	copy(wrongHash[:], "not the right hash at all......")

	ok := DoesExist(testLoggerName(), 0, wrongHash, tree.NextLeafSeqNo(), *tree.RootHash(), proofs)
	require.False(t, ok)
}

func TestIsConsistent31To32(t *testing.T) {
	db := newMemStore()
	tree, err := merkle.NewMerkleTree(testLoggerName(), db)
	require.NoError(t, err)

	empty := merkle.EmptyHash()
	for seq := uint64(0); seq < 31; seq++ {
		require.True(t, tree.AddLeaf(seq, empty))
	}
	oldNextSeqNo := tree.NextLeafSeqNo()
	oldRoot := *tree.RootHash()

	require.True(t, tree.AddLeaf(31, empty))
	newNextSeqNo := tree.NextLeafSeqNo()
	newRoot := *tree.RootHash()

	proofs := proofBag(t, db, tree)

	require.True(t, IsConsistent(testLoggerName(), oldNextSeqNo, oldRoot, newNextSeqNo, newRoot, proofs))
}

func TestIsConsistentRejectsOldGreaterThanNew(t *testing.T) {
	tree, proofs := buildTree(t, 4)
	ok := IsConsistent(testLoggerName(), 4, *tree.RootHash(), 2, *tree.RootHash(), proofs)
	require.False(t, ok)
}

func TestIsConsistentSameRoot(t *testing.T) {
	tree, proofs := buildTree(t, 4)
	ok := IsConsistent(testLoggerName(), tree.NextLeafSeqNo(), *tree.RootHash(), tree.NextLeafSeqNo(), *tree.RootHash(), proofs)
	require.True(t, ok)
}
