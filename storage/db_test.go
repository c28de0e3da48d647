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

package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndn-security/siglog/merkle"
)

func openTestDb(t *testing.T) *Db {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenRecoversNextLeafSeqNoFromEmptyStore(t *testing.T) {
	db := openTestDb(t)
	require.Equal(t, uint64(0), db.NextLeafSeqNo())
}

func TestInsertLeafDataRequiresMonotonicSeqNo(t *testing.T) {
	db := openTestDb(t)

	require.NoError(t, db.InsertLeafData(Leaf{DataSeqNo: 0, DataNameBytes: []byte("/a"), SignerSeqNo: 0, Timestamp: 1}))
	require.Equal(t, uint64(1), db.NextLeafSeqNo())

	err := db.InsertLeafData(Leaf{DataSeqNo: 5, DataNameBytes: []byte("/b"), SignerSeqNo: 0, Timestamp: 2})
	require.Error(t, err)

	require.NoError(t, db.InsertLeafData(Leaf{DataSeqNo: 1, DataNameBytes: []byte("/b"), SignerSeqNo: 0, Timestamp: 2}))
	require.Equal(t, uint64(2), db.NextLeafSeqNo())
}

func TestGetLeafRoundTrip(t *testing.T) {
	db := openTestDb(t)
	leaf := Leaf{DataSeqNo: 0, DataNameBytes: []byte("/test/data"), SignerSeqNo: 0, Timestamp: 99}
	require.NoError(t, db.InsertLeafData(leaf))

	got, err := db.GetLeaf(0)
	require.NoError(t, err)
	require.Equal(t, leaf.DataNameBytes, got.DataNameBytes)
	require.Equal(t, leaf.Timestamp, got.Timestamp)

	_, err = db.GetLeaf(1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetMaxLeafSeqEmptyIsNotFound(t *testing.T) {
	db := openTestDb(t)
	_, err := db.GetMaxLeafSeq()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPendingSubtreeUpsertThenPromote(t *testing.T) {
	db := openTestDb(t)

	require.NoError(t, db.InsertSubTreeData(5, 0, []byte("rev1"), false, 1))
	data, err := db.GetSubTreeData(5, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("rev1"), data)

	require.NoError(t, db.InsertSubTreeData(5, 0, []byte("rev2"), false, 2))
	data, err = db.GetSubTreeData(5, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("rev2"), data)

	rows, err := db.GetPendingSubTrees()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, merkle.PendingRow{Level: 5, SeqNo: 0, Data: []byte("rev2"), NextLeafSeqNo: 2}, rows[0])

	require.NoError(t, db.InsertSubTreeData(5, 0, []byte("final"), true, 0))

	rows, err = db.GetPendingSubTrees()
	require.NoError(t, err)
	require.Len(t, rows, 0)

	data, err = db.GetSubTreeData(5, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("final"), data)
}
