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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndn-security/siglog/wire"
)

func wireTestLoggerName() wire.Name {
	return wire.NameFromSlash("/test/logger")
}

func fillWithEmptyHashLeaves(t *testing.T, peakIndex Index) *SubTreeBinary {
	t.Helper()
	s, err := NewSubTreeBinary(peakIndex, func(Index) {}, func(Index, uint64, [32]byte) {})
	require.NoError(t, err)

	empty := EmptyHash()
	for seq := peakIndex.SeqNo; seq < peakIndex.SeqNo+peakIndex.Range; seq++ {
		leaf, err := NewNode(seq, s.LeafLevel(), seq+1, &empty)
		require.NoError(t, err)
		require.True(t, s.AddLeaf(leaf))
	}
	return s
}

func TestSubTreeRootHashVectorOne(t *testing.T) {
	s := fillWithEmptyHashLeaves(t, MustIndex(0, 5))
	require.True(t, s.IsFull())
	require.NotNil(t, s.RootHash())

	want, err := hex.DecodeString("989551ef13ce660c1c5ccdda770f4769966a6faf83722c91dfeac597c6fa2782")
	require.NoError(t, err)
	got := *s.RootHash()
	require.Equal(t, want, got[:])
}

func TestSubTreeRootHashVectorTwo(t *testing.T) {
	s := fillWithEmptyHashLeaves(t, MustIndex(32, 5))
	require.True(t, s.IsFull())

	want, err := hex.DecodeString("2657cd81c3acb8eb4489f0a2559d42532644ce737ae494f49f30452f47bcff53")
	require.NoError(t, err)
	got := *s.RootHash()
	require.Equal(t, want, got[:])
}

func TestSubTreeEncodeDecodeRoundTrip(t *testing.T) {
	loggerName := wireTestLoggerName()
	s := fillWithEmptyHashLeaves(t, MustIndex(0, 5))

	rec := EncodeSubTree(loggerName, s)
	decoded, err := DecodeSubTree(loggerName, rec, func(Index) {}, func(Index, uint64, [32]byte) {})
	require.NoError(t, err)
	require.Equal(t, *s.RootHash(), *decoded.RootHash())
	require.Equal(t, s.NextLeafSeqNo(), decoded.NextLeafSeqNo())
}

func TestSubTreeIncompleteEncodeDecodeRoundTrip(t *testing.T) {
	loggerName := wireTestLoggerName()
	s, err := NewSubTreeBinary(MustIndex(0, 5), func(Index) {}, func(Index, uint64, [32]byte) {})
	require.NoError(t, err)

	empty := EmptyHash()
	for seq := uint64(0); seq < 5; seq++ {
		leaf, err := NewNode(seq, s.LeafLevel(), seq+1, &empty)
		require.NoError(t, err)
		require.True(t, s.AddLeaf(leaf))
	}
	require.False(t, s.IsFull())

	rec := EncodeSubTree(loggerName, s)
	decoded, err := DecodeSubTree(loggerName, rec, func(Index) {}, func(Index, uint64, [32]byte) {})
	require.NoError(t, err)
	require.Equal(t, *s.RootHash(), *decoded.RootHash())
	require.Equal(t, s.NextLeafSeqNo(), decoded.NextLeafSeqNo())
}
