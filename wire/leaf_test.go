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

package wire

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafHashTestVector(t *testing.T) {
	leaf := Leaf{
		DataName:    NameFromSlash("/test/data"),
		Timestamp:   0,
		DataSeqNo:   2,
		SignerSeqNo: 1,
	}

	content := leaf.EncodeContent()
	require.Len(t, content, 25)

	want, err := hex.DecodeString("79cb54a747a8ea989239dbcfd09abbbde310823b4d46c4c13976bd3d17cca92b")
	require.NoError(t, err)

	got := leaf.Hash()
	require.Equal(t, want, got[:])
}

func TestLeafRoundTrip(t *testing.T) {
	leaf := Leaf{
		DataName:    NameFromSlash("/a/b/c"),
		Timestamp:   1234,
		DataSeqNo:   7,
		SignerSeqNo: 3,
	}

	decoded, err := DecodeLeafContent(leaf.EncodeContent())
	require.NoError(t, err)
	require.Equal(t, leaf.Timestamp, decoded.Timestamp)
	require.Equal(t, leaf.DataSeqNo, decoded.DataSeqNo)
	require.Equal(t, leaf.SignerSeqNo, decoded.SignerSeqNo)
	require.Equal(t, leaf.DataName.String(), decoded.DataName.String())
}

func TestRecordRoundTrip(t *testing.T) {
	rec := Record{
		Name:            RecordName(NameFromSlash("/test/logger"), 5, [32]byte{1, 2, 3}),
		FreshnessPeriod: 0,
		Content:         []byte("hello"),
	}
	decoded, err := DecodeRecord(rec.Encode())
	require.NoError(t, err)
	require.Equal(t, rec.Name.String(), decoded.Name.String())
	require.Equal(t, rec.Content, decoded.Content)
}
