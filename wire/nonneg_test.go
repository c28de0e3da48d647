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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeNonNegZeroIsSingleByte(t *testing.T) {
	require.Equal(t, []byte{0x00}, EncodeNonNeg(0))
}

func TestNonNegRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 2, 127, 255, 256, 65535, 65536, 1 << 32, ^uint64(0)} {
		got, err := DecodeNonNeg(EncodeNonNeg(v))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestDecodeNonNegRejectsNonMinimal(t *testing.T) {
	_, err := DecodeNonNeg([]byte{0x00, 0x01})
	require.ErrorIs(t, err, ErrNonMinimalEncoding)
}

func TestDecodeNonNegRejectsEmpty(t *testing.T) {
	_, err := DecodeNonNeg(nil)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestVarNumberRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 252, 253, 65535, 65536, 1 << 32, ^uint64(0)} {
		encoded := AppendVarNumber(nil, v)
		got, n, err := ReadVarNumber(encoded)
		require.NoError(t, err)
		require.Equal(t, len(encoded), n)
		require.Equal(t, v, got)
	}
}
