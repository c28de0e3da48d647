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
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTripStructuralDiff(t *testing.T) {
	rec := Record{
		Name:            RecordName(NameFromSlash("/test/logger"), 9, [32]byte{9, 8, 7}),
		FreshnessPeriod: 3 * time.Second,
		Content:         []byte("subtree or leaf bytes"),
	}

	decoded, err := DecodeRecord(rec.Encode())
	require.NoError(t, err)

	if diff := cmp.Diff(rec, decoded); diff != "" {
		t.Fatalf("decoded record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRoundTripRejectsTamperedSignature(t *testing.T) {
	rec := Record{
		Name:    RecordName(NameFromSlash("/test/logger"), 1, [32]byte{1}),
		Content: []byte("payload"),
	}
	encoded := rec.Encode()
	encoded[len(encoded)-1] ^= 0xFF

	_, err := DecodeRecord(encoded)
	require.Error(t, err)
}
