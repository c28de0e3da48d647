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

func TestLoggerResponseRoundTrip(t *testing.T) {
	cases := []LoggerResponse{
		{Code: Accept, DataSeqNo: 42},
		{Code: TreeError, Msg: "subtree save failed"},
		{Code: PolicyError, Msg: "signerSeqNo exceeds dataSeqNo"},
		{Code: SignerError, Msg: "unknown signer"},
	}

	for _, want := range cases {
		got, err := DecodeResponse(want.Encode())
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestResultCodeString(t *testing.T) {
	require.Equal(t, "Accept", Accept.String())
	require.Equal(t, "TreeError", TreeError.String())
	require.Equal(t, "PolicyError", PolicyError.String())
	require.Equal(t, "SignerError", SignerError.String())
}

func TestDecodeResponseRejectsWrongType(t *testing.T) {
	rec := Record{Name: NameFromSlash("/x")}
	_, err := DecodeResponse(rec.Name.Encode())
	require.ErrorIs(t, err, ErrUnexpectedType)
}
