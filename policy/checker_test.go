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

package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeqNoPolicyAllowsPriorOrEqualSigner(t *testing.T) {
	p := SeqNoPolicy{}
	require.NoError(t, p.Check(0, 0))
	require.NoError(t, p.Check(1, 1))
	require.NoError(t, p.Check(3, 10))
}

func TestSeqNoPolicyRejectsFutureSigner(t *testing.T) {
	p := SeqNoPolicy{}
	err := p.Check(5, 4)
	require.Error(t, err)
}
