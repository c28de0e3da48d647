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

import "errors"

// Sentinel errors surfaced by the history-tree core. Callers branch on these
// with errors.Is; DecodeError-flavoured conditions are additionally wrapped
// with context via fmt.Errorf("...: %w", ...).
var (
	// ErrIndexMisaligned is returned by NewIndex when seqNo is not a
	// multiple of 1<<level.
	ErrIndexMisaligned = errors.New("merkle: index level and seqNo do not match")

	// ErrOutOfRange is returned by Node.SetLeafSeqNo when the supplied
	// value falls outside [index.seqNo, index.seqNo+index.range].
	ErrOutOfRange = errors.New("merkle: leaf seqNo is out of range")

	// ErrPeakLevelMismatch is returned when a SubTreeBinary is initialized
	// with a peak index whose level isn't a positive multiple of the
	// subtree depth's step.
	ErrPeakLevelMismatch = errors.New("merkle: peak level does not match the subtree depth")

	// ErrInconsistentHash is returned by DecodeSubTree when the root hash
	// recomputed from the record's leaf hashes does not match the hash
	// encoded in the record name.
	ErrInconsistentHash = errors.New("merkle: inconsistent hash")

	// ErrDecodeRecord covers malformed subtree records: wrong naming
	// convention, truncated content, bad marker component, etc.
	ErrDecodeRecord = errors.New("merkle: malformed subtree record")

	// ErrLoadPending is returned by NewMerkleTree (via loadPendingSubTrees)
	// when the rows read back from storage cannot be decoded or fail the
	// cross-level consistency checks.
	ErrLoadPending = errors.New("merkle: inconsistent pending subtree state")
)
