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

import "fmt"

// Index names a position in the history tree: a sequence-number origin and
// a level, with range = 1<<level the span of leaves the node at this index
// covers. It mirrors nsl::Node::Index from the original C++ logger.
type Index struct {
	SeqNo uint64
	Level uint
	Range uint64
}

// NewIndex validates seqNo against the level-derived range and returns the
// constructed Index, or ErrIndexMisaligned if seqNo isn't a multiple of
// 1<<level.
func NewIndex(seqNo uint64, level uint) (Index, error) {
	rng := uint64(1) << level
	if seqNo%rng != 0 {
		return Index{}, fmt.Errorf("%w: (seqNo=%d, level=%d)", ErrIndexMisaligned, seqNo, level)
	}
	return Index{SeqNo: seqNo, Level: level, Range: rng}, nil
}

// MustIndex is NewIndex for call sites that already know the arguments are
// aligned (e.g. derived arithmetically from another valid Index); it panics
// otherwise, since that would indicate a logic bug rather than bad input.
func MustIndex(seqNo uint64, level uint) Index {
	idx, err := NewIndex(seqNo, level)
	if err != nil {
		panic(err)
	}
	return idx
}

// Less orders indices lexicographically on (SeqNo, Level): a larger SeqNo
// sorts later, and for equal SeqNo a lower Level sorts earlier.
func (idx Index) Less(other Index) bool {
	if idx.SeqNo != other.SeqNo {
		return idx.SeqNo < other.SeqNo
	}
	return idx.Level < other.Level
}

// Equal reports whether two indices name the same (SeqNo, Level) pair.
func (idx Index) Equal(other Index) bool {
	return idx.SeqNo == other.SeqNo && idx.Level == other.Level
}

func (idx Index) String() string {
	return fmt.Sprintf("(%d, L%d)", idx.SeqNo, idx.Level)
}

// End is the exclusive upper bound of the range this index covers.
func (idx Index) End() uint64 {
	return idx.SeqNo + idx.Range
}
