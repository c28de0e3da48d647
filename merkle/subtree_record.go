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
	"fmt"
	"time"

	"github.com/ndn-security/siglog/wire"
)

// incompleteFreshnessPeriod is the freshness advertised for a subtree
// record that has not yet filled; complete records advertise zero
// (immutable).
const incompleteFreshnessPeriod = 60 * time.Second

const componentComplete = "complete"

// nSubtreeSuffix is the number of name components appended after the
// logger's naming prefix: level, seqNo, marker, rootHash.
const nSubtreeSuffix = 4

// EncodeSubTree renders s as a signed subtree record under loggerName.
func EncodeSubTree(loggerName wire.Name, s *SubTreeBinary) wire.Record {
	if s.RootHash() == nil {
		emptyHash := EmptyHash()
		name := loggerName.
			AppendNonNeg(uint64(s.PeakIndex().Level)).
			AppendNonNeg(s.PeakIndex().SeqNo).
			AppendNonNeg(s.PeakIndex().SeqNo).
			Append(emptyHash[:])
		return wire.Record{Name: name, FreshnessPeriod: incompleteFreshnessPeriod}
	}

	name := loggerName.
		AppendNonNeg(uint64(s.PeakIndex().Level)).
		AppendNonNeg(s.PeakIndex().SeqNo)
	if s.IsFull() {
		name = name.Append([]byte(componentComplete))
	} else {
		name = name.AppendNonNeg(s.NextLeafSeqNo())
	}
	rootHash := *s.RootHash()
	name = name.Append(rootHash[:])

	var content []byte
	for _, h := range s.LeafHashes() {
		content = append(content, h[:]...)
	}

	freshness := time.Duration(0)
	if !s.IsFull() {
		freshness = incompleteFreshnessPeriod
	}

	return wire.Record{Name: name, FreshnessPeriod: freshness, Content: content}
}

// DecodeSubTree parses a subtree record under loggerName into a fresh
// SubTreeBinary, verifying the reconstructed root hash matches the one
// named in the record.
func DecodeSubTree(loggerName wire.Name, rec wire.Record, onComplete CompleteCallback, onRootUpdate RootUpdateCallback) (*SubTreeBinary, error) {
	if !loggerName.IsPrefixOf(rec.Name) {
		return nil, fmt.Errorf("%w: logger name does not match", ErrDecodeRecord)
	}
	if len(loggerName.Components)+nSubtreeSuffix != len(rec.Name.Components) {
		return nil, fmt.Errorf("%w: wrong name length", ErrDecodeRecord)
	}

	comps := rec.Name.Components
	levelComp := comps[len(comps)-4]
	seqNoComp := comps[len(comps)-3]
	markerComp := comps[len(comps)-2]
	rootHashComp := comps[len(comps)-1]

	level64, err := wire.DecodeNonNeg(levelComp)
	if err != nil {
		return nil, fmt.Errorf("%w: level: %v", ErrDecodeRecord, err)
	}
	level := uint(level64)
	seqNo, err := wire.DecodeNonNeg(seqNoComp)
	if err != nil {
		return nil, fmt.Errorf("%w: seqNo: %v", ErrDecodeRecord, err)
	}

	isComplete := string(markerComp) == componentComplete
	var nextSeqNo uint64
	if !isComplete {
		nextSeqNo, err = wire.DecodeNonNeg(markerComp)
		if err != nil {
			return nil, fmt.Errorf("%w: marker: %v", ErrDecodeRecord, err)
		}
	}

	if len(rootHashComp) != 32 {
		return nil, fmt.Errorf("%w: wrong root hash size", ErrDecodeRecord)
	}
	var rootHash [32]byte
	copy(rootHash[:], rootHashComp)

	var peakIndex Index
	if seqNo == 0 {
		peakLevel := uint(0)
		if level%subTreeStep != 0 {
			peakLevel = ((level + subTreeStep) / subTreeStep) * subTreeStep
		} else {
			peakLevel = level
		}
		if !isComplete && nextSeqNo == uint64(1)<<peakLevel {
			peakLevel += subTreeStep
		}
		peakIndex, err = NewIndex(seqNo, peakLevel)
	} else {
		peakIndex, err = NewIndex(seqNo, level)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeRecord, err)
	}

	s, err := NewSubTreeBinary(peakIndex, onComplete, onRootUpdate)
	if err != nil {
		return nil, err
	}

	if isComplete {
		nextSeqNo = peakIndex.SeqNo + peakIndex.Range
	} else if nextSeqNo == peakIndex.SeqNo {
		// canonical empty record: nothing more to reconstruct.
		return s, nil
	}

	if nextSeqNo <= peakIndex.SeqNo || nextSeqNo > peakIndex.SeqNo+peakIndex.Range {
		return nil, fmt.Errorf("%w: wrong current leaf seqNo", ErrDecodeRecord)
	}

	leafStep := uint64(1) << s.LeafLevel()
	nLeaves := int((nextSeqNo-peakIndex.SeqNo-1)/leafStep) + 1
	if nLeaves*32 != len(rec.Content) {
		return nil, fmt.Errorf("%w: inconsistent content length", ErrDecodeRecord)
	}

	for i := 0; i < nLeaves; i++ {
		leafSeqNo := peakIndex.SeqNo + uint64(i)*leafStep
		var leafHash [32]byte
		copy(leafHash[:], rec.Content[i*32:(i+1)*32])

		coveredUpTo := leafSeqNo + leafStep
		if i == nLeaves-1 {
			coveredUpTo = nextSeqNo
		}
		leafNode, err := NewNode(leafSeqNo, s.LeafLevel(), coveredUpTo, &leafHash)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeRecord, err)
		}
		if !s.AddLeaf(leafNode) {
			return nil, fmt.Errorf("%w: rejected reconstructed leaf", ErrDecodeRecord)
		}
	}

	if s.RootHash() == nil || *s.RootHash() != rootHash {
		return nil, ErrInconsistentHash
	}
	return s, nil
}
