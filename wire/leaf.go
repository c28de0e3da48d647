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
	"crypto/sha256"
	"fmt"
)

// Leaf is the payload whose digest becomes a base-level leaf hash in the
// history tree. It sits outside the hash tree itself, recorded verbatim in
// the leaves table so the submission it backs can be reproduced for an
// audit.
type Leaf struct {
	DataName    Name
	Timestamp   uint64
	DataSeqNo   uint64
	SignerSeqNo uint64
}

// EncodeContent renders the canonical LoggerLeaf TLV: Name, Timestamp,
// DataSeqNo, SignerSeqNo in that order. This is the byte string hashed to
// produce the leaf's base-level hash.
func (l Leaf) EncodeContent() []byte {
	var body []byte
	body = append(body, l.DataName.Encode()...)
	body = AppendBlock(body, TypeTimestamp, EncodeNonNeg(l.Timestamp))
	body = AppendBlock(body, TypeDataSeqNo, EncodeNonNeg(l.DataSeqNo))
	body = AppendBlock(body, TypeSignerSeqNo, EncodeNonNeg(l.SignerSeqNo))
	return AppendBlock(nil, TypeLoggerLeaf, body)
}

// Hash returns SHA256(EncodeContent()), the base-level leaf hash fed to
// the history tree.
func (l Leaf) Hash() [32]byte {
	return sha256.Sum256(l.EncodeContent())
}

// DecodeLeafContent parses a LoggerLeaf TLV block (the return value of
// EncodeContent) back into a Leaf.
func DecodeLeafContent(b []byte) (Leaf, error) {
	blk, _, err := ReadBlock(b)
	if err != nil {
		return Leaf{}, err
	}
	if blk.Type != TypeLoggerLeaf {
		return Leaf{}, fmt.Errorf("%w: want LoggerLeaf got %d", ErrUnexpectedType, blk.Type)
	}
	rest := blk.Value
	name, n, err := DecodeName(rest)
	if err != nil {
		return Leaf{}, err
	}
	rest = rest[n:]

	tsBlk, n, err := ReadBlock(rest)
	if err != nil {
		return Leaf{}, err
	}
	if tsBlk.Type != TypeTimestamp {
		return Leaf{}, fmt.Errorf("%w: want Timestamp got %d", ErrUnexpectedType, tsBlk.Type)
	}
	ts, err := DecodeNonNeg(tsBlk.Value)
	if err != nil {
		return Leaf{}, err
	}
	rest = rest[n:]

	dsBlk, n, err := ReadBlock(rest)
	if err != nil {
		return Leaf{}, err
	}
	if dsBlk.Type != TypeDataSeqNo {
		return Leaf{}, fmt.Errorf("%w: want DataSeqNo got %d", ErrUnexpectedType, dsBlk.Type)
	}
	ds, err := DecodeNonNeg(dsBlk.Value)
	if err != nil {
		return Leaf{}, err
	}
	rest = rest[n:]

	ssBlk, _, err := ReadBlock(rest)
	if err != nil {
		return Leaf{}, err
	}
	if ssBlk.Type != TypeSignerSeqNo {
		return Leaf{}, fmt.Errorf("%w: want SignerSeqNo got %d", ErrUnexpectedType, ssBlk.Type)
	}
	ss, err := DecodeNonNeg(ssBlk.Value)
	if err != nil {
		return Leaf{}, err
	}

	return Leaf{DataName: name, Timestamp: ts, DataSeqNo: ds, SignerSeqNo: ss}, nil
}

// RecordName builds the logger-leaf record name: loggerName / enc(dataSeqNo)
// / rawBytes(leafHash), the four-component logger-leaf suffix.
func RecordName(loggerName Name, dataSeqNo uint64, leafHash [32]byte) Name {
	n := loggerName.AppendNonNeg(dataSeqNo)
	return n.Append(leafHash[:])
}
