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

// Type codes for the logger's TLV elements.
const (
	TypeNameComponent = 0x08
	TypeName          = 0x07

	TypeLoggerLeaf  = 0x80
	TypeTimestamp   = 0x81
	TypeDataSeqNo   = 0x82
	TypeSignerSeqNo = 0x83

	TypeLogResponse = 0x90
	TypeResultCode  = 0x91
	TypeResultMsg   = 0x92
)

// Block is a decoded (Type, Value) TLV element.
type Block struct {
	Type  uint64
	Value []byte
}

// AppendBlock appends the TLV encoding of (typ, value) to dst.
func AppendBlock(dst []byte, typ uint64, value []byte) []byte {
	dst = AppendVarNumber(dst, typ)
	dst = AppendVarNumber(dst, uint64(len(value)))
	return append(dst, value...)
}

// ReadBlock decodes one TLV element from the front of b, returning it and
// the number of bytes consumed.
func ReadBlock(b []byte) (Block, int, error) {
	typ, n1, err := ReadVarNumber(b)
	if err != nil {
		return Block{}, 0, err
	}
	length, n2, err := ReadVarNumber(b[n1:])
	if err != nil {
		return Block{}, 0, err
	}
	start := n1 + n2
	end := start + int(length)
	if end > len(b) {
		return Block{}, 0, ErrTruncated
	}
	return Block{Type: typ, Value: b[start:end]}, end, nil
}
