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
	"bytes"
	"fmt"
	"strings"
)

// Name is an ordered sequence of opaque components, the network's naming
// convention for both leaf and subtree records.
type Name struct {
	Components [][]byte
}

// NameFromSlash builds a Name from a "/"-separated path such as
// "/test/logger"; empty segments (a leading slash, or "//") are skipped.
func NameFromSlash(path string) Name {
	var n Name
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		n.Components = append(n.Components, []byte(seg))
	}
	return n
}

// Append returns a new Name with comp appended.
func (n Name) Append(comp []byte) Name {
	out := Name{Components: make([][]byte, len(n.Components)+1)}
	copy(out.Components, n.Components)
	out.Components[len(n.Components)] = comp
	return out
}

// AppendNonNeg appends the canonical encoding of x as a new component.
func (n Name) AppendNonNeg(x uint64) Name {
	return n.Append(EncodeNonNeg(x))
}

// IsPrefixOf reports whether n is a component-wise prefix of other.
func (n Name) IsPrefixOf(other Name) bool {
	if len(n.Components) > len(other.Components) {
		return false
	}
	for i, c := range n.Components {
		if !bytes.Equal(c, other.Components[i]) {
			return false
		}
	}
	return true
}

// Encode renders the Name as a TLV-0x07 wrapped sequence of TLV-0x08
// components.
func (n Name) Encode() []byte {
	var body []byte
	for _, c := range n.Components {
		body = AppendBlock(body, TypeNameComponent, c)
	}
	return AppendBlock(nil, TypeName, body)
}

// DecodeName parses a TLV-0x07 Name block from the front of b, returning
// the Name and bytes consumed.
func DecodeName(b []byte) (Name, int, error) {
	blk, consumed, err := ReadBlock(b)
	if err != nil {
		return Name{}, 0, err
	}
	if blk.Type != TypeName {
		return Name{}, 0, fmt.Errorf("%w: want Name got %d", ErrUnexpectedType, blk.Type)
	}
	var n Name
	rest := blk.Value
	for len(rest) > 0 {
		cblk, cn, err := ReadBlock(rest)
		if err != nil {
			return Name{}, 0, err
		}
		if cblk.Type != TypeNameComponent {
			return Name{}, 0, fmt.Errorf("%w: want NameComponent got %d", ErrUnexpectedType, cblk.Type)
		}
		n.Components = append(n.Components, cblk.Value)
		rest = rest[cn:]
	}
	return n, consumed, nil
}

func (n Name) String() string {
	var sb strings.Builder
	for _, c := range n.Components {
		sb.WriteByte('/')
		sb.Write(c)
	}
	return sb.String()
}
