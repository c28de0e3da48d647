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

// EncodeNonNeg renders x as the canonical big-endian, minimal-length byte
// string used for every on-the-wire integer field: zero encodes as a
// single 0x00 byte, and there are never leading zero bytes otherwise.
func EncodeNonNeg(x uint64) []byte {
	if x == 0 {
		return []byte{0x00}
	}
	var buf [8]byte
	n := 0
	for v := x; v > 0; v >>= 8 {
		buf[n] = byte(v)
		n++
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = buf[n-1-i]
	}
	return out
}

// DecodeNonNeg parses a canonical big-endian non-negative integer. It
// rejects inputs with a leading zero byte (non-minimal) except for the
// single-byte zero encoding itself.
func DecodeNonNeg(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, ErrTruncated
	}
	if len(b) > 1 && b[0] == 0x00 {
		return 0, ErrNonMinimalEncoding
	}
	if len(b) > 8 {
		return 0, ErrMalformed
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}
