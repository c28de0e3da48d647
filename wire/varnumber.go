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

import "encoding/binary"

// VarNumber is the NDN TLV variable-size-integer encoding used for every
// Type and Length field: values below 253 are a single byte; larger values
// are prefixed with a one-byte marker (0xFD/0xFE/0xFF) selecting a 2/4/8
// byte big-endian payload.
func AppendVarNumber(dst []byte, v uint64) []byte {
	switch {
	case v < 253:
		return append(dst, byte(v))
	case v <= 0xFFFF:
		dst = append(dst, 0xFD)
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(v))
		return append(dst, buf[:]...)
	case v <= 0xFFFFFFFF:
		dst = append(dst, 0xFE)
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(v))
		return append(dst, buf[:]...)
	default:
		dst = append(dst, 0xFF)
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], v)
		return append(dst, buf[:]...)
	}
}

// ReadVarNumber decodes a VarNumber from the front of b, returning the
// value and the number of bytes consumed.
func ReadVarNumber(b []byte) (uint64, int, error) {
	if len(b) < 1 {
		return 0, 0, ErrTruncated
	}
	switch b[0] {
	case 0xFD:
		if len(b) < 3 {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint16(b[1:3])), 3, nil
	case 0xFE:
		if len(b) < 5 {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint32(b[1:5])), 5, nil
	case 0xFF:
		if len(b) < 9 {
			return 0, 0, ErrTruncated
		}
		return binary.BigEndian.Uint64(b[1:9]), 9, nil
	default:
		return uint64(b[0]), 1, nil
	}
}
