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
	"time"
)

// NDN Data packet type codes, reused here for both leaf and subtree
// records; the logger only ever produces digest-sha256 signed packets.
const (
	TypeData            = 0x06
	TypeMetaInfo         = 0x14
	TypeContent          = 0x15
	TypeSignatureInfo    = 0x16
	TypeSignatureValue   = 0x17
	TypeFreshnessPeriod  = 0x19
	TypeSignatureType    = 0x1B
	SignatureTypeDigestSha256 = 0
)

// Record is a signed data object: a Name, a freshness period, opaque
// content, and a SHA-256 digest signature over everything preceding the
// signature value.
type Record struct {
	Name             Name
	FreshnessPeriod  time.Duration
	Content          []byte
}

// Encode renders the record as a TLV-0x06 Data packet with a
// digest-sha256 SignatureValue appended.
func (r Record) Encode() []byte {
	var body []byte
	body = append(body, r.Name.Encode()...)

	freshnessMs := uint64(r.FreshnessPeriod / time.Millisecond)
	metaBody := AppendBlock(nil, TypeFreshnessPeriod, EncodeNonNeg(freshnessMs))
	body = AppendBlock(body, TypeMetaInfo, metaBody)

	body = AppendBlock(body, TypeContent, r.Content)

	sigInfoBody := AppendBlock(nil, TypeSignatureType, EncodeNonNeg(SignatureTypeDigestSha256))
	body = AppendBlock(body, TypeSignatureInfo, sigInfoBody)

	prefix := AppendBlock(nil, TypeData, body)
	sum := sha256.Sum256(prefix)
	sigBlock := AppendBlock(nil, TypeSignatureValue, sum[:])
	return append(prefix, sigBlock...)
}

// DecodeRecord parses and verifies a Record produced by Encode, rejecting
// it if the trailing SignatureValue does not match the digest of the
// preceding bytes.
func DecodeRecord(b []byte) (Record, error) {
	dataBlk, consumed, err := ReadBlock(b)
	if err != nil {
		return Record{}, err
	}
	if dataBlk.Type != TypeData {
		return Record{}, fmt.Errorf("%w: want Data got %d", ErrUnexpectedType, dataBlk.Type)
	}
	if consumed > len(b) {
		return Record{}, ErrTruncated
	}
	sigBlk, _, err := ReadBlock(b[consumed:])
	if err != nil {
		return Record{}, err
	}
	if sigBlk.Type != TypeSignatureValue {
		return Record{}, fmt.Errorf("%w: want SignatureValue got %d", ErrUnexpectedType, sigBlk.Type)
	}
	want := sha256.Sum256(b[:consumed])
	if !bytesEqual(want[:], sigBlk.Value) {
		return Record{}, fmt.Errorf("%w: signature digest mismatch", ErrMalformed)
	}

	rest := dataBlk.Value
	name, n, err := DecodeName(rest)
	if err != nil {
		return Record{}, err
	}
	rest = rest[n:]

	metaBlk, n, err := ReadBlock(rest)
	if err != nil {
		return Record{}, err
	}
	if metaBlk.Type != TypeMetaInfo {
		return Record{}, fmt.Errorf("%w: want MetaInfo got %d", ErrUnexpectedType, metaBlk.Type)
	}
	rest = rest[n:]

	var freshness time.Duration
	if len(metaBlk.Value) > 0 {
		fpBlk, _, err := ReadBlock(metaBlk.Value)
		if err != nil {
			return Record{}, err
		}
		ms, err := DecodeNonNeg(fpBlk.Value)
		if err != nil {
			return Record{}, err
		}
		freshness = time.Duration(ms) * time.Millisecond
	}

	contentBlk, n, err := ReadBlock(rest)
	if err != nil {
		return Record{}, err
	}
	if contentBlk.Type != TypeContent {
		return Record{}, fmt.Errorf("%w: want Content got %d", ErrUnexpectedType, contentBlk.Type)
	}
	rest = rest[n:]

	if len(rest) > 0 {
		sigInfoBlk, _, err := ReadBlock(rest)
		if err != nil {
			return Record{}, err
		}
		if sigInfoBlk.Type != TypeSignatureInfo {
			return Record{}, fmt.Errorf("%w: want SignatureInfo got %d", ErrUnexpectedType, sigInfoBlk.Type)
		}
	}

	return Record{Name: name, FreshnessPeriod: freshness, Content: contentBlk.Value}, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
