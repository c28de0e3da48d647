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

// Package wire implements the TLV wire encoding shared by leaf records,
// subtree records, and the submission response — the on-the-wire
// conventions an NDN-style data-centric network imposes on this logger.
package wire

import "errors"

var (
	// ErrTruncated is returned by VarNumber/TLV decoders when the input
	// ends before a declared length is satisfied.
	ErrTruncated = errors.New("wire: truncated input")

	// ErrUnexpectedType is returned when a decoder finds a TLV block
	// whose type does not match what the caller expected at that
	// position.
	ErrUnexpectedType = errors.New("wire: unexpected TLV type")

	// ErrNonMinimalEncoding is returned when a NonNegativeInteger is
	// found encoded with leading zero bytes.
	ErrNonMinimalEncoding = errors.New("wire: non-minimal integer encoding")

	ErrMalformed = errors.New("wire: malformed record")
)
