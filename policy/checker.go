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

// Package policy implements the submission-policy checker contract: the
// logger's core treats policy as an external collaborator, so this
// package gives that collaborator a concrete, testable shape.
package policy

import "fmt"

// Checker decides whether a submission, identified by the signer's and
// the data's own sequence numbers, may be appended to the log.
type Checker interface {
	// Check returns nil if the submission is accepted, or an error
	// describing why it was rejected.
	Check(signerSeqNo, dataSeqNo uint64) error
}

// SeqNoPolicy enforces the one rule the core states explicitly: a
// submission can only be signed by a prior or self log entry.
type SeqNoPolicy struct{}

// Check implements Checker.
func (SeqNoPolicy) Check(signerSeqNo, dataSeqNo uint64) error {
	if signerSeqNo > dataSeqNo {
		return fmt.Errorf("policy: signerSeqNo %d exceeds dataSeqNo %d", signerSeqNo, dataSeqNo)
	}
	return nil
}
