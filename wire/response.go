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

import "fmt"

// ResultCode classifies a LoggerResponse.
type ResultCode uint64

const (
	Accept       ResultCode = 0
	TreeError    ResultCode = 1
	PolicyError  ResultCode = 2
	SignerError  ResultCode = 3
)

func (c ResultCode) String() string {
	switch c {
	case Accept:
		return "Accept"
	case TreeError:
		return "TreeError"
	case PolicyError:
		return "PolicyError"
	case SignerError:
		return "SignerError"
	default:
		return fmt.Sprintf("ResultCode(%d)", uint64(c))
	}
}

// LoggerResponse is the submission-result record: on Accept it carries the
// assigned DataSeqNo; on any other code it carries a human-readable
// ResultMsg instead.
type LoggerResponse struct {
	Code      ResultCode
	DataSeqNo uint64
	Msg       string
}

// Encode renders the LogResponse TLV: ResultCode always first, followed by
// either DataSeqNo (Accept) or ResultMsg (any other code).
func (r LoggerResponse) Encode() []byte {
	var body []byte
	body = AppendBlock(body, TypeResultCode, EncodeNonNeg(uint64(r.Code)))
	if r.Code == Accept {
		body = AppendBlock(body, TypeDataSeqNo, EncodeNonNeg(r.DataSeqNo))
	} else {
		body = AppendBlock(body, TypeResultMsg, []byte(r.Msg))
	}
	return AppendBlock(nil, TypeLogResponse, body)
}

// DecodeResponse parses a LogResponse TLV produced by Encode.
func DecodeResponse(b []byte) (LoggerResponse, error) {
	blk, _, err := ReadBlock(b)
	if err != nil {
		return LoggerResponse{}, err
	}
	if blk.Type != TypeLogResponse {
		return LoggerResponse{}, fmt.Errorf("%w: want LogResponse got %d", ErrUnexpectedType, blk.Type)
	}
	rest := blk.Value

	codeBlk, n, err := ReadBlock(rest)
	if err != nil {
		return LoggerResponse{}, err
	}
	if codeBlk.Type != TypeResultCode {
		return LoggerResponse{}, fmt.Errorf("%w: want ResultCode got %d", ErrUnexpectedType, codeBlk.Type)
	}
	codeVal, err := DecodeNonNeg(codeBlk.Value)
	if err != nil {
		return LoggerResponse{}, err
	}
	rest = rest[n:]

	resp := LoggerResponse{Code: ResultCode(codeVal)}
	if resp.Code == Accept {
		dsBlk, _, err := ReadBlock(rest)
		if err != nil {
			return LoggerResponse{}, err
		}
		if dsBlk.Type != TypeDataSeqNo {
			return LoggerResponse{}, fmt.Errorf("%w: want DataSeqNo got %d", ErrUnexpectedType, dsBlk.Type)
		}
		ds, err := DecodeNonNeg(dsBlk.Value)
		if err != nil {
			return LoggerResponse{}, err
		}
		resp.DataSeqNo = ds
		return resp, nil
	}

	msgBlk, _, err := ReadBlock(rest)
	if err != nil {
		return LoggerResponse{}, err
	}
	if msgBlk.Type != TypeResultMsg {
		return LoggerResponse{}, fmt.Errorf("%w: want ResultMsg got %d", ErrUnexpectedType, msgBlk.Type)
	}
	resp.Msg = string(msgBlk.Value)
	return resp, nil
}
