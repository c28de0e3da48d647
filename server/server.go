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

// Package server gives the out-of-scope network component a concrete,
// testable shape: a thin HTTP face, routed with gorilla/mux, translating
// subtree lookups, leaf lookups, and log submissions onto the core's
// MerkleTree, Db, and policy.Checker collaborators.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ndn-security/siglog/policy"
	"github.com/ndn-security/siglog/storage"
	"github.com/ndn-security/siglog/wire"
)

// nowFunc is swapped out in tests that need a deterministic Timestamp.
var nowFunc = time.Now

// DefaultFetchRetries is the retry budget for fetching a submitted data
// object's bytes after the original attempt. Exposed as a constructor
// Option rather than hard-coded, so a deployment can tune it without a
// core change.
const DefaultFetchRetries = 2

// DataFetcher retrieves the bytes of a named data object over the
// network. This stands in for the out-of-scope NDN Interest/Data
// exchange: the submission request names the object, and a separate
// round trip (modeled here) fetches its content.
type DataFetcher interface {
	FetchData(ctx context.Context, name wire.Name) ([]byte, error)
}

// Tree is the subset of *merkle.MerkleTree the server depends on.
type Tree interface {
	AddLeaf(seqNo uint64, hash [32]byte) bool
	NextLeafSeqNo() uint64
	RootHash() *[32]byte
	GetPendingSubTreeData(level uint) ([]byte, bool)
	PendingPeakSeqNo(level uint) (uint64, bool)
	SavePendingTree() error
}

// Store is the subset of *storage.Db the server depends on for serving
// queries and persisting accepted leaves.
type Store interface {
	GetSubTreeData(level uint, seqNo uint64) ([]byte, error)
	GetLeaf(seqNo uint64) (storage.Leaf, error)
	InsertLeafData(leaf storage.Leaf) error
}

// Server is the logger's request-response surface.
type Server struct {
	loggerName   wire.Name
	tree         Tree
	db           Store
	checker      policy.Checker
	fetcher      DataFetcher
	fetchRetries int
	router       *mux.Router
}

// Option configures optional Server behavior.
type Option func(*Server)

// WithFetchRetries overrides DefaultFetchRetries.
func WithFetchRetries(n int) Option {
	return func(s *Server) { s.fetchRetries = n }
}

// New constructs a Server wired to the given forest, store, and policy
// checker. fetcher resolves submitted data-object names to bytes.
func New(loggerName wire.Name, tree Tree, db Store, checker policy.Checker, fetcher DataFetcher, opts ...Option) *Server {
	s := &Server{
		loggerName:   loggerName,
		tree:         tree,
		db:           db,
		checker:      checker,
		fetcher:      fetcher,
		fetchRetries: DefaultFetchRetries,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.HandleFunc("/tree/{level:[0-9]+}/{seqno:[0-9]+}", s.handleTree).Methods(http.MethodGet)
	r.HandleFunc("/leaf/{seqno:[0-9]+}", s.handleLeaf).Methods(http.MethodGet)
	r.HandleFunc("/leaf/{seqno:[0-9]+}/{hash}", s.handleLeaf).Methods(http.MethodGet)
	r.HandleFunc("/log/{dataName:.+}/{signerSeqNo:[0-9]+}/{signature}", s.handleSubmit).Methods(http.MethodPost)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	level64, err := strconv.ParseUint(vars["level"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	level := uint(level64)
	seqNo, err := strconv.ParseUint(vars["seqno"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if peak, ok := s.tree.PendingPeakSeqNo(level); ok && peak == seqNo {
		data, _ := s.tree.GetPendingSubTreeData(level)
		writeRecordBytes(w, data)
		return
	}

	data, err := s.db.GetSubTreeData(level, seqNo)
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		glog.Warningf("server: get subtree (%d,%d): %v", level, seqNo, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeRecordBytes(w, data)
}

func (s *Server) handleLeaf(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	seqNo, err := strconv.ParseUint(vars["seqno"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	leaf, err := s.db.GetLeaf(seqNo)
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		glog.Warningf("server: get leaf %d: %v", seqNo, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	name, _, err := wire.DecodeName(leaf.DataNameBytes)
	if err != nil {
		glog.Errorf("server: leaf %d has undecodable name bytes: %v", seqNo, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	wireLeaf := wire.Leaf{DataName: name, Timestamp: leaf.Timestamp, DataSeqNo: leaf.DataSeqNo, SignerSeqNo: leaf.SignerSeqNo}
	leafHash := wireLeaf.Hash()

	if wantHex, ok := vars["hash"]; ok {
		wantHash, err := decodeHexHash(wantHex)
		if err != nil || wantHash != leafHash {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}

	rec := wire.Record{
		Name:    wire.RecordName(s.loggerName, seqNo, leafHash),
		Content: wireLeaf.EncodeContent(),
	}
	writeRecordBytes(w, rec.Encode())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	signerSeqNo, err := strconv.ParseUint(vars["signerSeqNo"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	corrID := uuid.New().String()
	dataName := wire.NameFromSlash(vars["dataName"])
	glog.V(2).Infof("submission %s: fetching %s (signerSeqNo=%d)", corrID, dataName.String(), signerSeqNo)

	// The request names the submitted data object; its bytes are fetched
	// separately (the out-of-scope validator's concern) so the policy
	// checker has something to evaluate against. A fetch that never
	// succeeds within the retry budget drops the submission silently.
	if _, err := s.fetchWithRetries(r.Context(), dataName); err != nil {
		glog.Warningf("submission %s: fetch exhausted retries: %v", corrID, err)
		dropConnection(w)
		return
	}

	dataSeqNo := s.tree.NextLeafSeqNo()
	if err := s.checker.Check(signerSeqNo, dataSeqNo); err != nil {
		glog.V(1).Infof("submission %s: policy rejected: %v", corrID, err)
		writeResponse(w, wire.LoggerResponse{Code: wire.PolicyError, Msg: err.Error()})
		return
	}

	leaf := wire.Leaf{
		DataName:    dataName,
		Timestamp:   uint64(nowFunc().Unix()),
		DataSeqNo:   dataSeqNo,
		SignerSeqNo: signerSeqNo,
	}
	leafHash := leaf.Hash()
	if !s.tree.AddLeaf(leaf.DataSeqNo, leafHash) {
		glog.Warningf("submission %s: tree rejected leaf %d", corrID, leaf.DataSeqNo)
		writeResponse(w, wire.LoggerResponse{Code: wire.TreeError, Msg: "leaf rejected by tree"})
		return
	}

	if err := s.db.InsertLeafData(storage.Leaf{
		DataSeqNo:     leaf.DataSeqNo,
		DataNameBytes: leaf.DataName.Encode(),
		SignerSeqNo:   leaf.SignerSeqNo,
		Timestamp:     leaf.Timestamp,
	}); err != nil {
		glog.Errorf("submission %s: persist leaf %d: %v", corrID, leaf.DataSeqNo, err)
		writeResponse(w, wire.LoggerResponse{Code: wire.TreeError, Msg: "store failure"})
		return
	}

	if err := s.tree.SavePendingTree(); err != nil {
		glog.Errorf("submission %s: persist pending subtrees after leaf %d: %v", corrID, leaf.DataSeqNo, err)
		writeResponse(w, wire.LoggerResponse{Code: wire.TreeError, Msg: "store failure"})
		return
	}

	glog.V(2).Infof("submission %s: accepted as seqNo %d", corrID, leaf.DataSeqNo)
	writeResponse(w, wire.LoggerResponse{Code: wire.Accept, DataSeqNo: leaf.DataSeqNo})
}

// fetchWithRetries calls fetcher.FetchData up to 1+fetchRetries times,
// returning the first success. On exhaustion it returns the last error.
func (s *Server) fetchWithRetries(ctx context.Context, name wire.Name) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= s.fetchRetries; attempt++ {
		data, err := s.fetcher.FetchData(ctx, name)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func writeResponse(w http.ResponseWriter, resp wire.LoggerResponse) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(resp.Encode())
}

func writeRecordBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

// dropConnection abandons the submission without a response: it hijacks
// the raw connection and closes it instead of writing any HTTP reply.
func dropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		w.WriteHeader(http.StatusGatewayTimeout)
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}
	conn.Close()
}

func decodeHexHash(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) != 64 {
		return out, errBadHash
	}
	for i := 0; i < 32; i++ {
		b, err := hexByte(s[i*2], s[i*2+1])
		if err != nil {
			return out, err
		}
		out[i] = b
	}
	return out, nil
}

var errBadHash = errors.New("server: malformed hash path component")

func hexByte(hi, lo byte) (byte, error) {
	h, err := hexNibble(hi)
	if err != nil {
		return 0, err
	}
	l, err := hexNibble(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, errBadHash
	}
}
