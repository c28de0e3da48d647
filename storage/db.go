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

// Package storage implements the durable subtree and leaf store backing
// the history tree: an embedded SQLite database opened once per process
// and accessed through a single *sql.DB handle.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ndn-security/siglog/internal/metrics"
	"github.com/ndn-security/siglog/merkle"
)

// ErrNotFound is returned by lookups that find no matching row.
var ErrNotFound = errors.New("storage: not found")

const schema = `
CREATE TABLE IF NOT EXISTS complete_subtrees (
	level INTEGER NOT NULL,
	seqNo INTEGER NOT NULL,
	record_bytes BLOB NOT NULL,
	PRIMARY KEY (level, seqNo)
);

CREATE TABLE IF NOT EXISTS pending_subtrees (
	level INTEGER NOT NULL,
	seqNo INTEGER NOT NULL,
	next_leaf_seqNo INTEGER NOT NULL,
	record_bytes BLOB NOT NULL,
	PRIMARY KEY (level, seqNo)
);

CREATE TRIGGER IF NOT EXISTS complete_subtrees_promote
AFTER INSERT ON complete_subtrees
BEGIN
	DELETE FROM pending_subtrees WHERE level = NEW.level AND seqNo = NEW.seqNo;
END;

CREATE TABLE IF NOT EXISTS leaves (
	data_seqNo INTEGER PRIMARY KEY,
	data_name_bytes BLOB NOT NULL,
	signer_seqNo INTEGER NOT NULL,
	timestamp INTEGER NOT NULL,
	is_cert INTEGER NOT NULL DEFAULT 0,
	cert_bytes BLOB
);
`

// Db is the logger's exclusive handle onto its embedded relational store.
// It is opened once at process startup and closed on shutdown; every
// operation goes through this single *sql.DB.
type Db struct {
	sqldb         *sql.DB
	nextLeafSeqNo uint64
}

// Open creates dir if necessary, opens (or creates) the SQLite file inside
// it, runs the schema migration idempotently, and recovers nextLeafSeqNo
// from the leaves table.
func Open(dir string) (*Db, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create db dir: %w", err)
	}
	path := filepath.Join(dir, "siglog.sqlite3")

	sqldb, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite3: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	if _, err := sqldb.Exec(schema); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}

	db := &Db{sqldb: sqldb}
	if err := db.recoverNextLeafSeqNo(); err != nil {
		sqldb.Close()
		return nil, err
	}
	glog.V(1).Infof("storage: opened %s, nextLeafSeqNo=%d", path, db.nextLeafSeqNo)
	return db, nil
}

func (db *Db) recoverNextLeafSeqNo() error {
	var count uint64
	if err := db.sqldb.QueryRow(`SELECT COUNT(*) FROM leaves`).Scan(&count); err != nil {
		return fmt.Errorf("storage: recover nextLeafSeqNo: %w", err)
	}
	db.nextLeafSeqNo = count
	return nil
}

// NextLeafSeqNo returns the count of leaves currently in the store.
func (db *Db) NextLeafSeqNo() uint64 { return db.nextLeafSeqNo }

// Close releases the underlying SQLite handle.
func (db *Db) Close() error {
	return db.sqldb.Close()
}

// InsertSubTreeData stores a subtree record. Complete inserts are
// insert-only (a duplicate (level, seqNo) is reported as an error);
// pending inserts are an upsert, since the rightmost-spine subtree at a
// given tier is rewritten on every save.
func (db *Db) InsertSubTreeData(level uint, seqNo uint64, data []byte, isComplete bool, nextLeafSeqNo uint64) error {
	start := time.Now()
	defer func() { metrics.DbInsertLatency.Observe(time.Since(start).Seconds()) }()

	if isComplete {
		_, err := db.sqldb.Exec(
			`INSERT INTO complete_subtrees (level, seqNo, record_bytes) VALUES (?, ?, ?)`,
			level, seqNo, data)
		if err != nil {
			return fmt.Errorf("storage: insert complete subtree (%d,%d): %w", level, seqNo, err)
		}
		metrics.SubtreesCompleted.Inc()
		return nil
	}

	_, err := db.sqldb.Exec(
		`INSERT INTO pending_subtrees (level, seqNo, next_leaf_seqNo, record_bytes) VALUES (?, ?, ?, ?)
		 ON CONFLICT(level, seqNo) DO UPDATE SET next_leaf_seqNo = excluded.next_leaf_seqNo, record_bytes = excluded.record_bytes`,
		level, seqNo, nextLeafSeqNo, data)
	if err != nil {
		return fmt.Errorf("storage: upsert pending subtree (%d,%d): %w", level, seqNo, err)
	}
	return nil
}

// GetSubTreeData returns a subtree record, checking the complete table
// first and falling back to pending.
func (db *Db) GetSubTreeData(level uint, seqNo uint64) ([]byte, error) {
	var data []byte
	err := db.sqldb.QueryRow(
		`SELECT record_bytes FROM complete_subtrees WHERE level = ? AND seqNo = ?`, level, seqNo,
	).Scan(&data)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: get complete subtree (%d,%d): %w", level, seqNo, err)
	}

	err = db.sqldb.QueryRow(
		`SELECT record_bytes FROM pending_subtrees WHERE level = ? AND seqNo = ?`, level, seqNo,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get pending subtree (%d,%d): %w", level, seqNo, err)
	}
	return data, nil
}

// GetPendingSubTrees returns every pending row, ordered by level
// descending so the root-most tier appears first. The return type
// satisfies merkle.Store so *Db can back a MerkleTree directly.
func (db *Db) GetPendingSubTrees() ([]merkle.PendingRow, error) {
	rows, err := db.sqldb.Query(
		`SELECT level, seqNo, next_leaf_seqNo, record_bytes FROM pending_subtrees ORDER BY level DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage: list pending subtrees: %w", err)
	}
	defer rows.Close()

	var out []merkle.PendingRow
	for rows.Next() {
		var r merkle.PendingRow
		if err := rows.Scan(&r.Level, &r.SeqNo, &r.NextLeafSeqNo, &r.Data); err != nil {
			return nil, fmt.Errorf("storage: scan pending subtree row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Leaf is the durable record backing a base-level leaf hash.
type Leaf struct {
	DataSeqNo     uint64
	DataNameBytes []byte
	SignerSeqNo   uint64
	Timestamp     uint64
	IsCert        bool
	CertBytes     []byte
}

// InsertLeafData appends leaf, failing unless leaf.DataSeqNo equals the
// store's current nextLeafSeqNo (leaves are inserted in strict monotonic
// order).
func (db *Db) InsertLeafData(leaf Leaf) error {
	if leaf.DataSeqNo != db.nextLeafSeqNo {
		return fmt.Errorf("storage: insert leaf: expected seqNo %d, got %d", db.nextLeafSeqNo, leaf.DataSeqNo)
	}
	start := time.Now()
	defer func() { metrics.DbInsertLatency.Observe(time.Since(start).Seconds()) }()

	var certBytes interface{}
	if leaf.CertBytes != nil {
		certBytes = leaf.CertBytes
	}
	isCert := 0
	if leaf.IsCert {
		isCert = 1
	}
	_, err := db.sqldb.Exec(
		`INSERT INTO leaves (data_seqNo, data_name_bytes, signer_seqNo, timestamp, is_cert, cert_bytes) VALUES (?, ?, ?, ?, ?, ?)`,
		leaf.DataSeqNo, leaf.DataNameBytes, leaf.SignerSeqNo, leaf.Timestamp, isCert, certBytes)
	if err != nil {
		return fmt.Errorf("storage: insert leaf %d: %w", leaf.DataSeqNo, err)
	}
	db.nextLeafSeqNo++
	metrics.LeavesAppended.Inc()
	return nil
}

// GetLeaf returns the leaf at seqNo and its certificate bytes, if any.
func (db *Db) GetLeaf(seqNo uint64) (Leaf, error) {
	var l Leaf
	var isCert int
	var certBytes []byte
	err := db.sqldb.QueryRow(
		`SELECT data_seqNo, data_name_bytes, signer_seqNo, timestamp, is_cert, cert_bytes FROM leaves WHERE data_seqNo = ?`,
		seqNo,
	).Scan(&l.DataSeqNo, &l.DataNameBytes, &l.SignerSeqNo, &l.Timestamp, &isCert, &certBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return Leaf{}, ErrNotFound
	}
	if err != nil {
		return Leaf{}, fmt.Errorf("storage: get leaf %d: %w", seqNo, err)
	}
	l.IsCert = isCert != 0
	l.CertBytes = certBytes
	return l, nil
}

// GetMaxLeafSeq returns the highest data_seqNo stored, or ErrNotFound if
// the leaves table is empty.
func (db *Db) GetMaxLeafSeq() (uint64, error) {
	var max sql.NullInt64
	if err := db.sqldb.QueryRow(`SELECT MAX(data_seqNo) FROM leaves`).Scan(&max); err != nil {
		return 0, fmt.Errorf("storage: get max leaf seq: %w", err)
	}
	if !max.Valid {
		return 0, ErrNotFound
	}
	return uint64(max.Int64), nil
}
