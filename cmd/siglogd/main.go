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

// Command siglogd runs the signature-log daemon: it loads an info-tree
// config file, opens the embedded store, reconstructs the pending forest,
// and serves the subtree/leaf/submission HTTP surface.
package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/ndn-security/siglog/internal/confparse"
	"github.com/ndn-security/siglog/merkle"
	"github.com/ndn-security/siglog/policy"
	"github.com/ndn-security/siglog/server"
	"github.com/ndn-security/siglog/storage"
	"github.com/ndn-security/siglog/wire"
)

var configPath = flag.String("config", "", "path to the logger's info-tree config file")

func main() {
	flag.Parse()

	if *configPath == "" {
		glog.Errorf("siglogd: -config is required")
		os.Exit(1)
	}

	if err := run(*configPath); err != nil {
		glog.Errorf("siglogd: %v", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	root, err := confparse.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	loggerNameNode := root.Get("logger-name")
	if loggerNameNode == nil {
		return errors.New("siglogd: logger-name is required")
	}
	loggerName := wire.NameFromSlash(loggerNameNode.Value)

	dbDir := filepath.Dir(configPath)
	if n := root.Get("db-dir"); n != nil {
		dbDir = n.Value
	}

	listen := ":8080"
	if n := root.Get("listen"); n != nil {
		listen = n.Value
	}

	fetchBaseURL := ""
	if n := root.Get("fetch-base-url"); n != nil {
		fetchBaseURL = n.Value
	}

	db, err := storage.Open(dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	tree, err := merkle.NewMerkleTree(loggerName, db)
	if err != nil {
		return err
	}

	fetcher := server.HTTPFetcher{BaseURL: fetchBaseURL}
	srv := server.New(loggerName, tree, db, policy.SeqNoPolicy{}, fetcher)

	glog.Infof("siglogd: serving %s on %s (db=%s)", loggerName.String(), listen, dbDir)
	return http.ListenAndServe(listen, srv)
}
