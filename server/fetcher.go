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

package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ndn-security/siglog/wire"
)

// HTTPFetcher is the default DataFetcher: it resolves a submitted data
// object's name against a peer network face reachable over HTTP. It
// stands in for the NDN Interest/Data exchange the core treats as an
// external collaborator.
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
}

// FetchData implements DataFetcher by issuing a GET for name under
// BaseURL.
func (f HTTPFetcher) FetchData(ctx context.Context, name wire.Name) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+name.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("server: build fetch request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server: fetch %s: %w", name.String(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server: fetch %s: status %d", name.String(), resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
