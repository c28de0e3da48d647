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

package confparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConf = `
; top-level logger identity
logger-name /test/logger
db-dir /var/lib/siglog   # trailing comment

policy
{
  seqno-rule allow
  ; nested comment
  limits
  {
    max-signer-age 86400
  }
}

validator { trust-anchor "/keys/root.ndncert" }
`

func TestParseNestedSections(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleConf))
	require.NoError(t, err)

	loggerName := root.Get("logger-name")
	require.NotNil(t, loggerName)
	require.Equal(t, "/test/logger", loggerName.Value)

	dbDir := root.Get("db-dir")
	require.NotNil(t, dbDir)
	require.Equal(t, "/var/lib/siglog", dbDir.Value)

	policySec := root.Get("policy")
	require.NotNil(t, policySec)
	require.Equal(t, "allow", policySec.Get("seqno-rule").Value)

	limits := policySec.Get("limits")
	require.NotNil(t, limits)
	require.Equal(t, "86400", limits.Get("max-signer-age").Value)

	validator := root.Get("validator")
	require.NotNil(t, validator)
	require.Equal(t, "/keys/root.ndncert", validator.Get("trust-anchor").Value)
}

func TestParseRejectsUnmatchedBrace(t *testing.T) {
	_, err := Parse(strings.NewReader("policy { key value"))
	require.Error(t, err)
}

func TestParseRejectsStrayClosingBrace(t *testing.T) {
	_, err := Parse(strings.NewReader("key value\n}\n"))
	require.Error(t, err)
}

func TestGetAllReturnsEveryMatchingChild(t *testing.T) {
	root, err := Parse(strings.NewReader("rule a\nrule b\nrule c\n"))
	require.NoError(t, err)
	rules := root.GetAll("rule")
	require.Len(t, rules, 3)
	require.Equal(t, "a", rules[0].Value)
	require.Equal(t, "c", rules[2].Value)
}
