// Copyright 2025 AICers, Inc.
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"bytes"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	tests := []struct {
		owner  string
		repo   string
		number int
	}{
		{"aicers", "dashboard", 1},
		{"golang", "go", 65535},
		{"a", "b", 0},
		{"owner-with-dash", "repo.with.dots", 4294967295},
	}

	for _, tt := range tests {
		key, err := Key(tt.owner, tt.repo, tt.number)
		if err != nil {
			t.Fatalf("Key(%s, %s, %d) failed: %v", tt.owner, tt.repo, tt.number, err)
		}

		owner, repo, number, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey failed: %v", err)
		}
		if owner != tt.owner || repo != tt.repo || number != tt.number {
			t.Errorf("round trip = (%s, %s, %d), want (%s, %s, %d)",
				owner, repo, number, tt.owner, tt.repo, tt.number)
		}
	}
}

func TestKeyInvalid(t *testing.T) {
	tests := []struct {
		name   string
		owner  string
		repo   string
		number int
	}{
		{"empty owner", "", "repo", 1},
		{"empty repo", "owner", "", 1},
		{"owner with NUL", "own\x00er", "repo", 1},
		{"repo with NUL", "owner", "re\x00po", 1},
		{"negative number", "owner", "repo", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Key(tt.owner, tt.repo, tt.number); err == nil {
				t.Errorf("Key(%q, %q, %d) succeeded, want error", tt.owner, tt.repo, tt.number)
			}
		})
	}
}

// Keys must sort bytewise in (owner, repo, number) order, so numeric
// ordering survives even though numbers vary in digit count.
func TestKeyOrdering(t *testing.T) {
	identities := []struct {
		owner  string
		repo   string
		number int
	}{
		{"aicers", "dashboard", 2},
		{"aicers", "dashboard", 10},
		{"aicers", "dashboard", 100},
		{"aicers", "review", 1},
		{"zeta", "alpha", 1},
	}

	var prev []byte
	for i, id := range identities {
		key, err := Key(id.owner, id.repo, id.number)
		if err != nil {
			t.Fatalf("Key failed: %v", err)
		}
		if i > 0 && bytes.Compare(prev, key) >= 0 {
			t.Errorf("key for %s/%s#%d does not sort after its predecessor",
				id.owner, id.repo, id.number)
		}
		prev = key
	}
}

func TestRepoPrefixBoundsRepo(t *testing.T) {
	prefix := RepoPrefix("aicers", "dashboard")

	inside, _ := Key("aicers", "dashboard", 7)
	if !bytes.HasPrefix(inside, prefix) {
		t.Error("key inside the repository does not carry the repo prefix")
	}

	outside, _ := Key("aicers", "dashboard2", 7)
	if bytes.HasPrefix(outside, prefix) {
		t.Error("key of a different repository carries the repo prefix")
	}
}

func TestParseKeyMalformed(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{"empty", nil},
		{"no separators", []byte("plainkey")},
		{"one separator", []byte("owner\x00repo")},
		{"short number", []byte("owner\x00repo\x00\x01\x02")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := ParseKey(tt.key); err == nil {
				t.Errorf("ParseKey(%q) succeeded, want error", tt.key)
			}
		})
	}
}

func TestParseIdentity(t *testing.T) {
	key, err := ParseIdentity("aicers/dashboard#42")
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}
	want, _ := Key("aicers", "dashboard", 42)
	if !bytes.Equal(key, want) {
		t.Errorf("ParseIdentity key = %x, want %x", key, want)
	}

	invalid := []string{
		"",
		"no-separators",
		"owner/repo",
		"owner#42",
		"/repo#42",
		"owner/#42",
		"owner/repo#",
		"owner/repo#notanumber",
	}
	for _, s := range invalid {
		if _, err := ParseIdentity(s); err == nil {
			t.Errorf("ParseIdentity(%q) succeeded, want error", s)
		}
	}
}
