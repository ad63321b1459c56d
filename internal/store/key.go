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
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record keys are owner, NUL, repo, NUL, big-endian uint32 number. The
// layout sorts bytewise in (owner, repo, number) order, so a scan bounded
// by RepoPrefix visits exactly one repository's records in numeric order.

const keySep = 0x00

// Key encodes an entity identity into its storage key.
func Key(owner, repo string, number int) ([]byte, error) {
	if owner == "" || strings.ContainsRune(owner, keySep) {
		return nil, fmt.Errorf("invalid owner %q", owner)
	}
	if repo == "" || strings.ContainsRune(repo, keySep) {
		return nil, fmt.Errorf("invalid repository name %q", repo)
	}
	if number < 0 || number > math.MaxUint32 {
		return nil, fmt.Errorf("entity number %d out of range", number)
	}

	k := make([]byte, 0, len(owner)+len(repo)+6)
	k = append(k, owner...)
	k = append(k, keySep)
	k = append(k, repo...)
	k = append(k, keySep)
	k = binary.BigEndian.AppendUint32(k, uint32(number))
	return k, nil
}

// RepoPrefix returns the key prefix shared by all records of one
// repository.
func RepoPrefix(owner, repo string) []byte {
	p := make([]byte, 0, len(owner)+len(repo)+2)
	p = append(p, owner...)
	p = append(p, keySep)
	p = append(p, repo...)
	p = append(p, keySep)
	return p
}

// ParseKey decodes a storage key back into its identity. A malformed key
// yields an error so scans can skip the record instead of guessing.
func ParseKey(k []byte) (owner, repo string, number int, err error) {
	first := bytes.IndexByte(k, keySep)
	if first <= 0 {
		return "", "", 0, fmt.Errorf("invalid key in database: %02x", k)
	}
	rest := k[first+1:]
	second := bytes.IndexByte(rest, keySep)
	if second <= 0 || len(rest[second+1:]) != 4 {
		return "", "", 0, fmt.Errorf("invalid key in database: %02x", k)
	}

	owner = string(k[:first])
	repo = string(rest[:second])
	number = int(binary.BigEndian.Uint32(rest[second+1:]))
	return owner, repo, number, nil
}

// ParseIdentity parses the display form "owner/repo#number" used by
// listing cursors into a storage key.
func ParseIdentity(s string) ([]byte, error) {
	slash := strings.IndexByte(s, '/')
	hash := strings.LastIndexByte(s, '#')
	if slash <= 0 || hash <= slash+1 || hash == len(s)-1 {
		return nil, fmt.Errorf("malformed identity %q", s)
	}
	number, err := strconv.Atoi(s[hash+1:])
	if err != nil {
		return nil, fmt.Errorf("malformed identity %q: %w", s, err)
	}
	return Key(s[:slash], s[slash+1:hash], number)
}
