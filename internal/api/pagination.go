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

package api

import (
	"encoding/base64"
	"fmt"

	"github.com/graphql-go/graphql"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
	"github.com/aicers/github-dashboard-server/internal/store"
)

// defaultListSize is the listing page size when neither first nor last is
// given.
const defaultListSize = 100

// pageWindow is the validated translation of the relay pagination
// arguments into scan bounds. backward means the window anchors at the
// end of the range (last/before) and results must be re-reversed into
// ascending order before returning.
type pageWindow struct {
	limit    int
	after    []byte
	before   []byte
	backward bool
}

// parsePageWindow validates first/last/after/before and produces the scan
// window. The argument pairs (after, before), (after, last), (before,
// first), and (first, last) conflict and are rejected outright.
func parsePageWindow(p graphql.ResolveParams) (pageWindow, error) {
	var w pageWindow

	first, hasFirst := p.Args["first"].(int)
	last, hasLast := p.Args["last"].(int)
	afterArg, hasAfter := p.Args["after"].(string)
	beforeArg, hasBefore := p.Args["before"].(string)

	switch {
	case hasAfter && hasBefore:
		return w, fmt.Errorf("cannot use both after and before")
	case hasAfter && hasLast:
		return w, fmt.Errorf("cannot use after with last")
	case hasBefore && hasFirst:
		return w, fmt.Errorf("cannot use before with first")
	case hasFirst && hasLast:
		return w, fmt.Errorf("cannot use both first and last")
	}

	switch {
	case hasFirst:
		if first <= 0 {
			return w, fmt.Errorf("first must be positive, got %d", first)
		}
		w.limit = first
	case hasLast:
		if last <= 0 {
			return w, fmt.Errorf("last must be positive, got %d", last)
		}
		w.limit = last
		w.backward = true
	default:
		w.limit = defaultListSize
	}
	if hasBefore {
		w.backward = true
	}

	if hasAfter {
		key, err := decodeCursor(afterArg)
		if err != nil {
			return w, err
		}
		w.after = key
	}
	if hasBefore {
		key, err := decodeCursor(beforeArg)
		if err != nil {
			return w, err
		}
		w.before = key
	}
	return w, nil
}

func (w pageWindow) scanOptions() store.ScanOptions {
	return store.ScanOptions{
		After:   w.after,
		Before:  w.before,
		Reverse: w.backward,
		Limit:   w.limit,
	}
}

// pageInfo mirrors the relay PageInfo object.
type pageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     *string
	EndCursor       *string
}

// windowPageInfo derives PageInfo from the scan outcome. In the forward
// direction hasMore drives hasNextPage and an after cursor implies a
// previous page. Backward windows only ever report hasPreviousPage; the
// caller navigating with last/before already holds the later records.
func (w pageWindow) pageInfo(hasMore bool, cursors []string) pageInfo {
	info := pageInfo{}
	if w.backward {
		info.HasPreviousPage = hasMore
	} else {
		info.HasNextPage = hasMore
		info.HasPreviousPage = w.after != nil
	}
	if len(cursors) > 0 {
		info.StartCursor = &cursors[0]
		info.EndCursor = &cursors[len(cursors)-1]
	}
	return info
}

// Cursors are the base64 form of the "owner/repo#number" identity. Opaque
// to clients, stable across restarts.

func encodeCursor(identity string) string {
	return base64.StdEncoding.EncodeToString([]byte(identity))
}

func decodeCursor(cursor string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("cursor %q: %w", cursor, apperrors.ErrBadCursor)
	}
	key, err := store.ParseIdentity(string(raw))
	if err != nil {
		return nil, fmt.Errorf("cursor %q: %w", cursor, apperrors.ErrBadCursor)
	}
	return key, nil
}

// reverse restores ascending order for backward windows, which the store
// returns descending.
func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
