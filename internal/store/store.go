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

// Package store persists mirrored GitHub records in an embedded ordered
// key-value database (bbolt). It owns key encoding, watermark bookkeeping,
// and decode-or-skip semantics: a corrupt record is logged and skipped,
// never fatal to the surrounding scan.
//
// Records for a given identity are replaced wholesale on every write.
// Upstream deletions are intentionally not reflected here; once mirrored,
// a record stays until overwritten.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	dberrors "github.com/aicers/github-dashboard-server/internal/errors"
	"github.com/aicers/github-dashboard-server/internal/model"
)

var bucketWatermarks = []byte("watermarks")

// Store is an embedded, key-ordered record store. One bucket per entity
// kind plus a watermark bucket. Writes are durable when the call returns;
// bbolt serializes writers while readers proceed on their own snapshots.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and ensures all buckets
// exist. Failure here is fatal to startup by design.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, kind := range model.Kinds() {
			if _, err := tx.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucketIfNotExists(bucketWatermarks)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// ScanOptions bounds a scan. After and Before are exclusive binary keys;
// Prefix restricts the scan to keys sharing it. Limit caps the number of
// decoded records (0 = unlimited). Reverse walks the range from the end.
type ScanOptions struct {
	Prefix  []byte
	After   []byte
	Before  []byte
	Reverse bool
	Limit   int
}

// PutIssues writes the given issues for one repository in a single durable
// transaction, replacing any previous value per identity.
func (s *Store) PutIssues(owner, repo string, issues []model.Issue) error {
	return s.putRecords(model.KindIssue, owner, repo, len(issues), func(i int) (int, any) {
		return issues[i].Number, issues[i]
	})
}

// PutPullRequests writes the given pull requests for one repository.
func (s *Store) PutPullRequests(owner, repo string, prs []model.PullRequest) error {
	return s.putRecords(model.KindPullRequest, owner, repo, len(prs), func(i int) (int, any) {
		return prs[i].Number, prs[i]
	})
}

// PutDiscussions writes the given discussions for one repository.
func (s *Store) PutDiscussions(owner, repo string, discussions []model.Discussion) error {
	return s.putRecords(model.KindDiscussion, owner, repo, len(discussions), func(i int) (int, any) {
		return discussions[i].Number, discussions[i]
	})
}

func (s *Store) putRecords(kind model.Kind, owner, repo string, n int, at func(int) (int, any)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kind))
		for i := 0; i < n; i++ {
			number, record := at(i)
			key, err := Key(owner, repo, number)
			if err != nil {
				return fmt.Errorf("failed to encode key for %s/%s#%d: %w", owner, repo, number, err)
			}
			value, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to encode %s/%s#%d: %w", owner, repo, number, err)
			}
			if err := b.Put(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetIssue returns one issue by identity, or ErrNotFound.
func (s *Store) GetIssue(owner, repo string, number int) (model.Issue, error) {
	return getRecord(s, model.KindIssue, owner, repo, number, decodeIssue)
}

// GetPullRequest returns one pull request by identity, or ErrNotFound.
func (s *Store) GetPullRequest(owner, repo string, number int) (model.PullRequest, error) {
	return getRecord(s, model.KindPullRequest, owner, repo, number, decodePullRequest)
}

// GetDiscussion returns one discussion by identity, or ErrNotFound.
func (s *Store) GetDiscussion(owner, repo string, number int) (model.Discussion, error) {
	return getRecord(s, model.KindDiscussion, owner, repo, number, decodeDiscussion)
}

// ScanIssues walks the issue bucket within opts. It returns the records in
// iteration order (descending when Reverse), whether more valid records
// remained past Limit, and how many corrupt records were skipped.
func (s *Store) ScanIssues(opts ScanOptions) ([]model.Issue, bool, int, error) {
	return scanBucket(s, model.KindIssue, opts, decodeIssue)
}

// ScanPullRequests walks the pull request bucket within opts.
func (s *Store) ScanPullRequests(opts ScanOptions) ([]model.PullRequest, bool, int, error) {
	return scanBucket(s, model.KindPullRequest, opts, decodePullRequest)
}

// ScanDiscussions walks the discussion bucket within opts.
func (s *Store) ScanDiscussions(opts ScanOptions) ([]model.Discussion, bool, int, error) {
	return scanBucket(s, model.KindDiscussion, opts, decodeDiscussion)
}

func getRecord[T any](s *Store, kind model.Kind, owner, repo string, number int, decode func(k, v []byte) (T, error)) (T, error) {
	var record T
	key, err := Key(owner, repo, number)
	if err != nil {
		return record, err
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(kind)).Get(key)
		if value == nil {
			return fmt.Errorf("%s/%s#%d: %w", owner, repo, number, dberrors.ErrNotFound)
		}
		record, err = decode(key, value)
		return err
	})
	return record, err
}

func scanBucket[T any](s *Store, kind model.Kind, opts ScanOptions, decode func(k, v []byte) (T, error)) ([]T, bool, int, error) {
	var (
		records []T
		hasMore bool
		skipped int
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(kind)).Cursor()
		k, v := seekStart(c, opts)
		for ; k != nil && inRange(k, opts); k, v = step(c, opts.Reverse) {
			record, err := decode(k, v)
			if err != nil {
				skipped++
				slog.Warn("skipping undecodable record",
					"kind", string(kind), "key", fmt.Sprintf("%02x", k), "error", err)
				continue
			}
			if opts.Limit > 0 && len(records) == opts.Limit {
				hasMore = true
				return nil
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, false, skipped, err
	}
	return records, hasMore, skipped, nil
}

// seekStart positions the cursor on the first in-range key for the scan
// direction, honoring the exclusive After/Before bounds.
func seekStart(c *bolt.Cursor, opts ScanOptions) ([]byte, []byte) {
	if !opts.Reverse {
		switch {
		case opts.After != nil:
			k, v := c.Seek(opts.After)
			if bytes.Equal(k, opts.After) {
				k, v = c.Next()
			}
			return k, v
		case opts.Prefix != nil:
			return c.Seek(opts.Prefix)
		default:
			return c.First()
		}
	}

	upper := opts.Before
	if upper == nil && opts.Prefix != nil {
		upper = prefixEnd(opts.Prefix)
	}
	if upper == nil {
		return c.Last()
	}
	k, _ := c.Seek(upper)
	if k == nil {
		return c.Last()
	}
	// Seek lands on the first key >= upper; Before is exclusive.
	return c.Prev()
}

func inRange(k []byte, opts ScanOptions) bool {
	if opts.Prefix != nil && !bytes.HasPrefix(k, opts.Prefix) {
		return false
	}
	if !opts.Reverse {
		return opts.Before == nil || bytes.Compare(k, opts.Before) < 0
	}
	return opts.After == nil || bytes.Compare(k, opts.After) > 0
}

func step(c *bolt.Cursor, reverse bool) ([]byte, []byte) {
	if reverse {
		return c.Prev()
	}
	return c.Next()
}

// prefixEnd returns the smallest key greater than every key with the given
// prefix, or nil if no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func decodeIssue(k, v []byte) (model.Issue, error) {
	var issue model.Issue
	owner, repo, number, err := ParseKey(k)
	if err != nil {
		return issue, err
	}
	if err := json.Unmarshal(v, &issue); err != nil {
		return issue, err
	}
	issue.Owner, issue.Repo, issue.Number = owner, repo, number
	return issue, nil
}

func decodePullRequest(k, v []byte) (model.PullRequest, error) {
	var pr model.PullRequest
	owner, repo, number, err := ParseKey(k)
	if err != nil {
		return pr, err
	}
	if err := json.Unmarshal(v, &pr); err != nil {
		return pr, err
	}
	pr.Owner, pr.Repo, pr.Number = owner, repo, number
	return pr, nil
}

func decodeDiscussion(k, v []byte) (model.Discussion, error) {
	var d model.Discussion
	owner, repo, number, err := ParseKey(k)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(v, &d); err != nil {
		return d, err
	}
	d.Owner, d.Repo, d.Number = owner, repo, number
	return d, nil
}
