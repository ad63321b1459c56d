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
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/aicers/github-dashboard-server/internal/model"
)

// Watermark returns the sync watermark for (owner/repo, kind): the
// timestamp below which all records of that kind are known to be fully
// mirrored. The zero time means no successful pass has completed yet.
func (s *Store) Watermark(owner, repo string, kind model.Kind) (time.Time, error) {
	var wm time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketWatermarks).Get(watermarkKey(owner, repo, kind))
		if value == nil {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, string(value))
		if err != nil {
			return fmt.Errorf("corrupt watermark for %s/%s %s: %w", owner, repo, kind, err)
		}
		wm = parsed
		return nil
	})
	return wm, err
}

// SetWatermark advances the watermark for (owner/repo, kind). Watermarks
// only move forward; a timestamp at or before the stored value is a no-op.
// Callers must write the matching records before calling this, so a reader
// never observes a watermark without its records.
func (s *Store) SetWatermark(owner, repo string, kind model.Kind, t time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatermarks)
		key := watermarkKey(owner, repo, kind)
		if prev := b.Get(key); prev != nil {
			stored, err := time.Parse(time.RFC3339Nano, string(prev))
			if err == nil && !t.After(stored) {
				return nil
			}
		}
		return b.Put(key, []byte(t.UTC().Format(time.RFC3339Nano)))
	})
}

func watermarkKey(owner, repo string, kind model.Kind) []byte {
	k := make([]byte, 0, len(owner)+len(repo)+len(kind)+2)
	k = append(k, owner...)
	k = append(k, keySep)
	k = append(k, repo...)
	k = append(k, keySep)
	k = append(k, kind...)
	return k
}
