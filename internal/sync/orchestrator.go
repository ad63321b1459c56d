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

// Package sync mirrors configured repositories into the local store on a
// fixed interval. Each (repository, kind) pair advances independently: a
// pass accumulates every page the upstream reports since the stored
// watermark, writes all records in one batch, and only then moves the
// watermark forward. A pass that fails mid-flight leaves the watermark
// untouched, so the next pass re-fetches the same window.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aicers/github-dashboard-server/internal/github"
	"github.com/aicers/github-dashboard-server/internal/model"
	"github.com/aicers/github-dashboard-server/internal/store"
)

// maxConcurrentPasses bounds how many (repository, kind) passes run at
// once, keeping API usage well under GitHub's secondary rate limits.
const maxConcurrentPasses = 4

// Repository identifies one repository to mirror.
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// PassReport summarizes one sync pass for a (repository, kind) pair.
// Err is set when the pass failed; its watermark is then the unchanged
// pre-pass value.
type PassReport struct {
	Repository Repository
	Kind       model.Kind
	Fetched    int
	Pages      int
	Skipped    int
	Watermark  time.Time
	Duration   time.Duration
	Err        error
}

// Orchestrator drives periodic sync passes over the configured
// repositories.
type Orchestrator struct {
	client   github.Client
	store    *store.Store
	repos    []Repository
	interval time.Duration
	pageSize int

	mu        gosync.Mutex
	passLocks map[string]*gosync.Mutex
}

// New creates an Orchestrator. interval is the delay between periodic
// passes; pageSize is the upstream page size (0 uses the client default).
func New(client github.Client, st *store.Store, repos []Repository, interval time.Duration, pageSize int) *Orchestrator {
	return &Orchestrator{
		client:    client,
		store:     st,
		repos:     repos,
		interval:  interval,
		pageSize:  pageSize,
		passLocks: make(map[string]*gosync.Mutex),
	}
}

// Run performs an immediate full sync, then repeats every interval until
// the context is cancelled. Pass failures are logged and retried on the
// next tick; they never stop the loop.
func (o *Orchestrator) Run(ctx context.Context) error {
	if _, err := o.SyncOnce(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Error("initial sync pass failed", "error", err)
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := o.SyncOnce(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.Error("sync pass failed", "error", err)
			}
		}
	}
}

// SyncOnce runs one pass for every configured (repository, kind) pair
// and returns the per-pair reports. Pairs run concurrently up to
// maxConcurrentPasses; a failing pair never blocks the others, and the
// first failure is returned alongside the reports after every pair has
// had its attempt.
func (o *Orchestrator) SyncOnce(ctx context.Context) ([]PassReport, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPasses)

	var (
		mu       gosync.Mutex
		reports  []PassReport
		firstErr error
	)
	for _, repo := range o.repos {
		for _, kind := range model.Kinds() {
			repo, kind := repo, kind
			g.Go(func() error {
				report, err := o.SyncRepoKind(ctx, repo, kind)
				report.Err = err
				if err != nil {
					slog.Error("sync pass failed",
						"repo", repo.String(), "kind", string(kind), "error", err)
				} else {
					slog.Info("sync pass complete",
						"repo", repo.String(),
						"kind", string(kind),
						"fetched", report.Fetched,
						"pages", report.Pages,
						"skipped", report.Skipped,
						"watermark", report.Watermark,
						"duration", report.Duration)
				}
				mu.Lock()
				reports = append(reports, report)
				if err != nil && firstErr == nil {
					firstErr = fmt.Errorf("sync %s %s: %w", repo, kind, err)
				}
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, firstErr
}

// SyncRepoKind runs one pass for a single (repository, kind) pair.
// Passes for the same pair are serialized; concurrent callers block.
func (o *Orchestrator) SyncRepoKind(ctx context.Context, repo Repository, kind model.Kind) (PassReport, error) {
	lock := o.passLock(repo, kind)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	report := PassReport{Repository: repo, Kind: kind}

	since, err := o.store.Watermark(repo.Owner, repo.Name, kind)
	if err != nil {
		return report, err
	}

	switch kind {
	case model.KindIssue:
		err = syncKind(ctx, o, repo, kind, since, &report,
			func(ctx context.Context, opts github.FetchOptions) ([]model.Issue, string, bool, int, error) {
				page, err := o.client.FetchIssuePage(ctx, repo.Owner, repo.Name, opts)
				if err != nil {
					return nil, "", false, 0, err
				}
				return page.Issues, page.EndCursor, page.HasNextPage, page.Skipped, nil
			},
			func(records []model.Issue) error { return o.store.PutIssues(repo.Owner, repo.Name, records) },
			func(i model.Issue) time.Time { return i.UpdatedAt })
	case model.KindPullRequest:
		err = syncKind(ctx, o, repo, kind, since, &report,
			func(ctx context.Context, opts github.FetchOptions) ([]model.PullRequest, string, bool, int, error) {
				page, err := o.client.FetchPullRequestPage(ctx, repo.Owner, repo.Name, opts)
				if err != nil {
					return nil, "", false, 0, err
				}
				return page.PullRequests, page.EndCursor, page.HasNextPage, page.Skipped, nil
			},
			func(records []model.PullRequest) error { return o.store.PutPullRequests(repo.Owner, repo.Name, records) },
			func(p model.PullRequest) time.Time { return p.UpdatedAt })
	case model.KindDiscussion:
		err = syncKind(ctx, o, repo, kind, since, &report,
			func(ctx context.Context, opts github.FetchOptions) ([]model.Discussion, string, bool, int, error) {
				page, err := o.client.FetchDiscussionPage(ctx, repo.Owner, repo.Name, opts)
				if err != nil {
					return nil, "", false, 0, err
				}
				return page.Discussions, page.EndCursor, page.HasNextPage, page.Skipped, nil
			},
			func(records []model.Discussion) error { return o.store.PutDiscussions(repo.Owner, repo.Name, records) },
			func(d model.Discussion) time.Time { return d.UpdatedAt })
	default:
		err = fmt.Errorf("unknown kind %q", kind)
	}

	report.Duration = time.Since(start)
	return report, err
}

// syncKind accumulates every page since the watermark, writes the whole
// batch, then advances the watermark to the newest UpdatedAt seen. The
// watermark is written only after the records are durable.
func syncKind[T any](
	ctx context.Context,
	o *Orchestrator,
	repo Repository,
	kind model.Kind,
	since time.Time,
	report *PassReport,
	fetch func(context.Context, github.FetchOptions) ([]T, string, bool, int, error),
	put func([]T) error,
	updatedAt func(T) time.Time,
) error {
	var (
		all    []T
		cursor string
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, endCursor, hasNext, skipped, err := fetch(ctx, github.FetchOptions{
			PageSize: o.pageSize,
			After:    cursor,
			Since:    since,
		})
		if err != nil {
			return err
		}
		report.Pages++
		report.Skipped += skipped
		all = append(all, records...)
		if !hasNext {
			break
		}
		cursor = endCursor
	}

	if len(all) == 0 {
		report.Watermark = since
		return nil
	}

	if err := put(all); err != nil {
		return err
	}
	report.Fetched = len(all)

	watermark := since
	for _, record := range all {
		if at := updatedAt(record); at.After(watermark) {
			watermark = at
		}
	}
	report.Watermark = watermark
	return o.store.SetWatermark(repo.Owner, repo.Name, kind, watermark)
}

func (o *Orchestrator) passLock(repo Repository, kind model.Kind) *gosync.Mutex {
	key := repo.String() + "\x00" + string(kind)
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.passLocks[key]
	if !ok {
		lock = &gosync.Mutex{}
		o.passLocks[key] = lock
	}
	return lock
}
