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

package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicers/github-dashboard-server/internal/github"
	"github.com/aicers/github-dashboard-server/internal/model"
	"github.com/aicers/github-dashboard-server/internal/store"
)

var testRepo = Repository{Owner: "aicers", Name: "dashboard"}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func issueAt(number int, updated time.Time) model.Issue {
	return model.Issue{
		Number:    number,
		Title:     "issue",
		State:     model.IssueOpen,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

// All pages of a pass must land in the store, even though only the final
// page reports no continuation.
func TestSyncPassStoresAllPages(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock := &github.MockClient{
		IssuePages: []github.IssuePage{
			{Issues: []model.Issue{issueAt(1, base), issueAt(2, base.Add(time.Minute))}, HasNextPage: true, EndCursor: "c1"},
			{Issues: []model.Issue{issueAt(3, base.Add(2 * time.Minute))}, HasNextPage: true, EndCursor: "c2"},
			{Issues: []model.Issue{issueAt(4, base.Add(3 * time.Minute))}, HasNextPage: false},
		},
	}

	o := New(mock, st, []Repository{testRepo}, time.Hour, 50)
	report, err := o.SyncRepoKind(context.Background(), testRepo, model.KindIssue)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Fetched)
	assert.Equal(t, 3, report.Pages)

	issues, _, _, err := st.ScanIssues(store.ScanOptions{})
	require.NoError(t, err)
	assert.Len(t, issues, 4)

	wm, err := st.Watermark(testRepo.Owner, testRepo.Name, model.KindIssue)
	require.NoError(t, err)
	assert.True(t, wm.Equal(base.Add(3*time.Minute)), "watermark must be the newest UpdatedAt of the pass")
}

// A failed pass leaves the watermark untouched so the next pass re-covers
// the same window.
func TestFailedPassLeavesWatermark(t *testing.T) {
	st := openTestStore(t)
	initial := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SetWatermark(testRepo.Owner, testRepo.Name, model.KindIssue, initial))

	mock := &github.MockClient{ShouldFailNotFound: true}
	o := New(mock, st, []Repository{testRepo}, time.Hour, 50)

	_, err := o.SyncRepoKind(context.Background(), testRepo, model.KindIssue)
	require.Error(t, err)

	wm, err := st.Watermark(testRepo.Owner, testRepo.Name, model.KindIssue)
	require.NoError(t, err)
	assert.True(t, wm.Equal(initial), "watermark moved despite pass failure")
}

func TestEmptyPassKeepsWatermark(t *testing.T) {
	st := openTestStore(t)
	initial := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SetWatermark(testRepo.Owner, testRepo.Name, model.KindIssue, initial))

	mock := &github.MockClient{} // serves empty final pages
	o := New(mock, st, []Repository{testRepo}, time.Hour, 50)

	report, err := o.SyncRepoKind(context.Background(), testRepo, model.KindIssue)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Fetched)
	assert.True(t, report.Watermark.Equal(initial))

	wm, err := st.Watermark(testRepo.Owner, testRepo.Name, model.KindIssue)
	require.NoError(t, err)
	assert.True(t, wm.Equal(initial))
}

// The stored watermark feeds the next pass as its Since bound.
func TestPassUsesWatermarkAsSince(t *testing.T) {
	st := openTestStore(t)
	initial := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.SetWatermark(testRepo.Owner, testRepo.Name, model.KindIssue, initial))

	mock := &github.MockClient{}
	o := New(mock, st, []Repository{testRepo}, time.Hour, 25)

	_, err := o.SyncRepoKind(context.Background(), testRepo, model.KindIssue)
	require.NoError(t, err)

	assert.True(t, mock.LastOpts.Since.Equal(initial), "Since = %v, want %v", mock.LastOpts.Since, initial)
	assert.Equal(t, 25, mock.LastOpts.PageSize)
}

func TestSyncOnceCoversAllKinds(t *testing.T) {
	st := openTestStore(t)
	now := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)

	mock := &github.MockClient{
		IssuePages: []github.IssuePage{
			{Issues: []model.Issue{issueAt(1, now)}},
		},
		PullRequestPages: []github.PullRequestPage{
			{PullRequests: []model.PullRequest{{Number: 2, State: model.PullRequestOpen, UpdatedAt: now}}},
		},
		DiscussionPages: []github.DiscussionPage{
			{Discussions: []model.Discussion{{Number: 3, Title: "q", UpdatedAt: now}}},
		},
	}

	o := New(mock, st, []Repository{testRepo}, time.Hour, 50)
	reports, err := o.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.Len(t, reports, 3, "one report per kind")
	for _, r := range reports {
		assert.NoError(t, r.Err)
		assert.Equal(t, 1, r.Fetched)
	}

	issues, _, _, err := st.ScanIssues(store.ScanOptions{})
	require.NoError(t, err)
	prs, _, _, err := st.ScanPullRequests(store.ScanOptions{})
	require.NoError(t, err)
	discussions, _, _, err := st.ScanDiscussions(store.ScanOptions{})
	require.NoError(t, err)

	assert.Len(t, issues, 1)
	assert.Len(t, prs, 1)
	assert.Len(t, discussions, 1)
}

// One failing repository must not block the others.
func TestSyncOnceIsolatesFailures(t *testing.T) {
	st := openTestStore(t)
	now := time.Date(2025, 4, 4, 0, 0, 0, 0, time.UTC)

	okRepo := Repository{Owner: "aicers", Name: "good"}
	badRepo := Repository{Owner: "aicers", Name: "gone"}

	// The not-found failure fires on the first three calls (the bad
	// repo's kinds may interleave with the good repo's), so script the
	// mock per-call instead: not-found only for the bad repo.
	mock := &repoAwareMock{
		bad: badRepo,
		inner: &github.MockClient{
			IssuePages: []github.IssuePage{{Issues: []model.Issue{issueAt(1, now)}}},
		},
	}

	o := New(mock, st, []Repository{badRepo, okRepo}, time.Hour, 50)
	reports, err := o.SyncOnce(context.Background())
	require.Error(t, err, "the bad repository's failure must surface")
	assert.Len(t, reports, 6, "every pair reports even when some fail")

	issues, _, _, err := st.ScanIssues(store.ScanOptions{})
	require.NoError(t, err)
	assert.Len(t, issues, 1, "the good repository must still sync")
}

// repoAwareMock fails every fetch for one repository and delegates the
// rest.
type repoAwareMock struct {
	bad   Repository
	inner *github.MockClient
}

func (m *repoAwareMock) FetchIssuePage(ctx context.Context, owner, repo string, opts github.FetchOptions) (*github.IssuePage, error) {
	if owner == m.bad.Owner && repo == m.bad.Name {
		return (&github.MockClient{ShouldFailNotFound: true}).FetchIssuePage(ctx, owner, repo, opts)
	}
	return m.inner.FetchIssuePage(ctx, owner, repo, opts)
}

func (m *repoAwareMock) FetchPullRequestPage(ctx context.Context, owner, repo string, opts github.FetchOptions) (*github.PullRequestPage, error) {
	if owner == m.bad.Owner && repo == m.bad.Name {
		return (&github.MockClient{ShouldFailNotFound: true}).FetchPullRequestPage(ctx, owner, repo, opts)
	}
	return m.inner.FetchPullRequestPage(ctx, owner, repo, opts)
}

func (m *repoAwareMock) FetchDiscussionPage(ctx context.Context, owner, repo string, opts github.FetchOptions) (*github.DiscussionPage, error) {
	if owner == m.bad.Owner && repo == m.bad.Name {
		return (&github.MockClient{ShouldFailNotFound: true}).FetchDiscussionPage(ctx, owner, repo, opts)
	}
	return m.inner.FetchDiscussionPage(ctx, owner, repo, opts)
}
