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

package github

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
)

// MockClient is a scripted implementation of Client for testing. Each
// kind serves its configured pages in order, one per call; calls past the
// last page return an empty final page. Safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Scripted pages, served in order per kind.
	IssuePages       []IssuePage
	PullRequestPages []PullRequestPage
	DiscussionPages  []DiscussionPage

	// Error to return on every call
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool

	// TransientFailures makes the next N calls fail with a network
	// error before pages start being served, to exercise retry paths.
	TransientFailures int

	// Track calls for verification
	CallCount int
	LastOwner string
	LastRepo  string
	LastOpts  FetchOptions

	issueCalls      int
	pullCalls       int
	discussionCalls int
}

// FetchIssuePage implements the Client interface.
func (m *MockClient) FetchIssuePage(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(ctx, owner, repo, opts); err != nil {
		return nil, err
	}
	if m.issueCalls >= len(m.IssuePages) {
		return &IssuePage{}, nil
	}
	page := m.IssuePages[m.issueCalls]
	m.issueCalls++
	return &page, nil
}

// FetchPullRequestPage implements the Client interface.
func (m *MockClient) FetchPullRequestPage(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(ctx, owner, repo, opts); err != nil {
		return nil, err
	}
	if m.pullCalls >= len(m.PullRequestPages) {
		return &PullRequestPage{}, nil
	}
	page := m.PullRequestPages[m.pullCalls]
	m.pullCalls++
	return &page, nil
}

// FetchDiscussionPage implements the Client interface.
func (m *MockClient) FetchDiscussionPage(ctx context.Context, owner, repo string, opts FetchOptions) (*DiscussionPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record(ctx, owner, repo, opts); err != nil {
		return nil, err
	}
	if m.discussionCalls >= len(m.DiscussionPages) {
		return &DiscussionPage{}, nil
	}
	page := m.DiscussionPages[m.discussionCalls]
	m.discussionCalls++
	return &page, nil
}

// record tracks the call and applies the configured failure modes.
// Callers must hold m.mu.
func (m *MockClient) record(ctx context.Context, owner, repo string, opts FetchOptions) error {
	m.CallCount++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", apperrors.ErrInvalidToken)
	}
	if m.ShouldFailNotFound {
		return fmt.Errorf("repository %s/%s not found: %w", owner, repo, apperrors.ErrRepoNotFound)
	}
	if m.TransientFailures > 0 {
		m.TransientFailures--
		return fmt.Errorf("network timeout: %w", apperrors.ErrNetworkFailure)
	}
	if m.Error != nil {
		return m.Error
	}
	return nil
}
