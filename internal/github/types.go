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
	"time"

	"github.com/aicers/github-dashboard-server/internal/model"
)

// FetchOptions configures one page fetch.
type FetchOptions struct {
	// PageSize controls how many top-level records to fetch per page.
	// Defaults to defaultPageSize; capped at 100 per GitHub's API limits.
	PageSize int

	// After is the pagination cursor. Empty fetches from the beginning.
	// Use the page's EndCursor from the previous response to continue.
	After string

	// Since is the incremental lower bound: records not updated at or
	// after this instant are not of interest. The zero time fetches
	// everything.
	Since time.Time
}

// Default values for fetch operations.
const (
	defaultPageSize = 50
)

// IssuePage is one page of issues plus the pagination state needed to
// fetch the next one. Skipped counts malformed nodes dropped from the
// page.
type IssuePage struct {
	Issues      []model.Issue
	EndCursor   string
	HasNextPage bool
	Skipped     int
}

// PullRequestPage is one page of pull requests.
type PullRequestPage struct {
	PullRequests []model.PullRequest
	EndCursor    string
	HasNextPage  bool
	Skipped      int
}

// DiscussionPage is one page of discussions.
type DiscussionPage struct {
	Discussions []model.Discussion
	EndCursor   string
	HasNextPage bool
	Skipped     int
}
