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

import "context"

// Client defines the interface for fetching mirrored entity kinds from
// GitHub. This interface allows for easy mocking in tests.
type Client interface {
	// FetchIssuePage retrieves one page of issues updated since
	// opts.Since, in ascending update order.
	FetchIssuePage(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error)

	// FetchPullRequestPage retrieves one page of pull requests in
	// descending update order. Nodes older than opts.Since are dropped
	// and HasNextPage is cleared once a page crosses that bound.
	FetchPullRequestPage(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error)

	// FetchDiscussionPage retrieves one page of discussions, with the
	// same ordering and watermark semantics as FetchPullRequestPage.
	FetchDiscussionPage(ctx context.Context, owner, repo string, opts FetchOptions) (*DiscussionPage, error)
}
