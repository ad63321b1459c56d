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

// Package model defines the flattened record types mirrored from GitHub.
// Records are immutable snapshots: a re-sync replaces the whole value for
// an identity, never merging sub-collections field by field.
//
// Nested collections (comments, labels, reactions, replies, ...) hold only
// the first page fetched upstream. TotalCount always reflects the true
// upstream count, so a consumer can detect truncation.
package model

// Kind identifies an entity kind tracked by the mirror. Its value doubles
// as the storage bucket name for that kind.
type Kind string

// Entity kinds.
const (
	KindIssue       Kind = "issues"
	KindPullRequest Kind = "pull_requests"
	KindDiscussion  Kind = "discussions"
)

// Kinds lists every tracked entity kind, in sync order.
func Kinds() []Kind {
	return []Kind{KindIssue, KindPullRequest, KindDiscussion}
}

// IssueState is the lifecycle state of an issue.
type IssueState string

// Issue states as reported by the GitHub GraphQL API.
const (
	IssueOpen   IssueState = "OPEN"
	IssueClosed IssueState = "CLOSED"
)

// PullRequestState is the lifecycle state of a pull request.
type PullRequestState string

// Pull request states as reported by the GitHub GraphQL API.
const (
	PullRequestOpen   PullRequestState = "OPEN"
	PullRequestClosed PullRequestState = "CLOSED"
	PullRequestMerged PullRequestState = "MERGED"
)
