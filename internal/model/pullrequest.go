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

package model

import (
	"fmt"
	"time"
)

// PullRequest is a flattened snapshot of a GitHub pull request.
// Identity is (Owner, Repo, Number); Owner and Repo come from the storage
// key on read.
type PullRequest struct {
	Owner string `json:"-"`
	Repo  string `json:"-"`

	ID             string           `json:"id"`
	Number         int              `json:"number"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	State          PullRequestState `json:"state"`
	Author         string           `json:"author"`
	Assignees      []string         `json:"assignees"`
	ReviewRequests []string         `json:"review_requests"`
	Labels         []string         `json:"labels"`
	Additions      int              `json:"additions"`
	Deletions      int              `json:"deletions"`
	Comments       CommentList      `json:"comments"`
	Reviews        ReviewList       `json:"reviews"`
	Commits        CommitList       `json:"commits"`
	URL            string           `json:"url"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	MergedAt       *time.Time       `json:"merged_at,omitempty"`
}

// String renders the pull request identity as "owner/repo#number".
func (p PullRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", p.Owner, p.Repo, p.Number)
}

// ReviewList is a bounded snapshot of a review connection.
type ReviewList struct {
	TotalCount int      `json:"total_count"`
	Nodes      []Review `json:"nodes"`
}

// Review is a single pull request review, with its first page of review
// comments.
type Review struct {
	Author      string      `json:"author"`
	State       string      `json:"state"`
	Body        string      `json:"body"`
	URL         string      `json:"url"`
	CreatedAt   time.Time   `json:"created_at"`
	SubmittedAt *time.Time  `json:"submitted_at,omitempty"`
	Comments    CommentList `json:"comments"`
}

// CommitList is a bounded snapshot of a commit connection.
type CommitList struct {
	TotalCount int      `json:"total_count"`
	Nodes      []Commit `json:"nodes"`
}

// Commit is a single commit on a pull request.
type Commit struct {
	SHA           string    `json:"sha"`
	Message       string    `json:"message"`
	Author        string    `json:"author"`
	Committer     string    `json:"committer"`
	Additions     int       `json:"additions"`
	Deletions     int       `json:"deletions"`
	CommittedDate time.Time `json:"committed_date"`
}
