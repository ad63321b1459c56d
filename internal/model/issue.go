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

// Issue is a flattened snapshot of a GitHub issue. Identity is
// (Owner, Repo, Number); Owner and Repo are populated from the storage key
// on read, not serialized with the value.
//
// Author is the login of the issue author, or the empty string when the
// upstream author union is not a User (deleted account, bot, enterprise
// actor).
type Issue struct {
	Owner string `json:"-"`
	Repo  string `json:"-"`

	ID        string           `json:"id"`
	Number    int              `json:"number"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	State     IssueState       `json:"state"`
	Author    string           `json:"author"`
	Assignees []string         `json:"assignees"`
	Labels    []string         `json:"labels"`
	Comments  CommentList      `json:"comments"`
	Projects  ProjectItemList  `json:"project_items"`
	SubIssues SubIssueList     `json:"sub_issues"`
	Parent    *ParentIssue     `json:"parent,omitempty"`
	ClosedBy  []PullRequestRef `json:"closed_by_pull_requests"`
	URL       string           `json:"url"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ClosedAt  *time.Time       `json:"closed_at,omitempty"`
}

// String renders the issue identity as "owner/repo#number", the display
// form used for listing cursors.
func (i Issue) String() string {
	return fmt.Sprintf("%s/%s#%d", i.Owner, i.Repo, i.Number)
}

// CommentList is a bounded snapshot of a comment connection.
type CommentList struct {
	TotalCount int       `json:"total_count"`
	Nodes      []Comment `json:"nodes"`
}

// Comment is a single issue or pull request comment.
type Comment struct {
	ID             string    `json:"id"`
	Author         string    `json:"author"`
	Body           string    `json:"body"`
	RepositoryName string    `json:"repository_name"`
	URL            string    `json:"url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProjectItemList is a bounded snapshot of a projectV2 item connection.
type ProjectItemList struct {
	TotalCount int           `json:"total_count"`
	Nodes      []ProjectItem `json:"nodes"`
}

// ProjectItem carries the project-board metadata attached to an issue.
// The option fields are nil when the corresponding single-select field is
// unset on the board.
type ProjectItem struct {
	ID               string   `json:"id"`
	ProjectID        string   `json:"project_id"`
	ProjectTitle     string   `json:"project_title"`
	Status           *string  `json:"todo_status,omitempty"`
	Priority         *string  `json:"todo_priority,omitempty"`
	Size             *string  `json:"todo_size,omitempty"`
	InitiationOption *string  `json:"todo_initiation_option,omitempty"`
	PendingDays      *float64 `json:"todo_pending_days,omitempty"`
}

// SubIssueList is a bounded snapshot of a sub-issue connection.
type SubIssueList struct {
	TotalCount int        `json:"total_count"`
	Nodes      []SubIssue `json:"nodes"`
}

// SubIssue is a lightweight reference to a child issue.
type SubIssue struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     IssueState `json:"state"`
	Author    string     `json:"author"`
	Assignees []string   `json:"assignees"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// ParentIssue is a lightweight reference to the parent issue, if any.
type ParentIssue struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// PullRequestRef references a pull request that closes an issue.
type PullRequestRef struct {
	Number    int              `json:"number"`
	State     PullRequestState `json:"state"`
	Author    string           `json:"author"`
	URL       string           `json:"url"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ClosedAt  *time.Time       `json:"closed_at,omitempty"`
}
