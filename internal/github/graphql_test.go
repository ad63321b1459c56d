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
	"errors"
	"testing"
	"time"

	"github.com/shurcooL/githubv4"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
)

func userActor(login string) *actor {
	a := &actor{Typename: "User"}
	a.User.Login = githubv4.String(login)
	return a
}

func TestLoginOf(t *testing.T) {
	if got := loginOf(userActor("alice")); got != "alice" {
		t.Errorf("loginOf(user) = %q, want alice", got)
	}

	// Only the User variant yields a login; bots and deleted accounts
	// map to the empty string.
	bot := &actor{Typename: "Bot"}
	if got := loginOf(bot); got != "" {
		t.Errorf("loginOf(bot) = %q, want empty", got)
	}
	if got := loginOf(nil); got != "" {
		t.Errorf("loginOf(nil) = %q, want empty", got)
	}
}

func TestProjectFieldVariants(t *testing.T) {
	name := githubv4.String("Done")
	single := &projectField{Typename: "ProjectV2ItemFieldSingleSelectValue"}
	single.SingleSelect.Name = &name
	if got := single.option(); got == nil || *got != "Done" {
		t.Errorf("option() = %v, want Done", got)
	}
	if got := single.value(); got != nil {
		t.Errorf("value() on single-select = %v, want nil", got)
	}

	days := githubv4.Float(3.5)
	number := &projectField{Typename: "ProjectV2ItemFieldNumberValue"}
	number.Number.Number = &days
	if got := number.value(); got == nil || *got != 3.5 {
		t.Errorf("value() = %v, want 3.5", got)
	}

	var absent *projectField
	if absent.option() != nil || absent.value() != nil {
		t.Error("nil field must yield nil option and value")
	}
}

func TestConvertIssue(t *testing.T) {
	n := &issueNode{
		ID:        "I_abc",
		Number:    42,
		Title:     "track flaky sync",
		State:     "CLOSED",
		Author:    userActor("alice"),
		CreatedAt: githubv4.DateTime{Time: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		UpdatedAt: githubv4.DateTime{Time: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)},
	}
	n.Assignees.Nodes = []struct {
		Login githubv4.String
	}{{Login: "bob"}}
	n.Labels.Nodes = []struct {
		Name githubv4.String
	}{{Name: "bug"}}

	issue, ok := convertIssue(n, "aicers", "dashboard")
	if !ok {
		t.Fatal("convertIssue rejected a valid node")
	}
	if issue.String() != "aicers/dashboard#42" {
		t.Errorf("identity = %s, want aicers/dashboard#42", issue.String())
	}
	if issue.Author != "alice" {
		t.Errorf("Author = %q, want alice", issue.Author)
	}
	if len(issue.Assignees) != 1 || issue.Assignees[0] != "bob" {
		t.Errorf("Assignees = %v, want [bob]", issue.Assignees)
	}
	if len(issue.Labels) != 1 || issue.Labels[0] != "bug" {
		t.Errorf("Labels = %v, want [bug]", issue.Labels)
	}
}

func TestConvertIssueRejectsMalformedNode(t *testing.T) {
	if _, ok := convertIssue(&issueNode{ID: "I_zero", Number: 0}, "aicers", "dashboard"); ok {
		t.Error("convertIssue accepted a node without a number")
	}
}

func TestConvertPullRequestTeamReviewersDropped(t *testing.T) {
	n := &pullRequestNode{
		ID:        "PR_abc",
		Number:    7,
		State:     "OPEN",
		Author:    userActor("carol"),
		CreatedAt: githubv4.DateTime{Time: time.Now()},
		UpdatedAt: githubv4.DateTime{Time: time.Now()},
	}
	n.ReviewRequests.Nodes = make([]struct {
		RequestedReviewer struct {
			Typename githubv4.String `graphql:"__typename"`
			User     struct {
				Login githubv4.String
			} `graphql:"... on User"`
		} `graphql:"requestedReviewer"`
	}, 2)
	n.ReviewRequests.Nodes[0].RequestedReviewer.Typename = "User"
	n.ReviewRequests.Nodes[0].RequestedReviewer.User.Login = "dave"
	n.ReviewRequests.Nodes[1].RequestedReviewer.Typename = "Team"

	pr, ok := convertPullRequest(n, "aicers", "dashboard")
	if !ok {
		t.Fatal("convertPullRequest rejected a valid node")
	}
	if len(pr.ReviewRequests) != 1 || pr.ReviewRequests[0] != "dave" {
		t.Errorf("ReviewRequests = %v, want [dave]", pr.ReviewRequests)
	}
}

func TestConvertDiscussionAnswer(t *testing.T) {
	n := &discussionNode{
		ID:         "D_abc",
		Number:     3,
		Title:      "how to configure",
		IsAnswered: true,
		Author:     userActor("erin"),
		CreatedAt:  githubv4.DateTime{Time: time.Now()},
		UpdatedAt:  githubv4.DateTime{Time: time.Now()},
	}
	n.Answer = &discussionCommentNode{ID: "DC_1", Author: userActor("frank"), Body: "set the flag"}

	d, ok := convertDiscussion(n, "aicers", "dashboard")
	if !ok {
		t.Fatal("convertDiscussion rejected a valid node")
	}
	if d.Answer == nil || d.Answer.Author != "frank" {
		t.Errorf("Answer = %+v, want answer by frank", d.Answer)
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, defaultPageSize},
		{-5, defaultPageSize},
		{30, 30},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		if got := pageSize(FetchOptions{PageSize: tt.in}); got != tt.want {
			t.Errorf("pageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCursorArg(t *testing.T) {
	if cursorArg("") != (*githubv4.String)(nil) {
		t.Error("empty cursor must map to a typed nil for the first page")
	}
	c := cursorArg("abc")
	if c == nil || *c != "abc" {
		t.Errorf("cursorArg(abc) = %v", c)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rate limit", errors.New("API rate limit exceeded"), apperrors.ErrRateLimit},
		{"auth", errors.New("non-200 OK status code: 401 Unauthorized"), apperrors.ErrInvalidToken},
		{"not found", errors.New("Could not resolve to a Repository"), apperrors.ErrRepoNotFound},
		{"network", errors.New("dial tcp: connection refused"), apperrors.ErrNetworkFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "aicers", "dashboard")
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError(%v) = %v, want wrapped %v", tt.err, got, tt.want)
			}
		})
	}

	plain := errors.New("weird payload")
	if got := mapError(plain, "aicers", "dashboard"); !errors.Is(got, plain) {
		t.Errorf("unclassified error must stay in the chain, got %v", got)
	}
}
