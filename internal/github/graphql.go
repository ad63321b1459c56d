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
	"log/slog"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
	"github.com/aicers/github-dashboard-server/internal/model"
)

// initSyncTime is the lower bound used for the very first issue sync, when
// no watermark exists yet. Far enough back to cover any repository.
var initSyncTime = time.Date(1992, time.June, 5, 0, 0, 0, 0, time.UTC)

// GraphQLClient implements Client on top of the GitHub GraphQL v4 API.
type GraphQLClient struct {
	client *githubv4.Client
}

// NewGraphQLClient creates a GitHub GraphQL client authenticated with the
// given bearer token. A non-empty endpoint overrides the public API URL
// (GitHub Enterprise).
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 30 * time.Second
	httpClient.Transport = &userAgentTransport{base: httpClient.Transport}

	if endpoint != "" {
		return &GraphQLClient{client: githubv4.NewEnterpriseClient(endpoint, httpClient)}
	}
	return &GraphQLClient{client: githubv4.NewClient(httpClient)}
}

// userAgentTransport stamps the User-Agent header on every API request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "github-dashboard-server")
	return t.base.RoundTrip(req)
}

// actor is the __typename-discriminated author union. Only the User
// variant carries a login; every other variant (bot, mannequin, deleted
// account) maps to the empty login.
type actor struct {
	Typename githubv4.String `graphql:"__typename"`
	User     struct {
		Login githubv4.String
	} `graphql:"... on User"`
}

func loginOf(a *actor) string {
	if a == nil || a.Typename != "User" {
		return ""
	}
	return string(a.User.Login)
}

type userList struct {
	Nodes []struct {
		Login githubv4.String
	}
}

func (l userList) logins() []string {
	logins := make([]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		logins = append(logins, string(n.Login))
	}
	return logins
}

type labelList struct {
	Nodes []struct {
		Name githubv4.String
	}
}

func (l labelList) names() []string {
	names := make([]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		names = append(names, string(n.Name))
	}
	return names
}

type commentConn struct {
	TotalCount githubv4.Int
	Nodes      []struct {
		ID         githubv4.String
		Author     *actor `graphql:"author"`
		Body       githubv4.String
		URL        githubv4.String
		CreatedAt  githubv4.DateTime
		UpdatedAt  githubv4.DateTime
		Repository struct {
			Name githubv4.String
		}
	}
}

func (c commentConn) toModel() model.CommentList {
	out := model.CommentList{TotalCount: int(c.TotalCount), Nodes: make([]model.Comment, 0, len(c.Nodes))}
	for _, n := range c.Nodes {
		out.Nodes = append(out.Nodes, model.Comment{
			ID:             string(n.ID),
			Author:         loginOf(n.Author),
			Body:           string(n.Body),
			RepositoryName: string(n.Repository.Name),
			URL:            string(n.URL),
			CreatedAt:      n.CreatedAt.Time,
			UpdatedAt:      n.UpdatedAt.Time,
		})
	}
	return out
}

// projectField is the union behind fieldValueByName. Single-select fields
// carry a name, number fields a float; anything else decodes to nil.
type projectField struct {
	Typename     githubv4.String `graphql:"__typename"`
	SingleSelect struct {
		Name *githubv4.String
	} `graphql:"... on ProjectV2ItemFieldSingleSelectValue"`
	Number struct {
		Number *githubv4.Float
	} `graphql:"... on ProjectV2ItemFieldNumberValue"`
}

func (f *projectField) option() *string {
	if f == nil || f.Typename != "ProjectV2ItemFieldSingleSelectValue" || f.SingleSelect.Name == nil {
		return nil
	}
	s := string(*f.SingleSelect.Name)
	return &s
}

func (f *projectField) value() *float64 {
	if f == nil || f.Typename != "ProjectV2ItemFieldNumberValue" || f.Number.Number == nil {
		return nil
	}
	v := float64(*f.Number.Number)
	return &v
}

type issueNode struct {
	ID        githubv4.String
	Number    githubv4.Int
	Title     githubv4.String
	Body      githubv4.String
	State     githubv4.String
	URL       githubv4.String
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	ClosedAt  *githubv4.DateTime
	Author    *actor      `graphql:"author"`
	Assignees userList    `graphql:"assignees(first: 10)"`
	Labels    labelList   `graphql:"labels(first: 100)"`
	Comments  commentConn `graphql:"comments(first: 100)"`

	ProjectItems struct {
		TotalCount githubv4.Int
		Nodes      []struct {
			ID      githubv4.String
			Project struct {
				ID    githubv4.String
				Title githubv4.String
			}
			Status      *projectField `graphql:"todoStatus: fieldValueByName(name: \"Status\")"`
			Priority    *projectField `graphql:"todoPriority: fieldValueByName(name: \"Priority\")"`
			Size        *projectField `graphql:"todoSize: fieldValueByName(name: \"Size\")"`
			Initiation  *projectField `graphql:"todoInitiationOption: fieldValueByName(name: \"Initiation Option\")"`
			PendingDays *projectField `graphql:"todoPendingDays: fieldValueByName(name: \"Pending Days\")"`
		}
	} `graphql:"projectItems(first: 10)"`

	SubIssues struct {
		TotalCount githubv4.Int
		Nodes      []struct {
			ID        githubv4.String
			Number    githubv4.Int
			Title     githubv4.String
			State     githubv4.String
			Author    *actor   `graphql:"author"`
			Assignees userList `graphql:"assignees(first: 10)"`
			CreatedAt githubv4.DateTime
			UpdatedAt githubv4.DateTime
			ClosedAt  *githubv4.DateTime
		}
	} `graphql:"subIssues(first: 50)"`

	Parent *struct {
		ID     githubv4.String
		Number githubv4.Int
		Title  githubv4.String
	} `graphql:"parent"`

	ClosedByPullRequestsReferences struct {
		Nodes []struct {
			Number    githubv4.Int
			State     githubv4.String
			Author    *actor `graphql:"author"`
			URL       githubv4.String
			CreatedAt githubv4.DateTime
			UpdatedAt githubv4.DateTime
			ClosedAt  *githubv4.DateTime
		}
	} `graphql:"closedByPullRequestsReferences(first: 10)"`
}

// FetchIssuePage fetches one page of issues updated since opts.Since,
// oldest first, using GitHub's filterBy.since filter.
func (c *GraphQLClient) FetchIssuePage(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	var query struct {
		Repository struct {
			Issues struct {
				PageInfo struct {
					HasNextPage githubv4.Boolean
					EndCursor   githubv4.String
				}
				Nodes []issueNode
			} `graphql:"issues(first: $first, after: $after, filterBy: {since: $since}, orderBy: {field: UPDATED_AT, direction: ASC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	since := opts.Since
	if since.IsZero() {
		since = initSyncTime
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"first": githubv4.Int(pageSize(opts)), // #nosec G115 - capped at 100
		"after": cursorArg(opts.After),
		"since": githubv4.DateTime{Time: since},
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, mapError(err, owner, repo)
	}

	page := &IssuePage{
		HasNextPage: bool(query.Repository.Issues.PageInfo.HasNextPage),
		EndCursor:   string(query.Repository.Issues.PageInfo.EndCursor),
		Issues:      make([]model.Issue, 0, len(query.Repository.Issues.Nodes)),
	}
	for i := range query.Repository.Issues.Nodes {
		issue, ok := convertIssue(&query.Repository.Issues.Nodes[i], owner, repo)
		if !ok {
			page.Skipped++
			continue
		}
		page.Issues = append(page.Issues, issue)
	}
	return page, nil
}

func convertIssue(n *issueNode, owner, repo string) (model.Issue, bool) {
	if n.Number <= 0 {
		slog.Warn("dropping malformed issue node", "owner", owner, "repo", repo, "id", string(n.ID))
		return model.Issue{}, false
	}

	issue := model.Issue{
		Owner:     owner,
		Repo:      repo,
		ID:        string(n.ID),
		Number:    int(n.Number),
		Title:     string(n.Title),
		Body:      string(n.Body),
		State:     model.IssueState(n.State),
		Author:    loginOf(n.Author),
		Assignees: n.Assignees.logins(),
		Labels:    n.Labels.names(),
		Comments:  n.Comments.toModel(),
		URL:       string(n.URL),
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
		ClosedAt:  timePtr(n.ClosedAt),
	}

	issue.Projects = model.ProjectItemList{
		TotalCount: int(n.ProjectItems.TotalCount),
		Nodes:      make([]model.ProjectItem, 0, len(n.ProjectItems.Nodes)),
	}
	for _, item := range n.ProjectItems.Nodes {
		issue.Projects.Nodes = append(issue.Projects.Nodes, model.ProjectItem{
			ID:               string(item.ID),
			ProjectID:        string(item.Project.ID),
			ProjectTitle:     string(item.Project.Title),
			Status:           item.Status.option(),
			Priority:         item.Priority.option(),
			Size:             item.Size.option(),
			InitiationOption: item.Initiation.option(),
			PendingDays:      item.PendingDays.value(),
		})
	}

	issue.SubIssues = model.SubIssueList{
		TotalCount: int(n.SubIssues.TotalCount),
		Nodes:      make([]model.SubIssue, 0, len(n.SubIssues.Nodes)),
	}
	for _, sub := range n.SubIssues.Nodes {
		issue.SubIssues.Nodes = append(issue.SubIssues.Nodes, model.SubIssue{
			ID:        string(sub.ID),
			Number:    int(sub.Number),
			Title:     string(sub.Title),
			State:     model.IssueState(sub.State),
			Author:    loginOf(sub.Author),
			Assignees: sub.Assignees.logins(),
			CreatedAt: sub.CreatedAt.Time,
			UpdatedAt: sub.UpdatedAt.Time,
			ClosedAt:  timePtr(sub.ClosedAt),
		})
	}

	if n.Parent != nil {
		issue.Parent = &model.ParentIssue{
			ID:     string(n.Parent.ID),
			Number: int(n.Parent.Number),
			Title:  string(n.Parent.Title),
		}
	}

	issue.ClosedBy = make([]model.PullRequestRef, 0, len(n.ClosedByPullRequestsReferences.Nodes))
	for _, ref := range n.ClosedByPullRequestsReferences.Nodes {
		issue.ClosedBy = append(issue.ClosedBy, model.PullRequestRef{
			Number:    int(ref.Number),
			State:     model.PullRequestState(ref.State),
			Author:    loginOf(ref.Author),
			URL:       string(ref.URL),
			CreatedAt: ref.CreatedAt.Time,
			UpdatedAt: ref.UpdatedAt.Time,
			ClosedAt:  timePtr(ref.ClosedAt),
		})
	}

	return issue, true
}

type pullRequestNode struct {
	ID        githubv4.String
	Number    githubv4.Int
	Title     githubv4.String
	Body      githubv4.String
	State     githubv4.String
	URL       githubv4.String
	Additions githubv4.Int
	Deletions githubv4.Int
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	ClosedAt  *githubv4.DateTime
	MergedAt  *githubv4.DateTime
	Author    *actor      `graphql:"author"`
	Assignees userList    `graphql:"assignees(first: 10)"`
	Labels    labelList   `graphql:"labels(first: 100)"`
	Comments  commentConn `graphql:"comments(first: 100)"`

	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer struct {
				Typename githubv4.String `graphql:"__typename"`
				User     struct {
					Login githubv4.String
				} `graphql:"... on User"`
			} `graphql:"requestedReviewer"`
		}
	} `graphql:"reviewRequests(first: 10)"`

	Reviews struct {
		TotalCount githubv4.Int
		Nodes      []struct {
			Author      *actor `graphql:"author"`
			State       githubv4.String
			Body        githubv4.String
			URL         githubv4.String
			CreatedAt   githubv4.DateTime
			SubmittedAt *githubv4.DateTime
			Comments    commentConn `graphql:"comments(first: 10)"`
		}
	} `graphql:"reviews(first: 50)"`

	Commits struct {
		TotalCount githubv4.Int
		Nodes      []struct {
			Commit struct {
				Oid           githubv4.String
				Message       githubv4.String
				Additions     githubv4.Int
				Deletions     githubv4.Int
				CommittedDate githubv4.DateTime
				Author        struct {
					Name githubv4.String
					User *struct {
						Login githubv4.String
					}
				}
				Committer struct {
					Name githubv4.String
					User *struct {
						Login githubv4.String
					}
				}
			}
		}
	} `graphql:"commits(first: 50)"`
}

// FetchPullRequestPage fetches one page of pull requests, most recently
// updated first. Nodes older than opts.Since are dropped; once a page
// crosses the bound, HasNextPage is cleared so callers stop paging.
func (c *GraphQLClient) FetchPullRequestPage(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error) {
	var query struct {
		Repository struct {
			PullRequests struct {
				PageInfo struct {
					HasNextPage githubv4.Boolean
					EndCursor   githubv4.String
				}
				Nodes []pullRequestNode
			} `graphql:"pullRequests(first: $first, after: $after, orderBy: {field: UPDATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"first": githubv4.Int(pageSize(opts)), // #nosec G115 - capped at 100
		"after": cursorArg(opts.After),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, mapError(err, owner, repo)
	}

	page := &PullRequestPage{
		HasNextPage: bool(query.Repository.PullRequests.PageInfo.HasNextPage),
		EndCursor:   string(query.Repository.PullRequests.PageInfo.EndCursor),
	}
	for i := range query.Repository.PullRequests.Nodes {
		n := &query.Repository.PullRequests.Nodes[i]
		if !opts.Since.IsZero() && n.UpdatedAt.Time.Before(opts.Since) {
			// Descending order: everything past this node is older still.
			page.HasNextPage = false
			break
		}
		pr, ok := convertPullRequest(n, owner, repo)
		if !ok {
			page.Skipped++
			continue
		}
		page.PullRequests = append(page.PullRequests, pr)
	}
	return page, nil
}

func convertPullRequest(n *pullRequestNode, owner, repo string) (model.PullRequest, bool) {
	if n.Number <= 0 {
		slog.Warn("dropping malformed pull request node", "owner", owner, "repo", repo, "id", string(n.ID))
		return model.PullRequest{}, false
	}

	pr := model.PullRequest{
		Owner:     owner,
		Repo:      repo,
		ID:        string(n.ID),
		Number:    int(n.Number),
		Title:     string(n.Title),
		Body:      string(n.Body),
		State:     model.PullRequestState(n.State),
		Author:    loginOf(n.Author),
		Assignees: n.Assignees.logins(),
		Labels:    n.Labels.names(),
		Additions: int(n.Additions),
		Deletions: int(n.Deletions),
		Comments:  n.Comments.toModel(),
		URL:       string(n.URL),
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
		ClosedAt:  timePtr(n.ClosedAt),
		MergedAt:  timePtr(n.MergedAt),
	}

	pr.ReviewRequests = make([]string, 0, len(n.ReviewRequests.Nodes))
	for _, req := range n.ReviewRequests.Nodes {
		// Team review requests have no login; keep only user reviewers.
		if req.RequestedReviewer.Typename == "User" {
			pr.ReviewRequests = append(pr.ReviewRequests, string(req.RequestedReviewer.User.Login))
		}
	}

	pr.Reviews = model.ReviewList{
		TotalCount: int(n.Reviews.TotalCount),
		Nodes:      make([]model.Review, 0, len(n.Reviews.Nodes)),
	}
	for _, review := range n.Reviews.Nodes {
		pr.Reviews.Nodes = append(pr.Reviews.Nodes, model.Review{
			Author:      loginOf(review.Author),
			State:       string(review.State),
			Body:        string(review.Body),
			URL:         string(review.URL),
			CreatedAt:   review.CreatedAt.Time,
			SubmittedAt: timePtr(review.SubmittedAt),
			Comments:    review.Comments.toModel(),
		})
	}

	pr.Commits = model.CommitList{
		TotalCount: int(n.Commits.TotalCount),
		Nodes:      make([]model.Commit, 0, len(n.Commits.Nodes)),
	}
	for _, node := range n.Commits.Nodes {
		commit := model.Commit{
			SHA:           string(node.Commit.Oid),
			Message:       string(node.Commit.Message),
			Additions:     int(node.Commit.Additions),
			Deletions:     int(node.Commit.Deletions),
			CommittedDate: node.Commit.CommittedDate.Time,
			Author:        string(node.Commit.Author.Name),
			Committer:     string(node.Commit.Committer.Name),
		}
		if node.Commit.Author.User != nil {
			commit.Author = string(node.Commit.Author.User.Login)
		}
		if node.Commit.Committer.User != nil {
			commit.Committer = string(node.Commit.Committer.User.Login)
		}
		pr.Commits.Nodes = append(pr.Commits.Nodes, commit)
	}

	return pr, true
}

type reactionConn struct {
	TotalCount githubv4.Int
	Nodes      []struct {
		Content   githubv4.String
		CreatedAt githubv4.DateTime
		User      *struct {
			Login githubv4.String
		} `graphql:"user"`
	}
}

func (r reactionConn) toModel() model.ReactionList {
	out := model.ReactionList{TotalCount: int(r.TotalCount), Nodes: make([]model.Reaction, 0, len(r.Nodes))}
	for _, n := range r.Nodes {
		reaction := model.Reaction{Content: string(n.Content), CreatedAt: n.CreatedAt.Time}
		if n.User != nil {
			reaction.Author = string(n.User.Login)
		}
		out.Nodes = append(out.Nodes, reaction)
	}
	return out
}

type discussionCommentNode struct {
	ID          githubv4.String
	Author      *actor `graphql:"author"`
	Body        githubv4.String
	URL         githubv4.String
	UpvoteCount githubv4.Int
	CreatedAt   githubv4.DateTime
	UpdatedAt   githubv4.DateTime
	Reactions   reactionConn `graphql:"reactions(first: 10)"`

	Replies struct {
		TotalCount githubv4.Int
		Nodes      []struct {
			ID        githubv4.String
			Author    *actor `graphql:"author"`
			Body      githubv4.String
			URL       githubv4.String
			CreatedAt githubv4.DateTime
			UpdatedAt githubv4.DateTime
			Reactions reactionConn `graphql:"reactions(first: 10)"`
		}
	} `graphql:"replies(first: 10)"`
}

func (n *discussionCommentNode) toModel() model.DiscussionComment {
	comment := model.DiscussionComment{
		ID:          string(n.ID),
		Author:      loginOf(n.Author),
		Body:        string(n.Body),
		URL:         string(n.URL),
		UpvoteCount: int(n.UpvoteCount),
		Reactions:   n.Reactions.toModel(),
		CreatedAt:   n.CreatedAt.Time,
		UpdatedAt:   n.UpdatedAt.Time,
	}
	comment.Replies = model.ReplyList{
		TotalCount: int(n.Replies.TotalCount),
		Nodes:      make([]model.Reply, 0, len(n.Replies.Nodes)),
	}
	for _, reply := range n.Replies.Nodes {
		comment.Replies.Nodes = append(comment.Replies.Nodes, model.Reply{
			ID:        string(reply.ID),
			Author:    loginOf(reply.Author),
			Body:      string(reply.Body),
			URL:       string(reply.URL),
			Reactions: reply.Reactions.toModel(),
			CreatedAt: reply.CreatedAt.Time,
			UpdatedAt: reply.UpdatedAt.Time,
		})
	}
	return comment
}

type discussionNode struct {
	ID             githubv4.String
	Number         githubv4.Int
	Title          githubv4.String
	Body           githubv4.String
	URL            githubv4.String
	UpvoteCount    githubv4.Int
	Closed         githubv4.Boolean
	ClosedAt       *githubv4.DateTime
	IsAnswered     githubv4.Boolean
	AnswerChosenAt *githubv4.DateTime
	CreatedAt      githubv4.DateTime
	UpdatedAt      githubv4.DateTime
	Author         *actor `graphql:"author"`
	Category       struct {
		Name githubv4.String
	}
	Labels    labelList              `graphql:"labels(first: 100)"`
	Reactions reactionConn           `graphql:"reactions(first: 10)"`
	Answer    *discussionCommentNode `graphql:"answer"`

	Comments struct {
		TotalCount githubv4.Int
		Nodes      []discussionCommentNode
	} `graphql:"comments(first: 100)"`
}

// FetchDiscussionPage fetches one page of discussions, most recently
// updated first, with the same watermark semantics as
// FetchPullRequestPage.
func (c *GraphQLClient) FetchDiscussionPage(ctx context.Context, owner, repo string, opts FetchOptions) (*DiscussionPage, error) {
	var query struct {
		Repository struct {
			Discussions struct {
				PageInfo struct {
					HasNextPage githubv4.Boolean
					EndCursor   githubv4.String
				}
				Nodes []discussionNode
			} `graphql:"discussions(first: $first, after: $after, orderBy: {field: UPDATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"first": githubv4.Int(pageSize(opts)), // #nosec G115 - capped at 100
		"after": cursorArg(opts.After),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, mapError(err, owner, repo)
	}

	page := &DiscussionPage{
		HasNextPage: bool(query.Repository.Discussions.PageInfo.HasNextPage),
		EndCursor:   string(query.Repository.Discussions.PageInfo.EndCursor),
	}
	for i := range query.Repository.Discussions.Nodes {
		n := &query.Repository.Discussions.Nodes[i]
		if !opts.Since.IsZero() && n.UpdatedAt.Time.Before(opts.Since) {
			page.HasNextPage = false
			break
		}
		d, ok := convertDiscussion(n, owner, repo)
		if !ok {
			page.Skipped++
			continue
		}
		page.Discussions = append(page.Discussions, d)
	}
	return page, nil
}

func convertDiscussion(n *discussionNode, owner, repo string) (model.Discussion, bool) {
	if n.Number <= 0 {
		slog.Warn("dropping malformed discussion node", "owner", owner, "repo", repo, "id", string(n.ID))
		return model.Discussion{}, false
	}

	d := model.Discussion{
		Owner:          owner,
		Repo:           repo,
		ID:             string(n.ID),
		Number:         int(n.Number),
		Title:          string(n.Title),
		Body:           string(n.Body),
		Category:       string(n.Category.Name),
		Author:         loginOf(n.Author),
		UpvoteCount:    int(n.UpvoteCount),
		Closed:         bool(n.Closed),
		ClosedAt:       timePtr(n.ClosedAt),
		IsAnswered:     bool(n.IsAnswered),
		AnswerChosenAt: timePtr(n.AnswerChosenAt),
		Labels:         n.Labels.names(),
		Reactions:      n.Reactions.toModel(),
		URL:            string(n.URL),
		CreatedAt:      n.CreatedAt.Time,
		UpdatedAt:      n.UpdatedAt.Time,
	}

	if n.Answer != nil {
		answer := n.Answer.toModel()
		d.Answer = &answer
	}

	d.Comments = model.DiscussionCommentList{
		TotalCount: int(n.Comments.TotalCount),
		Nodes:      make([]model.DiscussionComment, 0, len(n.Comments.Nodes)),
	}
	for i := range n.Comments.Nodes {
		d.Comments.Nodes = append(d.Comments.Nodes, n.Comments.Nodes[i].toModel())
	}

	return d, true
}

func pageSize(opts FetchOptions) int {
	size := opts.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > 100 {
		size = 100
	}
	return size
}

func cursorArg(after string) *githubv4.String {
	if after == "" {
		return (*githubv4.String)(nil)
	}
	c := githubv4.String(after)
	return &c
}

func timePtr(t *githubv4.DateTime) *time.Time {
	if t == nil {
		return nil
	}
	out := t.Time
	return &out
}

// mapError maps GraphQL errors to domain sentinels with actionable
// messages.
func mapError(err error, owner, repo string) error {
	switch {
	case isRateLimitError(err):
		return fmt.Errorf("GitHub API rate limit exceeded for %s/%s: %w", owner, repo, apperrors.ErrRateLimit)
	case isAuthError(err):
		return fmt.Errorf("GitHub API authentication failed; check the configured token: %w", apperrors.ErrInvalidToken)
	case isNotFoundError(err):
		return fmt.Errorf("repository %s/%s not found or not accessible: %w", owner, repo, apperrors.ErrRepoNotFound)
	case isNetworkError(err):
		return fmt.Errorf("network error talking to GitHub API for %s/%s: %w", owner, repo, apperrors.ErrNetworkFailure)
	default:
		return fmt.Errorf("github query for %s/%s failed: %w", owner, repo, err)
	}
}
