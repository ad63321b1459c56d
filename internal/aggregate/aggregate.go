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

// Package aggregate computes filtered statistics over the mirrored
// records. Every statistic is an exact count from a full scan of the
// relevant kind, range-restricted to one repository when the filter names
// one. There are no secondary indexes; the dataset is bounded by
// repository scale and reads are cheap relative to sync writes.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/aicers/github-dashboard-server/internal/model"
	"github.com/aicers/github-dashboard-server/internal/store"
)

// statusDone is the project-board status that marks an issue as resolved.
const statusDone = "Done"

// Filter narrows a statistic to a slice of the mirrored data. Every field
// is optional; the zero value matches everything. Repo is either the full
// "owner/name" form or a bare repository name, which matches across
// owners. Begin is inclusive and End exclusive, both against the record's
// creation time.
type Filter struct {
	Repo     string
	Author   string
	Assignee string
	Begin    *time.Time
	End      *time.Time
}

// prefix returns the repository scan prefix when the filter names a full
// "owner/name" repository. A bare name cannot be range-restricted; it is
// matched per record during the full scan instead.
func (f Filter) prefix() ([]byte, error) {
	if !strings.Contains(f.Repo, "/") {
		return nil, nil
	}
	owner, name, _ := strings.Cut(f.Repo, "/")
	if owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid repository filter %q: want owner/name", f.Repo)
	}
	return store.RepoPrefix(owner, name), nil
}

// matchesRepo applies the bare-name repository dimension. Full
// "owner/name" filters are already handled by the scan prefix.
func (f Filter) matchesRepo(name string) bool {
	if f.Repo == "" || strings.Contains(f.Repo, "/") {
		return true
	}
	return name == f.Repo
}

// matches applies the author, assignee, and creation-date dimensions.
func (f Filter) matches(author string, assignees []string, createdAt time.Time) bool {
	if f.Author != "" && author != f.Author {
		return false
	}
	if f.Assignee != "" {
		found := false
		for _, a := range assignees {
			if a == f.Assignee {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Begin != nil && createdAt.Before(*f.Begin) {
		return false
	}
	if f.End != nil && !createdAt.Before(*f.End) {
		return false
	}
	return true
}

// IssueStat reports open and resolved issue counts.
type IssueStat struct {
	OpenIssueCount     int
	ResolvedIssueCount int
}

// DiscussionStat reports discussion and discussion-comment counts.
type DiscussionStat struct {
	TotalCount   int
	CommentCount int
}

// PullRequestStat reports open/merged pull request counts, the average
// review activity on merged pull requests, and the average time to merge
// in 24-hour days. Both averages are 0 when nothing merged.
type PullRequestStat struct {
	OpenCount             int
	MergedCount           int
	AvgReviewCommentCount float64
	AvgMergeDays          float64
}

// Engine computes statistics against one store.
type Engine struct {
	store *store.Store
}

// New creates an aggregation engine over the given store.
func New(st *store.Store) *Engine {
	return &Engine{store: st}
}

// IssueStat counts open issues and resolved issues in the filtered set.
// An issue is resolved when it is closed and some project item on it has
// status "Done"; an issue without project metadata is never resolved.
func (e *Engine) IssueStat(filter Filter) (IssueStat, error) {
	var stat IssueStat
	prefix, err := filter.prefix()
	if err != nil {
		return stat, err
	}
	issues, _, _, err := e.store.ScanIssues(store.ScanOptions{Prefix: prefix})
	if err != nil {
		return stat, err
	}
	for _, issue := range issues {
		if !filter.matchesRepo(issue.Repo) || !filter.matches(issue.Author, issue.Assignees, issue.CreatedAt) {
			continue
		}
		switch issue.State {
		case model.IssueOpen:
			stat.OpenIssueCount++
		case model.IssueClosed:
			if isResolved(issue) {
				stat.ResolvedIssueCount++
			}
		}
	}
	return stat, nil
}

func isResolved(issue model.Issue) bool {
	for _, item := range issue.Projects.Nodes {
		if item.Status != nil && *item.Status == statusDone {
			return true
		}
	}
	return false
}

// DiscussionStat counts discussions in the filtered set and the comments
// on them. CommentCount uses each discussion's true upstream comment
// total, not just the mirrored first page.
func (e *Engine) DiscussionStat(filter Filter) (DiscussionStat, error) {
	var stat DiscussionStat
	prefix, err := filter.prefix()
	if err != nil {
		return stat, err
	}
	discussions, _, _, err := e.store.ScanDiscussions(store.ScanOptions{Prefix: prefix})
	if err != nil {
		return stat, err
	}
	for _, d := range discussions {
		if !filter.matchesRepo(d.Repo) || !filter.matches(d.Author, nil, d.CreatedAt) {
			continue
		}
		stat.TotalCount++
		stat.CommentCount += d.Comments.TotalCount
	}
	return stat, nil
}

// PullRequestStat counts open and merged pull requests in the filtered
// set. AvgReviewCommentCount is the mean of (review count + comment
// count) over the merged subset; AvgMergeDays is the mean time from
// creation to merge in 24-hour days. Both are 0 when nothing merged.
func (e *Engine) PullRequestStat(filter Filter) (PullRequestStat, error) {
	var stat PullRequestStat
	prefix, err := filter.prefix()
	if err != nil {
		return stat, err
	}
	prs, _, _, err := e.store.ScanPullRequests(store.ScanOptions{Prefix: prefix})
	if err != nil {
		return stat, err
	}

	var activity, mergeDays []float64
	for _, pr := range prs {
		if !filter.matchesRepo(pr.Repo) || !filter.matches(pr.Author, pr.Assignees, pr.CreatedAt) {
			continue
		}
		switch {
		case pr.State == model.PullRequestOpen:
			stat.OpenCount++
		case pr.MergedAt != nil:
			stat.MergedCount++
			activity = append(activity, float64(pr.Reviews.TotalCount+pr.Comments.TotalCount))
			mergeDays = append(mergeDays, pr.MergedAt.Sub(pr.CreatedAt).Hours()/24)
		}
	}

	if len(activity) > 0 {
		mean, err := stats.Mean(activity)
		if err != nil {
			return stat, fmt.Errorf("computing review activity mean: %w", err)
		}
		stat.AvgReviewCommentCount = mean
	}
	if len(mergeDays) > 0 {
		mean, err := stats.Mean(mergeDays)
		if err != nil {
			return stat, fmt.Errorf("computing merge-days mean: %w", err)
		}
		stat.AvgMergeDays = mean
	}
	return stat, nil
}
