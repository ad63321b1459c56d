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

// Package api is the outward query façade: a GraphQL schema exposing the
// mirrored records as paginated listings (issues, pullRequests,
// discussions) and the filtered aggregates (issueStat, discussionStat,
// pullRequestStat). It only reads; all writes come from the sync side.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"github.com/aicers/github-dashboard-server/internal/aggregate"
	"github.com/aicers/github-dashboard-server/internal/model"
	"github.com/aicers/github-dashboard-server/internal/store"
)

// Server holds the compiled schema and its backing store and aggregation
// engine.
type Server struct {
	store  *store.Store
	engine *aggregate.Engine
	schema graphql.Schema
}

// NewServer compiles the query schema against the given store and
// aggregation engine.
func NewServer(st *store.Store, engine *aggregate.Engine) (*Server, error) {
	s := &Server{store: st, engine: engine}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"issues": &graphql.Field{
				Type:    graphql.NewNonNull(issueConnectionType),
				Args:    paginationArgs,
				Resolve: s.resolveIssues,
			},
			"pullRequests": &graphql.Field{
				Type:    graphql.NewNonNull(pullRequestConnectionType),
				Args:    paginationArgs,
				Resolve: s.resolvePullRequests,
			},
			"discussions": &graphql.Field{
				Type:    graphql.NewNonNull(discussionConnectionType),
				Args:    paginationArgs,
				Resolve: s.resolveDiscussions,
			},
			"issueStat": &graphql.Field{
				Type:    graphql.NewNonNull(issueStatType),
				Args:    statArgs(),
				Resolve: s.resolveIssueStat,
			},
			"discussionStat": &graphql.Field{
				Type:    graphql.NewNonNull(discussionStatType),
				Args:    statArgs(),
				Resolve: s.resolveDiscussionStat,
			},
			"pullRequestStat": &graphql.Field{
				Type:    graphql.NewNonNull(pullRequestStatType),
				Args:    statArgs(),
				Resolve: s.resolvePullRequestStat,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return nil, fmt.Errorf("building query schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Schema returns the compiled schema, for direct execution in tests.
func (s *Server) Schema() graphql.Schema {
	return s.schema
}

// Handler returns the HTTP handler serving the query API, with GraphiQL
// enabled for interactive exploration.
func (s *Server) Handler() http.Handler {
	return handler.New(&handler.Config{
		Schema:   &s.schema,
		Pretty:   true,
		GraphiQL: true,
	})
}

func statArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"filter": &graphql.ArgumentConfig{Type: statFilterInput},
	}
}

// connection is the shared shape of the listing results. The typed edge
// and node slices resolve by reflection.
type edge[T any] struct {
	Cursor string
	Node   T
}

type connection[T any] struct {
	Edges    []edge[T]
	Nodes    []T
	PageInfo pageInfo
}

func makeConnection[T fmt.Stringer](records []T, w pageWindow, hasMore bool) connection[T] {
	cursors := make([]string, len(records))
	edges := make([]edge[T], len(records))
	for i, r := range records {
		cursors[i] = encodeCursor(r.String())
		edges[i] = edge[T]{Cursor: cursors[i], Node: r}
	}
	return connection[T]{
		Edges:    edges,
		Nodes:    records,
		PageInfo: w.pageInfo(hasMore, cursors),
	}
}

func (s *Server) resolveIssues(p graphql.ResolveParams) (interface{}, error) {
	w, err := parsePageWindow(p)
	if err != nil {
		return nil, err
	}
	records, hasMore, _, err := s.store.ScanIssues(w.scanOptions())
	if err != nil {
		return nil, err
	}
	if w.backward {
		reverse(records)
	}
	return makeConnection(records, w, hasMore), nil
}

func (s *Server) resolvePullRequests(p graphql.ResolveParams) (interface{}, error) {
	w, err := parsePageWindow(p)
	if err != nil {
		return nil, err
	}
	records, hasMore, _, err := s.store.ScanPullRequests(w.scanOptions())
	if err != nil {
		return nil, err
	}
	if w.backward {
		reverse(records)
	}
	return makeConnection(records, w, hasMore), nil
}

func (s *Server) resolveDiscussions(p graphql.ResolveParams) (interface{}, error) {
	w, err := parsePageWindow(p)
	if err != nil {
		return nil, err
	}
	records, hasMore, _, err := s.store.ScanDiscussions(w.scanOptions())
	if err != nil {
		return nil, err
	}
	if w.backward {
		reverse(records)
	}
	return makeConnection(records, w, hasMore), nil
}

func (s *Server) resolveIssueStat(p graphql.ResolveParams) (interface{}, error) {
	filter, err := parseFilter(p)
	if err != nil {
		return nil, err
	}
	return s.engine.IssueStat(filter)
}

func (s *Server) resolveDiscussionStat(p graphql.ResolveParams) (interface{}, error) {
	filter, err := parseFilter(p)
	if err != nil {
		return nil, err
	}
	return s.engine.DiscussionStat(filter)
}

func (s *Server) resolvePullRequestStat(p graphql.ResolveParams) (interface{}, error) {
	filter, err := parseFilter(p)
	if err != nil {
		return nil, err
	}
	return s.engine.PullRequestStat(filter)
}

// parseFilter translates the optional filter argument into an aggregation
// filter. Begin must precede End when both are set.
func parseFilter(p graphql.ResolveParams) (aggregate.Filter, error) {
	var filter aggregate.Filter
	raw, ok := p.Args["filter"].(map[string]interface{})
	if !ok {
		return filter, nil
	}
	if repo, ok := raw["repo"].(string); ok {
		filter.Repo = repo
	}
	if author, ok := raw["author"].(string); ok {
		filter.Author = author
	}
	if assignee, ok := raw["assignee"].(string); ok {
		filter.Assignee = assignee
	}
	if begin, ok := raw["begin"].(time.Time); ok {
		filter.Begin = &begin
	}
	if end, ok := raw["end"].(time.Time); ok {
		filter.End = &end
	}
	if filter.Begin != nil && filter.End != nil && !filter.Begin.Before(*filter.End) {
		return filter, fmt.Errorf("filter begin %v must precede end %v", filter.Begin, filter.End)
	}
	return filter, nil
}

// Compile-time checks that the record types carry the identity form used
// for cursors.
var (
	_ fmt.Stringer = model.Issue{}
	_ fmt.Stringer = model.PullRequest{}
	_ fmt.Stringer = model.Discussion{}
)
