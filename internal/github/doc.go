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

// Package github fetches issues, pull requests, and discussions from the
// GitHub GraphQL API, one cursor-paginated page per call.
//
// The package exposes a small Client interface with three page fetchers.
// GraphQLClient is the real implementation on top of shurcooL/githubv4;
// RetryClient decorates any Client with bounded exponential backoff for
// transient failures; MockClient drives tests.
//
// Ingestion always walks forward (first/after) from a caller-supplied
// watermark. Nested collections (comments, labels, reactions, replies,
// reviews, commits, project items) are captured as a single bounded page
// each; deeper pagination of nested collections is a known limitation,
// recorded in the connection TotalCount fields.
package github
