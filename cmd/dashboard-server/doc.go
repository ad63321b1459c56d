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

// Package main implements the dashboard-server command-line interface.
// The server mirrors issues, pull requests, and discussions from a
// configured set of GitHub repositories into an embedded database and
// serves the mirrored data plus derived statistics over a GraphQL HTTP
// endpoint.
//
// The CLI supports:
//   - serve: run the periodic sync loop and the query API together
//   - sync: run one sync pass and exit (cron-friendly seeding)
//   - YAML configuration with environment variable overrides
//   - GitHub token authentication via environment variable or .env file
//
// Usage:
//
//	dashboard-server serve [flags]
//	dashboard-server sync [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	dashboard-server serve --config config.yaml
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Repository not found
//   - 4: Network or rate limit error
package main
