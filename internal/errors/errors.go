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

// Package errors defines sentinel errors for consistent error handling
// across the application. Callers wrap them with %w and match with
// errors.Is, so retry policy and API error mapping stay inspectable.
package errors

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrInvalidToken indicates GitHub authentication failed.
	// Never retried.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrRepoNotFound indicates the specified repository does not exist or
	// is not accessible with the configured token. Never retried.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrNetworkFailure indicates a transient network problem talking to
	// the GitHub API. Retried with backoff.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimit indicates the GitHub API rate limit has been exceeded.
	// Retried with backoff.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNotFound indicates a record is absent from the local store.
	ErrNotFound = errors.New("record not found")

	// ErrBadCursor indicates a client supplied an unparseable pagination
	// cursor. Reported to the client, never fatal.
	ErrBadCursor = errors.New("invalid pagination cursor")
)
