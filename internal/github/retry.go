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
	"math"
	"time"
)

// RetryConfig configures the retry behavior for API calls.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryClient wraps a Client with automatic retry logic for rate limits
// and transient network errors using exponential backoff with jitter.
type RetryClient struct {
	client Client
	config *RetryConfig
}

// NewRetryClient creates a new RetryClient with the given configuration.
// A nil config uses DefaultRetryConfig.
func NewRetryClient(client Client, config *RetryConfig) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{client: client, config: config}
}

// FetchIssuePage implements the Client interface with retry logic.
func (r *RetryClient) FetchIssuePage(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	return retryFetch(ctx, r, "issues", owner, repo, func() (*IssuePage, error) {
		return r.client.FetchIssuePage(ctx, owner, repo, opts)
	})
}

// FetchPullRequestPage implements the Client interface with retry logic.
func (r *RetryClient) FetchPullRequestPage(ctx context.Context, owner, repo string, opts FetchOptions) (*PullRequestPage, error) {
	return retryFetch(ctx, r, "pull_requests", owner, repo, func() (*PullRequestPage, error) {
		return r.client.FetchPullRequestPage(ctx, owner, repo, opts)
	})
}

// FetchDiscussionPage implements the Client interface with retry logic.
func (r *RetryClient) FetchDiscussionPage(ctx context.Context, owner, repo string, opts FetchOptions) (*DiscussionPage, error) {
	return retryFetch(ctx, r, "discussions", owner, repo, func() (*DiscussionPage, error) {
		return r.client.FetchDiscussionPage(ctx, owner, repo, opts)
	})
}

// retryFetch runs fetch with bounded exponential backoff. Non-retryable
// errors and context cancellation return immediately.
func retryFetch[P any](ctx context.Context, r *RetryClient, kind, owner, repo string, fetch func() (*P, error)) (*P, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		page, err := fetch()
		if err == nil {
			return page, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt == r.config.MaxRetries {
			break
		}

		backoff := r.calculateBackoff(attempt)
		slog.Warn("transient fetch failure, backing off",
			"kind", kind,
			"owner", owner,
			"repo", repo,
			"attempt", attempt+1,
			"max_retries", r.config.MaxRetries,
			"backoff", backoff,
			"error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

// calculateBackoff calculates the backoff duration for the given attempt.
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))

	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}

	// Add jitter (±10%) to prevent thundering herd
	jitter := backoff * 0.1 * (2*float64(time.Now().UnixNano()%100)/100 - 1)
	backoff += jitter

	return time.Duration(backoff)
}
