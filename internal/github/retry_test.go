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
	"errors"
	"testing"
	"time"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
	"github.com/aicers/github-dashboard-server/internal/model"
)

func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetryRecoversFromTransientFailures(t *testing.T) {
	mock := &MockClient{
		TransientFailures: 2,
		IssuePages: []IssuePage{
			{Issues: []model.Issue{{Number: 1, Title: "hello"}}},
		},
	}
	client := NewRetryClient(mock, fastRetryConfig())

	page, err := client.FetchIssuePage(context.Background(), "aicers", "dashboard", FetchOptions{})
	if err != nil {
		t.Fatalf("FetchIssuePage failed: %v", err)
	}
	if len(page.Issues) != 1 {
		t.Errorf("got %d issues, want 1", len(page.Issues))
	}
	if mock.CallCount != 3 {
		t.Errorf("CallCount = %d, want 3 (two failures then success)", mock.CallCount)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	mock := &MockClient{TransientFailures: 100}
	client := NewRetryClient(mock, fastRetryConfig())

	_, err := client.FetchPullRequestPage(context.Background(), "aicers", "dashboard", FetchOptions{})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !errors.Is(err, apperrors.ErrNetworkFailure) {
		t.Errorf("error = %v, want wrapped ErrNetworkFailure", err)
	}
	if mock.CallCount != 4 {
		t.Errorf("CallCount = %d, want 4 (initial attempt + 3 retries)", mock.CallCount)
	}
}

func TestRetryDoesNotRetryAuthErrors(t *testing.T) {
	mock := &MockClient{ShouldFailAuth: true}
	client := NewRetryClient(mock, fastRetryConfig())

	_, err := client.FetchDiscussionPage(context.Background(), "aicers", "dashboard", FetchOptions{})
	if !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Fatalf("error = %v, want wrapped ErrInvalidToken", err)
	}
	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1; auth errors must not be retried", mock.CallCount)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	mock := &MockClient{TransientFailures: 100}
	client := NewRetryClient(mock, &RetryConfig{
		MaxRetries:        5,
		InitialBackoff:    time.Hour, // would hang without cancellation
		MaxBackoff:        time.Hour,
		BackoffMultiplier: 2.0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.FetchIssuePage(ctx, "aicers", "dashboard", FetchOptions{})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop ignored context cancellation")
	}
}

func TestCalculateBackoffBounded(t *testing.T) {
	r := &RetryClient{config: DefaultRetryConfig()}

	for attempt := 0; attempt < 10; attempt++ {
		backoff := r.calculateBackoff(attempt)
		if backoff <= 0 {
			t.Errorf("backoff(%d) = %v, want positive", attempt, backoff)
		}
		// Max plus 10% jitter headroom.
		if backoff > 33*time.Second {
			t.Errorf("backoff(%d) = %v, exceeds cap", attempt, backoff)
		}
	}
}
