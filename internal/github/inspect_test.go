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
	"fmt"
	"testing"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
)

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("call failed: %w", apperrors.ErrInvalidToken), true},
		{"401 status", errors.New("non-200 OK status code: 401 Unauthorized"), true},
		{"bad credentials", errors.New("Bad credentials"), true},
		{"unrelated", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAuthError(tt.err); got != tt.want {
				t.Errorf("isAuthError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("call failed: %w", apperrors.ErrRateLimit), true},
		{"message", errors.New("API rate limit exceeded for user"), true},
		{"secondary", errors.New("You have exceeded a secondary limit"), true},
		{"unrelated", errors.New("parse error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimitError(tt.err); got != tt.want {
				t.Errorf("isRateLimitError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("call failed: %w", apperrors.ErrNetworkFailure), true},
		{"dial", errors.New("dial tcp 140.82.112.3:443: connect: connection refused"), true},
		{"timeout", errors.New("context deadline exceeded (Client.Timeout exceeded)"), true},
		{"bad gateway", errors.New("non-200 OK status code: 502 Bad Gateway"), true},
		{"unrelated", errors.New("invalid JSON"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNetworkError(tt.err); got != tt.want {
				t.Errorf("isNetworkError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !isRetryable(fmt.Errorf("x: %w", apperrors.ErrRateLimit)) {
		t.Error("rate limit should be retryable")
	}
	if !isRetryable(fmt.Errorf("x: %w", apperrors.ErrNetworkFailure)) {
		t.Error("network failure should be retryable")
	}
	if isRetryable(fmt.Errorf("x: %w", apperrors.ErrInvalidToken)) {
		t.Error("auth failure should not be retryable")
	}
	if isRetryable(fmt.Errorf("x: %w", apperrors.ErrRepoNotFound)) {
		t.Error("not-found should not be retryable")
	}
}
