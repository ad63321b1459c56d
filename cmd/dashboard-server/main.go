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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/aicers/github-dashboard-server/internal/errors"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "dashboard-server",
		Short: "Mirror GitHub repository data and serve it as a query API",
		Long: `dashboard-server keeps a local mirror of issues, pull requests, and
discussions for a configured set of GitHub repositories, and serves the
mirrored data plus derived statistics through a GraphQL query API.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSyncCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode gives scripted callers distinct exit codes for the
// failure classes worth branching on.
func mapErrorToExitCode(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidToken):
		return 2
	case errors.Is(err, apperrors.ErrRepoNotFound):
		return 3
	case errors.Is(err, apperrors.ErrNetworkFailure), errors.Is(err, apperrors.ErrRateLimit):
		return 4
	default:
		return 1
	}
}
