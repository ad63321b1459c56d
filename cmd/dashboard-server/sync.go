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
	"log/slog"

	"github.com/spf13/cobra"

	syncer "github.com/aicers/github-dashboard-server/internal/sync"
)

// newSyncCommand builds the one-shot mode: a single full sync pass over
// every configured repository, then exit. Useful for cron-driven setups
// and for seeding the database before first serve.
func newSyncCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)

			app, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer app.store.Close()

			orchestrator := syncer.New(app.client, app.store, app.repos,
				app.cfg.Sync.Interval, app.cfg.Sync.PageSize)
			reports, err := orchestrator.SyncOnce(cmd.Context())
			for _, r := range reports {
				if r.Err != nil {
					continue
				}
				slog.Info("pass summary",
					"repo", r.Repository.String(),
					"kind", string(r.Kind),
					"fetched", r.Fetched,
					"watermark", r.Watermark)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: search standard locations)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}
