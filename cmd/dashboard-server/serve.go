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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aicers/github-dashboard-server/internal/aggregate"
	"github.com/aicers/github-dashboard-server/internal/api"
	"github.com/aicers/github-dashboard-server/internal/config"
	"github.com/aicers/github-dashboard-server/internal/github"
	"github.com/aicers/github-dashboard-server/internal/store"
	syncer "github.com/aicers/github-dashboard-server/internal/sync"
)

// newServeCommand builds the long-running mode: periodic sync plus the
// query API listener.
func newServeCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync loop and the query API",
		Long: `Start the dashboard server: mirror the configured repositories on the
sync interval and serve the query API over HTTP.

Authentication is required via GitHub token, read from the environment
variable named by github.token_env in the config file (GITHUB_TOKEN by
default). A .env file in the working directory is loaded if present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: search standard locations)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	app, err := buildApp(configPath)
	if err != nil {
		return err
	}
	defer app.store.Close()

	engine := aggregate.New(app.store)
	server, err := api.NewServer(app.store, engine)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", server.Handler())

	httpServer := &http.Server{
		Addr:              app.cfg.Web.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	orchestrator := syncer.New(app.client, app.store, app.repos,
		app.cfg.Sync.Interval, app.cfg.Sync.PageSize)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := orchestrator.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		slog.Info("query API listening", "address", app.cfg.Web.Address)
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// app bundles the pieces shared by the serve and sync commands.
type app struct {
	cfg    *config.Config
	store  *store.Store
	client github.Client
	repos  []syncer.Repository
}

func buildApp(configPath string) (*app, error) {
	// A missing .env file is fine; explicit environment still applies.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	token, err := cfg.Token()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	client := github.NewRetryClient(
		github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint),
		&github.RetryConfig{
			MaxRetries:        cfg.Sync.Retry.MaxRetries,
			InitialBackoff:    cfg.Sync.Retry.InitialBackoff,
			MaxBackoff:        cfg.Sync.Retry.MaxBackoff,
			BackoffMultiplier: 2.0,
		})

	repos := make([]syncer.Repository, 0, len(cfg.Repositories))
	for _, full := range cfg.Repositories {
		owner, name, _ := strings.Cut(full, "/")
		repos = append(repos, syncer.Repository{Owner: owner, Name: name})
	}

	return &app{cfg: cfg, store: st, client: client, repos: repos}, nil
}

func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
