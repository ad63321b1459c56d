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

// Package config types define the configuration structures for the
// dashboard server. These types represent settings that can be loaded
// from YAML configuration files or environment variables.
package config

import "time"

// Config represents the complete configuration for the dashboard server.
type Config struct {
	GitHub       GitHubConfig   `yaml:"github"`
	Repositories []string       `yaml:"repositories"`
	Sync         SyncConfig     `yaml:"sync"`
	Database     DatabaseConfig `yaml:"database"`
	Web          WebConfig      `yaml:"web"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint and authentication configuration. A custom endpoint allows
// GitHub Enterprise deployments; TokenEnv names the environment variable
// holding the bearer token, so the token itself never lives in the file.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// SyncConfig controls the periodic mirror passes.
type SyncConfig struct {
	Interval time.Duration `yaml:"interval"`
	PageSize int           `yaml:"page_size"`
	Retry    RetryConfig   `yaml:"retry"`
}

// RetryConfig controls backoff for transient upstream failures.
type RetryConfig struct {
	MaxRetries     int           `yaml:"max_retries"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// DatabaseConfig locates the embedded record store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// WebConfig configures the outward query API listener.
type WebConfig struct {
	Address string `yaml:"address"`
}

// DefaultConfig returns a Config with sensible defaults suitable for
// public GitHub.com usage. Repositories has no default; at least one must
// be configured.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Sync: SyncConfig{
			Interval: 10 * time.Minute,
			PageSize: 50,
			Retry: RetryConfig{
				MaxRetries:     3,
				InitialBackoff: time.Second,
				MaxBackoff:     30 * time.Second,
			},
		},
		Database: DatabaseConfig{
			Path: "dashboard.db",
		},
		Web: WebConfig{
			Address: "localhost:8000",
		},
	}
}
