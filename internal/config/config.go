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

// Package config loads the dashboard server configuration with a
// well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Environment variables
//  2. Configuration file
//  3. Built-in defaults
//
// The token itself is never stored in the file; GitHubConfig.TokenEnv
// names the environment variable that carries it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them
// in precedence order. If configPath is provided, it loads from that
// specific file. Otherwise, it searches standard locations:
//   - config.yaml (current directory)
//   - config.yml (current directory)
//   - ~/.github-dashboard/config.yaml
//   - ~/.github-dashboard/config.yml
//
// Environment variables are applied after loading the config file,
// allowing runtime overrides. Returns an error if the specified config
// file cannot be loaded, but succeeds with defaults if no file is found
// in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".github-dashboard", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".github-dashboard", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Database.Path = expandPath(cfg.Database.Path)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if path := os.Getenv("DASHBOARD_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	if addr := os.Getenv("DASHBOARD_LISTEN_ADDR"); addr != "" {
		cfg.Web.Address = addr
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// Token resolves the GitHub bearer token from the configured environment
// variable.
func (c *Config) Token() (string, error) {
	name := c.GitHub.TokenEnv
	if name == "" {
		name = "GITHUB_TOKEN"
	}
	token := os.Getenv(name)
	if token == "" {
		return "", fmt.Errorf("no GitHub token found; set the %s environment variable", name)
	}
	return token, nil
}

// Validate checks if the configuration contains valid values. It ensures
// at least one repository is tracked and well-formed, the page size is
// within GitHub's limits, and the timing values are sane. This should be
// called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if len(c.Repositories) == 0 {
		return fmt.Errorf("at least one repository must be configured")
	}
	for _, repo := range c.Repositories {
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
			return fmt.Errorf("invalid repository %q: expected owner/name format", repo)
		}
	}
	if c.Sync.PageSize <= 0 {
		return fmt.Errorf("sync page size must be positive, got: %d", c.Sync.PageSize)
	}
	if c.Sync.PageSize > 100 {
		return fmt.Errorf("sync page size %d exceeds GitHub API limit of 100", c.Sync.PageSize)
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync interval must be positive, got: %v", c.Sync.Interval)
	}
	if c.Sync.Retry.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got: %d", c.Sync.Retry.MaxRetries)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Web.Address == "" {
		return fmt.Errorf("web listen address cannot be empty")
	}
	return nil
}
