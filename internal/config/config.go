// Copyright 2025 SirSeer, LLC
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

// Package config provides configuration management for teamscope with
// support for multiple configuration sources and a well-defined precedence
// order (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the given YAML file, or from standard
// locations when configPath is empty:
//   - .teamscope.yaml (current directory)
//   - .teamscope.yml (current directory)
//   - ~/.teamscope/config.yaml
//
// Environment variables are applied after the file, allowing runtime
// overrides. Missing files in standard locations are not an error; an
// explicitly named file that cannot be loaded is.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".teamscope.yaml",
			".teamscope.yml",
			filepath.Join(os.Getenv("HOME"), ".teamscope", "config.yaml"),
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
	if tokenEnv := os.Getenv("TEAMSCOPE_TOKEN_ENV"); tokenEnv != "" {
		cfg.GitHub.TokenEnv = tokenEnv
	}
	if teamFile := os.Getenv("TEAMSCOPE_TEAM_FILE"); teamFile != "" {
		cfg.Defaults.TeamFile = teamFile
	}
	if repo := os.Getenv("TEAMSCOPE_REPO"); repo != "" {
		cfg.Defaults.Repo = repo
	}
	if retries := os.Getenv("TEAMSCOPE_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n >= 0 {
			cfg.Retry.MaxRetries = n
		}
	}
}

// Validate checks if the configuration contains valid values. It should be
// called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.GitHub.TokenEnv == "" {
		return fmt.Errorf("token environment variable name cannot be empty")
	}
	if err := validatePageSize("authored_page_size", c.Pagination.AuthoredPageSize); err != nil {
		return err
	}
	if err := validatePageSize("review_page_size", c.Pagination.ReviewPageSize); err != nil {
		return err
	}
	if err := validatePageSize("review_sub_page_size", c.Pagination.ReviewSubPageSize); err != nil {
		return err
	}
	if err := validatePageSize("comment_page_size", c.Pagination.CommentPageSize); err != nil {
		return err
	}
	if c.Pagination.AuthoredMaxPages <= 0 {
		return fmt.Errorf("authored_max_pages must be positive, got: %d", c.Pagination.AuthoredMaxPages)
	}
	if c.Pagination.ReviewMaxPages <= 0 {
		return fmt.Errorf("review_max_pages must be positive, got: %d", c.Pagination.ReviewMaxPages)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative, got: %d", c.Retry.MaxRetries)
	}
	if c.Retry.BaseDelaySeconds <= 0 {
		return fmt.Errorf("base_delay_seconds must be positive, got: %d", c.Retry.BaseDelaySeconds)
	}
	if c.Defaults.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.Defaults.StartDate); err != nil {
			return fmt.Errorf("start_date must be YYYY-MM-DD, got: %s", c.Defaults.StartDate)
		}
	}
	return nil
}

func validatePageSize(name string, size int) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", name, size)
	}
	if size > 100 {
		return fmt.Errorf("%s %d exceeds GitHub API limit of 100", name, size)
	}
	return nil
}
