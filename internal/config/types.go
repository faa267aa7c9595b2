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

// Package config types define the configuration structures used throughout
// teamscope. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for teamscope. It consolidates
// settings from various sources and is passed explicitly into constructors;
// there is no ambient global state.
type Config struct {
	GitHub     GitHubConfig     `yaml:"github"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Pagination PaginationConfig `yaml:"pagination"`
	Retry      RetryConfig      `yaml:"retry"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint and the name of the environment variable holding the API token.
// Custom endpoints support GitHub Enterprise deployments.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains defaults applied when the corresponding command-line
// flag is omitted.
type DefaultsConfig struct {
	Repo      string `yaml:"repo"`
	StartDate string `yaml:"start_date"`
	TeamFile  string `yaml:"team_file"`
}

// PaginationConfig controls page sizes and page caps per query shape. Caps are
// hard ceilings: walking stops there and results are silently truncated.
type PaginationConfig struct {
	// AuthoredPageSize and AuthoredMaxPages drive the authored-PR search.
	AuthoredPageSize int `yaml:"authored_page_size"`
	AuthoredMaxPages int `yaml:"authored_max_pages"`

	// ReviewPageSize and ReviewMaxPages drive the reviewed-by search. The page
	// size is deliberately small because each node carries nested reviews.
	ReviewPageSize int `yaml:"review_page_size"`
	ReviewMaxPages int `yaml:"review_max_pages"`

	// ReviewSubPageSize sizes the nested review connection inside each PR.
	// That connection is walked to exhaustion, so it has no cap.
	ReviewSubPageSize int `yaml:"review_sub_page_size"`

	// CommentPageSize sizes the comment connection inside each review.
	// Only the first comment page is fetched; counts beyond it are
	// represented by the review's total comment count.
	CommentPageSize int `yaml:"comment_page_size"`
}

// RetryConfig controls the backoff applied to rate-limited queries.
type RetryConfig struct {
	MaxRetries       int `yaml:"max_retries"`
	BaseDelaySeconds int `yaml:"base_delay_seconds"`
}

// DefaultConfig returns a Config with defaults suitable for public GitHub.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_API_TOKEN",
		},
		Defaults: DefaultsConfig{
			StartDate: "2024-07-01",
			TeamFile:  "team.yaml",
		},
		Pagination: PaginationConfig{
			AuthoredPageSize:  100,
			AuthoredMaxPages:  5,
			ReviewPageSize:    25,
			ReviewMaxPages:    10,
			ReviewSubPageSize: 100,
			CommentPageSize:   100,
		},
		Retry: RetryConfig{
			MaxRetries:       3,
			BaseDelaySeconds: 2,
		},
	}
}
